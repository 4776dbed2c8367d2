package capshape

import "fmt"

// Build assembles the capture values for one successful match from an
// engine trace. match is the whole-match span; the returned Result owns
// its value tree and borrows the compiled pattern read-only.
//
// The value tree conforms to Shape(); additionally a flat projection in
// backreference order is built, structuring each group's spans by its
// Repeated/Opt ancestors. A trace that violates an engine invariant
// (alternation exclusivity, duplicate spans within one execution window)
// yields an error wrapping ErrTrace.
func (c *Compiled) Build(input string, match Span, trace *Trace) (*Result, error) {
	b := &treeBuilder{c: c, trace: trace, cur: make(cursors)}
	value, err := b.build(c.root, window{span: match, limit: trace.horizon()})
	if err != nil {
		return nil, err
	}

	flat := make([]Value, len(c.groups)+1)
	flat[0] = &LeafValue{Span: match, Present: true}
	for i, g := range c.groups {
		fv, err := c.flatten(trace, g, match)
		if err != nil {
			return nil, err
		}
		flat[i+1] = fv
	}

	return &Result{input: input, span: match, value: value, flat: flat, c: c}, nil
}

type treeBuilder struct {
	c     *Compiled
	trace *Trace
	cur   cursors
}

// build walks pattern and shape together. w confines the current subtree
// to one execution: its extent span and the recording bound that closed
// it. Trace entries are consumed in order, scoped by the window.
func (b *treeBuilder) build(n Node, w window) (Value, error) {
	switch x := n.(type) {
	case *Capture:
		e, ok := b.cur.take(b.trace, x, w)
		if !ok {
			return &LeafValue{}, nil
		}
		if b.cur.peek(b.trace, x, w) {
			return nil, fmt.Errorf("%w: group %s matched twice within %s", ErrTrace, groupLabel(x), w.span)
		}
		return &LeafValue{Span: e.span, Present: true}, nil

	case *Group:
		return b.build(x.Sub, w)

	case *Concat:
		if isEmptyShape(b.c.shapeOf(n)) {
			return &EmptyValue{}, nil
		}
		var elems []Value
		for _, sub := range x.Subs {
			if isEmptyShape(b.c.shapeOf(sub)) {
				continue
			}
			v, err := b.build(sub, w)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		if len(elems) == 1 {
			return elems[0], nil
		}
		return &ProductValue{Elems: elems}, nil

	case *Alternate:
		if isEmptyShape(b.c.shapeOf(n)) {
			return &EmptyValue{}, nil
		}
		e, ok := b.cur.take(b.trace, x, w)
		if !ok {
			return nil, fmt.Errorf("%w: no branch recorded for alternation within %s", ErrTrace, w.span)
		}
		if b.cur.peek(b.trace, x, w) {
			return nil, fmt.Errorf("%w: alternation executed twice within %s", ErrTrace, w.span)
		}
		if e.branch < 0 || e.branch >= len(x.Subs) {
			return nil, fmt.Errorf("%w: alternation branch %d out of range", ErrTrace, e.branch)
		}
		inner := window{span: e.span, limit: e.seq}
		// Exclusivity: no sibling branch may have live captures inside
		// this execution.
		for i, sub := range x.Subs {
			if i == e.branch {
				continue
			}
			if b.live(sub, inner) {
				return nil, fmt.Errorf("%w: branches %d and %d both captured within %s", ErrTrace, e.branch, i, e.span)
			}
		}
		of, err := b.build(x.Subs[e.branch], inner)
		if err != nil {
			return nil, err
		}
		return &SumValue{Branch: e.branch, Arity: len(x.Subs), Of: of}, nil

	case *Quantifier:
		switch b.c.shapeOf(n).(type) {
		case *Empty:
			return &EmptyValue{}, nil
		case *Opt:
			e, ok := b.cur.take(b.trace, x, w)
			if !ok {
				return &OptValue{}, nil
			}
			if b.cur.peek(b.trace, x, w) {
				return nil, fmt.Errorf("%w: optional executed twice within %s", ErrTrace, w.span)
			}
			of, err := b.build(x.Sub, window{span: e.span, limit: e.seq})
			if err != nil {
				return nil, err
			}
			return &OptValue{Of: of}, nil
		default:
			var items []Value
			for {
				e, ok := b.cur.take(b.trace, x, w)
				if !ok {
					break
				}
				v, err := b.build(x.Sub, window{span: e.span, limit: e.seq})
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
			return &RepeatedValue{Items: items}, nil
		}

	default: // Literal, CharClass, AnyChar
		return &EmptyValue{}, nil
	}
}

// live reports whether any capturing group in the subtree has an
// unconsumed span inside w.
func (b *treeBuilder) live(n Node, w window) bool {
	switch x := n.(type) {
	case *Capture:
		return b.cur.peek(b.trace, x, w) || b.live(x.Sub, w)
	case *Group:
		return b.live(x.Sub, w)
	case *Concat:
		for _, sub := range x.Subs {
			if b.live(sub, w) {
				return true
			}
		}
	case *Alternate:
		for _, sub := range x.Subs {
			if b.live(sub, w) {
				return true
			}
		}
	case *Quantifier:
		return b.live(x.Sub, w)
	}
	return false
}

// flatten builds the backreference projection of one group: its spans,
// structured by the group's Repeated/Opt quantifier ancestors. Each group
// is flattened with its own cursors so walks do not interfere.
func (c *Compiled) flatten(trace *Trace, g *Capture, match Span) (Value, error) {
	cur := make(cursors)
	var rec func(chain []*Quantifier, w window) (Value, error)
	rec = func(chain []*Quantifier, w window) (Value, error) {
		if len(chain) == 0 {
			e, ok := cur.take(trace, g, w)
			if !ok {
				return &LeafValue{}, nil
			}
			if cur.peek(trace, g, w) {
				return nil, fmt.Errorf("%w: group %s matched twice within %s", ErrTrace, groupLabel(g), w.span)
			}
			return &LeafValue{Span: e.span, Present: true}, nil
		}
		q := chain[0]
		if _, opt := c.shapeOf(q).(*Opt); opt {
			e, ok := cur.take(trace, q, w)
			if !ok {
				return &OptValue{}, nil
			}
			if cur.peek(trace, q, w) {
				return nil, fmt.Errorf("%w: optional executed twice within %s", ErrTrace, w.span)
			}
			of, err := rec(chain[1:], window{span: e.span, limit: e.seq})
			if err != nil {
				return nil, err
			}
			return &OptValue{Of: of}, nil
		}
		var items []Value
		for {
			e, ok := cur.take(trace, q, w)
			if !ok {
				break
			}
			v, err := rec(chain[1:], window{span: e.span, limit: e.seq})
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return &RepeatedValue{Items: items}, nil
	}
	return rec(c.chains[g], window{span: match, limit: trace.horizon()})
}

func groupLabel(g *Capture) string {
	if g.Name != "" {
		return fmt.Sprintf("%q", g.Name)
	}
	return "(unnamed)"
}
