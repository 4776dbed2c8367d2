package capshape

import (
	"strings"
	"unicode/utf8"
)

// The reference engine is a tree-walking backtracking matcher in
// continuation-passing style. Trace events are appended to a journal and
// rolled back when a speculative path fails, so the surviving journal
// describes exactly the successful match. External engines can skip this
// entirely and feed their own Trace to Build.

// FindString runs the reference engine, returning the leftmost match and
// its capture values. A nil Result with nil error means no match.
func (c *Compiled) FindString(input string) (*Result, error) {
	m := &machine{c: c, input: input}
	for start := 0; start <= len(input); start++ {
		m.log = m.log[:0]
		end, ok := m.matchAt(start)
		if !ok {
			continue
		}
		trace := NewTrace()
		for _, ev := range m.log {
			trace.add(ev.n, ev.entry)
		}
		return c.Build(input, Span{Start: start, End: end}, trace)
	}
	return nil, nil
}

// MatchString reports whether the pattern matches anywhere in input.
func (c *Compiled) MatchString(input string) bool {
	m := &machine{c: c, input: input}
	for start := 0; start <= len(input); start++ {
		m.log = m.log[:0]
		if _, ok := m.matchAt(start); ok {
			return true
		}
	}
	return false
}

type event struct {
	n     Node
	entry traceEntry
}

type machine struct {
	c     *Compiled
	input string
	log   []event
}

func (m *machine) mark() int     { return len(m.log) }
func (m *machine) undo(mark int) { m.log = m.log[:mark] }

func (m *machine) record(n Node, e traceEntry) {
	m.log = append(m.log, event{n: n, entry: e})
}

func (m *machine) matchAt(start int) (int, bool) {
	end := -1
	ok := m.match(m.c.root, start, func(p int) bool {
		end = p
		return true
	})
	return end, ok
}

// match attempts the node at pos and calls k with the end position of
// every candidate, most preferred first, until k accepts one.
func (m *machine) match(n Node, pos int, k func(int) bool) bool {
	switch x := n.(type) {
	case *Literal:
		if strings.HasPrefix(m.input[pos:], x.Text) {
			return k(pos + len(x.Text))
		}
		return false

	case *CharClass:
		r, size := utf8.DecodeRuneInString(m.input[pos:])
		if size == 0 {
			return false
		}
		in := false
		for _, rr := range x.Ranges {
			if r >= rr.Lo && r <= rr.Hi {
				in = true
				break
			}
		}
		if in == x.Negated {
			return false
		}
		return k(pos + size)

	case *AnyChar:
		_, size := utf8.DecodeRuneInString(m.input[pos:])
		if size == 0 {
			return false
		}
		return k(pos + size)

	case *Capture:
		return m.match(x.Sub, pos, func(end int) bool {
			mark := m.mark()
			m.record(x, traceEntry{span: Span{Start: pos, End: end}})
			if k(end) {
				return true
			}
			m.undo(mark)
			return false
		})

	case *Group:
		return m.match(x.Sub, pos, k)

	case *Concat:
		var step func(i, p int) bool
		step = func(i, p int) bool {
			if i == len(x.Subs) {
				return k(p)
			}
			return m.match(x.Subs[i], p, func(end int) bool {
				return step(i+1, end)
			})
		}
		return step(0, pos)

	case *Alternate:
		for i, sub := range x.Subs {
			branch := i
			if m.match(sub, pos, func(end int) bool {
				mark := m.mark()
				m.record(x, traceEntry{span: Span{Start: pos, End: end}, branch: branch})
				if k(end) {
					return true
				}
				m.undo(mark)
				return false
			}) {
				return true
			}
		}
		return false

	case *Quantifier:
		var rep func(p, count int) bool
		rep = func(p, count int) bool {
			// Greedy: try one more iteration before settling.
			if x.Max < 0 || count < x.Max {
				if m.match(x.Sub, p, func(end int) bool {
					if end == p {
						// Zero-width iteration; rejecting it keeps the
						// recursion finite and the trace free of empty
						// extents.
						return false
					}
					mark := m.mark()
					m.record(x, traceEntry{span: Span{Start: p, End: end}})
					if rep(end, count+1) {
						return true
					}
					m.undo(mark)
					return false
				}) {
					return true
				}
			}
			if count >= x.Min {
				return k(p)
			}
			// A zero-width sub satisfies the remaining minimum without
			// consuming input. Probe with an always-failing continuation
			// so no journal entries survive.
			zero := false
			m.match(x.Sub, p, func(end int) bool {
				if end == p {
					zero = true
				}
				return false
			})
			if zero {
				return k(p)
			}
			return false
		}
		return rep(pos, 0)

	default:
		return false
	}
}
