package capshape

import "fmt"

// Compiled is a pattern tree together with its inferred shape, numbering
// and lookup tables. It is immutable after Compile and safe for
// concurrent use; every match builds its own independent Result.
type Compiled struct {
	root  Node
	shape Shape

	// groups lists the capturing nodes in backreference order, so
	// groups[k-1] carries index k; names maps capture names to indices.
	groups []*Capture
	names  map[string]int

	// shapes memoizes the inferred shape per subtree; chains records
	// each capture's quantifier ancestors, outermost first.
	shapes map[Node]Shape
	chains map[*Capture][]*Quantifier
}

// Compile validates a pattern tree and computes its capture shape,
// backreference numbering and name table.
func Compile(root Node) (*Compiled, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil pattern", ErrPattern)
	}
	if err := validate(root); err != nil {
		return nil, err
	}

	c := &Compiled{
		root:   root,
		groups: Number(root),
		names:  make(map[string]int),
		shapes: make(map[Node]Shape),
		chains: make(map[*Capture][]*Quantifier),
	}
	for i, g := range c.groups {
		if g.Name == "" {
			continue
		}
		if _, dup := c.names[g.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate capture name %q", ErrPattern, g.Name)
		}
		c.names[g.Name] = i + 1
	}

	c.memoShapes(root)
	c.shape = c.shapes[root]
	c.memoChains(root, nil)
	return c, nil
}

// Root returns the pattern tree.
func (c *Compiled) Root() Node { return c.root }

// Shape returns the inferred capture shape of the whole pattern.
func (c *Compiled) Shape() Shape { return c.shape }

// NumGroups returns the number of capturing groups, excluding the whole
// match.
func (c *Compiled) NumGroups() int { return len(c.groups) }

// Groups returns the capturing nodes in backreference order.
func (c *Compiled) Groups() []*Capture { return c.groups }

// GroupName returns the name of group k (1-based), or "" if the group is
// unnamed or k is out of range.
func (c *Compiled) GroupName(k int) string {
	if k < 1 || k > len(c.groups) {
		return ""
	}
	return c.groups[k-1].Name
}

// GroupIndex returns the backreference index of the named group.
func (c *Compiled) GroupIndex(name string) (int, bool) {
	k, ok := c.names[name]
	return k, ok
}

// Wrapper is one Repeated or Opt level wrapping a group's flattened
// value, outermost first.
type Wrapper int

// Wrapper kinds.
const (
	WrapRepeated Wrapper = iota
	WrapOpt
)

// GroupWrappers returns the Repeated/Opt levels wrapping group k's
// flattened value, outermost first. A group with no quantifier ancestors
// returns nil: its flattened value is a plain leaf.
func (c *Compiled) GroupWrappers(k int) []Wrapper {
	if k < 1 || k > len(c.groups) {
		return nil
	}
	chain := c.chains[c.groups[k-1]]
	if len(chain) == 0 {
		return nil
	}
	wrappers := make([]Wrapper, 0, len(chain))
	for _, q := range chain {
		if _, opt := c.shapes[q].(*Opt); opt {
			wrappers = append(wrappers, WrapOpt)
		} else {
			wrappers = append(wrappers, WrapRepeated)
		}
	}
	return wrappers
}

// shapeOf returns the memoized shape of a subtree.
func (c *Compiled) shapeOf(n Node) Shape { return c.shapes[n] }

func (c *Compiled) memoShapes(n Node) Shape {
	var s Shape
	switch x := n.(type) {
	case *Literal, *CharClass, *AnyChar:
		s = &Empty{}
	case *Capture:
		c.memoShapes(x.Sub)
		s = &Leaf{Name: x.Name}
	case *Group:
		s = c.memoShapes(x.Sub)
	case *Concat:
		var elems []Slot
		for _, sub := range x.Subs {
			cs := c.memoShapes(sub)
			if isEmptyShape(cs) {
				continue
			}
			elems = append(elems, Slot{Shape: cs, Name: leafName(cs)})
		}
		switch len(elems) {
		case 0:
			s = &Empty{}
		case 1:
			s = elems[0].Shape
		default:
			s = &Product{Elems: elems}
		}
	case *Alternate:
		branches := make([]Slot, len(x.Subs))
		capturing := false
		for i, sub := range x.Subs {
			cs := c.memoShapes(sub)
			if !isEmptyShape(cs) {
				capturing = true
			}
			branches[i] = Slot{Shape: cs, Name: leafName(cs)}
		}
		if capturing {
			s = &Sum{Branches: branches}
		} else {
			s = &Empty{}
		}
	case *Quantifier:
		cs := c.memoShapes(x.Sub)
		switch {
		case isEmptyShape(cs):
			s = &Empty{}
		case x.Min == 0 && x.Max == 1:
			s = &Opt{Inner: cs}
		default:
			s = &Repeated{Inner: cs}
		}
	default:
		s = &Empty{}
	}
	c.shapes[n] = s
	return s
}

// memoChains records, per capturing node, its quantifier ancestors from
// the root inward. The flat group projection structures a group's spans
// by exactly this chain.
func (c *Compiled) memoChains(n Node, chain []*Quantifier) {
	switch x := n.(type) {
	case *Capture:
		c.chains[x] = append([]*Quantifier(nil), chain...)
		c.memoChains(x.Sub, chain)
	case *Group:
		c.memoChains(x.Sub, chain)
	case *Concat:
		for _, sub := range x.Subs {
			c.memoChains(sub, chain)
		}
	case *Alternate:
		for _, sub := range x.Subs {
			c.memoChains(sub, chain)
		}
	case *Quantifier:
		c.memoChains(x.Sub, append(chain, x))
	}
}

// validate rejects structurally broken trees: nil nodes, empty composite
// nodes, bad quantifier bounds, and subtree sharing (node identity keys
// the match trace, so each node must occur once).
func validate(root Node) error {
	seen := make(map[Node]bool)
	var walk func(Node) error
	walk = func(n Node) error {
		if n == nil {
			return fmt.Errorf("%w: nil node", ErrPattern)
		}
		if seen[n] {
			return fmt.Errorf("%w: node %T appears more than once in the tree", ErrPattern, n)
		}
		seen[n] = true
		switch x := n.(type) {
		case *CharClass:
			for _, r := range x.Ranges {
				if r.Lo > r.Hi {
					return fmt.Errorf("%w: inverted rune range %q-%q", ErrPattern, r.Lo, r.Hi)
				}
			}
		case *Capture:
			return walk(x.Sub)
		case *Group:
			return walk(x.Sub)
		case *Concat:
			for _, sub := range x.Subs {
				if err := walk(sub); err != nil {
					return err
				}
			}
		case *Alternate:
			if len(x.Subs) == 0 {
				return fmt.Errorf("%w: alternation with no branches", ErrPattern)
			}
			for _, sub := range x.Subs {
				if err := walk(sub); err != nil {
					return err
				}
			}
		case *Quantifier:
			if x.Min < 0 || (x.Max != -1 && x.Max < x.Min) {
				return fmt.Errorf("%w: quantifier bounds {%d,%d}", ErrPattern, x.Min, x.Max)
			}
			return walk(x.Sub)
		}
		return nil
	}
	return walk(root)
}
