package capshape

// Number lists the capturing nodes of a pattern tree in backreference
// order: pre-order on the opening delimiter, so a capture nested inside
// another capture is numbered immediately after its enclosing capture and
// before any later siblings. Index 0 denotes the whole match and is not
// produced here; the node at position i has backreference index i+1.
//
// The numbering is independent of how the inferred shape nests and is
// kept as a flat list alongside the shape.
func Number(n Node) []*Capture {
	var groups []*Capture
	var walk func(Node)
	walk = func(n Node) {
		switch x := n.(type) {
		case *Capture:
			groups = append(groups, x)
			walk(x.Sub)
		case *Group:
			walk(x.Sub)
		case *Concat:
			for _, sub := range x.Subs {
				walk(sub)
			}
		case *Alternate:
			for _, sub := range x.Subs {
				walk(sub)
			}
		case *Quantifier:
			walk(x.Sub)
		}
	}
	walk(n)
	return groups
}
