// Package capshape derives typed capture shapes from pattern trees and
// builds capture value trees from match traces.
//
// A pattern tree (Node) is compiled once into a Compiled pattern carrying
// its inferred Shape and backreference numbering. At match time an engine
// trace is turned into a Value tree conforming exactly to the shape, plus
// the conventional flat group projection.
package capshape

// Node is a pattern tree node. Trees are built once and are immutable
// after Compile; the compiled pattern owns them exclusively.
type Node interface {
	node()
}

// Literal matches the exact text. Empty text matches the empty string.
type Literal struct {
	Text string
}

// RuneRange is an inclusive range of runes in a character class.
type RuneRange struct {
	Lo, Hi rune
}

// CharClass matches a single rune inside (or, if Negated, outside) the
// given ranges.
type CharClass struct {
	Ranges  []RuneRange
	Negated bool
}

// AnyChar matches any single rune.
type AnyChar struct{}

// Capture is a capturing group. Name is empty for unnamed groups.
type Capture struct {
	Name string
	Sub  Node
}

// Group is a non-capturing group; it has no effect on the capture shape.
type Group struct {
	Sub Node
}

// Concat matches its children in sequence.
type Concat struct {
	Subs []Node
}

// Alternate matches exactly one of its children, preferring earlier ones.
type Alternate struct {
	Subs []Node
}

// Quantifier repeats Sub between Min and Max times. Max of -1 means
// unbounded. Min 0 with Max 1 is the optional form.
type Quantifier struct {
	Sub Node
	Min int
	Max int
}

func (*Literal) node()    {}
func (*CharClass) node()  {}
func (*AnyChar) node()    {}
func (*Capture) node()    {}
func (*Group) node()      {}
func (*Concat) node()     {}
func (*Alternate) node()  {}
func (*Quantifier) node() {}

// Lit returns a literal node matching text exactly.
func Lit(text string) Node { return &Literal{Text: text} }

// Class returns a character class node over the given inclusive ranges.
func Class(negated bool, ranges ...RuneRange) Node {
	return &CharClass{Ranges: ranges, Negated: negated}
}

// Any returns a node matching any single rune.
func Any() Node { return &AnyChar{} }

// Cap wraps sub in an unnamed capturing group.
func Cap(sub Node) Node { return &Capture{Sub: sub} }

// Named wraps sub in a capturing group with the given name.
func Named(name string, sub Node) Node { return &Capture{Name: name, Sub: sub} }

// NonCap wraps sub in a non-capturing group.
func NonCap(sub Node) Node { return &Group{Sub: sub} }

// Seq concatenates the given nodes.
func Seq(subs ...Node) Node { return &Concat{Subs: subs} }

// Choice alternates between the given nodes in order.
func Choice(subs ...Node) Node { return &Alternate{Subs: subs} }

// Rep repeats sub between min and max times; max of -1 means unbounded.
func Rep(sub Node, min, max int) Node { return &Quantifier{Sub: sub, Min: min, Max: max} }

// Star repeats sub zero or more times.
func Star(sub Node) Node { return Rep(sub, 0, -1) }

// Plus repeats sub one or more times.
func Plus(sub Node) Node { return Rep(sub, 1, -1) }

// Quest makes sub optional.
func Quest(sub Node) Node { return Rep(sub, 0, 1) }
