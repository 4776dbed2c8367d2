package capshape

import (
	"fmt"
	"strings"
)

// Shape describes the structure a successful match produces. Shapes are
// computed once per compiled pattern and are immutable.
type Shape interface {
	shape()
	// String renders the shape in a compact tree notation.
	String() string
}

// Empty is the shape of a pattern with no captures beneath it.
type Empty struct{}

// Leaf is the shape of one capturing group: a single matched span.
// A capturing group always yields a flat span for the group itself;
// captures nested inside it are independent sibling slots in the
// numbering, not sub-shapes of this leaf.
type Leaf struct {
	Name string
}

// Slot is one element of a Product or one branch of a Sum. Name is set
// when the element's shape is a named leaf.
type Slot struct {
	Shape Shape
	Name  string
}

// Product is the shape of a concatenation with two or more
// capture-bearing children, in source order.
type Product struct {
	Elems []Slot
}

// Sum is the shape of an alternation with at least one capture-bearing
// branch. Every branch contributes a slot, capture-free branches as
// Empty slots, in source order.
type Sum struct {
	Branches []Slot
}

// Repeated is the shape of a quantified subpattern that can execute more
// than once: an ordered sequence of Inner occurrences, one per iteration.
type Repeated struct {
	Inner Shape
}

// Opt is the shape of an optional subpattern: a presence wrapper around
// one Inner occurrence.
type Opt struct {
	Inner Shape
}

func (*Empty) shape()    {}
func (*Leaf) shape()     {}
func (*Product) shape()  {}
func (*Sum) shape()      {}
func (*Repeated) shape() {}
func (*Opt) shape()      {}

func (*Empty) String() string { return "Empty" }

func (s *Leaf) String() string {
	if s.Name == "" {
		return "Leaf"
	}
	return fmt.Sprintf("Leaf(%s)", s.Name)
}

func (s *Product) String() string { return renderSlots("Product", s.Elems) }

func (s *Sum) String() string { return renderSlots("Sum", s.Branches) }

func (s *Repeated) String() string { return fmt.Sprintf("Repeated[%s]", s.Inner) }

func (s *Opt) String() string { return fmt.Sprintf("Opt[%s]", s.Inner) }

func renderSlots(kind string, slots []Slot) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte('[')
	for i, sl := range slots {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(sl.Shape.String())
	}
	b.WriteByte(']')
	return b.String()
}

// Infer computes the capture shape of a pattern tree. It is pure and
// deterministic: the same tree always infers a structurally equal shape.
func Infer(n Node) Shape {
	switch x := n.(type) {
	case *Literal, *CharClass, *AnyChar:
		return &Empty{}
	case *Capture:
		// The child's own shape is discarded: a capturing group yields
		// the span it consumed, and nested captures surface as siblings
		// through the numbering pass.
		return &Leaf{Name: x.Name}
	case *Group:
		return Infer(x.Sub)
	case *Concat:
		var elems []Slot
		for _, sub := range x.Subs {
			s := Infer(sub)
			if isEmptyShape(s) {
				continue
			}
			elems = append(elems, Slot{Shape: s, Name: leafName(s)})
		}
		switch len(elems) {
		case 0:
			return &Empty{}
		case 1:
			return elems[0].Shape
		default:
			return &Product{Elems: elems}
		}
	case *Alternate:
		branches := make([]Slot, len(x.Subs))
		capturing := false
		for i, sub := range x.Subs {
			s := Infer(sub)
			if !isEmptyShape(s) {
				capturing = true
			}
			branches[i] = Slot{Shape: s, Name: leafName(s)}
		}
		if !capturing {
			return &Empty{}
		}
		return &Sum{Branches: branches}
	case *Quantifier:
		s := Infer(x.Sub)
		if isEmptyShape(s) {
			return &Empty{}
		}
		if x.Min == 0 && x.Max == 1 {
			return &Opt{Inner: s}
		}
		return &Repeated{Inner: s}
	default:
		return &Empty{}
	}
}

func isEmptyShape(s Shape) bool {
	_, ok := s.(*Empty)
	return ok
}

func leafName(s Shape) string {
	if l, ok := s.(*Leaf); ok {
		return l.Name
	}
	return ""
}
