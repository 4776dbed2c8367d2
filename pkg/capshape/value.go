package capshape

import (
	"fmt"
	"strings"
)

// Value is a runtime capture value paralleling a Shape. One Value tree is
// built per match; it is owned by the Result and never shared.
type Value interface {
	value()
	// String renders the value with its spans, for diagnostics.
	String() string
}

// EmptyValue is the value of an Empty shape.
type EmptyValue struct{}

// LeafValue is the value of a Leaf shape: the span the group consumed,
// or Present false if the group never matched.
type LeafValue struct {
	Span    Span
	Present bool
}

// ProductValue holds one value per Product element, in order.
type ProductValue struct {
	Elems []Value
}

// SumValue holds the selected alternation branch and its value. Arity is
// the total branch count, so the all-optional projection can be derived.
type SumValue struct {
	Branch int
	Arity  int
	Of     Value
}

// RepeatedValue holds one inner value per executed iteration, in
// iteration order. Zero iterations yield an empty Items.
type RepeatedValue struct {
	Items []Value
}

// OptValue wraps the inner value when the optional subpattern executed;
// Of is nil when it did not.
type OptValue struct {
	Of Value
}

func (*EmptyValue) value()    {}
func (*LeafValue) value()     {}
func (*ProductValue) value()  {}
func (*SumValue) value()      {}
func (*RepeatedValue) value() {}
func (*OptValue) value()      {}

func (*EmptyValue) String() string { return "empty" }

func (v *LeafValue) String() string {
	if !v.Present {
		return "absent"
	}
	return v.Span.String()
}

func (v *ProductValue) String() string { return renderValues("(", v.Elems, ")") }

func (v *SumValue) String() string {
	return fmt.Sprintf("branch %d/%d: %s", v.Branch, v.Arity, v.Of)
}

func (v *RepeatedValue) String() string { return renderValues("[", v.Items, "]") }

func (v *OptValue) String() string {
	if v.Of == nil {
		return "absent"
	}
	return v.Of.String()
}

// Options is the all-optional projection of an alternation value: one
// entry per branch, with exactly the selected branch populated. The
// exclusivity invariant is established by the builder and re-asserted
// here; a violation is an internal error.
func (v *SumValue) Options() ([]Value, error) {
	if v.Branch < 0 || v.Branch >= v.Arity || v.Of == nil {
		return nil, fmt.Errorf("%w: alternation value selects branch %d of %d", ErrTrace, v.Branch, v.Arity)
	}
	opts := make([]Value, v.Arity)
	opts[v.Branch] = v.Of
	return opts, nil
}

func renderValues(open string, vals []Value, closing string) string {
	var b strings.Builder
	b.WriteString(open)
	for i, v := range vals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteString(closing)
	return b.String()
}
