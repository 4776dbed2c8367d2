package capshape

import (
	"errors"
	"testing"
)

func TestResultAccessors(t *testing.T) {
	c := mustCompileRegexp(t, `(?P<word>[a-z]+)([0-9]+)?`)
	r, err := c.FindString("abc123")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}

	if r.Input() != "abc123" {
		t.Errorf("Input = %q", r.Input())
	}
	if r.Text() != "abc123" {
		t.Errorf("Text = %q, want \"abc123\"", r.Text())
	}
	if r.NumGroups() != 2 {
		t.Errorf("NumGroups = %d, want 2", r.NumGroups())
	}

	if _, ok := r.Group(-1); ok {
		t.Error("Group(-1) should be out of range")
	}
	if _, ok := r.Group(3); ok {
		t.Error("Group(3) should be out of range")
	}

	if text, ok := r.GroupText(1); !ok || text != "abc" {
		t.Errorf("GroupText(1) = %q, %v", text, ok)
	}
	// Group 2 sits under an optional quantifier: structured, not a bare
	// leaf.
	if _, ok := r.GroupText(2); ok {
		t.Error("GroupText(2) should report a structured group")
	}
	v, _ := r.Group(2)
	ov, ok := v.(*OptValue)
	if !ok {
		t.Fatalf("group 2 = %T, want *OptValue", v)
	}
	if lv := ov.Of.(*LeafValue); r.TextOf(lv.Span) != "123" {
		t.Errorf("group 2 = %q, want \"123\"", r.TextOf(lv.Span))
	}

	if _, ok := r.GroupTexts(1); ok {
		t.Error("GroupTexts(1) should report a non-sequence group")
	}
}

func TestSumValueOptionsDefensive(t *testing.T) {
	tests := []struct {
		name string
		sv   *SumValue
	}{
		{"branch out of range", &SumValue{Branch: 3, Arity: 2, Of: &EmptyValue{}}},
		{"negative branch", &SumValue{Branch: -1, Arity: 2, Of: &EmptyValue{}}},
		{"missing value", &SumValue{Branch: 0, Arity: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sv.Options(); !errors.Is(err, ErrTrace) {
				t.Errorf("Options error = %v, want ErrTrace", err)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{&EmptyValue{}, "empty"},
		{&LeafValue{}, "absent"},
		{&LeafValue{Span: Span{Start: 1, End: 3}, Present: true}, "[1:3]"},
		{&OptValue{}, "absent"},
		{&RepeatedValue{}, "[]"},
		{
			&ProductValue{Elems: []Value{
				&LeafValue{Span: Span{Start: 0, End: 1}, Present: true},
				&LeafValue{},
			}},
			"([0:1], absent)",
		},
		{
			&SumValue{Branch: 1, Arity: 3, Of: &LeafValue{Span: Span{Start: 2, End: 4}, Present: true}},
			"branch 1/3: [2:4]",
		},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
