package capshape

// Result is the caller-facing outcome of one successful match. It owns
// its value trees; the compiled pattern is borrowed read-only, so results
// from concurrent matches are independent.
type Result struct {
	input string
	span  Span
	value Value
	flat  []Value // 0 = whole match, then backreference order
	c     *Compiled
}

// Input returns the matched input.
func (r *Result) Input() string { return r.input }

// Span returns the whole-match span.
func (r *Result) Span() Span { return r.span }

// Text returns the whole-match text.
func (r *Result) Text() string { return r.input[r.span.Start:r.span.End] }

// TextOf returns the input text a span covers.
func (r *Result) TextOf(s Span) string { return r.input[s.Start:s.End] }

// Value returns the capture value tree conforming to the pattern's Shape.
func (r *Result) Value() Value { return r.value }

// NumGroups returns the number of capturing groups, excluding the whole
// match.
func (r *Result) NumGroups() int { return len(r.flat) - 1 }

// Group returns the flattened value of group k in backreference order;
// k 0 is the whole match. A group under Repeated or Opt ancestors yields
// the corresponding structured value rather than a bare leaf. ok is false
// when k is out of range.
func (r *Result) Group(k int) (Value, bool) {
	if k < 0 || k >= len(r.flat) {
		return nil, false
	}
	return r.flat[k], true
}

// Named returns the flattened value of the named group. ok is false when
// the pattern has no group with that name.
func (r *Result) Named(name string) (Value, bool) {
	k, ok := r.c.GroupIndex(name)
	if !ok {
		return nil, false
	}
	return r.Group(k)
}

// GroupText returns the text of group k when its flattened value is a
// plain present leaf. ok is false for out-of-range, absent, or
// structured (Repeated/Opt wrapped) groups.
func (r *Result) GroupText(k int) (string, bool) {
	v, ok := r.Group(k)
	if !ok {
		return "", false
	}
	lv, ok := v.(*LeafValue)
	if !ok || !lv.Present {
		return "", false
	}
	return r.TextOf(lv.Span), true
}

// GroupTexts returns the per-iteration texts of group k when its
// flattened value is a sequence of leaves, one per iteration of the
// enclosing quantifier. Absent iterations contribute an empty string.
func (r *Result) GroupTexts(k int) ([]string, bool) {
	v, ok := r.Group(k)
	if !ok {
		return nil, false
	}
	rv, ok := v.(*RepeatedValue)
	if !ok {
		return nil, false
	}
	texts := make([]string, len(rv.Items))
	for i, item := range rv.Items {
		if lv, ok := item.(*LeafValue); ok && lv.Present {
			texts[i] = r.TextOf(lv.Span)
		}
	}
	return texts, true
}
