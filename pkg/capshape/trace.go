package capshape

import "fmt"

// Span is a half-open byte range over the input.
type Span struct {
	Start, End int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// contains reports whether inner lies within s.
func (s Span) contains(inner Span) bool {
	return s.Start <= inner.Start && inner.End <= s.End
}

func (s Span) String() string { return fmt.Sprintf("[%d:%d]", s.Start, s.End) }

// traceEntry is one recorded event for a pattern node. Branch is only
// meaningful for alternation entries; seq is the entry's position in the
// trace's recording order.
type traceEntry struct {
	span   Span
	branch int
	seq    int
}

// Trace is the record of a single successful match, produced by a
// matching engine and consumed by the capture value builder. It is keyed
// by node identity and holds, in execution order:
//
//   - per Capture node, the span consumed each time the group matched;
//   - per Quantifier node, the extent consumed by each executed iteration;
//   - per Alternate node, the selected branch and extent per execution.
//
// An absent key means the node never executed during the match (for
// example an unmatched optional branch).
//
// Recording order matters: an iteration or branch entry must be added
// after the entries recorded inside it, so that it closes the recording
// interval of its contents. Spans alone cannot attribute a zero-length
// capture sitting on the boundary between two iterations; the recording
// order can.
type Trace struct {
	entries map[Node][]traceEntry
	seq     int
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{entries: make(map[Node][]traceEntry)}
}

func (t *Trace) add(n Node, e traceEntry) {
	e.seq = t.seq
	t.seq++
	t.entries[n] = append(t.entries[n], e)
}

// horizon returns a recording bound past every entry in the trace.
func (t *Trace) horizon() int { return t.seq }

// AddCapture records that the capturing group consumed span. Calls must
// be made in execution order.
func (t *Trace) AddCapture(n *Capture, span Span) {
	t.add(n, traceEntry{span: span})
}

// AddIteration records one executed iteration of the quantifier and the
// extent it consumed. It must be called when the iteration completes,
// after the entries recorded inside it.
func (t *Trace) AddIteration(n *Quantifier, extent Span) {
	t.add(n, traceEntry{span: extent})
}

// AddBranch records one execution of the alternation: the branch index
// that matched and the extent it consumed. It must be called after the
// entries recorded inside the selected branch.
func (t *Trace) AddBranch(n *Alternate, branch int, extent Span) {
	t.add(n, traceEntry{span: extent, branch: branch})
}

// CaptureSpans returns the ordered spans recorded for a capturing group,
// nil if it never matched.
func (t *Trace) CaptureSpans(n *Capture) []Span {
	entries := t.entries[n]
	if len(entries) == 0 {
		return nil
	}
	spans := make([]Span, len(entries))
	for i, e := range entries {
		spans[i] = e.span
	}
	return spans
}

// window scopes a builder walk to one execution of a composite node: its
// extent span plus the recording bound that closed it. An entry belongs
// to the window when its span lies within the extent and it was recorded
// before the bound; the bound is what keeps a zero-length span at the
// end boundary of one iteration from being claimed by it when the next
// iteration produced it.
type window struct {
	span  Span
	limit int
}

// cursors tracks, per node, how many trace entries a builder walk has
// consumed so far. Separate walks over the same trace use separate
// cursor sets.
type cursors map[Node]int

// take consumes the node's next entry if it lies within w.
func (cur cursors) take(t *Trace, n Node, w window) (traceEntry, bool) {
	entries := t.entries[n]
	i := cur[n]
	if i >= len(entries) || !w.span.contains(entries[i].span) || entries[i].seq >= w.limit {
		return traceEntry{}, false
	}
	cur[n] = i + 1
	return entries[i], true
}

// peek reports whether the node's next unconsumed entry lies within w
// without consuming it.
func (cur cursors) peek(t *Trace, n Node, w window) bool {
	entries := t.entries[n]
	i := cur[n]
	return i < len(entries) && w.span.contains(entries[i].span) && entries[i].seq < w.limit
}
