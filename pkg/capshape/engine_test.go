package capshape

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustCompileRegexp(t *testing.T, pattern string) *Compiled {
	t.Helper()
	c, err := CompileRegexp(pattern)
	if err != nil {
		t.Fatalf("CompileRegexp(%q) failed: %v", pattern, err)
	}
	return c
}

func TestFindStringRepetitionAccumulates(t *testing.T) {
	// Every iteration's capture is kept, not just the last.
	c := mustCompileRegexp(t, `(?:([0-9a-f]+)-?)+`)
	r, err := c.FindString("1234-5678-9abc-def0")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Text() != "1234-5678-9abc-def0" {
		t.Errorf("match = %q, want full input", r.Text())
	}
	texts, ok := r.GroupTexts(1)
	if !ok {
		t.Fatal("group 1 is not a sequence")
	}
	want := []string{"1234", "5678", "9abc", "def0"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("iteration captures mismatch (-want +got):\n%s", diff)
	}
}

func TestFindStringEmptyCapturePerIteration(t *testing.T) {
	// Each iteration captures the empty string right where the previous
	// iteration ended; every iteration still gets its own value.
	c := mustCompileRegexp(t, `(?:(a*)x)+`)
	r, err := c.FindString("xx")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}
	rv, ok := r.Value().(*RepeatedValue)
	if !ok {
		t.Fatalf("value = %T, want *RepeatedValue", r.Value())
	}
	if len(rv.Items) != 2 {
		t.Fatalf("got %d iterations, want 2", len(rv.Items))
	}
	texts, ok := r.GroupTexts(1)
	if !ok {
		t.Fatal("group 1 is not a sequence")
	}
	if diff := cmp.Diff([]string{"", ""}, texts); diff != "" {
		t.Errorf("iteration captures mismatch (-want +got):\n%s", diff)
	}
}

func TestFindStringAlternationExclusive(t *testing.T) {
	c := mustCompileRegexp(t, `(aa)|(bb)|(cc)`)
	r, err := c.FindString("xxbbyy")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}

	sv, ok := r.Value().(*SumValue)
	if !ok {
		t.Fatalf("value = %T, want *SumValue", r.Value())
	}
	if sv.Branch != 1 {
		t.Errorf("selected branch = %d, want 1", sv.Branch)
	}
	opts, err := sv.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	populated := 0
	for _, o := range opts {
		if o != nil {
			populated++
		}
	}
	if populated != 1 || opts[1] == nil {
		t.Errorf("options = %v, want exactly branch 1 populated", opts)
	}

	// Flat projection: groups 1 and 3 absent, group 2 matched.
	for _, k := range []int{1, 3} {
		if v, _ := r.Group(k); v.(*LeafValue).Present {
			t.Errorf("group %d present, want absent", k)
		}
	}
	if text, ok := r.GroupText(2); !ok || text != "bb" {
		t.Errorf("GroupText(2) = %q, %v; want \"bb\", true", text, ok)
	}
}

func TestFindStringOptional(t *testing.T) {
	c := mustCompileRegexp(t, `x(a)?`)

	r, err := c.FindString("xyz")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}
	ov, ok := r.Value().(*OptValue)
	if !ok {
		t.Fatalf("value = %T, want *OptValue", r.Value())
	}
	if ov.Of != nil {
		t.Errorf("optional = %s, want absent", ov)
	}

	r, err = c.FindString("xab")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	ov = r.Value().(*OptValue)
	lv, ok := ov.Of.(*LeafValue)
	if !ok || !lv.Present {
		t.Fatalf("optional = %s, want present leaf", ov)
	}
	if r.TextOf(lv.Span) != "a" {
		t.Errorf("captured %q, want \"a\"", r.TextOf(lv.Span))
	}
}

func TestFindStringNestedCaptures(t *testing.T) {
	// ((a)(b)): the shape collapses to the outer leaf; the inner groups
	// surface through backreference numbering.
	c := mustCompileRegexp(t, `((a)(b))`)
	r, err := c.FindString("zab")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}
	if _, ok := r.Value().(*LeafValue); !ok {
		t.Fatalf("value = %T, want *LeafValue", r.Value())
	}
	wantTexts := map[int]string{1: "ab", 2: "a", 3: "b"}
	for k, want := range wantTexts {
		if text, ok := r.GroupText(k); !ok || text != want {
			t.Errorf("GroupText(%d) = %q, %v; want %q", k, text, ok, want)
		}
	}
}

func TestFindStringRoundTrip(t *testing.T) {
	// Position 0 always reproduces the whole-match span; positions 1..N
	// follow backreference numbering.
	c := mustCompileRegexp(t, `(\w+)@(\w+)\.(\w+)`)
	input := "contact: user@example.com today"
	r, err := c.FindString(input)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}

	whole, ok := r.Group(0)
	if !ok {
		t.Fatal("group 0 missing")
	}
	if lv := whole.(*LeafValue); lv.Span != r.Span() {
		t.Errorf("group 0 span %s differs from match span %s", lv.Span, r.Span())
	}

	// Cross-check flat spans against the standard library.
	std := regexp.MustCompile(`(\w+)@(\w+)\.(\w+)`).FindStringSubmatchIndex(input)
	if std == nil {
		t.Fatal("stdlib found no match")
	}
	for k := 0; k <= r.NumGroups(); k++ {
		v, _ := r.Group(k)
		lv := v.(*LeafValue)
		if lv.Span.Start != std[2*k] || lv.Span.End != std[2*k+1] {
			t.Errorf("group %d span %s, stdlib [%d:%d]", k, lv.Span, std[2*k], std[2*k+1])
		}
	}
}

func TestFindStringNamedGroups(t *testing.T) {
	c := mustCompileRegexp(t, `(?P<user>\w+)@(?P<host>\w+)`)
	r, err := c.FindString("user@example")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}
	v, ok := r.Named("user")
	if !ok {
		t.Fatal("named group user missing")
	}
	if got := r.TextOf(v.(*LeafValue).Span); got != "user" {
		t.Errorf("user = %q, want \"user\"", got)
	}
	if _, ok := r.Named("missing"); ok {
		t.Error("expected false for unknown name")
	}
}

func TestFindStringOptionalInsideRepetition(t *testing.T) {
	c := mustCompileRegexp(t, `(?:x(y)?)+`)
	r, err := c.FindString("xxy")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}

	v, _ := r.Group(1)
	rv, ok := v.(*RepeatedValue)
	if !ok {
		t.Fatalf("group 1 = %T, want *RepeatedValue", v)
	}
	if len(rv.Items) != 2 {
		t.Fatalf("got %d iterations, want 2", len(rv.Items))
	}
	first := rv.Items[0].(*OptValue)
	if first.Of != nil {
		t.Errorf("iteration 1 = %s, want absent", first)
	}
	second := rv.Items[1].(*OptValue)
	lv, ok := second.Of.(*LeafValue)
	if !ok || !lv.Present || r.TextOf(lv.Span) != "y" {
		t.Errorf("iteration 2 = %s, want present \"y\"", second)
	}
}

func TestFindStringNoMatch(t *testing.T) {
	c := mustCompileRegexp(t, `(ab)+`)
	r, err := c.FindString("xyz")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r != nil {
		t.Errorf("expected no match, got %q", r.Text())
	}
}

func TestMatchString(t *testing.T) {
	c := mustCompileRegexp(t, `a(b|c)d`)
	tests := []struct {
		input string
		want  bool
	}{
		{"abd", true},
		{"acd", true},
		{"xxacdyy", true},
		{"ad", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := c.MatchString(tt.input); got != tt.want {
			t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFindStringLeftmost(t *testing.T) {
	c := mustCompileRegexp(t, `(b+)`)
	r, err := c.FindString("aabbcbbb")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}
	if r.Span() != (Span{Start: 2, End: 4}) {
		t.Errorf("match span = %s, want [2:4]", r.Span())
	}
}

func TestFindStringUnicode(t *testing.T) {
	c := mustCompileRegexp(t, `(ä+)`)
	r, err := c.FindString("xääy")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if r == nil {
		t.Fatal("expected a match")
	}
	if text, _ := r.GroupText(1); text != "ää" {
		t.Errorf("group 1 = %q, want \"ää\"", text)
	}
}
