package capshape

import "errors"

// ErrPattern reports a malformed pattern tree. It is returned (wrapped)
// by Compile and by the regexp/syntax adapter.
var ErrPattern = errors.New("capshape: malformed pattern")

// ErrTrace reports an inconsistent match trace: the engine violated an
// invariant it is contractually required to uphold, such as alternation
// branch exclusivity. This is a logic bug in the engine/builder pairing,
// not a recoverable user-facing condition.
var ErrTrace = errors.New("capshape: inconsistent match trace")
