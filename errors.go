package weave

import "github.com/weave-ui/weave/internal/diag"

// Error is the type every panic raised by misuse of a reactive primitive
// carries, and the type notify returns a cycle as instead of panicking.
type Error = diag.Error

// IsCycleError reports whether err is the one error category the engine
// returns rather than panics: a notify that would close a reactivity
// cycle.
func IsCycleError(err error) bool {
	de, ok := err.(*diag.Error)
	return ok && de.Category == diag.Cycle
}
