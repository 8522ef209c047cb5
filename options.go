package weave

import "github.com/weave-ui/weave/internal"

// RuntimeOption configures a Runtime at construction time.
type RuntimeOption func(*internal.Runtime)

// WithDebugName labels a runtime, for programs that run more than one at
// once. Profile does not report the label.
func WithDebugName(name string) RuntimeOption {
	return func(rt *internal.Runtime) { rt.SetDebugName(name) }
}

// WithPanicHandler installs a recovery hook for panics raised from inside
// an effect's own body. It does not catch the engine's own assertion
// panics (type mismatch, alias violation, disposed use, deny-new scope):
// those stay fatal regardless.
func WithPanicHandler(fn func(any)) RuntimeOption {
	return func(rt *internal.Runtime) { rt.SetPanicHandler(fn) }
}
