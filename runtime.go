package weave

import "github.com/weave-ui/weave/internal"

// Runtime is an explicit, independently-disposable reactive graph. Most
// programs never need one: reactive primitives created without mentioning
// a Runtime resolve against a default one, created lazily per goroutine.
// Use NewRuntime when a block of code (a test, typically) needs its own
// graph that can be torn down as a unit without touching whatever is
// current elsewhere.
type Runtime struct {
	rt *internal.Runtime
}

// NewRuntime pushes a new runtime onto the calling goroutine's stack and
// makes it current.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := internal.CreateRuntime()
	for _, opt := range opts {
		opt(rt)
	}
	return &Runtime{rt: rt}
}

// Leave pops r off the calling goroutine's stack, restoring whatever was
// current before it.
func (r *Runtime) Leave() {
	r.rt.Leave()
}

// WithNewRuntime creates a runtime, runs f with it current, and leaves it
// afterwards even if f panics.
func WithNewRuntime(f func(*Runtime), opts ...RuntimeOption) {
	r := NewRuntime(opts...)
	defer r.Leave()
	f(r)
}

// Profile snapshots the current runtime's graph shape: node counts by
// kind, edge counts by direction, and the current pending-effect count.
func Profile() internal.Profile {
	return internal.CurrentRuntime().Snapshot()
}

// Untrack runs f with dependency tracking suppressed: reads performed
// inside do not register as a dependency of whatever node is currently
// recomputing. Node creation is still allowed inside f; pair with a
// deny-new Scope if that needs forbidding too.
func Untrack(f func()) {
	internal.CurrentRuntime().Untrack(f)
}

// UntrackValue is Untrack for a function that also returns a value.
func UntrackValue[T any](f func() T) T {
	var out T
	internal.CurrentRuntime().Untrack(func() { out = f() })
	return out
}
