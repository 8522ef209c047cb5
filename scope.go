package weave

import "github.com/weave-ui/weave/internal"

// Scope is a lifetime region: every reactive node created while it is the
// current scope is recorded on it, and disposing the Scope disposes all
// of them, recursively through whatever child scopes and owned-by nodes
// they in turn collected during their own evaluations.
type Scope struct {
	rt *internal.Runtime
	s  *internal.Scope
}

// NewScope opens a new scope as a child of the current one. Nothing runs
// under it until Run is called.
func NewScope() *Scope {
	rt := internal.CurrentRuntime()
	return &Scope{rt: rt, s: rt.NewChildScope(false)}
}

// NewDenyNewScope is NewScope, except any attempt to create a reactive
// node while it is current panics. It exists for tests and assertions
// that want to prove a block allocates no reactive state.
func NewDenyNewScope() *Scope {
	rt := internal.CurrentRuntime()
	return &Scope{rt: rt, s: rt.NewChildScope(true)}
}

// Run runs f with s current, restoring whatever scope was current
// beforehand even if f panics.
func (s *Scope) Run(f func()) {
	s.rt.RunInScope(s.s, f)
}

// Dispose tears down every node s (and its descendant scopes) owns.
func (s *Scope) Dispose() {
	s.rt.DisposeScope(s.s)
}
