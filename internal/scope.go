package internal

import "github.com/weave-ui/weave/internal/diag"

// Scope is the lifetime unit nodes are disposed through. Every node created
// while a Scope is current is recorded on it; disposing the Scope disposes
// every node it collected, recursively through child scopes. This keeps the
// teacher's owner-tree shape (AnatoleLucet-sig's internal/owner.go) but
// trims its cleanup/catcher/context extras, none of which SPEC_FULL.md's
// Scope calls for.
type Scope struct {
	parent   *Scope
	children []*Scope

	nodes []NodeID

	// denyNew marks a deny-new scope (NewChildScope/PushScope with
	// denyNew set, or any descendant of one) where new reactive node
	// creation is forbidden; attempting to create one panics with
	// diag.DenyNewScope. Untrack does not set it.
	denyNew bool

	disposed bool

	openedAt diag.Info
}

func newScope(parent *Scope, denyNew bool) *Scope {
	s := &Scope{parent: parent, denyNew: denyNew, openedAt: diag.Capture(1)}
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

func (s *Scope) addNode(id NodeID) {
	s.nodes = append(s.nodes, id)
}

// disposeInto collects every NodeID owned by this scope and its descendants,
// in child-first order, into out. The runtime is responsible for actually
// tearing the nodes down; Scope only knows about membership.
func (s *Scope) disposeInto(out *[]NodeID) {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, c := range s.children {
		c.disposeInto(out)
	}
	s.children = nil
	*out = append(*out, s.nodes...)
	s.nodes = nil
}
