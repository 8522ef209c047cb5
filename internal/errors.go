package internal

import "github.com/weave-ui/weave/internal/diag"

func notFoundError(id NodeID) *diag.Error {
	return diag.New(diag.Disposed, diag.Info{}, "node %v is not alive in this runtime (disposed or from another runtime)", id)
}

func cycleError(dep NodeID) *diag.Error {
	return diag.New(diag.Cycle, diag.Info{}, "node %v would close a cycle: it is currently recomputing", dep)
}

func typeMismatchError(id NodeID, want, got any, debug diag.Info) *diag.Error {
	return diag.New(diag.TypeMismatch, debug,
		"node %v: expected value of type %T, stored value is of type %T", id, want, got)
}

func aliasViolationError(id NodeID, debug diag.Info) *diag.Error {
	return diag.New(diag.AliasViolation, debug,
		"node %v is already borrowed; a mutable borrow cannot coexist with any other borrow", id)
}

func denyNewScopeError(openedAt diag.Info) *diag.Error {
	return diag.New(diag.DenyNewScope, openedAt,
		"cannot create a reactive node: the current scope denies new reactive nodes")
}

// orphanAccessError's debug is the observer's own record, when it is still
// resolvable; an observer that has itself vanished from the store leaves it
// zero, which is the case this error actually reports.
func orphanAccessError(id NodeID, debug diag.Info) *diag.Error {
	return diag.New(diag.OrphanAccess, debug, "observer node %v is no longer alive in this runtime", id)
}
