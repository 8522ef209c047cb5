package internal

import "github.com/weave-ui/weave/internal/diag"

// record is the heterogeneous, dynamically-typed node held by the store.
// Handles only ever carry the slot key (NodeID), never a direct pointer to
// this struct — recompute closures capture handles that point back into the
// runtime, and routing every access back through the store is what keeps
// that cyclic ownership from becoming actual Go pointer cycles.
type record struct {
	kind  Kind
	state State

	// value holds T for signals, Option<T> (nil until first eval) for
	// memos, memo-chains and effects.
	value    any
	hasValue bool

	// equal is nil for Signal and Effect (neither is value-compared);
	// set for Memo and MemoChain, built from the generic constructor's
	// `T comparable` constraint.
	equal func(a, b any) bool

	// compute is the recompute callback for Memo and Effect. For
	// MemoChain the initial computation lives in chainInitial instead
	// and compute is nil.
	compute func(prev any, hasPrev bool) any

	chainInitial func(prev any, hasPrev bool) any
	chain        [3][]func(any) any // indexed by ChainOrder

	// runCount counts actual recomputes (runGuarded calls), not validate
	// calls that settle back to Clean without running anything. Exposed
	// to callers that want to assert "ran exactly once" style properties.
	runCount int

	// recomputing is set for the duration of this node's own recompute
	// call; a notify or track that reaches a node with this set is a
	// reactivity cycle (see Runtime.markDirty / Runtime.track).
	recomputing bool

	// scope owns whatever nodes this record's compute/chain/effect body
	// creates while it runs. It is disposed and replaced fresh at the
	// start of every recompute, so a Memo or Effect that conditionally
	// creates child signals never leaks the previous generation.
	scope *Scope

	// owner is the scope this record itself was created in; recompute
	// makes each fresh child scope a child of it. A node Disposed early
	// stays listed in owner's membership list; disposing that scope later
	// skips it, since its id no longer names a live node.
	owner *Scope

	// borrowed > 0 counts live immutable borrows; borrowed == -1 marks a
	// live mutable borrow. The runtime is single-threaded and
	// cooperative, so there is no lock backing this — the counter is
	// itself the alias-violation check.
	borrowed int

	debug diag.Info
}
