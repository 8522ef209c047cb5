package internal

import (
	"fmt"

	"github.com/weave-ui/weave/internal/diag"
)

// CreateSignal allocates a new signal node holding initial, owned by the
// runtime's current scope.
func CreateSignal[T any](rt *Runtime, initial T) NodeID {
	if rt.scope.denyNew {
		panic(denyNewScopeError(rt.scope.openedAt))
	}
	rec := &record{
		kind:     SignalKind,
		state:    Clean,
		value:    initial,
		hasValue: true,
		debug:    rt.observerDebug(diag.Capture(1).WithType(fmt.Sprintf("%T", initial))),
	}
	return rt.addValue(rec)
}

// CreateMemo allocates a lazily-evaluated memo. Nothing runs until the
// first read; compute receives the previous value (and whether there was
// one) so it can fold incrementally instead of always starting fresh.
func CreateMemo[T comparable](rt *Runtime, compute func(prev T, hasPrev bool) T) NodeID {
	if rt.scope.denyNew {
		panic(denyNewScopeError(rt.scope.openedAt))
	}
	rec := &record{
		kind:  MemoKind,
		state: Dirty,
		equal: equalAny[T],
		compute: func(prev any, hasPrev bool) any {
			var p T
			if hasPrev {
				p = prev.(T)
			}
			return compute(p, hasPrev)
		},
		debug: rt.observerDebug(diag.Capture(1)),
	}
	return rt.addValue(rec)
}

// CreateMemoChain allocates a memo whose value is produced by an initial
// computation followed by zero or more ordered post-transforms (see
// AddChainTransform). Only the final, post-transform value participates
// in the equality check that decides whether subscribers are notified.
func CreateMemoChain[T comparable](rt *Runtime, initial func(prev T, hasPrev bool) T) NodeID {
	if rt.scope.denyNew {
		panic(denyNewScopeError(rt.scope.openedAt))
	}
	rec := &record{
		kind:  MemoChainKind,
		state: Dirty,
		equal: equalAny[T],
		chainInitial: func(prev any, hasPrev bool) any {
			var p T
			if hasPrev {
				p = prev.(T)
			}
			return initial(p, hasPrev)
		},
		debug: rt.observerDebug(diag.Capture(1)),
	}
	return rt.addValue(rec)
}

// AddChainTransform appends f to the given bucket of id's post-transform
// chain and invalidates any cached value, so the next read (or the next
// effect drain, if something already subscribes to id) picks it up.
func AddChainTransform[T comparable](rt *Runtime, id NodeID, order ChainOrder, f func(T) T) {
	rec := rt.record(id)
	if rec.kind != MemoChainKind {
		panic(typeMismatchError(id, MemoChainKind, rec.kind, rec.debug))
	}
	rec.chain[order] = append(rec.chain[order], func(v any) any { return f(v.(T)) })
	rec.state = Dirty
	_ = rt.Notify(id)
}

// CreateEffect allocates an effect and runs it once immediately, which is
// also how it discovers its initial dependency set. Its return value has
// no equality check: an effect is always considered to have "changed",
// since effects exist for their side effects rather than a value other
// nodes read.
func CreateEffect[T any](rt *Runtime, compute func(prev T, hasPrev bool) T) NodeID {
	if rt.scope.denyNew {
		panic(denyNewScopeError(rt.scope.openedAt))
	}
	rec := &record{
		kind:  EffectKind,
		state: Dirty,
		compute: func(prev any, hasPrev bool) any {
			var p T
			if hasPrev {
				p = prev.(T)
			}
			return compute(p, hasPrev)
		},
		debug: rt.observerDebug(diag.Capture(1)),
	}
	id := rt.addValue(rec)
	rt.validate(id)
	return id
}

func equalAny[T comparable](a, b any) bool {
	return a.(T) == b.(T)
}

// withBorrow validates id, takes out an immutable borrow for the duration
// of f, and passes the current value to it. Panics with a type-mismatch
// error if the stored payload isn't a T, or an alias-violation error if a
// mutable borrow is already live.
func withBorrow[T any](rt *Runtime, id NodeID, f func(T)) {
	rt.validate(id)
	rec := rt.record(id)
	if rec.borrowed < 0 {
		panic(aliasViolationError(id, rec.debug))
	}
	v, ok := rec.value.(T)
	if !ok {
		var want T
		panic(typeMismatchError(id, want, rec.value, rec.debug))
	}
	rec.debug = rec.debug.WithBorrowed(diag.Capture(1))
	rec.borrowed++
	defer func() { rec.borrowed-- }()
	f(v)
}

// withMutBorrow takes out the sole mutable borrow id allows, runs f
// against the current value, and writes whatever f left in it back to the
// cell. It does not validate or notify: callers decide both.
func withMutBorrow[T any](rt *Runtime, id NodeID, f func(*T)) {
	rec := rt.record(id)
	if rec.borrowed != 0 {
		panic(aliasViolationError(id, rec.debug))
	}
	rec.debug = rec.debug.WithBorrowed(diag.Capture(1))
	val, _ := rec.value.(T)
	rec.borrowed = -1
	defer func() { rec.borrowed = 0 }()
	f(&val)
	rec.value = val
	rec.hasValue = true
}

// WithUntracked validates id and passes its current value to f without
// registering a dependency.
func WithUntracked[T any](rt *Runtime, id NodeID, f func(T)) {
	withBorrow[T](rt, id, f)
}

// With is track(); with_untracked(f): it registers id as a dependency of
// whatever node is currently recomputing, then reads its current value.
func With[T any](rt *Runtime, id NodeID, f func(T)) {
	rt.track(id)
	WithUntracked[T](rt, id, f)
}

// Track registers id as a dependency of whatever node is currently
// recomputing, without reading its value. It is track() exposed standalone,
// for embedders that need to wire a dependency edge without also borrowing
// the value through With/Get.
func Track(rt *Runtime, id NodeID) {
	rt.track(id)
}

// Value is With wrapped up as a plain return value, the common case.
func Value[T any](rt *Runtime, id NodeID) T {
	var out T
	With[T](rt, id, func(v T) { out = v })
	return out
}

// ValueUntracked is WithUntracked wrapped up as a plain return value.
func ValueUntracked[T any](rt *Runtime, id NodeID) T {
	var out T
	WithUntracked[T](rt, id, func(v T) { out = v })
	return out
}

// UpdateUntracked mutates id's stored value in place via f. It does not
// mark or notify: the graph is left exactly as stale (or not) as it was.
func UpdateUntracked[T any](rt *Runtime, id NodeID, f func(*T)) {
	withMutBorrow[T](rt, id, f)
}

// Set overwrites a signal's value unconditionally (no equality check, per
// spec.md: consecutive writes of equal values still mark and drain
// dependents) and notifies the graph.
func Set[T any](rt *Runtime, id NodeID, v T) error {
	rec := rt.record(id)
	if rec.borrowed != 0 {
		panic(aliasViolationError(id, rec.debug))
	}
	rec.value = v
	rec.hasValue = true
	return rt.Notify(id)
}

// Update is update_untracked(f); notify(): mutate in place, then always
// notify.
func Update[T any](rt *Runtime, id NodeID, f func(*T)) error {
	UpdateUntracked[T](rt, id, f)
	return rt.Notify(id)
}

// UpdateIf mutates a signal's stored value in place via f, notifying the
// graph only if f reports the value actually changed. This is the Go
// shape of a control-flow-style conditional write: a mutator that knows
// better than equality comparison whether its own edit was a no-op.
func UpdateIf[T any](rt *Runtime, id NodeID, f func(*T) bool) error {
	var changed bool
	withMutBorrow[T](rt, id, func(v *T) { changed = f(v) })
	if !changed {
		return nil
	}
	return rt.Notify(id)
}

// Dispose tears down id immediately, ahead of whatever scope owns it.
// Safe to call more than once or on an id from a scope already disposed.
func Dispose(rt *Runtime, id NodeID) {
	rt.disposeNode(id)
}

// KindOf reports the node's kind, or false if id no longer names a live
// node.
func KindOf(rt *Runtime, id NodeID) (Kind, bool) {
	rec, ok := rt.store.get(id)
	if !ok {
		return 0, false
	}
	return rec.kind, true
}

// RunCount reports how many times id's compute/chain body has actually
// run (recomputes, not validate calls that settled without running
// anything), or 0 if id no longer names a live node.
func RunCount(rt *Runtime, id NodeID) int {
	rec, ok := rt.store.get(id)
	if !ok {
		return 0
	}
	return rec.runCount
}
