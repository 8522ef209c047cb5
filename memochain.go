package weave

import "github.com/weave-ui/weave/internal"

// MemoChain is a memo plus three ordered buckets of post-transforms —
// First, Normal, Last — appended after construction. On recompute the
// chain runs: initial, then every First transform in insertion order,
// then every Normal, then every Last. Only the final value is compared
// for downstream invalidation; per-transform change detection is not
// part of the contract.
type MemoChain[T comparable] struct {
	id internal.NodeID
}

// NewMemoChain allocates a memo chain whose initial value comes from
// initial. Transforms are added afterwards with First, Then and Last.
func NewMemoChain[T comparable](initial func(prev T, hasPrev bool) T) *MemoChain[T] {
	return &MemoChain[T]{id: internal.CreateMemoChain(internal.CurrentRuntime(), initial)}
}

// First appends f to the First bucket and returns the chain for chaining.
func (m *MemoChain[T]) First(f func(T) T) *MemoChain[T] {
	internal.AddChainTransform(internal.CurrentRuntime(), m.id, internal.First, f)
	return m
}

// Then appends f to the Normal bucket and returns the chain for chaining.
func (m *MemoChain[T]) Then(f func(T) T) *MemoChain[T] {
	internal.AddChainTransform(internal.CurrentRuntime(), m.id, internal.Normal, f)
	return m
}

// Last appends f to the Last bucket and returns the chain for chaining.
func (m *MemoChain[T]) Last(f func(T) T) *MemoChain[T] {
	internal.AddChainTransform(internal.CurrentRuntime(), m.id, internal.Last, f)
	return m
}

// Get validates and returns the current value, tracking the dependency.
func (m *MemoChain[T]) Get() T {
	return internal.Value[T](internal.CurrentRuntime(), m.id)
}

// GetUntracked is Get without registering a dependency.
func (m *MemoChain[T]) GetUntracked() T {
	return internal.ValueUntracked[T](internal.CurrentRuntime(), m.id)
}

// With passes the current value to f, tracking the dependency first.
func (m *MemoChain[T]) With(f func(T)) {
	internal.With[T](internal.CurrentRuntime(), m.id, f)
}

// WithUntracked is With without registering a dependency.
func (m *MemoChain[T]) WithUntracked(f func(T)) {
	internal.WithUntracked[T](internal.CurrentRuntime(), m.id, f)
}

// Track registers m as a dependency of whatever node is currently
// recomputing, without reading its value.
func (m *MemoChain[T]) Track() {
	internal.Track(internal.CurrentRuntime(), m.id)
}

// Dispose tears m down immediately, ahead of whatever scope owns it.
func (m *MemoChain[T]) Dispose() {
	internal.Dispose(internal.CurrentRuntime(), m.id)
}

// RunCount reports how many times the chain has actually recomputed.
func (m *MemoChain[T]) RunCount() int {
	return internal.RunCount(internal.CurrentRuntime(), m.id)
}
