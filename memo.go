package weave

import "github.com/weave-ui/weave/internal"

// Memo is a pure derivation cached by value equality. It runs on first
// read, on a Dirty recompute, and during Check validation only if one of
// its sources actually changed.
type Memo[T comparable] struct {
	id internal.NodeID
}

// NewMemo allocates a memo computing compute. compute receives the
// previous output (and whether there was one) so it can fold
// incrementally instead of recomputing from scratch every time.
func NewMemo[T comparable](compute func(prev T, hasPrev bool) T) *Memo[T] {
	return &Memo[T]{id: internal.CreateMemo(internal.CurrentRuntime(), compute)}
}

// Get validates and returns the current value, tracking the dependency.
func (m *Memo[T]) Get() T {
	return internal.Value[T](internal.CurrentRuntime(), m.id)
}

// GetUntracked is Get without registering a dependency.
func (m *Memo[T]) GetUntracked() T {
	return internal.ValueUntracked[T](internal.CurrentRuntime(), m.id)
}

// With passes the current value to f, tracking the dependency first.
func (m *Memo[T]) With(f func(T)) {
	internal.With[T](internal.CurrentRuntime(), m.id, f)
}

// WithUntracked is With without registering a dependency.
func (m *Memo[T]) WithUntracked(f func(T)) {
	internal.WithUntracked[T](internal.CurrentRuntime(), m.id, f)
}

// Track registers m as a dependency of whatever node is currently
// recomputing, without reading its value.
func (m *Memo[T]) Track() {
	internal.Track(internal.CurrentRuntime(), m.id)
}

// Dispose tears m down immediately, ahead of whatever scope owns it.
func (m *Memo[T]) Dispose() {
	internal.Dispose(internal.CurrentRuntime(), m.id)
}

// IsAlive reports whether m still names a live node.
func (m *Memo[T]) IsAlive() bool {
	return internal.CurrentRuntime().IsAlive(m.id)
}

// RunCount reports how many times compute has actually run so far.
func (m *Memo[T]) RunCount() int {
	return internal.RunCount(internal.CurrentRuntime(), m.id)
}

// Map allocates a derived memo computing f(source.Get()) every time
// source changes.
func Map[T comparable, U comparable](source interface{ Get() T }, f func(T) U) *Memo[U] {
	return NewMemo(func(_ U, _ bool) U { return f(source.Get()) })
}

// SignalToMemo adapts a Signal into a Memo-shaped read-only view without
// allocating a new node: the wrapper stores the signal handle directly,
// since an identity derivation would be a degenerate memo.
type SignalToMemo[T comparable] struct {
	s *Signal[T]
}

// AsMemo wraps s as a read-only Memo-shaped view.
func AsMemo[T comparable](s *Signal[T]) SignalToMemo[T] {
	return SignalToMemo[T]{s: s}
}

func (m SignalToMemo[T]) Get() T            { return m.s.Get() }
func (m SignalToMemo[T]) GetUntracked() T   { return m.s.GetUntracked() }
func (m SignalToMemo[T]) With(f func(T))    { m.s.With(f) }
