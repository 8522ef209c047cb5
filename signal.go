package weave

import "github.com/weave-ui/weave/internal"

// Signal is an eagerly-stored reactive cell. Writes are direct stores
// followed by the write path; there is no equality check, so setting a
// signal to a value equal to its current one still marks and drains
// dependents (opt into equality by wrapping it in a Memo).
type Signal[T any] struct {
	id internal.NodeID
}

// NewSignal allocates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{id: internal.CreateSignal(internal.CurrentRuntime(), initial)}
}

// Get validates and returns the current value, tracking it as a
// dependency of whatever node is currently recomputing.
func (s *Signal[T]) Get() T {
	return internal.Value[T](internal.CurrentRuntime(), s.id)
}

// GetUntracked is Get without registering a dependency.
func (s *Signal[T]) GetUntracked() T {
	return internal.ValueUntracked[T](internal.CurrentRuntime(), s.id)
}

// With passes the current value to f, tracking the dependency first.
func (s *Signal[T]) With(f func(T)) {
	internal.With[T](internal.CurrentRuntime(), s.id, f)
}

// WithUntracked is With without registering a dependency.
func (s *Signal[T]) WithUntracked(f func(T)) {
	internal.WithUntracked[T](internal.CurrentRuntime(), s.id, f)
}

// Track registers s as a dependency of whatever node is currently
// recomputing, without reading its value.
func (s *Signal[T]) Track() {
	internal.Track(internal.CurrentRuntime(), s.id)
}

// Set overwrites the value and notifies the graph.
func (s *Signal[T]) Set(v T) error {
	return internal.Set[T](internal.CurrentRuntime(), s.id, v)
}

// Update mutates the value in place via f, then always notifies.
func (s *Signal[T]) Update(f func(*T)) error {
	return internal.Update[T](internal.CurrentRuntime(), s.id, f)
}

// UpdateUntracked mutates the value in place via f without marking or
// notifying.
func (s *Signal[T]) UpdateUntracked(f func(*T)) {
	internal.UpdateUntracked[T](internal.CurrentRuntime(), s.id, f)
}

// UpdateIf mutates the value in place via f, notifying only if f reports
// the edit actually changed something.
func (s *Signal[T]) UpdateIf(f func(*T) bool) error {
	return internal.UpdateIf[T](internal.CurrentRuntime(), s.id, f)
}

// Dispose tears s down immediately, ahead of whatever scope owns it.
func (s *Signal[T]) Dispose() {
	internal.Dispose(internal.CurrentRuntime(), s.id)
}

// IsAlive reports whether s still names a live node.
func (s *Signal[T]) IsAlive() bool {
	return internal.CurrentRuntime().IsAlive(s.id)
}
