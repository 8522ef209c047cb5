package weave

import "github.com/weave-ui/weave/internal"

// Effect is a node whose "value" is its side effects. It runs once
// immediately at creation, which is also how it discovers its initial
// dependency set, and again every time one of its dependencies changes.
// Its output has no equality check: every run counts as a change to any
// node that reads it through With or Track.
type Effect[T any] struct {
	id internal.NodeID
}

// NewEffect allocates and immediately runs an effect whose body returns
// nothing of interest. It is sugar over NewEffectValue[struct{}].
func NewEffect(fn func()) *Effect[struct{}] {
	return NewEffectValue(func(struct{}, bool) struct{} {
		fn()
		return struct{}{}
	})
}

// NewEffectValue allocates an effect whose return value is cached and
// handed back to it as prev on the next run, for "give me what I
// returned last time" patterns.
func NewEffectValue[T any](compute func(prev T, hasPrev bool) T) *Effect[T] {
	return &Effect[T]{id: internal.CreateEffect(internal.CurrentRuntime(), compute)}
}

// Notify forces the effect's subscribers-of-itself path to run as if one
// of its own dependencies had changed, even though nothing did.
func (e *Effect[T]) Notify() error {
	return internal.CurrentRuntime().Notify(e.id)
}

// With passes the effect's last returned value to f, tracking the
// dependency first.
func (e *Effect[T]) With(f func(T)) {
	internal.With[T](internal.CurrentRuntime(), e.id, f)
}

// WithUntracked is With without registering a dependency.
func (e *Effect[T]) WithUntracked(f func(T)) {
	internal.WithUntracked[T](internal.CurrentRuntime(), e.id, f)
}

// Track registers e as a dependency of whatever node is currently
// recomputing, without reading its value.
func (e *Effect[T]) Track() {
	internal.Track(internal.CurrentRuntime(), e.id)
}

// Dispose tears e down immediately, ahead of whatever scope owns it.
func (e *Effect[T]) Dispose() {
	internal.Dispose(internal.CurrentRuntime(), e.id)
}

// RunCount reports how many times the effect body has actually run.
func (e *Effect[T]) RunCount() int {
	return internal.RunCount(internal.CurrentRuntime(), e.id)
}
