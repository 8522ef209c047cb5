package weave

// Reactive is the common read contract shared by every value source the
// runtime knows about: a plain constant, a Signal, a Memo, a MemoChain,
// or an arbitrary derived function. MaybeReactive is the same interface
// under the name the wider ecosystem uses for it: a sum over
// {Inert, Signal, Memo, MemoChain, Derived}, collapsed here into one
// interface all five implement rather than a literal tagged union —
// idiomatic Go prefers accepting an interface to matching on a enum.
type Reactive[T any] interface {
	Get() T
}

// MaybeReactive is Reactive under the name APIs that accept "either a
// plain value or any reactive source" tend to use for the parameter type.
type MaybeReactive[T any] = Reactive[T]

// Inert wraps a plain, non-reactive value so it satisfies Reactive: a
// constant that happens to be read through the same interface as a live
// source.
type Inert[T any] struct {
	v T
}

// NewInert wraps v as an inert Reactive[T].
func NewInert[T any](v T) Inert[T] { return Inert[T]{v: v} }

func (i Inert[T]) Get() T { return i.v }

// Derived adapts a plain function into a Reactive[T]: reading it just
// calls fn, uncached and untracked by itself (whatever fn reads is
// tracked as usual by fn's own body, if it's a closure over other
// handles).
type Derived[T any] func() T

func (d Derived[T]) Get() T { return d() }

// NewSignalSetter installs an effect that, on every change to source,
// merges the new value into target via merge. It returns the effect so
// the wiring can be disposed like any other reactive node.
func NewSignalSetter[S, T any](source Reactive[S], target *Signal[T], merge func(src S, cur T) T) *Effect[struct{}] {
	return NewEffect(func() {
		target.Update(func(cur *T) { *cur = merge(source.Get(), *cur) })
	})
}
