//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// registry keeps, per goroutine, the stack of runtimes that goroutine has
// pushed with CreateRuntime. sync.Map is the teacher's own choice here
// (AnatoleLucet-sig/internal/runtime_default.go): no native Go API exposes
// a stable goroutine identity, so goid.Get() stands in for the thread-local
// storage a single-threaded-per-runtime design needs, same as it did in
// the teacher.
var registry sync.Map // int64 (goroutine id) -> *runtimeStack

type runtimeStack struct {
	items []*Runtime
}

func stackFor(gid int64) *runtimeStack {
	if v, ok := registry.Load(gid); ok {
		return v.(*runtimeStack)
	}
	st := &runtimeStack{}
	actual, _ := registry.LoadOrStore(gid, st)
	return actual.(*runtimeStack)
}

// CurrentRuntime returns the runtime on top of this goroutine's stack,
// lazily creating a default one if the goroutine has never pushed any.
func CurrentRuntime() *Runtime {
	st := stackFor(goid.Get())
	if len(st.items) == 0 {
		st.items = append(st.items, newRuntime())
	}
	return st.items[len(st.items)-1]
}

// CreateRuntime pushes a brand new runtime onto this goroutine's stack and
// returns it as the new current one. Pair with Leave to pop it back off.
func CreateRuntime() *Runtime {
	st := stackFor(goid.Get())
	rt := newRuntime()
	st.items = append(st.items, rt)
	return rt
}

// Leave disposes rt's root scope and pops it off this goroutine's stack,
// restoring whatever was current before it. It is a no-op if rt is not on
// the stack (already left).
func (rt *Runtime) Leave() {
	st := stackFor(goid.Get())
	for i := len(st.items) - 1; i >= 0; i-- {
		if st.items[i] == rt {
			st.items = append(st.items[:i], st.items[i+1:]...)
			rt.DisposeRoot()
			return
		}
	}
}
