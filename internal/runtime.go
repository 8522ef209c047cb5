package internal

import "github.com/weave-ui/weave/internal/diag"

// Runtime is the whole reactive graph for one goroutine: the node store,
// the dependency/subscriber adjacency, the current observer and scope, and
// the pending-effects set a write leaves behind for drainPendingEffects to
// run through. It replaces AnatoleLucet-sig's split of Runtime/Tracker/
// Batcher/Scheduler/EffectQueue/NodeQueue with one struct, because the
// teacher's two-phase pendingValue-then-Flush model is a deferred-commit
// design built for frame-batched UI rendering, while spec.md requires a
// synchronous read-your-write contract: a write's effects finish running
// before the write call returns. See DESIGN.md for the full breakdown of
// what from that half of the teacher was kept, merged, or dropped.
type Runtime struct {
	store *store

	// sources[n] is the set of nodes n reads from; subscribers[n] is the
	// reverse set, the nodes that read n. Kept as two maps (rather than
	// one doubly-linked adjacency list, as the teacher's DependencyLink
	// did) because membership tests and removal are the hot operations
	// here, not ordered traversal.
	sources     map[NodeID]map[NodeID]struct{}
	subscribers map[NodeID]map[NodeID]struct{}

	// observer is the node currently recomputing, i.e. the node that a
	// Signal/Memo read during this call should be tracked as a source
	// of. Nil outside of any recompute. Untrack leaves observer as it is
	// and clears tracking instead, which track checks before recording.
	observer NodeID
	tracking bool

	rootScope *Scope
	scope     *Scope

	pending    []NodeID
	pendingSet map[NodeID]struct{}

	// draining is set for the duration of drainPendingEffects. A signal
	// write from inside a running effect must not start a second,
	// reentrant drain pass of its own: it just appends to the same
	// pending slice the ongoing drain is iterating by index, so the
	// newly queued effect still runs in this pass. This is the
	// synchronous equivalent of the teacher's Batcher.depth counter,
	// minus the public Batch/NewBatch API spec.md excludes.
	draining bool

	debugName    string
	panicHandler func(any)
}

// SetDebugName attaches a label to the runtime, useful when a program
// juggles more than one runtime. Profile does not report it.
func (rt *Runtime) SetDebugName(name string) { rt.debugName = name }

// SetPanicHandler installs a recovery hook for panics raised from inside an
// effect's own body. It does not catch the propagation engine's own
// assertion panics (type mismatch, alias violation, disposed use, deny-new
// scope) — those stay fatal, per spec.md's error taxonomy.
func (rt *Runtime) SetPanicHandler(fn func(any)) { rt.panicHandler = fn }

func newRuntime() *Runtime {
	root := newScope(nil, false)
	return &Runtime{
		store:       newStore(),
		sources:     make(map[NodeID]map[NodeID]struct{}),
		subscribers: make(map[NodeID]map[NodeID]struct{}),
		tracking:    true,
		rootScope:   root,
		scope:       root,
		pendingSet:  make(map[NodeID]struct{}),
	}
}

// IsAlive reports whether id still names a live node in this runtime.
func (rt *Runtime) IsAlive(id NodeID) bool {
	return rt.store.has(id)
}

func (rt *Runtime) record(id NodeID) *record {
	rec, ok := rt.store.get(id)
	if !ok {
		panic(notFoundError(id))
	}
	return rec
}

// CurrentScope returns the scope new nodes are currently being attached to.
func (rt *Runtime) CurrentScope() *Scope { return rt.scope }

// NewChildScope creates a fresh child of the current scope without making
// it current; the caller runs code under it explicitly via RunInScope.
// denyNew propagates spec.md's "creating a reactive node while prohibited"
// restriction into the subtree regardless of the parent's own flag.
func (rt *Runtime) NewChildScope(denyNew bool) *Scope {
	return newScope(rt.scope, denyNew || rt.scope.denyNew)
}

// PushScope makes a fresh child of the current scope current, returning it
// so the caller can pop back when done.
func (rt *Runtime) PushScope(denyNew bool) *Scope {
	s := rt.NewChildScope(denyNew)
	rt.scope = s
	return s
}

// PopScope restores the parent of the given scope as current. It must be
// called with the scope PushScope most recently returned.
func (rt *Runtime) PopScope(s *Scope) {
	rt.scope = s.parent
}

// RunInScope runs f with s current, always restoring the previous current
// scope afterwards, even if f panics.
func (rt *Runtime) RunInScope(s *Scope, f func()) {
	prev := rt.scope
	rt.scope = s
	defer func() { rt.scope = prev }()
	f()
}

// DisposeRoot tears down every node still live in this runtime's root
// scope. Leave calls this so leaving a runtime also disposes it, per
// spec.md §4.1, rather than just detaching it from the goroutine stack
// and leaving its nodes to the garbage collector.
func (rt *Runtime) DisposeRoot() {
	rt.DisposeScope(rt.rootScope)
}

// DisposeScope tears down every node s and its descendant scopes own.
func (rt *Runtime) DisposeScope(s *Scope) {
	var ids []NodeID
	s.disposeInto(&ids)
	for _, id := range ids {
		rt.disposeNode(id)
	}
}

func (rt *Runtime) disposeNode(id NodeID) {
	rec, ok := rt.store.get(id)
	if !ok {
		return
	}
	if rec.scope != nil {
		rt.DisposeScope(rec.scope)
	}
	for dep := range rt.sources[id] {
		if subs := rt.subscribers[dep]; subs != nil {
			delete(subs, id)
		}
	}
	delete(rt.sources, id)
	delete(rt.subscribers, id)
	delete(rt.pendingSet, id)
	rt.store.remove(id)
}

// addValue allocates a new node owned by the current scope.
func (rt *Runtime) addValue(rec *record) NodeID {
	rec.owner = rt.scope
	id := rt.store.insert(rec)
	rt.scope.addNode(id)
	return id
}

// track records that the currently recomputing node (rt.observer) reads
// dep, provided tracking is enabled and dep isn't itself mid-recompute
// (which would mean dep transitively depends on the observer: a cycle).
func (rt *Runtime) track(dep NodeID) {
	if !rt.tracking || rt.observer.IsNil() {
		return
	}
	if depRec, ok := rt.store.get(dep); ok && depRec.recomputing {
		panic(cycleError(dep))
	}
	obs := rt.observer
	if _, ok := rt.store.get(obs); !ok {
		panic(orphanAccessError(obs, diag.Info{}))
	}
	if rt.sources[obs] == nil {
		rt.sources[obs] = make(map[NodeID]struct{})
	}
	rt.sources[obs][dep] = struct{}{}
	if rt.subscribers[dep] == nil {
		rt.subscribers[dep] = make(map[NodeID]struct{})
	}
	rt.subscribers[dep][obs] = struct{}{}
}

// observerDebug stashes the current observer's creation location into at's
// Observer slot, recording which node's recompute (if any) created the node
// being constructed. A nil observer (top-level creation) leaves at alone.
func (rt *Runtime) observerDebug(at diag.Info) diag.Info {
	if rt.observer.IsNil() {
		return at
	}
	obsRec, ok := rt.store.get(rt.observer)
	if !ok {
		return at
	}
	return at.WithObserver(obsRec.debug)
}

// clearSources removes every edge node -> its current sources, run before
// each recompute so the dependency set is rebuilt from scratch (dynamic
// dependencies: a branch not taken this time leaves no stale edge behind).
func (rt *Runtime) clearSources(node NodeID) {
	for dep := range rt.sources[node] {
		if subs := rt.subscribers[dep]; subs != nil {
			delete(subs, node)
		}
	}
	delete(rt.sources, node)
}

// Untrack runs f with dependency tracking suppressed: reads performed
// inside f do not register edges against whatever node is currently
// recomputing. Unlike a deny-new scope, node creation inside f is still
// allowed — tracking suppression and the deny-new assertion are
// orthogonal per spec.md §4.6/§6.
func (rt *Runtime) Untrack(f func()) {
	prevTracking := rt.tracking
	rt.tracking = false
	defer func() { rt.tracking = prevTracking }()
	f()
}
