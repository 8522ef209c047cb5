package internal

import "github.com/weave-ui/weave/internal/diag"

// maxDrainIterations bounds a single effect drain pass, the same safety net
// AnatoleLucet-sig's scheduler.go applied to its Flush loop (there guarding
// against a runaway Schedule/Flush cycle; here against an effect that keeps
// re-triggering itself or a sibling forever).
const maxDrainIterations = 100_000

// markDirty is the push half of the propagation algorithm: a changed
// signal (or a memo/effect whose recomputed value changed) raises every
// node downstream of it in the subscriber graph. Its own direct
// subscribers go straight to Dirty since they are known to read a value
// that just changed; everything further out only goes to Check, because
// whether they actually need to recompute depends on whether the Dirty
// node in between turns out to produce a different value once validated.
// States only ever rise here (Clean < Check < Dirty), and a node already
// visited this pass is not revisited, which is what keeps this a single
// BFS over the subscriber graph rather than an exponential walk of every
// path to every descendant.
func (rt *Runtime) markDirty(root NodeID) {
	type step struct {
		id    NodeID
		state State
	}

	var queue []step
	for sub := range rt.subscribers[root] {
		queue = append(queue, step{sub, Dirty})
	}

	visited := make(map[NodeID]struct{})
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if _, done := visited[cur.id]; done {
			continue
		}

		rec, ok := rt.store.get(cur.id)
		if !ok {
			continue
		}
		if rec.recomputing {
			panic(cycleError(cur.id))
		}

		if cur.state > rec.state {
			rec.state = cur.state
			rec.debug = rec.debug.WithDirtied(diag.Capture(1))
		}
		visited[cur.id] = struct{}{}

		if rec.kind == EffectKind {
			rt.enqueuePending(cur.id)
		}

		for sub := range rt.subscribers[cur.id] {
			queue = append(queue, step{sub, Check})
		}
	}
}

// raiseDirect promotes id straight to Dirty without walking any further;
// used by recompute once it knows its own value actually changed, to push
// that fact onto its immediate subscribers. It never needs to cascade
// further itself, because every one of those subscribers (direct or
// transitive) was already reached and marked at least Check by the
// original markDirty BFS that started this write.
func (rt *Runtime) raiseDirect(id NodeID) {
	rec, ok := rt.store.get(id)
	if !ok {
		return
	}
	if rec.recomputing {
		panic(cycleError(id))
	}
	rec.state = Dirty
	rec.debug = rec.debug.WithDirtied(diag.Capture(1))
	if rec.kind == EffectKind {
		rt.enqueuePending(id)
	}
}

func (rt *Runtime) enqueuePending(id NodeID) {
	if _, queued := rt.pendingSet[id]; queued {
		return
	}
	rt.pendingSet[id] = struct{}{}
	rt.pending = append(rt.pending, id)
}

// validate is the pull half: bring id up to date with whatever its
// sources currently hold, recomputing only if necessary. A Check node
// revalidates its sources one at a time and bails out the moment one of
// them promotes id to Dirty (recompute already did the promoting, via
// raiseDirect); if every source turns out unchanged, id settles back to
// Clean without ever running its own compute function.
func (rt *Runtime) validate(id NodeID) {
	rec, ok := rt.store.get(id)
	if !ok {
		return
	}

	switch rec.state {
	case Clean:
		return
	case Check:
		for dep := range rt.sources[id] {
			rt.validate(dep)
			if rec.state == Dirty {
				break
			}
		}
		if rec.state == Check {
			rec.state = Clean
			return
		}
	}

	rt.recompute(id)
}

// recompute runs a node's compute (or memo-chain transforms) and folds
// the result back in. It always leaves the node Clean; whether that also
// means "propagate further" depends on whether the new value compares
// equal to the old one, for the kinds that compare at all.
func (rt *Runtime) recompute(id NodeID) {
	rec, ok := rt.store.get(id)
	if !ok {
		return
	}
	if rec.kind == SignalKind {
		rec.state = Clean
		return
	}

	if rec.scope != nil {
		rt.DisposeScope(rec.scope)
	}
	rt.clearSources(id)

	childScope := newScope(rec.owner, rec.owner != nil && rec.owner.denyNew)
	rec.scope = childScope

	prevObserver := rt.observer
	prevTracking := rt.tracking
	prevScope := rt.scope
	rt.observer = id
	rt.tracking = true
	rt.scope = childScope

	rec.recomputing = true

	oldValue, hadValue := rec.value, rec.hasValue
	newValue := rt.runGuarded(rec, oldValue, hadValue)
	rec.runCount++

	rec.recomputing = false
	rt.observer = prevObserver
	rt.tracking = prevTracking
	rt.scope = prevScope

	changed := true
	if rec.equal != nil && hadValue {
		changed = !rec.equal(oldValue, newValue)
	}

	rec.value = newValue
	rec.hasValue = true
	rec.state = Clean

	if changed {
		for sub := range rt.subscribers[id] {
			rt.raiseDirect(sub)
		}
	}
}

// runGuarded invokes runCompute, routing a panic from an effect's own body
// through the runtime's panic handler if one is installed. Panics raised by
// the propagation engine itself (*diag.Error) are never intercepted here:
// those are programmer-error assertions and stay fatal regardless of kind.
func (rt *Runtime) runGuarded(rec *record, oldValue any, hadValue bool) (result any) {
	if rec.kind != EffectKind || rt.panicHandler == nil {
		return rt.runCompute(rec, oldValue, hadValue)
	}
	defer func() {
		if r := recover(); r != nil {
			if _, isDiag := r.(*diag.Error); isDiag {
				panic(r)
			}
			rt.panicHandler(r)
			result = oldValue
		}
	}()
	return rt.runCompute(rec, oldValue, hadValue)
}

func (rt *Runtime) runCompute(rec *record, oldValue any, hadValue bool) any {
	if rec.kind == MemoChainKind {
		value := rec.chainInitial(oldValue, hadValue)
		for _, order := range [3]ChainOrder{First, Normal, Last} {
			for _, transform := range rec.chain[order] {
				value = transform(value)
			}
		}
		return value
	}
	return rec.compute(oldValue, hadValue)
}

// Notify propagates a write to signal through the graph and, unless a
// drain is already underway further up the call stack, runs every effect
// that ends up needing it before returning — matching spec.md's
// synchronous read-your-write contract. A cycle is the one misuse
// category that comes back as an ordinary error instead of a panic.
func (rt *Runtime) Notify(signal NodeID) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, isDiag := r.(*diag.Error); isDiag && de.Category == diag.Cycle {
				err = de
				return
			}
			panic(r)
		}
	}()

	if rec, ok := rt.store.get(signal); ok && rec.kind == EffectKind {
		rt.raiseDirect(signal)
	}
	rt.markDirty(signal)
	if !rt.draining {
		rt.drainPendingEffects()
	}
	return nil
}

func (rt *Runtime) drainPendingEffects() {
	rt.draining = true
	defer func() { rt.draining = false }()

	for i := 0; i < len(rt.pending); i++ {
		if i > maxDrainIterations {
			panic(diag.New(diag.Cycle, diag.Info{}, "effect drain exceeded %d iterations, likely an unbounded effect->signal->effect loop", maxDrainIterations))
		}
		id := rt.pending[i]
		delete(rt.pendingSet, id)
		if rt.store.has(id) {
			rt.validate(id)
		}
	}
	rt.pending = rt.pending[:0]
}
