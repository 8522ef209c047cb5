package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRuntime() *Runtime {
	return newRuntime()
}

// TestSourcesSubscribersSymmetry is the §8 universal invariant: n is a
// source of m iff m is a subscriber of n.
func TestSourcesSubscribersSymmetry(t *testing.T) {
	rt := newTestRuntime()
	a := CreateSignal(rt, 1)
	m := CreateMemo(rt, func(prev int, _ bool) int { return Value[int](rt, a) + 1 })
	Value[int](rt, m)

	_, aIsSourceOfM := rt.sources[m][a]
	_, mIsSubscriberOfA := rt.subscribers[a][m]
	assert.True(t, aIsSourceOfM)
	assert.True(t, mIsSubscriberOfA)
}

// TestCleanNodeImpliesCleanSources is the §8 invariant that a Clean node's
// sources are all themselves Clean.
func TestCleanNodeImpliesCleanSources(t *testing.T) {
	rt := newTestRuntime()
	a := CreateSignal(rt, 1)
	m := CreateMemo(rt, func(prev int, _ bool) int { return Value[int](rt, a) + 1 })
	Value[int](rt, m)

	mRec := rt.record(m)
	assert.Equal(t, Clean, mRec.state)
	for dep := range rt.sources[m] {
		assert.Equal(t, Clean, rt.record(dep).state)
	}
}

// TestValidateOnCleanIsNoOp is the §8 idempotence invariant: validating an
// already-Clean node never recomputes it.
func TestValidateOnCleanIsNoOp(t *testing.T) {
	rt := newTestRuntime()
	m := CreateMemo(rt, func(prev int, _ bool) int { return 1 })
	Value[int](rt, m)
	assert.Equal(t, 1, rt.record(m).runCount)

	rt.validate(m)
	assert.Equal(t, 1, rt.record(m).runCount)
}

// TestDisposeIsIdempotent is the §8 idempotence invariant applied to
// Dispose directly on the internal store.
func TestDisposeIsIdempotent(t *testing.T) {
	rt := newTestRuntime()
	s := CreateSignal(rt, 1)
	Dispose(rt, s)
	assert.False(t, rt.IsAlive(s))
	assert.NotPanics(t, func() { Dispose(rt, s) })
}

// TestStaleHandleAfterSlotReuseIsNotAlive proves the generation stamp
// does its job: a NodeID minted before a dispose never aliases whatever
// later gets allocated into the same slot.
func TestStaleHandleAfterSlotReuseIsNotAlive(t *testing.T) {
	rt := newTestRuntime()
	first := CreateSignal(rt, 1)
	Dispose(rt, first)
	second := CreateSignal(rt, 2)

	assert.Equal(t, first.index, second.index)
	assert.NotEqual(t, first.gen, second.gen)
	assert.False(t, rt.IsAlive(first))
	assert.True(t, rt.IsAlive(second))
}

// TestReadingMidRecomputeNodeIsCycle: two memos that read each other are
// fine as long as only one of them is ever mid-recompute at a time; once
// both are forced Dirty simultaneously, recomputing one reaches back into
// the other which reaches back into the first while it is still
// mid-recompute — a genuine cycle, caught by track rather than looping
// forever or returning a stale value.
func TestReadingMidRecomputeNodeIsCycle(t *testing.T) {
	rt := newTestRuntime()
	var m, m2 NodeID
	m = CreateMemo(rt, func(prev int, hasPrev bool) int {
		if hasPrev {
			return Value[int](rt, m2)
		}
		return 1
	})
	m2 = CreateMemo(rt, func(prev int, hasPrev bool) int {
		return Value[int](rt, m) + 1
	})

	assert.Equal(t, 1, Value[int](rt, m))
	assert.Equal(t, 2, Value[int](rt, m2))

	rt.record(m).state = Dirty
	rt.record(m2).state = Dirty

	assert.Panics(t, func() { Value[int](rt, m) })
}

// TestWriteToSelfInsideEffectIsCycleError covers the §9 resolved open
// question directly at the engine level: notify recovers a self-targeting
// write as an error instead of letting the panic escape.
func TestWriteToSelfInsideEffectIsCycleError(t *testing.T) {
	rt := newTestRuntime()
	s := CreateSignal(rt, 0)

	var innerErr error
	CreateEffect(rt, func(prev struct{}, hasPrev bool) struct{} {
		v := Value[int](rt, s)
		if v == 0 {
			innerErr = Set[int](rt, s, v+1)
		}
		return struct{}{}
	})

	assert.Error(t, innerErr)
	assert.Contains(t, innerErr.Error(), "cycle")
}

// TestAliasViolationOnDoubleMutableBorrow proves Update rejects a second
// concurrent mutable borrow of the same node.
func TestAliasViolationOnDoubleMutableBorrow(t *testing.T) {
	rt := newTestRuntime()
	s := CreateSignal(rt, 1)

	assert.Panics(t, func() {
		withMutBorrow[int](rt, s, func(v *int) {
			withMutBorrow[int](rt, s, func(v2 *int) {})
		})
	})
}

// TestDynamicDependencyDroppedAfterRecompute is the §8 boundary case: a
// conditionally-read dependency vanishes from sources once a recompute
// doesn't read it.
func TestDynamicDependencyDroppedAfterRecompute(t *testing.T) {
	rt := newTestRuntime()
	cond := CreateSignal(rt, true)
	b := CreateSignal(rt, 2)
	c := CreateMemo(rt, func(prev int, _ bool) int {
		if Value[bool](rt, cond) {
			return Value[int](rt, b)
		}
		return -1
	})

	Value[int](rt, c)
	_, hasB := rt.sources[c][b]
	assert.True(t, hasB)

	_ = Set[bool](rt, cond, false)
	Value[int](rt, c)

	_, hasBAfter := rt.sources[c][b]
	assert.False(t, hasBAfter)
}

// TestMemoChainOrderingFirstBeforeNormal exercises the engine-level bucket
// ordering directly, independent of the root package's fluent wrapper: a
// First transform added after a Normal one still runs before it.
func TestMemoChainOrderingFirstBeforeNormal(t *testing.T) {
	rt := newTestRuntime()
	m := CreateMemoChain(rt, func(prev int, _ bool) int { return 2 })
	AddChainTransform[int](rt, m, Normal, func(x int) int { return x * 2 })
	AddChainTransform[int](rt, m, First, func(x int) int { return x + 3 })

	assert.Equal(t, 10, Value[int](rt, m))
}

// TestDisposeScopeTearsDownDescendants proves scope disposal is
// transitive: disposing a parent scope also disposes the nodes owned by
// its child scopes.
func TestDisposeScopeTearsDownDescendants(t *testing.T) {
	rt := newTestRuntime()
	parent := rt.PushScope(false)
	outer := CreateSignal(rt, 1)

	child := rt.PushScope(false)
	inner := CreateSignal(rt, 2)
	rt.PopScope(child)

	rt.PopScope(parent)

	rt.DisposeScope(parent)
	assert.False(t, rt.IsAlive(outer))
	assert.False(t, rt.IsAlive(inner))
}
