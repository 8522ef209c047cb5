package weave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weave-ui/weave/internal"
)

// TestSingleLevelMemo is spec scenario 1: a memo reading one signal.
func TestSingleLevelMemo(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		a := NewSignal(5)
		b := NewMemo(func(_ int, _ bool) int { return a.Get() * 10 })

		assert.Equal(t, 50, b.Get())
		assert.Equal(t, 1, b.RunCount())

		a.Set(10)
		assert.Equal(t, 100, b.Get())
		assert.Equal(t, 2, b.RunCount())
	})
}

// TestDiamond is spec scenario 2: d depends on b and c, which both depend
// on a, which depends on s. d must recompute exactly once per write to s,
// not once per path.
func TestDiamond(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(1)
		a := NewMemo(func(_ int, _ bool) int { return s.Get() })
		b := NewMemo(func(_ int, _ bool) int { return a.Get() * 2 })
		c := NewMemo(func(_ int, _ bool) int { return a.Get() * 3 })
		d := NewMemo(func(_ int, _ bool) int { return b.Get() + c.Get() })

		assert.Equal(t, 5, d.Get())
		assert.Equal(t, 1, d.RunCount())

		s.Set(2)
		assert.Equal(t, 10, d.Get())
		assert.Equal(t, 2, d.RunCount())
	})
}

// TestDynamicDependency is spec scenario 3: a conditional read means a
// branch not taken this time leaves no dependency edge behind, so writing
// to the untaken branch's signal alone does not trigger a recompute.
func TestDynamicDependency(t *testing.T) {
	const none = -1

	WithNewRuntime(func(_ *Runtime) {
		cond := NewSignal(true)
		b := NewSignal(2)
		c := NewMemo(func(_ int, _ bool) int {
			if cond.Get() {
				return b.Get()
			}
			return none
		})

		assert.Equal(t, 2, c.Get())
		assert.Equal(t, 1, c.RunCount())

		cond.Set(false)
		assert.Equal(t, none, c.Get())
		runsAfterSwitch := c.RunCount()

		b.Set(4)
		assert.Equal(t, none, c.Get())
		assert.Equal(t, runsAfterSwitch, c.RunCount())
	})
}

// TestMemoChainPrecedence is spec scenario 4: a First transform added
// after a Then transform still runs before it.
func TestMemoChainPrecedence(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		m := NewMemoChain(func(_ int, _ bool) int { return 2 })
		m.Then(func(x int) int { return x * 2 })
		m.First(func(x int) int { return x + 3 })
		assert.Equal(t, 10, m.Get())
	})

	WithNewRuntime(func(_ *Runtime) {
		m := NewMemoChain(func(_ int, _ bool) int { return 2 })
		m.Then(func(x int) int { return x * 2 })
		m.Then(func(x int) int { return x + 3 })
		assert.Equal(t, 7, m.Get())
	})
}

// TestEffectDrainOrderAndCount is spec scenario 5: the effect's initial
// run counts once, and each of three distinct signal writes drains it
// exactly once more.
func TestEffectDrainOrderAndCount(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(1)
		count := NewSignal(0)

		NewEffect(func() {
			s.Get()
			count.UpdateUntracked(func(c *int) { *c++ })
		})

		assert.Equal(t, 1, count.GetUntracked())

		s.Set(2)
		s.Set(3)
		s.Set(4)

		assert.Equal(t, 4, count.GetUntracked())
	})
}

// TestDenyNewScope is spec scenario 6: creating a reactive node under a
// deny-new scope panics.
func TestDenyNewScope(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		scope := NewDenyNewScope()
		assert.Panics(t, func() {
			scope.Run(func() {
				NewSignal(0)
			})
		})
	})
}

// TestSignalSetEquality is the §8 universal invariant that a signal write
// is never equality-filtered, even though a dependent memo's own equality
// check absorbs the resulting no-op.
func TestSignalSetEquality(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(5)
		m := NewMemo(func(_ int, _ bool) int { return s.Get() })
		assert.Equal(t, 5, m.Get())
		assert.Equal(t, 1, m.RunCount())

		s.Set(5)
		assert.Equal(t, 5, m.Get())
		assert.Equal(t, 2, m.RunCount())
	})
}

// TestReadWriteRoundTrip is the §8 round-trip invariant: read after write
// yields the written value.
func TestReadWriteRoundTrip(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal("a")
		s.Set("b")
		assert.Equal(t, "b", s.Get())
	})
}

// TestDoubleDisposeIsNoOp is the §8 idempotence invariant.
func TestDoubleDisposeIsNoOp(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(1)
		s.Dispose()
		assert.False(t, s.IsAlive())
		assert.NotPanics(t, func() { s.Dispose() })
	})
}

// TestMemoNeverReadingRunsOnce is the §8 boundary case: a memo whose
// callback never reads anything runs exactly once, ever, no matter how
// many unrelated writes happen afterward.
func TestMemoNeverReadingRunsOnce(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(1)
		m := NewMemo(func(_ int, _ bool) int { return 42 })
		assert.Equal(t, 42, m.Get())
		assert.Equal(t, 1, m.RunCount())

		s.Set(2)
		assert.Equal(t, 42, m.Get())
		assert.Equal(t, 1, m.RunCount())
	})
}

func TestUntrack(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(1)
		runs := 0
		m := NewMemo(func(_ int, _ bool) int {
			runs++
			return UntrackValue(func() int { return s.Get() })
		})

		assert.Equal(t, 1, m.Get())
		assert.Equal(t, 1, runs)

		s.Set(5)
		assert.Equal(t, 1, m.Get())
		assert.Equal(t, 1, runs)
	})
}

func TestScopeDisposalTearsDownOwnedSignals(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		var inner *Signal[int]
		scope := NewScope()
		scope.Run(func() {
			inner = NewSignal(1)
		})
		assert.True(t, inner.IsAlive())

		scope.Dispose()
		assert.False(t, inner.IsAlive())
	})
}

// TestCycleWriteInsideOwnEffectReturnsError covers the §9 open-question
// resolution: writing to a signal from inside an effect that itself reads
// that same signal is a cycle, surfaced as an error from notify rather
// than a panic that would abort the whole drain.
func TestCycleWriteInsideOwnEffectReturnsError(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(0)
		var innerErr error

		NewEffect(func() {
			v := s.Get()
			if v == 0 {
				innerErr = s.Set(v + 1)
			}
		})

		assert.Error(t, innerErr)
		assert.True(t, IsCycleError(innerErr))
	})
}

func TestSignalSetterWiresSourceIntoTarget(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		source := NewSignal(1)
		target := NewSignal(100)

		setter := NewSignalSetter[int, int](source, target, func(src, _ int) int { return src * 2 })
		defer setter.Dispose()

		assert.Equal(t, 2, target.Get())

		source.Set(3)
		assert.Equal(t, 6, target.Get())
	})
}

func TestMapDerivesFromReactiveSource(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(3)
		doubled := Map[int, int](s, func(v int) int { return v * 2 })
		assert.Equal(t, 6, doubled.Get())

		s.Set(4)
		assert.Equal(t, 8, doubled.Get())
	})
}

func TestInertSatisfiesReactive(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		var r Reactive[int] = NewInert(7)
		assert.Equal(t, 7, r.Get())
	})
}

func TestProfileReflectsGraphShape(t *testing.T) {
	WithNewRuntime(func(_ *Runtime) {
		s := NewSignal(1)
		m := NewMemo(func(_ int, _ bool) int { return s.Get() })
		m.Get()

		p := Profile()
		assert.Equal(t, 1, p.NodesByKind[internal.SignalKind])
		assert.GreaterOrEqual(t, p.SourceEdges, 1)
		assert.GreaterOrEqual(t, p.SubscriberEdges, 1)
	})
}
