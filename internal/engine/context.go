package engine

import "math/rand"

// stopFlag is shared by every TickContext value built for the same tick so
// that a request to stop raised from inside one system is visible to the
// engine loop once the current system returns.
type stopFlag struct {
	requested bool
}

// TickContext is the immutable-by-convention value passed to every system
// and lifecycle hook each tick. Tick is 0 during start hooks and >= 1 for
// every system invocation thereafter.
type TickContext struct {
	Tick    uint64
	Dt      float64
	Elapsed float64
	Random  *rand.Rand
	stop    *stopFlag
}

// RequestStop raises the engine's stop flag. The currently running system
// still runs to completion; no further system in this tick runs, and the
// owning Run/RunForever loop exits before the next tick.
func (c TickContext) RequestStop() {
	if c.stop != nil {
		c.stop.requested = true
	}
}

// StopRequested reports whether RequestStop has been called for this tick
// or an earlier one in the same run.
func (c TickContext) StopRequested() bool {
	return c.stop != nil && c.stop.requested
}

func newContext(tick uint64, dt, elapsed float64, rnd *rand.Rand, stop *stopFlag) TickContext {
	return TickContext{Tick: tick, Dt: dt, Elapsed: elapsed, Random: rnd, stop: stop}
}
