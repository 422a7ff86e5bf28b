// Package engine implements the kernel: the fixed-timestep clock, the tick
// context handed to every system, and the Engine that orchestrates the
// system pipeline, lifecycle hooks, pacing, and snapshot/restore. It
// mirrors the orchestration shape of a tick-driven game loop — a clock
// advanced once per tick, a context built from that clock, an ordered list
// of systems invoked every tick — generalized from a single hard-coded
// game into a library over an arbitrary ecs.World and arbitrary systems.
package engine

import "github.com/unmarco/tickengine/internal/kernelerr"

// Clock owns the tick counter and the fixed timestep derived from ticks
// per second. dt is never set independently of tps.
type Clock struct {
	tps  int
	dt   float64
	tick uint64
}

// NewClock constructs a clock for the given ticks-per-second. tps must be
// positive.
func NewClock(tps int) (*Clock, error) {
	if tps <= 0 {
		return nil, &kernelerr.BadInputError{Reason: "tps must be positive"}
	}
	return &Clock{tps: tps, dt: 1.0 / float64(tps)}, nil
}

// TPS returns the configured ticks-per-second.
func (c *Clock) TPS() int { return c.tps }

// Dt returns the fixed per-tick duration in seconds.
func (c *Clock) Dt() float64 { return c.dt }

// Tick returns the current tick number (0 before the first Advance).
func (c *Clock) Tick() uint64 { return c.tick }

// Advance increments the tick counter and returns the new value.
func (c *Clock) Advance() uint64 {
	c.tick++
	return c.tick
}

// Reset sets the tick counter to n, used when installing a restored
// snapshot.
func (c *Clock) Reset(n uint64) {
	c.tick = n
}

// Elapsed returns tick_number * dt, the simulated seconds elapsed.
func (c *Clock) Elapsed() float64 {
	return float64(c.tick) * c.dt
}
