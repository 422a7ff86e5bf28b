package engine

import (
	"math/rand"
	"time"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/rng"
)

// System is invoked every tick with exclusive write access to the world.
// A system that returns an error aborts the tick; the kernel never
// swallows it.
type System func(w *ecs.World, ctx TickContext) error

// Hook runs once per Run/RunForever invocation, never per Step.
type Hook func(w *ecs.World, ctx TickContext) error

// runState tracks the engine's lifecycle: NotStarted -> Running -> Stopped.
type runState int

const (
	stateNotStarted runState = iota
	stateRunning
	stateStopped
)

// Engine orchestrates one world, one clock, and one RNG against an
// ordered pipeline of systems. It is the sole owner of all three; nothing
// outside a system call ever mutates the world.
type Engine struct {
	world  *ecs.World
	clock  *Clock
	seed   int64
	rngSrc *rng.Source
	rnd    *rand.Rand

	systems    []System
	startHooks []Hook
	stopHooks  []Hook

	state runState
	stop  stopFlag
}

// New constructs an engine with a fresh world, a clock at the given
// ticks-per-second, and an RNG seeded deterministically from seed.
func New(tps int, seed int64) (*Engine, error) {
	clock, err := NewClock(tps)
	if err != nil {
		return nil, err
	}
	rnd, src, err := rng.FromState(seed, nil)
	if err != nil {
		return nil, err
	}
	return &Engine{
		world:  ecs.New(),
		clock:  clock,
		seed:   seed,
		rngSrc: src,
		rnd:    rnd,
	}, nil
}

// World exposes the engine's world for registration and inspection
// outside of a system call.
func (e *Engine) World() *ecs.World { return e.world }

// Clock exposes the engine's clock.
func (e *Engine) Clock() *Clock { return e.clock }

// Seed returns the seed the engine's RNG was constructed with.
func (e *Engine) Seed() int64 { return e.seed }

// RNG returns the shared random source every system must draw through.
func (e *Engine) RNG() *rand.Rand { return e.rnd }

// AddSystem appends fn to the end of the system pipeline. Systems run in
// the order they were added, every tick.
func (e *Engine) AddSystem(fn System) {
	e.systems = append(e.systems, fn)
}

// OnStart appends a hook invoked once at the start of Run/RunForever,
// before the first tick. Its TickContext carries Tick == 0.
func (e *Engine) OnStart(h Hook) {
	e.startHooks = append(e.startHooks, h)
}

// OnStop appends a hook invoked once when Run/RunForever exits normally
// (tick budget exhausted or a stop was requested). Hooks are skipped on an
// exceptional exit (a system or start hook returned an error).
func (e *Engine) OnStop(h Hook) {
	e.stopHooks = append(e.stopHooks, h)
}

// Step advances the clock once and runs every system in insertion order.
// It never invokes lifecycle hooks. A system error aborts the tick
// immediately, leaving the clock at the tick it reached.
func (e *Engine) Step() error {
	tick := e.clock.Advance()
	e.stop = stopFlag{}
	ctx := newContext(tick, e.clock.Dt(), e.clock.Elapsed(), e.rnd, &e.stop)
	for _, sys := range e.systems {
		if err := sys(e.world, ctx); err != nil {
			return err
		}
		if e.stop.requested {
			break
		}
	}
	return nil
}

// Run fires start hooks, steps up to n times (stopping early if a system
// or hook requests it), then fires stop hooks. On an error from any hook
// or system, Run returns immediately without running stop hooks.
func (e *Engine) Run(n int) error {
	e.state = stateRunning
	startCtx := newContext(0, e.clock.Dt(), e.clock.Elapsed(), e.rnd, &e.stop)
	for _, h := range e.startHooks {
		if err := h(e.world, startCtx); err != nil {
			return err
		}
		if e.stop.requested {
			break
		}
	}

	if !e.stop.requested {
		for i := 0; i < n; i++ {
			if err := e.Step(); err != nil {
				return err
			}
			if e.stop.requested {
				break
			}
		}
	}

	e.state = stateStopped
	stopCtx := newContext(e.clock.Tick(), e.clock.Dt(), e.clock.Elapsed(), e.rnd, &e.stop)
	for _, h := range e.stopHooks {
		if err := h(e.world, stopCtx); err != nil {
			return err
		}
	}
	return nil
}

// RunForever behaves like Run with an unbounded tick count: every tick
// computes its own wall-clock duration and sleeps dt-elapsed if positive,
// pacing the simulation to real time. It returns when stopCh is closed or
// a system/hook requests a stop. Catch-up or tick-skipping on overrun is
// out of scope; an overrun tick simply runs late.
func (e *Engine) RunForever(stopCh <-chan struct{}) error {
	e.state = stateRunning
	startCtx := newContext(0, e.clock.Dt(), e.clock.Elapsed(), e.rnd, &e.stop)
	for _, h := range e.startHooks {
		if err := h(e.world, startCtx); err != nil {
			return err
		}
		if e.stop.requested {
			break
		}
	}

	budget := time.Duration(e.clock.Dt() * float64(time.Second))
	if !e.stop.requested {
	loop:
		for {
			select {
			case <-stopCh:
				break loop
			default:
			}
			start := time.Now()
			if err := e.Step(); err != nil {
				return err
			}
			if e.stop.requested {
				break
			}
			if leftover := budget - time.Since(start); leftover > 0 {
				time.Sleep(leftover)
			}
		}
	}

	e.state = stateStopped
	stopCtx := newContext(e.clock.Tick(), e.clock.Dt(), e.clock.Elapsed(), e.rnd, &e.stop)
	for _, h := range e.stopHooks {
		if err := h(e.world, stopCtx); err != nil {
			return err
		}
	}
	return nil
}
