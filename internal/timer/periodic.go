package timer

import (
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Periodic is a recurring countdown component. It is never detached by
// the system; Elapsed wraps back to zero each time it fires.
type Periodic struct {
	Name     string `json:"name"`
	Interval int    `json:"interval"`
	Elapsed  int    `json:"elapsed"`
}

// OnPeriodic is invoked each time a Periodic component's Elapsed reaches
// its Interval.
type OnPeriodic func(w *ecs.World, ctx engine.TickContext, e ecs.Entity, periodic Periodic)

// PeriodicSystem returns an engine.System that advances every Periodic
// component by one tick and fires onFire whenever one completes a cycle.
func PeriodicSystem(onFire OnPeriodic) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		for e, p := range ecs.Query1[Periodic](w) {
			p.Elapsed++
			if p.Elapsed >= p.Interval {
				snapshot := *p
				p.Elapsed = 0
				if onFire != nil {
					onFire(w, ctx, e, snapshot)
				}
			}
		}
		return nil
	}
}
