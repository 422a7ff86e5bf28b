// Package timer implements the one-shot Timer, recurring Periodic, and
// value-interpolating Tween components together with the systems that
// drive them.
package timer

import (
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Timer is a one-shot countdown component. From attach to fire the
// Remaining value strictly decreases; fire happens exactly once.
type Timer struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}

// OnFire is invoked exactly once, the tick Remaining reaches zero, after
// the Timer component has already been detached.
type OnFire func(w *ecs.World, ctx engine.TickContext, e ecs.Entity, timer Timer)

// System returns an engine.System that decrements every Timer by one tick
// and fires onFire for each that reaches zero.
func System(onFire OnFire) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		var fired []struct {
			e ecs.Entity
			t Timer
		}
		for e, t := range ecs.Query1[Timer](w) {
			t.Remaining--
			if t.Remaining <= 0 {
				fired = append(fired, struct {
					e ecs.Entity
					t Timer
				}{e, *t})
			}
		}
		for _, f := range fired {
			ecs.Detach[Timer](w, f.e)
			if onFire != nil {
				onFire(w, ctx, f.e, f.t)
			}
		}
		return nil
	}
}
