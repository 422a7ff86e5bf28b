package script

import (
	"github.com/unmarco/tickengine/internal/ability"
	"github.com/unmarco/tickengine/internal/ai"
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/eventsched"
)

// AbilityGuard returns an ability.Guard that evaluates src with "tick"
// bound to the current tick number.
func (e *Engine) AbilityGuard(src string) ability.Guard {
	return func(w *ecs.World, ctx engine.TickContext) bool {
		ok, err := e.EvalBool(src, map[string]any{"tick": ctx.Tick})
		return err == nil && ok
	}
}

// EventGuard returns an eventsched.Guard evaluating src with no bound
// variables.
func (e *Engine) EventGuard(src string) eventsched.Guard {
	return func(w *ecs.World) bool {
		ok, err := e.EvalBool(src, nil)
		return err == nil && ok
	}
}

// Consideration returns an ai.Consideration that evaluates src with every
// blackboard entry bound as a variable, plus "tick".
func (e *Engine) Consideration(src string) ai.Consideration {
	return func(w *ecs.World, ctx engine.TickContext, ent ecs.Entity, bb *ai.Blackboard) float64 {
		vars := make(map[string]any, len(bb.Data)+1)
		for k, v := range bb.Data {
			vars[k] = v
		}
		vars["tick"] = ctx.Tick
		n, err := e.EvalNumber(src, vars)
		if err != nil {
			return 0
		}
		return n
	}
}
