package llm

import (
	"sort"

	"github.com/unmarco/tickengine/internal/ai"
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Hooks bundles the optional callbacks the LLM system may fire.
type Hooks struct {
	OnResponse func(e ecs.Entity)
	OnError    func(e ecs.Entity, err error)
}

// System returns an engine.System implementing the per-tick strategic
// query pipeline: drain any responses that arrived since the last tick,
// then dispatch new queries for eligible agents in descending priority
// order until the rate limit is exhausted.
func System(m *Manager, hooks Hooks) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		m.limiter.resetTickBudget()
		drainResults(m, w, ctx, hooks)

		type candidate struct {
			entity ecs.Entity
			agent  *Agent
		}
		var candidates []candidate
		for row := range ecs.Query2[Agent, ai.Blackboard](w) {
			agent := row.A
			if agent.Pending {
				continue
			}
			if ctx.Tick < agent.CooldownUntil {
				continue
			}
			if ctx.Tick < agent.LastQueryTick+uint64(agent.QueryInterval) {
				continue
			}
			candidates = append(candidates, candidate{entity: row.Entity, agent: agent})
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].agent.Priority > candidates[j].agent.Priority
		})

		for _, c := range candidates {
			prompt, ok := m.assemble(w, c.entity, c.agent)
			if !ok {
				continue
			}
			if !m.limiter.allow() {
				break
			}
			c.agent.Pending = true
			c.agent.LastQueryTick = ctx.Tick
			m.dispatch(c.entity, prompt)
		}
		return nil
	}
}

func drainResults(m *Manager, w *ecs.World, ctx engine.TickContext, hooks Hooks) {
	for {
		select {
		case res := <-m.results:
			applyResult(m, w, ctx, res, hooks)
		default:
			return
		}
	}
}

func applyResult(m *Manager, w *ecs.World, ctx engine.TickContext, res pendingResult, hooks Hooks) {
	agent, err := ecs.Get[Agent](w, res.entity)
	if err != nil {
		return
	}
	agent.Pending = false

	if res.err != nil {
		agent.ConsecutiveErrors++
		if agent.ConsecutiveErrors >= agent.MaxRetries {
			agent.CooldownUntil = ctx.Tick + uint64(agent.CooldownTicks)
			agent.ConsecutiveErrors = 0
		}
		if hooks.OnError != nil {
			hooks.OnError(res.entity, res.err)
		}
		return
	}

	bb, err := ecs.Get[ai.Blackboard](w, res.entity)
	if err != nil {
		return
	}
	parse, ok := m.parserFor(agent.Parser)
	if !ok {
		return
	}
	if parseErr := parse(res.response, bb); parseErr != nil {
		agent.ConsecutiveErrors++
		if agent.ConsecutiveErrors >= agent.MaxRetries {
			agent.CooldownUntil = ctx.Tick + uint64(agent.CooldownTicks)
			agent.ConsecutiveErrors = 0
		}
		if hooks.OnError != nil {
			hooks.OnError(res.entity, parseErr)
		}
		return
	}

	agent.ConsecutiveErrors = 0
	if hooks.OnResponse != nil {
		hooks.OnResponse(res.entity)
	}
}
