package ability

import (
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Hooks bundles the optional callbacks the ability system may fire.
type Hooks struct {
	OnStart func(name string)
	OnTick  func(name string, remaining int)
	OnEnd   func(name string)
}

// System returns an engine.System implementing the five-step tick order:
// fire on_start for abilities activated since the last tick, immediately
// ending and starting cooldown for zero-duration abilities; decrement and
// expire active abilities, starting their cooldown; fire on_tick for
// survivors; decrement cooldowns; advance charge regeneration.
//
// When a restore bumps the manager's generation counter, the system
// rebuilds its already-started set from runtime state before running,
// treating every currently active ability as already started so restore
// never replays on_start for it.
func System(m *Manager, guards *GuardRegistry, hooks Hooks) engine.System {
	started := make(map[string]struct{})
	var lastGeneration uint64

	return func(w *ecs.World, ctx engine.TickContext) error {
		if m.generation != lastGeneration {
			started = make(map[string]struct{})
			for _, name := range m.order {
				if m.state[name].activeStartedAt != -1 {
					started[name] = struct{}{}
				}
			}
			lastGeneration = m.generation
		}

		// 1. Fire on_start for abilities activated but not yet started.
		for _, name := range m.order {
			st := m.state[name]
			if st.activeStartedAt == -1 {
				continue
			}
			if _, already := started[name]; already {
				continue
			}
			started[name] = struct{}{}
			if hooks.OnStart != nil {
				hooks.OnStart(name)
			}
			if st.activeRemaining <= 0 {
				endAbility(m, name, hooks)
				delete(started, name)
			}
		}

		// 2. Decrement and expire active abilities.
		for _, name := range m.order {
			st := m.state[name]
			if st.activeStartedAt == -1 {
				continue
			}
			st.activeRemaining--
			if st.activeRemaining <= 0 {
				endAbility(m, name, hooks)
				delete(started, name)
			}
		}

		// 3. Tick survivors.
		for _, name := range m.order {
			st := m.state[name]
			if st.activeStartedAt == -1 {
				continue
			}
			if hooks.OnTick != nil {
				hooks.OnTick(name, st.activeRemaining)
			}
		}

		// 4. Decrement cooldowns.
		for _, name := range m.order {
			st := m.state[name]
			if st.cooldownRemaining > 0 {
				st.cooldownRemaining--
			}
		}

		// 5. Advance charge regeneration.
		for _, name := range m.order {
			def := m.defs[name]
			st := m.state[name]
			if def.MaxCharges < 0 || st.regenRemaining <= 0 {
				continue
			}
			st.regenRemaining--
			if st.regenRemaining <= 0 {
				if st.charges < def.MaxCharges {
					st.charges++
				}
				if st.charges < def.MaxCharges {
					st.regenRemaining = def.ChargeRegen
				}
			}
		}

		_ = guards
		return nil
	}
}

func endAbility(m *Manager, name string, hooks Hooks) {
	st := m.state[name]
	st.activeStartedAt = -1
	st.activeRemaining = 0
	if hooks.OnEnd != nil {
		hooks.OnEnd(name)
	}
	def := m.defs[name]
	if def.Cooldown > 0 {
		st.cooldownRemaining = def.Cooldown
	}
}
