// Package eventsched implements world-level timed events and repeating
// phase cycles: event definitions with duration, cooldown, probability,
// and guards; cycle definitions of ordered phases that loop forever once
// an initial delay elapses.
package eventsched

import (
	"math/rand"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/kernelerr"
)

// Duration is either a fixed tick count or an inclusive random range,
// resolved via the shared RNG when an event activates.
type Duration struct {
	Fixed int
	Min   int
	Max   int
	Ranged bool
}

// Resolve returns the fixed duration, or a uniform draw from [Min, Max]
// when Ranged.
func (d Duration) Resolve(rnd *rand.Rand) int {
	if !d.Ranged {
		return d.Fixed
	}
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + rnd.Intn(d.Max-d.Min+1)
}

// EventDef declares one world-level timed event.
type EventDef struct {
	Name        string
	Duration    Duration
	Cooldown    int
	Probability float64
	Guards      []string
}

// PhaseDef is one ordered phase of a cycle.
type PhaseDef struct {
	Name     string
	Duration int
}

// CycleDef declares a repeating sequence of phases with an initial delay.
type CycleDef struct {
	Name   string
	Phases []PhaseDef
	Delay  int
}

// Guard is a world-level predicate consulted before an event activates.
type Guard func(w *ecs.World) bool

// GuardRegistry resolves guard names for events.
type GuardRegistry struct {
	guards map[string]Guard
}

// NewGuardRegistry constructs an empty registry.
func NewGuardRegistry() *GuardRegistry {
	return &GuardRegistry{guards: make(map[string]Guard)}
}

// Register associates name with fn.
func (r *GuardRegistry) Register(name string, fn Guard) {
	r.guards[name] = fn
}

func (r *GuardRegistry) lookup(name string) (Guard, bool) {
	fn, ok := r.guards[name]
	return fn, ok
}

type activeEvent struct {
	Remaining int
	StartedAt uint64
}

type cycleRuntime struct {
	delayRemaining int
	phaseIndex     int
	phaseRemaining int
	started        bool
}

// Hooks bundles every optional callback the scheduler may fire.
type Hooks struct {
	OnEventStart func(name string)
	OnEventTick  func(name string, remaining int)
	OnEventEnd   func(name string)
	OnPhaseStart func(cycle, phase string)
	OnPhaseEnd   func(cycle, phase string)
}

// Scheduler owns event and cycle definitions plus their runtime state.
// Insertion order of definitions is preserved and is the evaluation order.
type Scheduler struct {
	eventOrder []string
	eventDefs  map[string]EventDef
	cycleOrder []string
	cycleDefs  map[string]CycleDef

	active    map[string]*activeEvent
	cooldowns map[string]int
	cycles    map[string]*cycleRuntime
}

// New constructs an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		eventDefs: make(map[string]EventDef),
		cycleDefs: make(map[string]CycleDef),
		active:    make(map[string]*activeEvent),
		cooldowns: make(map[string]int),
		cycles:    make(map[string]*cycleRuntime),
	}
}

// DefineEvent registers or replaces an event definition.
func (s *Scheduler) DefineEvent(def EventDef) {
	if _, exists := s.eventDefs[def.Name]; !exists {
		s.eventOrder = append(s.eventOrder, def.Name)
	}
	s.eventDefs[def.Name] = def
}

// DefineCycle registers or replaces a cycle definition, initializing its
// runtime state to the start of the initial delay.
func (s *Scheduler) DefineCycle(def CycleDef) {
	if _, exists := s.cycleDefs[def.Name]; !exists {
		s.cycleOrder = append(s.cycleOrder, def.Name)
	}
	s.cycleDefs[def.Name] = def
	s.cycles[def.Name] = &cycleRuntime{delayRemaining: def.Delay}
}

// IsActive reports whether name (an event) is currently active, or
// whether name (a phase within any cycle) is the currently indexed phase.
func (s *Scheduler) IsActive(name string) bool {
	if _, ok := s.active[name]; ok {
		return true
	}
	for cycleName, rt := range s.cycles {
		def := s.cycleDefs[cycleName]
		if !rt.started || len(def.Phases) == 0 {
			continue
		}
		if def.Phases[rt.phaseIndex].Name == name {
			return true
		}
	}
	return false
}

// EventRemaining returns the remaining ticks for an active event.
func (s *Scheduler) EventRemaining(name string) (int, bool) {
	a, ok := s.active[name]
	if !ok {
		return 0, false
	}
	return a.Remaining, true
}

// Cooldown returns the remaining cooldown ticks for name, if any.
func (s *Scheduler) Cooldown(name string) (int, bool) {
	c, ok := s.cooldowns[name]
	return c, ok
}

// System returns an engine.System implementing the five-phase tick order:
// expire active events, fire on_tick for survivors, advance cycles,
// decrement cooldowns, then roll for new activations in definition order.
func System(s *Scheduler, guards *GuardRegistry, hooks Hooks) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		expiredThisTick := make(map[string]struct{})

		// 1. Decrement and expire active events, in definition order so
		// hook firing order is independent of map iteration.
		for _, name := range s.eventOrder {
			a, ok := s.active[name]
			if !ok {
				continue
			}
			a.Remaining--
			if a.Remaining <= 0 {
				delete(s.active, name)
				expiredThisTick[name] = struct{}{}
				if hooks.OnEventEnd != nil {
					hooks.OnEventEnd(name)
				}
				def := s.eventDefs[name]
				if def.Cooldown > 0 {
					s.cooldowns[name] = def.Cooldown
				}
			}
		}

		// 2. Tick survivors, in definition order.
		for _, name := range s.eventOrder {
			a, ok := s.active[name]
			if !ok {
				continue
			}
			if hooks.OnEventTick != nil {
				hooks.OnEventTick(name, a.Remaining)
			}
		}

		// 3. Advance cycles.
		for _, cycleName := range s.cycleOrder {
			def := s.cycleDefs[cycleName]
			rt := s.cycles[cycleName]
			if len(def.Phases) == 0 {
				continue
			}
			if !rt.started {
				if rt.delayRemaining > 0 {
					rt.delayRemaining--
					if rt.delayRemaining > 0 {
						continue
					}
				}
				rt.started = true
				rt.phaseIndex = 0
				rt.phaseRemaining = def.Phases[0].Duration
				if hooks.OnPhaseStart != nil {
					hooks.OnPhaseStart(cycleName, def.Phases[0].Name)
				}
				continue
			}
			rt.phaseRemaining--
			if rt.phaseRemaining <= 0 {
				if hooks.OnPhaseEnd != nil {
					hooks.OnPhaseEnd(cycleName, def.Phases[rt.phaseIndex].Name)
				}
				rt.phaseIndex = (rt.phaseIndex + 1) % len(def.Phases)
				rt.phaseRemaining = def.Phases[rt.phaseIndex].Duration
				if hooks.OnPhaseStart != nil {
					hooks.OnPhaseStart(cycleName, def.Phases[rt.phaseIndex].Name)
				}
			}
		}

		// 4. Decrement cooldowns, in definition order.
		for _, name := range s.eventOrder {
			remaining, ok := s.cooldowns[name]
			if !ok {
				continue
			}
			remaining--
			if remaining <= 0 {
				delete(s.cooldowns, name)
			} else {
				s.cooldowns[name] = remaining
			}
		}

		// 5. Roll for new activations, in definition order.
		for _, name := range s.eventOrder {
			if _, justExpired := expiredThisTick[name]; justExpired {
				continue
			}
			if _, active := s.active[name]; active {
				continue
			}
			if cd, onCooldown := s.cooldowns[name]; onCooldown && cd > 0 {
				continue
			}
			def := s.eventDefs[name]

			allPass := true
			for _, guardName := range def.Guards {
				guard, ok := guards.lookup(guardName)
				if !ok {
					return &kernelerr.UnknownNameError{Registry: "guard", Name: guardName}
				}
				if !guard(w) {
					allPass = false
					break
				}
			}
			if !allPass {
				continue
			}

			if ctx.Random.Float64() > def.Probability {
				continue
			}

			duration := def.Duration.Resolve(ctx.Random)
			s.active[name] = &activeEvent{Remaining: duration, StartedAt: ctx.Tick}
			if hooks.OnEventStart != nil {
				hooks.OnEventStart(name)
			}
		}

		return nil
	}
}
