// Package ability implements the player-triggered ability manager: charges,
// cooldowns, duration, and the tick-ordered start/tick/end/regen pipeline
// that drives every active and cooling-down ability.
package ability

import (
	"math/rand"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Duration is either a fixed tick count or an inclusive random range.
type Duration struct {
	Fixed  int
	Min    int
	Max    int
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

// Def declares one ability. MaxCharges == -1 marks an uncharged ability;
// charge checks are skipped for it.
type Def struct {
	Name        string
	Duration    Duration
	Cooldown    int
	MaxCharges  int
	ChargeRegen int
	Guards      []string
}

// Guard is consulted at Invoke time, in addition to the charge/cooldown
// checks the manager performs itself.
type Guard func(w *ecs.World, ctx engine.TickContext) bool

// GuardRegistry resolves guard names referenced by ability definitions.
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

func (r *GuardRegistry) eval(w *ecs.World, ctx engine.TickContext, names []string) bool {
	for _, name := range names {
		fn, ok := r.guards[name]
		if !ok || !fn(w, ctx) {
			return false
		}
	}
	return true
}

type state struct {
	charges           int
	cooldownRemaining int
	activeRemaining   int
	activeStartedAt   int64 // -1 means not active
	regenRemaining    int
}

// Manager owns every ability definition and its runtime state. Insertion
// order of definitions is preserved and is the evaluation order.
type Manager struct {
	order []string
	defs  map[string]Def
	state map[string]*state

	generation uint64
}

// New constructs an empty manager.
func New() *Manager {
	return &Manager{
		defs:  make(map[string]Def),
		state: make(map[string]*state),
	}
}

// Define registers or replaces an ability definition and (re-)initializes
// its runtime state: full charges if tracked, no active duration, no
// cooldown.
func (m *Manager) Define(def Def) {
	if _, exists := m.defs[def.Name]; !exists {
		m.order = append(m.order, def.Name)
	}
	m.defs[def.Name] = def
	st := &state{activeStartedAt: -1}
	if def.MaxCharges >= 0 {
		st.charges = def.MaxCharges
	}
	m.state[def.Name] = st
}

// Generation returns the current restore-generation counter.
func (m *Manager) Generation() uint64 { return m.generation }

// Invoke attempts to activate name. It returns false — without mutating
// any state — if the ability is unknown, already active, on cooldown, out
// of charges (for charge-tracked abilities), or any of its guards fails.
// On success it consumes one charge (if tracked), resolves a duration,
// marks the ability active as of ctx.Tick, and starts charge-regen if
// applicable. The ability system, not Invoke, fires on_start.
func (m *Manager) Invoke(name string, w *ecs.World, ctx engine.TickContext, guards *GuardRegistry) bool {
	def, ok := m.defs[name]
	if !ok {
		return false
	}
	st := m.state[name]
	if st.activeStartedAt != -1 {
		return false
	}
	if st.cooldownRemaining > 0 {
		return false
	}
	tracked := def.MaxCharges >= 0
	if tracked && st.charges <= 0 {
		return false
	}
	if guards != nil && !guards.eval(w, ctx, def.Guards) {
		return false
	}

	if tracked {
		st.charges--
		if st.regenRemaining == 0 && def.ChargeRegen > 0 && st.charges < def.MaxCharges {
			st.regenRemaining = def.ChargeRegen
		}
	}
	st.activeRemaining = def.Duration.Resolve(ctx.Random)
	st.activeStartedAt = int64(ctx.Tick)
	return true
}

// Charges returns the current charge count for a charge-tracked ability.
func (m *Manager) Charges(name string) (int, bool) {
	st, ok := m.state[name]
	if !ok {
		return 0, false
	}
	def := m.defs[name]
	if def.MaxCharges < 0 {
		return 0, false
	}
	return st.charges, true
}

// Active reports whether name is currently active.
func (m *Manager) Active(name string) bool {
	st, ok := m.state[name]
	return ok && st.activeStartedAt != -1
}

// CooldownRemaining returns the remaining cooldown for name.
func (m *Manager) CooldownRemaining(name string) int {
	if st, ok := m.state[name]; ok {
		return st.cooldownRemaining
	}
	return 0
}

// Names returns every defined ability name in definition order.
func (m *Manager) Names() []string {
	return append([]string(nil), m.order...)
}
