package ability

// StateSnapshot is the runtime state of one ability.
type StateSnapshot struct {
	Charges           int   `json:"charges"`
	CooldownRemaining int   `json:"cooldown_remaining"`
	ActiveRemaining   int   `json:"active_remaining"`
	ActiveStartedAt   int64 `json:"active_started_at"`
	RegenRemaining    int   `json:"regen_remaining"`
}

// Snapshot is the value tree for every defined ability's runtime state.
// Definitions are not included: restoring requires the caller to
// redefine every ability first.
type Snapshot struct {
	Abilities map[string]StateSnapshot `json:"abilities"`
}

// Snapshot captures the manager's runtime state.
func (m *Manager) Snapshot() Snapshot {
	out := make(map[string]StateSnapshot, len(m.order))
	for _, name := range m.order {
		st := m.state[name]
		out[name] = StateSnapshot{
			Charges:           st.charges,
			CooldownRemaining: st.cooldownRemaining,
			ActiveRemaining:   st.activeRemaining,
			ActiveStartedAt:   st.activeStartedAt,
			RegenRemaining:    st.regenRemaining,
		}
	}
	return Snapshot{Abilities: out}
}

// Restore fills runtime state from snap and bumps the restore-generation
// counter so the ability system rebuilds its already-started set instead
// of replaying on_start for abilities that were already active. Unknown
// ability names in the snapshot are ignored rather than failing, since a
// definition set can legitimately shrink between runs.
func (m *Manager) Restore(snap Snapshot) {
	for name, s := range snap.Abilities {
		st, defined := m.state[name]
		if !defined {
			continue
		}
		st.charges = s.Charges
		st.cooldownRemaining = s.CooldownRemaining
		st.activeRemaining = s.ActiveRemaining
		st.activeStartedAt = s.ActiveStartedAt
		st.regenRemaining = s.RegenRemaining
	}
	m.generation++
}
