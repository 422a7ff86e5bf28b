package eventsched

// ActiveEventSnapshot is the runtime state of one active event.
type ActiveEventSnapshot struct {
	Remaining int    `json:"remaining"`
	StartedAt uint64 `json:"started_at"`
}

// CycleSnapshot is the runtime state of one cycle.
type CycleSnapshot struct {
	DelayRemaining int    `json:"delay_remaining"`
	PhaseIndex     int    `json:"phase_index"`
	PhaseRemaining int    `json:"phase_remaining"`
	Started        bool   `json:"started"`
}

// Snapshot is the value tree for the scheduler's runtime state. Definitions
// are not included: restoring requires the caller to redefine every event
// and cycle first.
type Snapshot struct {
	Active    map[string]ActiveEventSnapshot `json:"active"`
	Cooldowns map[string]int                 `json:"cooldowns"`
	Cycles    map[string]CycleSnapshot       `json:"cycles"`
}

// Snapshot captures the scheduler's runtime state.
func (s *Scheduler) Snapshot() Snapshot {
	active := make(map[string]ActiveEventSnapshot, len(s.active))
	for name, a := range s.active {
		active[name] = ActiveEventSnapshot{Remaining: a.Remaining, StartedAt: a.StartedAt}
	}
	cooldowns := make(map[string]int, len(s.cooldowns))
	for name, c := range s.cooldowns {
		cooldowns[name] = c
	}
	cycles := make(map[string]CycleSnapshot, len(s.cycles))
	for name, rt := range s.cycles {
		cycles[name] = CycleSnapshot{
			DelayRemaining: rt.delayRemaining,
			PhaseIndex:     rt.phaseIndex,
			PhaseRemaining: rt.phaseRemaining,
			Started:        rt.started,
		}
	}
	return Snapshot{Active: active, Cooldowns: cooldowns, Cycles: cycles}
}

// Restore fills runtime state from snap. Every event and cycle definition
// referenced must already have been (re-)registered via DefineEvent and
// DefineCycle; unknown names in the snapshot are ignored rather than
// failing, since a definition set can legitimately shrink between runs.
func (s *Scheduler) Restore(snap Snapshot) {
	s.active = make(map[string]*activeEvent, len(snap.Active))
	for name, a := range snap.Active {
		if _, defined := s.eventDefs[name]; !defined {
			continue
		}
		s.active[name] = &activeEvent{Remaining: a.Remaining, StartedAt: a.StartedAt}
	}
	s.cooldowns = make(map[string]int, len(snap.Cooldowns))
	for name, c := range snap.Cooldowns {
		if _, defined := s.eventDefs[name]; !defined {
			continue
		}
		s.cooldowns[name] = c
	}
	for name, c := range snap.Cycles {
		if _, defined := s.cycleDefs[name]; !defined {
			continue
		}
		s.cycles[name] = &cycleRuntime{
			delayRemaining: c.DelayRemaining,
			phaseIndex:     c.PhaseIndex,
			phaseRemaining: c.PhaseRemaining,
			started:        c.Started,
		}
	}
}
