package eventsched

import (
	"testing"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

func TestCycleAndEventInteraction(t *testing.T) {
	e, _ := engine.New(10, 1)
	sched := New()
	sched.DefineCycle(CycleDef{
		Name: "seasons",
		Phases: []PhaseDef{
			{Name: "spring", Duration: 3},
			{Name: "summer", Duration: 3},
			{Name: "autumn", Duration: 3},
			{Name: "winter", Duration: 3},
		},
	})
	sched.DefineEvent(EventDef{
		Name:        "cold_snap",
		Duration:    Duration{Fixed: 1},
		Probability: 1,
		Guards:      []string{"is_winter"},
	})
	guards := NewGuardRegistry()
	guards.Register("is_winter", func(w *ecs.World) bool {
		return sched.IsActive("winter")
	})

	e.AddSystem(System(sched, guards, Hooks{}))

	sawDuringWinter := false
	sawOutsideWinter := false
	for i := 0; i < 16; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		active := sched.IsActive("cold_snap")
		if sched.IsActive("winter") {
			if active {
				sawDuringWinter = true
			}
		} else if active {
			sawOutsideWinter = true
		}
	}

	if !sawDuringWinter {
		t.Fatalf("expected cold_snap to activate at least once during winter")
	}
	if sawOutsideWinter {
		t.Fatalf("expected cold_snap to never be active outside winter")
	}
}

func TestEventProbabilityZeroNeverFires(t *testing.T) {
	e, _ := engine.New(10, 1)
	sched := New()
	sched.DefineEvent(EventDef{Name: "rare", Duration: Duration{Fixed: 1}, Probability: 0})
	guards := NewGuardRegistry()
	e.AddSystem(System(sched, guards, Hooks{}))
	for i := 0; i < 20; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if sched.IsActive("rare") {
		t.Fatalf("expected zero-probability event to never activate")
	}
}

func TestUnknownGuardFailsTick(t *testing.T) {
	e, _ := engine.New(10, 1)
	sched := New()
	sched.DefineEvent(EventDef{Name: "x", Duration: Duration{Fixed: 1}, Probability: 1, Guards: []string{"missing"}})
	guards := NewGuardRegistry()
	e.AddSystem(System(sched, guards, Hooks{}))
	if err := e.Step(); err == nil {
		t.Fatalf("expected error for unknown guard")
	}
}
