package snapshot

import (
	"testing"

	"github.com/unmarco/tickengine/internal/ability"
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/eventsched"
)

type marker struct {
	Value int
}

func newCoordinatorSetup(t *testing.T) (*engine.Engine, *eventsched.Scheduler, *ability.Manager, *Coordinator) {
	t.Helper()
	e, err := engine.New(10, 42)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	w := e.World()
	ecs.RegisterComponent[marker](w, "demo.marker")

	sched := eventsched.New()
	sched.DefineEvent(eventsched.EventDef{Name: "storm", Duration: eventsched.Duration{Fixed: 3}, Probability: 1})

	abilities := ability.New()
	abilities.Define(ability.Def{Name: "dash", Duration: ability.Duration{Fixed: 2}, MaxCharges: -1})

	e.AddSystem(eventsched.System(sched, eventsched.NewGuardRegistry(), eventsched.Hooks{}))
	e.AddSystem(ability.System(abilities, ability.NewGuardRegistry(), ability.Hooks{}))

	coord := New(e, WithScheduler(sched), WithAbilityManager(abilities), WithGrid(100, 100))
	return e, sched, abilities, coord
}

func TestCoordinatorSnapshotRestoreContinuesSchedulerAndAbilities(t *testing.T) {
	e, sched, abilities, coord := newCoordinatorSetup(t)

	ctx := engine.TickContext{Tick: 0, Random: e.RNG()}
	if ok := abilities.Invoke("dash", e.World(), ctx, ability.NewGuardRegistry()); !ok {
		t.Fatalf("expected invoke to succeed")
	}
	if err := e.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	snap, err := coord.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Colony.Grid == nil || snap.Colony.Grid.Width != 100 {
		t.Fatalf("expected grid dimensions to be captured")
	}
	if snap.Colony.Scheduler == nil {
		t.Fatalf("expected scheduler state to be captured")
	}
	if snap.Colony.Abilities == nil {
		t.Fatalf("expected ability state to be captured")
	}

	for i := 0; i < 5; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	wasActive := sched.IsActive("storm")
	_, wasChargesOK := abilities.Charges("dash")
	_ = wasChargesOK

	e2, err := engine.New(10, 42)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	ecs.RegisterComponent[marker](e2.World(), "demo.marker")
	sched2 := eventsched.New()
	sched2.DefineEvent(eventsched.EventDef{Name: "storm", Duration: eventsched.Duration{Fixed: 3}, Probability: 1})
	abilities2 := ability.New()
	abilities2.Define(ability.Def{Name: "dash", Duration: ability.Duration{Fixed: 2}, MaxCharges: -1})
	e2.AddSystem(eventsched.System(sched2, eventsched.NewGuardRegistry(), eventsched.Hooks{}))
	e2.AddSystem(ability.System(abilities2, ability.NewGuardRegistry(), ability.Hooks{}))
	coord2 := New(e2, WithScheduler(sched2), WithAbilityManager(abilities2), WithGrid(100, 100))

	if err := coord2.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := e2.Step(); err != nil {
			t.Fatalf("replayed step %d: %v", i, err)
		}
	}
	if sched2.IsActive("storm") != wasActive {
		t.Fatalf("expected restored scheduler to replay identically")
	}
}

func TestRestorePropagatesEngineSnapshotErrors(t *testing.T) {
	_, _, _, coord := newCoordinatorSetup(t)
	bad := Snapshot{Engine: engine.Snapshot{Version: 999}}
	if err := coord.Restore(bad); err == nil {
		t.Fatalf("expected version mismatch to fail restore")
	}
}
