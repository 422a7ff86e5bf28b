package ability

import (
	"testing"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

func TestInvokeRespectsChargesAndCooldown(t *testing.T) {
	e, _ := engine.New(10, 1)
	m := New()
	m.Define(Def{Name: "dash", Duration: Duration{Fixed: 2}, Cooldown: 3, MaxCharges: 1, ChargeRegen: 5})
	guards := NewGuardRegistry()

	var starts, ends []string
	e.AddSystem(System(m, guards, Hooks{
		OnStart: func(name string) { starts = append(starts, name) },
		OnEnd:   func(name string) { ends = append(ends, name) },
	}))

	ctx := engine.TickContext{Tick: 0, Random: e.RNG()}
	if ok := m.Invoke("dash", e.World(), ctx, guards); !ok {
		t.Fatalf("expected first invoke to succeed")
	}
	if ok := m.Invoke("dash", e.World(), ctx, guards); ok {
		t.Fatalf("expected second invoke to fail while active")
	}

	for i := 0; i < 2; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if len(starts) != 1 || starts[0] != "dash" {
		t.Fatalf("expected exactly one start, got %v", starts)
	}
	if len(ends) != 1 || ends[0] != "dash" {
		t.Fatalf("expected exactly one end, got %v", ends)
	}
	if m.CooldownRemaining("dash") == 0 {
		t.Fatalf("expected cooldown to have started")
	}

	ctx2 := engine.TickContext{Tick: 2, Random: e.RNG()}
	if ok := m.Invoke("dash", e.World(), ctx2, guards); ok {
		t.Fatalf("expected invoke to fail while on cooldown")
	}
}

func TestZeroDurationAbilityStartsAndEndsSameTick(t *testing.T) {
	e, _ := engine.New(10, 1)
	m := New()
	m.Define(Def{Name: "ping", Duration: Duration{Fixed: 0}, Cooldown: 1, MaxCharges: -1})
	guards := NewGuardRegistry()

	var starts, ends int
	e.AddSystem(System(m, guards, Hooks{
		OnStart: func(string) { starts++ },
		OnEnd:   func(string) { ends++ },
	}))

	ctx := engine.TickContext{Tick: 0, Random: e.RNG()}
	if ok := m.Invoke("ping", e.World(), ctx, guards); !ok {
		t.Fatalf("expected invoke to succeed")
	}
	if err := e.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if starts != 1 || ends != 1 {
		t.Fatalf("expected on_start and on_end both in the same tick, got starts=%d ends=%d", starts, ends)
	}
	if m.Active("ping") {
		t.Fatalf("expected ping to no longer be active")
	}
}

func TestChargesRegenerateOverTime(t *testing.T) {
	e, _ := engine.New(10, 1)
	m := New()
	m.Define(Def{Name: "shot", Duration: Duration{Fixed: 1}, MaxCharges: 2, ChargeRegen: 3})
	guards := NewGuardRegistry()
	e.AddSystem(System(m, guards, Hooks{}))

	ctx := engine.TickContext{Tick: 0, Random: e.RNG()}
	if ok := m.Invoke("shot", e.World(), ctx, guards); !ok {
		t.Fatalf("expected invoke to succeed")
	}
	charges, _ := m.Charges("shot")
	if charges != 1 {
		t.Fatalf("expected 1 charge remaining after invoke, got %d", charges)
	}

	for i := 0; i < 3; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	charges, _ = m.Charges("shot")
	if charges != 2 {
		t.Fatalf("expected charge to regenerate back to max, got %d", charges)
	}
}

func TestRestoreRebuildsStartedSetWithoutReplayingOnStart(t *testing.T) {
	e, _ := engine.New(10, 1)
	m := New()
	m.Define(Def{Name: "shield", Duration: Duration{Fixed: 5}, MaxCharges: -1})
	guards := NewGuardRegistry()

	var starts int
	e.AddSystem(System(m, guards, Hooks{OnStart: func(string) { starts++ }}))

	ctx := engine.TickContext{Tick: 0, Random: e.RNG()}
	if ok := m.Invoke("shield", e.World(), ctx, guards); !ok {
		t.Fatalf("expected invoke to succeed")
	}
	if err := e.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if starts != 1 {
		t.Fatalf("expected exactly one start before restore, got %d", starts)
	}

	snap := m.Snapshot()
	m.Restore(snap)

	if err := e.Step(); err != nil {
		t.Fatalf("step after restore: %v", err)
	}
	if starts != 1 {
		t.Fatalf("expected restore not to replay on_start, got %d starts", starts)
	}
}

func TestInvokeFailsWhenGuardRejects(t *testing.T) {
	e, _ := engine.New(10, 1)
	m := New()
	m.Define(Def{Name: "sprint", Duration: Duration{Fixed: 1}, MaxCharges: -1, Guards: []string{"has_stamina"}})
	guards := NewGuardRegistry()
	guards.Register("has_stamina", func(*ecs.World, engine.TickContext) bool { return false })

	ctx := engine.TickContext{Tick: 0, Random: e.RNG()}
	if ok := m.Invoke("sprint", e.World(), ctx, guards); ok {
		t.Fatalf("expected invoke to fail when guard rejects")
	}
}
