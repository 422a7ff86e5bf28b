package script

import (
	"testing"

	"github.com/unmarco/tickengine/internal/ai"
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

func TestEvalBoolUsesBoundVariables(t *testing.T) {
	e := New()
	ok, err := e.EvalBool("health < threshold", map[string]any{"health": 3, "threshold": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected 3 < 5 to be true")
	}
}

func TestEvalNumberCoercesResult(t *testing.T) {
	e := New()
	n, err := e.EvalNumber("hunger * 2", map[string]any{"hunger": 0.25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0.5 {
		t.Fatalf("expected 0.5, got %v", n)
	}
}

func TestEvalCachesCompiledProgram(t *testing.T) {
	e := New()
	if _, err := e.EvalBool("true", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.programs) != 1 {
		t.Fatalf("expected one cached program, got %d", len(e.programs))
	}
	if _, err := e.EvalBool("true", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.programs) != 1 {
		t.Fatalf("expected the cache to stay at one entry on re-evaluation, got %d", len(e.programs))
	}
}

func TestEvalBoolReturnsFalseOnCompileError(t *testing.T) {
	e := New()
	ok, err := e.EvalBool("this is not valid ((( js", nil)
	if err == nil {
		t.Fatalf("expected a compile error")
	}
	if ok {
		t.Fatalf("expected false on a compile error")
	}
}

func TestAbilityGuardBindsTick(t *testing.T) {
	eng := New()
	guard := eng.AbilityGuard("tick >= 10")
	w := ecs.New()
	if guard(w, engine.TickContext{Tick: 5}) {
		t.Fatalf("expected guard to reject tick 5")
	}
	if !guard(w, engine.TickContext{Tick: 10}) {
		t.Fatalf("expected guard to accept tick 10")
	}
}

func TestConsiderationBindsBlackboardEntries(t *testing.T) {
	eng := New()
	c := eng.Consideration("hunger")
	w := ecs.New()
	bb := ai.NewBlackboard()
	bb.Set("hunger", 0.75)
	entity := w.Spawn()
	if got := c(w, engine.TickContext{Tick: 1}, entity, &bb); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}
