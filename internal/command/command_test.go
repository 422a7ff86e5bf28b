package command

import (
	"testing"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

type spawnCommand struct {
	Name string
}

type moveCommand struct {
	DX, DY int
}

func TestHandlerDispatchesByExactType(t *testing.T) {
	e, _ := engine.New(10, 1)
	q := New()

	var spawned []string
	Handle(q, func(w *ecs.World, ctx engine.TickContext, cmd spawnCommand) (bool, error) {
		spawned = append(spawned, cmd.Name)
		return true, nil
	})

	var accepted []any
	e.AddSystem(System(q, Hooks{OnAccept: func(cmd any) { accepted = append(accepted, cmd) }}))

	q.Enqueue(spawnCommand{Name: "wolf"})
	q.Enqueue(spawnCommand{Name: "bear"})
	if err := e.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(spawned) != 2 || spawned[0] != "wolf" || spawned[1] != "bear" {
		t.Fatalf("expected FIFO dispatch, got %v", spawned)
	}
	if len(accepted) != 2 {
		t.Fatalf("expected both commands accepted, got %d", len(accepted))
	}
}

func TestRejectedCommandFiresOnReject(t *testing.T) {
	e, _ := engine.New(10, 1)
	q := New()
	Handle(q, func(w *ecs.World, ctx engine.TickContext, cmd moveCommand) (bool, error) {
		return false, nil
	})
	var rejected int
	e.AddSystem(System(q, Hooks{OnReject: func(any) { rejected++ }}))
	q.Enqueue(moveCommand{DX: 1})
	if err := e.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if rejected != 1 {
		t.Fatalf("expected one rejection, got %d", rejected)
	}
}

func TestUnregisteredCommandTypeFailsTick(t *testing.T) {
	e, _ := engine.New(10, 1)
	q := New()
	e.AddSystem(System(q, Hooks{}))
	q.Enqueue(spawnCommand{Name: "unhandled"})
	if err := e.Step(); err == nil {
		t.Fatalf("expected error for command with no registered handler")
	}
}

func TestCommandsEnqueuedMidDrainWaitForNextTick(t *testing.T) {
	e, _ := engine.New(10, 1)
	q := New()
	var processed int
	Handle(q, func(w *ecs.World, ctx engine.TickContext, cmd spawnCommand) (bool, error) {
		processed++
		if cmd.Name == "first" {
			q.Enqueue(spawnCommand{Name: "second"})
		}
		return true, nil
	})
	e.AddSystem(System(q, Hooks{}))
	q.Enqueue(spawnCommand{Name: "first"})
	if err := e.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if processed != 1 {
		t.Fatalf("expected only the pre-tick batch to drain, got %d processed", processed)
	}
	if err := e.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if processed != 2 {
		t.Fatalf("expected the carried-over command to drain next tick, got %d processed", processed)
	}
}

func TestFootprintFromDimensions(t *testing.T) {
	coords, err := FootprintFromDimensions(Coord{X: 5, Y: 5}, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coords) != 6 {
		t.Fatalf("expected 6 coordinates, got %d", len(coords))
	}
	if coords[0] != (Coord{X: 5, Y: 5}) {
		t.Fatalf("expected first coordinate to be origin, got %v", coords[0])
	}
}

func TestFootprintFromDimensionsRejectsNonPositive(t *testing.T) {
	if _, err := FootprintFromDimensions(Coord{}, 0, 2); err == nil {
		t.Fatalf("expected error for zero dimension")
	}
}

func TestFootprintFromOffsets(t *testing.T) {
	coords := FootprintFromOffsets(Coord{X: 1, Y: 1}, []Offset{{DX: 0, DY: 0}, {DX: 1, DY: 0}, {DX: 0, DY: 1}})
	want := []Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}
	for i, c := range coords {
		if c != want[i] {
			t.Fatalf("coordinate %d: got %v, want %v", i, c, want[i])
		}
	}
}
