package spatial

import (
	"testing"

	"github.com/unmarco/tickengine/internal/ecs"
)

type position struct {
	X, Y int
}

func TestRebuildGroupsEntitiesByCell(t *testing.T) {
	w := ecs.New()
	ecs.RegisterComponent[position](w, "demo.Position")
	a := w.Spawn()
	b := w.Spawn()
	c := w.Spawn()
	_ = ecs.Attach(w, a, position{X: 1, Y: 1})
	_ = ecs.Attach(w, b, position{X: 2, Y: 2})
	_ = ecs.Attach(w, c, position{X: 50, Y: 50})

	g := New(10, func(w *ecs.World, e ecs.Entity) (int, int, bool) {
		p, err := ecs.Get[position](w, e)
		if err != nil {
			return 0, 0, false
		}
		return p.X, p.Y, true
	})
	g.Rebuild(w)

	near := g.Near(1, 1)
	if len(near) != 2 {
		t.Fatalf("expected 2 entities sharing a cell, got %d", len(near))
	}
	far := g.Near(50, 50)
	if len(far) != 1 {
		t.Fatalf("expected 1 entity in the distant cell, got %d", len(far))
	}
}

func TestRebuildSkipsEntitiesWithoutPosition(t *testing.T) {
	w := ecs.New()
	ecs.RegisterComponent[position](w, "demo.Position")
	w.Spawn()

	g := New(10, func(w *ecs.World, e ecs.Entity) (int, int, bool) { return 0, 0, false })
	g.Rebuild(w)
	if len(g.Near(0, 0)) != 0 {
		t.Fatalf("expected no entities indexed without a position")
	}
}

func TestFloorDivHandlesNegativeCoordinates(t *testing.T) {
	if got := floorDiv(-1, 10); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
	if got := floorDiv(-11, 10); got != -2 {
		t.Fatalf("expected -2, got %d", got)
	}
}
