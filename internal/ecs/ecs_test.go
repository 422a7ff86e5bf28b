package ecs

import "testing"

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Dead struct{}

func TestSpawnDespawnLifecycle(t *testing.T) {
	w := New()
	e := w.Spawn()
	if !w.Alive(e) {
		t.Fatalf("expected entity to be alive after spawn")
	}
	if err := Attach(w, e, Position{X: 1}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if !Has[Position](w, e) {
		t.Fatalf("expected Has to report true")
	}
	w.Despawn(e)
	if w.Alive(e) {
		t.Fatalf("expected entity to be dead after despawn")
	}
	if Has[Position](w, e) {
		t.Fatalf("expected component to be gone after despawn")
	}
	// Idempotent.
	w.Despawn(e)
}

func TestAttachReplaces(t *testing.T) {
	w := New()
	e := w.Spawn()
	_ = Attach(w, e, Position{X: 1, Y: 1})
	_ = Attach(w, e, Position{X: 2, Y: 2})
	got, err := Get[Position](w, e)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.X != 2 || got.Y != 2 {
		t.Fatalf("expected replaced component, got %+v", got)
	}
}

func TestDeadEntityDistinctFromMissingComponent(t *testing.T) {
	w := New()
	e := w.Spawn()
	w.Despawn(e)
	if _, err := Get[Position](w, e); err == nil {
		t.Fatalf("expected error on dead entity")
	} else if _, ok := err.(*DeadEntityError); !ok {
		t.Fatalf("expected DeadEntityError, got %T", err)
	}

	live := w.Spawn()
	if _, err := Get[Position](w, live); err == nil {
		t.Fatalf("expected error for missing component")
	} else if _, ok := err.(*MissingComponentError); !ok {
		t.Fatalf("expected MissingComponentError, got %T", err)
	}
}

func TestQueryFiltersAndOrder(t *testing.T) {
	w := New()
	var spawned []Entity
	for i := 0; i < 4; i++ {
		e := w.Spawn()
		spawned = append(spawned, e)
		_ = Attach(w, e, Position{X: float64(i)})
	}
	_ = Attach(w, spawned[1], Velocity{DX: 1})
	_ = Attach(w, spawned[2], Velocity{DX: 2})
	_ = Attach(w, spawned[3], Dead{})

	var order []Entity
	for e, pos := range Query1[Position](w, Not(TypeOf[Dead]())) {
		order = append(order, e)
		_ = pos
	}
	if len(order) != 3 {
		t.Fatalf("expected 3 entities after Not(Dead), got %d", len(order))
	}
	if order[0] != spawned[0] || order[1] != spawned[1] || order[2] != spawned[2] {
		t.Fatalf("expected insertion order preserved, got %v", order)
	}

	var both []Entity
	for row := range Query2[Position, Velocity](w) {
		both = append(both, row.Entity)
	}
	if len(both) != 2 || both[0] != spawned[1] || both[1] != spawned[2] {
		t.Fatalf("expected entities 1 and 2, got %v", both)
	}
}

func TestQueryNeverYieldsDeadEntities(t *testing.T) {
	w := New()
	e := w.Spawn()
	_ = Attach(w, e, Position{})
	w.Despawn(e)
	for range Query1[Position](w) {
		t.Fatalf("expected no rows for despawned entity")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	w := New()
	RegisterComponent[Position](w, "demo.Position")
	e1 := w.Spawn()
	e2 := w.Spawn()
	_ = Attach(w, e1, Position{X: 1, Y: 2})
	_ = Attach(w, e2, Position{X: 3, Y: 4})
	w.Despawn(e2)

	snap, err := w.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Entities) != 1 {
		t.Fatalf("expected 1 alive entity in snapshot, got %d", len(snap.Entities))
	}

	w2 := New()
	RegisterComponent[Position](w2, "demo.Position")
	if err := w2.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !w2.Alive(e1) {
		t.Fatalf("expected e1 alive after restore")
	}
	got, err := Get[Position](w2, e1)
	if err != nil {
		t.Fatalf("get after restore: %v", err)
	}
	if got.X != 1 || got.Y != 2 {
		t.Fatalf("unexpected restored component: %+v", got)
	}
	// Next spawn must not collide with restored ids.
	e3 := w2.Spawn()
	if e3 <= e1 {
		t.Fatalf("expected fresh spawn id to exceed restored ids, got %d", e3)
	}
}

func TestRestoreUnknownComponentFails(t *testing.T) {
	w := New()
	snap := Snapshot{
		Entities: []uint64{1},
		NextID:   1,
		Components: map[string]map[string]map[string]any{
			"nope.Unregistered": {"1": {}},
		},
	}
	if err := w.Restore(snap); err == nil {
		t.Fatalf("expected restore to fail for unregistered component type")
	}
}
