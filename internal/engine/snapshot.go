package engine

import (
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/kernelerr"
	"github.com/unmarco/tickengine/internal/rng"
)

// SnapshotVersion is the value-tree schema version this implementation
// produces and accepts. A restore whose Version differs fails outright.
const SnapshotVersion = 1

// Snapshot is the top-level engine value tree: everything required to
// reproduce this engine's observable state and future draws exactly.
type Snapshot struct {
	Version    int          `json:"version"`
	TickNumber uint64       `json:"tick_number"`
	TPS        int          `json:"tps"`
	Seed       int64        `json:"seed"`
	RNGState   []uint64     `json:"rng_state"`
	World      ecs.Snapshot `json:"world"`
}

// Snapshot captures the engine's tick counter, tps, seed, RNG state, and
// world into a single JSON-compatible value tree. Must be called between
// ticks, never from inside a running system.
func (e *Engine) Snapshot() (Snapshot, error) {
	worldSnap, err := e.world.Snapshot()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Version:    SnapshotVersion,
		TickNumber: e.clock.Tick(),
		TPS:        e.clock.TPS(),
		Seed:       e.seed,
		RNGState:   e.rngSrc.State(),
		World:      worldSnap,
	}, nil
}

// Restore installs snap into the engine. On any failure — version
// mismatch, tps mismatch, or a world restore error naming an unregistered
// component type — the world is left empty (component registrations
// survive) and the error is returned; there is no partial restore.
func (e *Engine) Restore(snap Snapshot) error {
	e.world.Clear()

	if snap.Version != SnapshotVersion {
		return &kernelerr.SnapshotError{Reason: "unsupported snapshot version"}
	}
	if snap.TPS != e.clock.TPS() {
		return &kernelerr.SnapshotError{Reason: "tps mismatch between snapshot and engine"}
	}
	rnd, src, err := rng.FromState(snap.Seed, snap.RNGState)
	if err != nil {
		return &kernelerr.SnapshotError{Reason: "malformed rng_state: " + err.Error()}
	}
	if err := e.world.Restore(snap.World); err != nil {
		return err
	}

	e.clock.Reset(snap.TickNumber)
	e.seed = snap.Seed
	e.rnd = rnd
	e.rngSrc = src
	return nil
}
