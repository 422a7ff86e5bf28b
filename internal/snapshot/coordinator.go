// Package snapshot implements the coordinator that packages an engine
// snapshot together with the serializable state of whichever auxiliary
// registries the embedder has registered, into a single value tree.
package snapshot

import (
	"encoding/json"

	"github.com/unmarco/tickengine/internal/ability"
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/eventsched"
)

// SpatialIndex is rebuilt from entity positions after a restore rather
// than serialized; its own contents are derived, never authoritative.
type SpatialIndex interface {
	Rebuild(w *ecs.World)
}

// Option configures a Coordinator at construction time.
type Option func(*config)

type config struct {
	scheduler    *eventsched.Scheduler
	abilities    *ability.Manager
	spatialIndex SpatialIndex
	gridWidth    int
	gridHeight   int
	cellMap      json.RawMessage
	extra        map[string]json.RawMessage
}

// WithScheduler registers an event scheduler whose runtime state is
// included in and restored from the colony sibling tree.
func WithScheduler(s *eventsched.Scheduler) Option {
	return func(c *config) { c.scheduler = s }
}

// WithAbilityManager registers an ability manager whose runtime state is
// included in and restored from the colony sibling tree.
func WithAbilityManager(m *ability.Manager) Option {
	return func(c *config) { c.abilities = m }
}

// WithSpatialIndex registers a spatial index rebuilt from entity
// positions immediately after every successful restore. Its contents
// are never serialized.
func WithSpatialIndex(idx SpatialIndex) Option {
	return func(c *config) { c.spatialIndex = idx }
}

// WithGrid records the colony grid dimensions in the value tree.
func WithGrid(width, height int) Option {
	return func(c *config) { c.gridWidth, c.gridHeight = width, height }
}

// WithCellMap attaches an opaque, embedder-owned cell map value to the
// colony sibling tree. It is carried through snapshot/restore verbatim.
func WithCellMap(raw json.RawMessage) Option {
	return func(c *config) { c.cellMap = raw }
}

// Coordinator packages an engine.Engine snapshot with auxiliary
// registry state.
type Coordinator struct {
	engine *engine.Engine
	cfg    config
}

// New constructs a coordinator over e, configured with opts.
func New(e *engine.Engine, opts ...Option) *Coordinator {
	c := &Coordinator{engine: e}
	for _, opt := range opts {
		opt(&c.cfg)
	}
	return c
}

// Grid is the colony's static dimensions.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Colony is the sibling value tree this coordinator adds alongside the
// plain engine snapshot. Any registry not configured on the Coordinator
// is omitted from the tree rather than emitted empty.
type Colony struct {
	Grid      *Grid                      `json:"grid,omitempty"`
	Scheduler *eventsched.Snapshot       `json:"scheduler,omitempty"`
	Abilities *ability.Snapshot          `json:"ability_manager,omitempty"`
	CellMap   json.RawMessage            `json:"cellmap,omitempty"`
}

// Snapshot is the combined value tree: the engine snapshot plus colony.
type Snapshot struct {
	Engine engine.Snapshot `json:"engine"`
	Colony Colony          `json:"colony"`
}

// Snapshot captures the engine and every configured registry.
func (c *Coordinator) Snapshot() (Snapshot, error) {
	engSnap, err := c.engine.Snapshot()
	if err != nil {
		return Snapshot{}, err
	}
	colony := Colony{CellMap: c.cfg.cellMap}
	if c.cfg.gridWidth != 0 || c.cfg.gridHeight != 0 {
		colony.Grid = &Grid{Width: c.cfg.gridWidth, Height: c.cfg.gridHeight}
	}
	if c.cfg.scheduler != nil {
		s := c.cfg.scheduler.Snapshot()
		colony.Scheduler = &s
	}
	if c.cfg.abilities != nil {
		a := c.cfg.abilities.Snapshot()
		colony.Abilities = &a
	}
	return Snapshot{Engine: engSnap, Colony: colony}, nil
}

// Restore performs the engine restore first, then restores every
// configured registry, then rebuilds the spatial index (if any) from
// entity positions in the restored world. Unknown colony keys already
// present in snap.Colony but not matching a configured registry are
// ignored.
func (c *Coordinator) Restore(snap Snapshot) error {
	if err := c.engine.Restore(snap.Engine); err != nil {
		return err
	}
	if c.cfg.scheduler != nil && snap.Colony.Scheduler != nil {
		c.cfg.scheduler.Restore(*snap.Colony.Scheduler)
	}
	if c.cfg.abilities != nil && snap.Colony.Abilities != nil {
		c.cfg.abilities.Restore(*snap.Colony.Abilities)
	}
	if snap.Colony.CellMap != nil {
		c.cfg.cellMap = snap.Colony.CellMap
	}
	if c.cfg.spatialIndex != nil {
		c.cfg.spatialIndex.Rebuild(c.engine.World())
	}
	return nil
}
