// Package config loads the tick engine's bootstrap settings from TOML
// and its content definitions (blueprints, events, abilities, resources)
// from YAML, and applies the latter to the corresponding registries.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Bootstrap captures the settings needed to construct an engine and its
// auxiliary managers before any content is loaded.
type Bootstrap struct {
	Engine   EngineConfig   `toml:"engine"`
	LLM      LLMConfig      `toml:"llm"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Logging  LoggingConfig  `toml:"logging"`
}

// EngineConfig holds the clock and RNG parameters.
type EngineConfig struct {
	TicksPerSecond int   `toml:"ticks_per_second"`
	Seed           int64 `toml:"seed"`
}

// LLMConfig holds worker pool sizing and rate limit defaults for the
// strategic-query layer.
type LLMConfig struct {
	Workers          int     `toml:"workers"`
	RateLimitPerTick int     `toml:"rate_limit_per_tick"`
	RateLimitPerSec  float64 `toml:"rate_limit_per_second"`
	PressureInterval int     `toml:"pressure_interval_ticks"`
	MinPriority      int     `toml:"pressure_min_priority"`
}

// SnapshotConfig holds colony dimensions and the spatial index's cell
// size, neither of which is derivable from content definitions alone.
type SnapshotConfig struct {
	GridWidth  int `toml:"grid_width"`
	GridHeight int `toml:"grid_height"`
	CellSize   int `toml:"cell_size"`
}

// LoggingConfig selects the active sinks and minimum severity.
type LoggingConfig struct {
	Sinks       []string `toml:"sinks"`
	MinSeverity string   `toml:"min_severity"`
}

// DefaultBootstrap returns the settings used when no file is supplied.
func DefaultBootstrap() Bootstrap {
	return Bootstrap{
		Engine: EngineConfig{TicksPerSecond: 20, Seed: 1},
		LLM: LLMConfig{
			Workers:          4,
			RateLimitPerTick: 4,
			RateLimitPerSec:  10,
			PressureInterval: 100,
			MinPriority:      0,
		},
		Snapshot: SnapshotConfig{GridWidth: 256, GridHeight: 256, CellSize: 16},
		Logging:  LoggingConfig{Sinks: []string{"console"}, MinSeverity: "info"},
	}
}

// LoadBootstrap decodes a TOML bootstrap file at path. A missing file is
// not an error; the defaults are returned unchanged.
func LoadBootstrap(path string) (Bootstrap, error) {
	cfg := DefaultBootstrap()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Bootstrap{}, fmt.Errorf("decode bootstrap config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeBootstrap decodes TOML bootstrap settings from raw bytes, layered
// over the defaults.
func DecodeBootstrap(data []byte) (Bootstrap, error) {
	cfg := DefaultBootstrap()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Bootstrap{}, fmt.Errorf("decode bootstrap config: %w", err)
	}
	return cfg, nil
}
