package llm

import (
	"github.com/unmarco/tickengine/internal/ai"
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Metrics is the colony-wide snapshot the pressure monitor inspects for
// significant change. Embedders populate it from their own state; the
// monitor itself interprets nothing beyond equality.
type Metrics struct {
	TotalResources   int
	Population       int
	CriticalFraction float64
	EventBursts      int
	Custom           map[string]float64
}

func (a Metrics) changedFrom(b Metrics) bool {
	if a.TotalResources != b.TotalResources || a.Population != b.Population || a.EventBursts != b.EventBursts {
		return true
	}
	if a.CriticalFraction != b.CriticalFraction {
		return true
	}
	for k, v := range a.Custom {
		if b.Custom[k] != v {
			return true
		}
	}
	for k, v := range b.Custom {
		if a.Custom[k] != v {
			return true
		}
	}
	return false
}

// PressureMonitor returns an engine.System that, every interval ticks,
// calls metrics to read colony state; when it differs from the last
// observed reading, every agent at or above minPriority has its
// cooldown and query cadence reset so the strategic layer re-queries
// sooner.
func PressureMonitor(interval int, minPriority int, metrics func(w *ecs.World) Metrics) engine.System {
	if interval <= 0 {
		interval = 1
	}
	var last Metrics
	var haveLast bool

	return func(w *ecs.World, ctx engine.TickContext) error {
		if ctx.Tick%uint64(interval) != 0 {
			return nil
		}
		current := metrics(w)
		if haveLast && !current.changedFrom(last) {
			last = current
			return nil
		}
		haveLast = true
		last = current

		for row := range ecs.Query2[Agent, ai.Blackboard](w) {
			if row.A.Priority < minPriority {
				continue
			}
			row.A.CooldownUntil = 0
			row.A.LastQueryTick = 0
		}
		return nil
	}
}
