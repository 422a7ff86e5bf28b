package timer

import (
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Tween interpolates one numeric field of another component on the same
// entity over Duration ticks, writing the eased value every tick.
type Tween struct {
	Target   string  `json:"target"`
	Field    string  `json:"field"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration int     `json:"duration"`
	Elapsed  int     `json:"elapsed"`
	Easing   string  `json:"easing"`
}

// OnComplete fires once, the tick a Tween finishes, after the end value
// has been written and the Tween component detached.
type OnComplete func(w *ecs.World, ctx engine.TickContext, e ecs.Entity, tween Tween)

// TweenSystem returns an engine.System that advances every Tween one tick,
// writing the interpolated value into its target component's field by
// name. A Tween whose target type or field is unknown silently no-ops for
// that entity rather than failing the tick.
func TweenSystem(onComplete OnComplete) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		type finished struct {
			e ecs.Entity
			t Tween
		}
		var done []finished

		for e, tw := range ecs.Query1[Tween](w) {
			tw.Elapsed++
			duration := tw.Duration
			if duration <= 0 {
				duration = 1
			}
			progress := float64(tw.Elapsed) / float64(duration)
			if progress > 1 {
				progress = 1
			}
			value := tw.End
			if progress < 1 {
				ease, ok := Easings[tw.Easing]
				if !ok {
					ease = Easings["linear"]
				}
				value = tw.Start + (tw.End-tw.Start)*ease(progress)
			}
			writeField(w, e, tw.Target, tw.Field, value)

			if tw.Elapsed >= duration {
				done = append(done, finished{e, *tw})
			}
		}

		for _, f := range done {
			ecs.Detach[Tween](w, f.e)
			if onComplete != nil {
				onComplete(w, ctx, f.e, f.t)
			}
		}
		return nil
	}
}

func writeField(w *ecs.World, e ecs.Entity, typeName, field string, value float64) {
	fields, ok, err := w.ComponentByName(e, typeName)
	if err != nil || !ok {
		return
	}
	if _, exists := fields[field]; !exists {
		return
	}
	fields[field] = value
	_ = w.SetComponentByName(e, typeName, fields)
}
