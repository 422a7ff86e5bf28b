package resource

import (
	"sort"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// OnSpoiled fires once per resource slot that lost units to decay.
type OnSpoiled func(w *ecs.World, ctx engine.TickContext, e ecs.Entity, name string, amount int)

// DecaySystem returns an engine.System that, every tick, walks every
// entity with an Inventory component and removes up to DecayRate units
// of every held resource whose registry entry has a positive decay rate.
// Resources absent from the registry are left untouched. Resource names
// within one inventory are processed in sorted order so on_spoiled firing
// order is deterministic regardless of map iteration.
func DecaySystem(registry *Registry, onSpoiled OnSpoiled) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		for e, inv := range ecs.Query1[Inventory](w) {
			names := make([]string, 0, len(inv.Quantities))
			for name := range inv.Quantities {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				def, ok := registry.Lookup(name)
				if !ok || def.DecayRate <= 0 {
					continue
				}
				amount := inv.Remove(name, def.DecayRate)
				if amount > 0 && onSpoiled != nil {
					onSpoiled(w, ctx, e, name, amount)
				}
			}
		}
		return nil
	}
}
