// Package resource adapts the resource decay system's OnSpoiled callback
// into a logging event.
package resource

import (
	"context"
	"strconv"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/resource"
	"github.com/unmarco/tickengine/logging"
)

// EventSpoiled is published once per resource slot that lost units to decay.
const EventSpoiled logging.EventType = "resource.spoiled"

const entityKind logging.EntityKind = "entity"

// OnSpoiled returns a resource.OnSpoiled that publishes a CategoryResource
// event to pub for every decay. A nil pub publishes nowhere.
func OnSpoiled(ctx context.Context, pub logging.Publisher) resource.OnSpoiled {
	if pub == nil {
		pub = logging.NopPublisher{}
	}
	return func(w *ecs.World, tick engine.TickContext, e ecs.Entity, name string, amount int) {
		pub.Publish(ctx, logging.Event{
			Type:     EventSpoiled,
			Tick:     tick.Tick,
			Severity: logging.SeverityInfo,
			Category: logging.CategoryResource,
			Actor:    logging.EntityRef{ID: strconv.FormatUint(uint64(e), 10), Kind: entityKind},
			Extra: map[string]any{
				"resource": name,
				"amount":   amount,
			},
		})
	}
}
