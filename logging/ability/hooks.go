// Package ability adapts the ability manager's Hooks callbacks into
// logging events.
package ability

import (
	"context"

	"github.com/unmarco/tickengine/internal/ability"
	"github.com/unmarco/tickengine/logging"
)

const (
	EventStart logging.EventType = "ability.start"
	EventTick  logging.EventType = "ability.tick"
	EventEnd   logging.EventType = "ability.end"
)

// entityKind tags every ability event's actor as the ability itself,
// since the ability system's hooks carry no entity reference of their own.
const entityKind logging.EntityKind = "ability"

// Hooks returns an ability.Hooks that publishes every start/tick/end
// callback to pub under CategoryAbility. A nil pub publishes nowhere.
func Hooks(ctx context.Context, pub logging.Publisher) ability.Hooks {
	if pub == nil {
		pub = logging.NopPublisher{}
	}
	emit := func(eventType logging.EventType, name string, extra map[string]any) {
		pub.Publish(ctx, logging.Event{
			Type:     eventType,
			Severity: logging.SeverityInfo,
			Category: logging.CategoryAbility,
			Actor:    logging.EntityRef{ID: name, Kind: entityKind},
			Extra:    extra,
		})
	}
	return ability.Hooks{
		OnStart: func(name string) {
			emit(EventStart, name, nil)
		},
		OnTick: func(name string, remaining int) {
			emit(EventTick, name, map[string]any{"remaining": remaining})
		},
		OnEnd: func(name string) {
			emit(EventEnd, name, nil)
		},
	}
}
