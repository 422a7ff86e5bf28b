// Package eventsched adapts the event scheduler's Hooks callbacks into
// logging events.
package eventsched

import (
	"context"

	"github.com/unmarco/tickengine/internal/eventsched"
	"github.com/unmarco/tickengine/logging"
)

const (
	EventStart      logging.EventType = "event.start"
	EventTick       logging.EventType = "event.tick"
	EventEnd        logging.EventType = "event.end"
	EventPhaseStart logging.EventType = "event.phase_start"
	EventPhaseEnd   logging.EventType = "event.phase_end"
)

const entityKind logging.EntityKind = "event"

// Hooks returns an eventsched.Hooks that publishes every callback to pub
// under CategoryEvent. A nil pub publishes nowhere.
func Hooks(ctx context.Context, pub logging.Publisher) eventsched.Hooks {
	if pub == nil {
		pub = logging.NopPublisher{}
	}
	emit := func(eventType logging.EventType, actor string, extra map[string]any) {
		pub.Publish(ctx, logging.Event{
			Type:     eventType,
			Severity: logging.SeverityInfo,
			Category: logging.CategoryEvent,
			Actor:    logging.EntityRef{ID: actor, Kind: entityKind},
			Extra:    extra,
		})
	}
	return eventsched.Hooks{
		OnEventStart: func(name string) {
			emit(EventStart, name, nil)
		},
		OnEventTick: func(name string, remaining int) {
			emit(EventTick, name, map[string]any{"remaining": remaining})
		},
		OnEventEnd: func(name string) {
			emit(EventEnd, name, nil)
		},
		OnPhaseStart: func(cycle, phase string) {
			emit(EventPhaseStart, cycle, map[string]any{"phase": phase})
		},
		OnPhaseEnd: func(cycle, phase string) {
			emit(EventPhaseEnd, cycle, map[string]any{"phase": phase})
		},
	}
}
