package eventsched

import (
	"context"
	"testing"

	"github.com/unmarco/tickengine/logging"
)

type capturePublisher struct {
	events []logging.Event
}

func (p *capturePublisher) Publish(_ context.Context, event logging.Event) {
	p.events = append(p.events, event)
}

func TestHooksPublishesEventAndPhaseCallbacks(t *testing.T) {
	pub := &capturePublisher{}
	hooks := Hooks(context.Background(), pub)

	hooks.OnEventStart("storm")
	hooks.OnEventTick("storm", 4)
	hooks.OnEventEnd("storm")
	hooks.OnPhaseStart("seasons", "winter")
	hooks.OnPhaseEnd("seasons", "winter")

	if len(pub.events) != 5 {
		t.Fatalf("expected five events, got %d", len(pub.events))
	}
	for _, e := range pub.events {
		if e.Category != logging.CategoryEvent {
			t.Fatalf("expected CategoryEvent, got %+v", e)
		}
	}
	if pub.events[3].Extra["phase"] != "winter" || pub.events[3].Actor.ID != "seasons" {
		t.Fatalf("unexpected phase_start event: %+v", pub.events[3])
	}
}

func TestHooksWithNilPublisherDoesNotPanic(t *testing.T) {
	hooks := Hooks(context.Background(), nil)
	hooks.OnEventStart("storm")
	hooks.OnPhaseStart("seasons", "winter")
}
