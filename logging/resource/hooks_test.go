package resource

import (
	"context"
	"testing"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/logging"
)

type capturePublisher struct {
	events []logging.Event
}

func (p *capturePublisher) Publish(_ context.Context, event logging.Event) {
	p.events = append(p.events, event)
}

func TestOnSpoiledPublishesResourceEvent(t *testing.T) {
	pub := &capturePublisher{}
	onSpoiled := OnSpoiled(context.Background(), pub)

	onSpoiled(nil, engine.TickContext{Tick: 7}, ecs.Entity(3), "bread", 2)

	if len(pub.events) != 1 {
		t.Fatalf("expected one event, got %d", len(pub.events))
	}
	event := pub.events[0]
	if event.Type != EventSpoiled || event.Category != logging.CategoryResource {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Tick != 7 {
		t.Fatalf("expected tick 7, got %d", event.Tick)
	}
	if event.Actor.ID != "3" {
		t.Fatalf("expected actor id '3', got %q", event.Actor.ID)
	}
	if event.Extra["resource"] != "bread" || event.Extra["amount"] != 2 {
		t.Fatalf("unexpected extra fields: %+v", event.Extra)
	}
}

func TestOnSpoiledWithNilPublisherDoesNotPanic(t *testing.T) {
	onSpoiled := OnSpoiled(context.Background(), nil)
	onSpoiled(nil, engine.TickContext{Tick: 1}, ecs.Entity(1), "wheat", 1)
}
