package signalbus

import "testing"

func TestPublishDefersUntilFlush(t *testing.T) {
	b := New()
	var received []string
	b.Subscribe("ping", func(name string, data map[string]any) {
		received = append(received, name)
	})
	b.Publish("ping", nil)
	if len(received) != 0 {
		t.Fatalf("expected no delivery before flush")
	}
	b.Flush()
	if len(received) != 1 {
		t.Fatalf("expected exactly one delivery after flush, got %d", len(received))
	}
}

func TestSignalsPublishedDuringFlushDeferToNextFlush(t *testing.T) {
	b := New()
	var order []string
	b.Subscribe("a", func(name string, data map[string]any) {
		order = append(order, "a")
		b.Publish("b", nil)
	})
	b.Subscribe("b", func(name string, data map[string]any) {
		order = append(order, "b")
	})
	b.Publish("a", nil)
	b.Flush()
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("expected only 'a' to fire on first flush, got %v", order)
	}
	b.Flush()
	if len(order) != 2 || order[1] != "b" {
		t.Fatalf("expected 'b' to fire on second flush, got %v", order)
	}
}

func TestClearDiscardsPending(t *testing.T) {
	b := New()
	fired := false
	b.Subscribe("x", func(string, map[string]any) { fired = true })
	b.Publish("x", nil)
	b.Clear()
	b.Flush()
	if fired {
		t.Fatalf("expected cleared signal to never fire")
	}
}

func TestUnsubscribeUnknownHandlerIsNoop(t *testing.T) {
	b := New()
	b.Unsubscribe("missing", func(string, map[string]any) {})
}

func TestFIFOOrder(t *testing.T) {
	b := New()
	var order []string
	b.Subscribe("evt", func(name string, data map[string]any) {
		order = append(order, data["tag"].(string))
	})
	b.Publish("evt", map[string]any{"tag": "first"})
	b.Publish("evt", map[string]any{"tag": "second"})
	b.Flush()
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected FIFO order, got %v", order)
	}
}
