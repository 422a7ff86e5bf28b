// Package signalbus implements the engine's deferred pub/sub channel.
// Publishing during a tick only enqueues; delivery happens when the
// signal system runs, wherever the embedder chose to place it in the
// pipeline.
package signalbus

import (
	"reflect"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Handler reacts to a delivered signal.
type Handler func(name string, data map[string]any)

type queuedSignal struct {
	name string
	data map[string]any
}

// Bus is a named, ordered pub/sub channel with deferred delivery.
type Bus struct {
	subscribers map[string][]Handler
	pending     []queuedSignal
}

// New constructs an empty bus.
func New() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe appends handler to the ordered list for name.
func (b *Bus) Subscribe(name string, handler Handler) {
	b.subscribers[name] = append(b.subscribers[name], handler)
}

// Unsubscribe removes the first occurrence of handler from name's list,
// compared by code pointer (the standard workaround for Go's lack of func
// equality; it identifies a top-level function or method value, not a
// distinct closure instance). Unsubscribing an unknown handler is a
// no-op. Callers that subscribe distinct closures and need precise
// removal should use SubscribeToken/Remove instead.
func (b *Bus) Unsubscribe(name string, handler Handler) {
	list := b.subscribers[name]
	target := reflect.ValueOf(handler).Pointer()
	for i, h := range list {
		if h == nil {
			continue
		}
		if reflect.ValueOf(h).Pointer() == target {
			b.subscribers[name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// SubscriptionToken identifies one subscription for precise removal.
type SubscriptionToken struct {
	name  string
	index int
}

// SubscribeToken is like Subscribe but returns a token that Remove can use
// to unsubscribe this exact handler later.
func (b *Bus) SubscribeToken(name string, handler Handler) SubscriptionToken {
	b.subscribers[name] = append(b.subscribers[name], handler)
	return SubscriptionToken{name: name, index: len(b.subscribers[name]) - 1}
}

// Remove unsubscribes the handler identified by tok. Removing an already
// removed or unknown token is a no-op.
func (b *Bus) Remove(tok SubscriptionToken) {
	list := b.subscribers[tok.name]
	if tok.index < 0 || tok.index >= len(list) {
		return
	}
	list[tok.index] = nil
}

// Publish appends (name, data) to the pending FIFO. Handlers are not
// invoked here.
func (b *Bus) Publish(name string, data map[string]any) {
	b.pending = append(b.pending, queuedSignal{name: name, data: data})
}

// Clear discards all queued, un-flushed signals.
func (b *Bus) Clear() {
	b.pending = nil
}

// Flush snapshots the pending queue, clears it, then invokes every
// subscriber for each queued signal in FIFO order. Signals published by a
// handler during this Flush are deferred to the next Flush.
func (b *Bus) Flush() {
	batch := b.pending
	b.pending = nil
	for _, sig := range batch {
		for _, handler := range b.subscribers[sig.name] {
			if handler != nil {
				handler(sig.name, sig.data)
			}
		}
	}
}

// System returns an engine.System that flushes the bus every tick. Its
// position in the caller's system list chooses when during a tick signals
// are delivered.
func System(b *Bus) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		b.Flush()
		return nil
	}
}
