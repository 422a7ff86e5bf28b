// Package command implements the external-input command queue: handlers
// registered by exact command type, a FIFO of pending commands drained
// once per tick, and footprint utilities for placement commands.
package command

import (
	"reflect"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/kernelerr"
)

// Handler processes one command and reports whether it was accepted.
type Handler func(w *ecs.World, ctx engine.TickContext, cmd any) (accepted bool, err error)

// Hooks fire after a handler runs.
type Hooks struct {
	OnAccept func(cmd any)
	OnReject func(cmd any)
}

// Queue dispatches commands to handlers registered by their exact
// dynamic type and drains pending commands in FIFO order.
type Queue struct {
	handlers map[reflect.Type]Handler
	pending  []any
}

// New constructs an empty queue.
func New() *Queue {
	return &Queue{handlers: make(map[reflect.Type]Handler)}
}

// Handle registers fn for every command whose dynamic type matches the
// type parameter T exactly.
func Handle[T any](q *Queue, fn func(w *ecs.World, ctx engine.TickContext, cmd T) (bool, error)) {
	var zero T
	t := reflect.TypeOf(zero)
	q.handlers[t] = func(w *ecs.World, ctx engine.TickContext, cmd any) (bool, error) {
		return fn(w, ctx, cmd.(T))
	}
}

// Enqueue appends cmd to the pending FIFO.
func (q *Queue) Enqueue(cmd any) {
	q.pending = append(q.pending, cmd)
}

// Pending returns the number of commands waiting to be drained.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// System returns an engine.System that drains every command pending at
// the start of the tick, in FIFO order, dispatching to the handler
// registered for its exact dynamic type. A command with no registered
// handler fails the tick. Commands enqueued by a handler mid-drain are
// carried over to the next tick, not drained in the same pass.
func System(q *Queue, hooks Hooks) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		batch := q.pending
		q.pending = nil

		for _, cmd := range batch {
			t := reflect.TypeOf(cmd)
			handler, ok := q.handlers[t]
			if !ok {
				typeName := "<nil>"
				if t != nil {
					typeName = t.String()
				}
				return &kernelerr.NoHandlerError{CommandType: typeName}
			}
			accepted, err := handler(w, ctx, cmd)
			if err != nil {
				return err
			}
			if accepted {
				if hooks.OnAccept != nil {
					hooks.OnAccept(cmd)
				}
			} else if hooks.OnReject != nil {
				hooks.OnReject(cmd)
			}
		}
		return nil
	}
}
