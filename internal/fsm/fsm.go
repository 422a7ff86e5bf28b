// Package fsm implements the state + transition table component and its
// evaluator: for every entity, walk the current state's outgoing edges in
// declared order and take the first whose named guard passes.
package fsm

import (
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/kernelerr"
)

// Edge is one outgoing transition: if Guard passes, the FSM moves to
// Target.
type Edge struct {
	Guard  string `json:"guard"`
	Target string `json:"target"`
}

// FSM is the state-machine component. Initial and History are accepted for
// future hierarchical-state use; the base evaluator only walks the flat
// Transitions table from State.
type FSM struct {
	State       string            `json:"state"`
	Transitions map[string][]Edge `json:"transitions"`
	Initial     string            `json:"initial,omitempty"`
	History     []string          `json:"history,omitempty"`
}

// Guard is a named predicate consulted before a transition.
type Guard func(w *ecs.World, e ecs.Entity) bool

// GuardRegistry resolves guard names to predicates. It is owned by the
// embedder and shared across ticks.
type GuardRegistry struct {
	guards map[string]Guard
}

// NewGuardRegistry constructs an empty registry.
func NewGuardRegistry() *GuardRegistry {
	return &GuardRegistry{guards: make(map[string]Guard)}
}

// Register associates name with fn, replacing any prior registration.
func (r *GuardRegistry) Register(name string, fn Guard) {
	r.guards[name] = fn
}

// Lookup resolves name, if registered.
func (r *GuardRegistry) Lookup(name string) (Guard, bool) {
	fn, ok := r.guards[name]
	return fn, ok
}

// OnTransition fires once per entity per tick a transition actually
// occurs.
type OnTransition func(w *ecs.World, ctx engine.TickContext, e ecs.Entity, old, new string)

// System returns an engine.System that evaluates every FSM component's
// outgoing edges from its current state, in declared order, and commits
// the first transition whose guard passes. An edge naming an unregistered
// guard fails the tick immediately with kernelerr.UnknownNameError.
func System(guards *GuardRegistry, onTransition OnTransition) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		for e, machine := range ecs.Query1[FSM](w) {
			edges, ok := machine.Transitions[machine.State]
			if !ok || len(edges) == 0 {
				continue
			}
			for _, edge := range edges {
				guard, ok := guards.Lookup(edge.Guard)
				if !ok {
					return &kernelerr.UnknownNameError{Registry: "guard", Name: edge.Guard}
				}
				if !guard(w, e) {
					continue
				}
				old := machine.State
				machine.State = edge.Target
				if onTransition != nil {
					onTransition(w, ctx, e, old, edge.Target)
				}
				break
			}
		}
		return nil
	}
}
