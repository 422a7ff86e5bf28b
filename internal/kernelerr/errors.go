// Package kernelerr collects the error kinds shared across the engine's
// registries (blueprint, event, ability, resource, AI, LLM, command queue):
// unknown-name lookups, snapshot incompatibilities, missing command
// handlers, and rejected constructor input. ecs.DeadEntityError and
// ecs.MissingComponentError live closer to the world and are not
// duplicated here.
package kernelerr

import "fmt"

// UnknownNameError reports a lookup, in any registry, of a name that was
// never registered: a guard, action, condition, consideration, blueprint,
// recipe, event, ability, parser, context, role, or personality.
type UnknownNameError struct {
	Registry string
	Name     string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("kernel: unknown %s %q", e.Registry, e.Name)
}

// SnapshotError reports a version mismatch, a tps mismatch, an
// unregistered component type referenced by a restore, or a malformed
// value tree.
type SnapshotError struct {
	Reason string
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("kernel: snapshot error: %s", e.Reason)
}

// NoHandlerError reports a command enqueued with no registered handler for
// its type.
type NoHandlerError struct {
	CommandType string
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("kernel: no handler registered for command type %q", e.CommandType)
}

// BadInputError reports a rejected constructor argument: an empty name, a
// negative decay rate, a non-positive dimension, and so on.
type BadInputError struct {
	Reason string
}

func (e *BadInputError) Error() string {
	return fmt.Sprintf("kernel: bad input: %s", e.Reason)
}

// LLMError wraps a failure from inside an LLM client call. The LLM system
// is the sole subsystem that catches errors rather than propagating them;
// it translates these into error callbacks plus a cooldown.
type LLMError struct {
	Cause error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("kernel: llm error: %v", e.Cause)
}

func (e *LLMError) Unwrap() error { return e.Cause }
