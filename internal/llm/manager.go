// Package llm implements the strategic-query layer: an LLM-backed
// system that periodically assembles a prompt from named role,
// personality, and world-reading context pieces, dispatches it to a
// client on a bounded worker pool, and folds the parsed response into
// each agent's blackboard.
package llm

import (
	"context"
	"sync"

	"github.com/unmarco/tickengine/internal/ecs"
)

// ContextFunc reads the world and returns the context text for an
// entity, or ok=false if no context is currently available.
type ContextFunc func(w *ecs.World, e ecs.Entity) (text string, ok bool)

type pendingResult struct {
	entity   ecs.Entity
	response string
	err      error
}

// Manager owns the role/personality/context/parser registries, the
// configured client, the rate limiter, and the worker pool that
// dispatches queries without blocking the tick loop.
type Manager struct {
	roles         map[string]string
	personalities map[string]string
	contexts      map[string]ContextFunc
	parsers       map[string]Parser

	client  Client
	limiter *limiter

	sem     chan struct{}
	results chan pendingResult

	mu sync.Mutex
}

// New constructs a manager bound to client, with concurrency workers and
// the given rate limit.
func New(client Client, workers int, rl RateLimit) *Manager {
	if workers <= 0 {
		workers = 1
	}
	return &Manager{
		roles:         make(map[string]string),
		personalities: make(map[string]string),
		contexts:      make(map[string]ContextFunc),
		parsers:       map[string]Parser{"default": DefaultParser},
		client:        client,
		limiter:       newLimiter(rl),
		sem:           make(chan struct{}, workers),
		results:       make(chan pendingResult, workers*4),
	}
}

// RegisterRole associates name with a prompt fragment describing a role.
func (m *Manager) RegisterRole(name, text string) {
	m.roles[name] = text
}

// RegisterPersonality associates name with a prompt fragment describing
// a personality.
func (m *Manager) RegisterPersonality(name, text string) {
	m.personalities[name] = text
}

// RegisterContext associates name with a world-reading callable.
func (m *Manager) RegisterContext(name string, fn ContextFunc) {
	m.contexts[name] = fn
}

// RegisterParser associates name with a response parser. The name
// "default" is pre-registered to DefaultParser.
func (m *Manager) RegisterParser(name string, fn Parser) {
	m.parsers[name] = fn
}

func (m *Manager) assemble(w *ecs.World, e ecs.Entity, agent *Agent) (string, bool) {
	role, ok := m.roles[agent.Role]
	if !ok {
		return "", false
	}
	personality, ok := m.personalities[agent.Personality]
	if !ok {
		return "", false
	}
	contextFn, ok := m.contexts[agent.Context]
	if !ok {
		return "", false
	}
	contextText, ok := contextFn(w, e)
	if !ok {
		return "", false
	}
	return role + "\n" + personality + "\n" + contextText, true
}

func (m *Manager) parserFor(name string) (Parser, bool) {
	if name == "" {
		name = "default"
	}
	fn, ok := m.parsers[name]
	return fn, ok
}

// dispatch submits prompt for entity on the worker pool, blocking only
// if every worker slot is busy.
func (m *Manager) dispatch(entity ecs.Entity, prompt string) {
	m.sem <- struct{}{}
	go func() {
		defer func() { <-m.sem }()
		response, err := m.client.Query(context.Background(), prompt)
		m.results <- pendingResult{entity: entity, response: response, err: err}
	}()
}
