package ai

import (
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Action is a behavior-tree leaf callback.
type Action func(w *ecs.World, ctx engine.TickContext, e ecs.Entity, bb *Blackboard) Status

// Condition is a behavior-tree leaf predicate.
type Condition func(w *ecs.World, ctx engine.TickContext, e ecs.Entity, bb *Blackboard) bool

// Manager owns every registry the AI layer consults: action and
// condition callbacks, considerations, behavior-tree definitions, and
// utility action/selector definitions.
type Manager struct {
	actions        map[string]Action
	conditions     map[string]Condition
	considerations map[string]Consideration

	trees map[string]*treeDef

	utilityActions   map[string]UtilityActionDef
	utilitySelectors map[string]UtilitySelectorDef
}

// NewManager constructs an empty manager.
func NewManager() *Manager {
	return &Manager{
		actions:          make(map[string]Action),
		conditions:       make(map[string]Condition),
		considerations:   make(map[string]Consideration),
		trees:            make(map[string]*treeDef),
		utilityActions:   make(map[string]UtilityActionDef),
		utilitySelectors: make(map[string]UtilitySelectorDef),
	}
}

// RegisterAction associates name with an action callback.
func (m *Manager) RegisterAction(name string, fn Action) {
	m.actions[name] = fn
}

// RegisterCondition associates name with a condition predicate.
func (m *Manager) RegisterCondition(name string, fn Condition) {
	m.conditions[name] = fn
}

// RegisterConsideration associates name with a consideration scorer.
func (m *Manager) RegisterConsideration(name string, fn Consideration) {
	m.considerations[name] = fn
}

// DefineTree validates and registers a behavior tree under name. The
// root must exist in nodes, every node's map key must equal its stored
// ID, and every child reference must resolve, or the definition is
// rejected.
func (m *Manager) DefineTree(name, root string, nodes map[string]Node) error {
	if err := validateTree(root, nodes); err != nil {
		return err
	}
	m.trees[name] = &treeDef{
		root:   root,
		nodes:  nodes,
		parent: buildParentMap(root, nodes),
	}
	return nil
}

// DefineUtilityAction registers a named list of considerations.
func (m *Manager) DefineUtilityAction(def UtilityActionDef) {
	m.utilityActions[def.Name] = def
}

// DefineUtilitySelector registers a named list of candidate actions.
func (m *Manager) DefineUtilitySelector(def UtilitySelectorDef) {
	m.utilitySelectors[def.Name] = def
}
