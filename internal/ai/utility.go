package ai

import (
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
)

// Consideration scores one factor of a utility action in [0,1].
type Consideration func(w *ecs.World, ctx engine.TickContext, e ecs.Entity, bb *Blackboard) float64

// UtilityActionDef names the considerations scored to produce an
// action's overall utility.
type UtilityActionDef struct {
	Name           string
	Considerations []string
}

// UtilitySelectorDef names the ordered set of actions a selector chooses
// among. Ties resolve to the first action in this order.
type UtilitySelectorDef struct {
	Name    string
	Actions []string
}

// UtilityAgent is the per-entity component recording the most recent
// selection made for a given selector.
type UtilityAgent struct {
	Selector string  `json:"selector"`
	Chosen   string  `json:"chosen"`
	Score    float64 `json:"score"`
}

// scoreAction multiplies the scores of every named consideration, each
// clamped to [0,1]. An unknown consideration name yields a score of 0.
func (m *Manager) scoreAction(name string, w *ecs.World, ctx engine.TickContext, e ecs.Entity, bb *Blackboard) float64 {
	def, ok := m.utilityActions[name]
	if !ok {
		return 0
	}
	score := 1.0
	for _, considerationName := range def.Considerations {
		fn, ok := m.considerations[considerationName]
		if !ok {
			return 0
		}
		score *= clamp01(fn(w, ctx, e, bb))
	}
	return score
}

// Select evaluates every action in the named selector and returns the
// highest-scoring name and its score. Ties resolve to the first action
// in the selector's definition order. An empty or unknown selector
// yields ("", 0).
func (m *Manager) Select(selectorName string, w *ecs.World, ctx engine.TickContext, e ecs.Entity, bb *Blackboard) (string, float64) {
	def, ok := m.utilitySelectors[selectorName]
	if !ok || len(def.Actions) == 0 {
		return "", 0
	}
	bestName := ""
	bestScore := -1.0
	for _, actionName := range def.Actions {
		score := m.scoreAction(actionName, w, ctx, e, bb)
		if score > bestScore {
			bestScore = score
			bestName = actionName
		}
	}
	return bestName, bestScore
}

// UtilityHooks bundles the optional callback the utility system may fire.
type UtilityHooks struct {
	OnSelect func(e ecs.Entity, name string, score float64)
}

// UtilitySystem returns an engine.System that, for every entity carrying
// a UtilityAgent and a Blackboard, selects from the agent's configured
// selector and writes the chosen action name and score back into the
// component.
func UtilitySystem(m *Manager, hooks UtilityHooks) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		for row := range ecs.Query2[UtilityAgent, Blackboard](w) {
			name, score := m.Select(row.A.Selector, w, ctx, row.Entity, row.B)
			row.A.Chosen = name
			row.A.Score = score
			if hooks.OnSelect != nil {
				hooks.OnSelect(row.Entity, name, score)
			}
		}
		return nil
	}
}
