package ai

import (
	"fmt"

	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/kernelerr"
)

// Status is the result of evaluating one behavior-tree node.
type Status int

const (
	Success Status = iota
	Failure
	Running
)

// Kind names a behavior-tree node type.
type Kind string

const (
	KindAction          Kind = "action"
	KindCondition       Kind = "condition"
	KindSequence        Kind = "sequence"
	KindSelector        Kind = "selector"
	KindParallel        Kind = "parallel"
	KindUtilitySelector Kind = "utility_selector"
	KindInverter        Kind = "inverter"
	KindRepeater        Kind = "repeater"
	KindSucceeder       Kind = "succeeder"
	KindAlwaysFail      Kind = "always_fail"
)

// ParallelPolicy decides how a Parallel node combines its children's
// results.
type ParallelPolicy string

const (
	RequireAll ParallelPolicy = "require_all"
	RequireOne ParallelPolicy = "require_one"
)

// RepeatFailPolicy decides how a Repeater node reacts to a child failure.
type RepeatFailPolicy string

const (
	RepeatRestart RepeatFailPolicy = "restart"
	RepeatFail    RepeatFailPolicy = "fail"
)

// UtilityBranch is one child of a UtilitySelector node: a candidate
// subtree plus the considerations used to score it.
type UtilityBranch struct {
	Child          string
	Considerations []string
}

// Node is one entry of a behavior tree's node map. Every node carries a
// stable ID matching its key in the map; composites carry an ordered
// child-ID list, decorators carry a single child ID.
type Node struct {
	ID       string
	Kind     Kind
	Callback string // action or condition name

	Children []string // sequence, selector
	Child    string   // inverter, repeater, succeeder, always_fail

	ParallelPolicy   ParallelPolicy
	ParallelChildren []string

	RepeaterMaxCount   int
	RepeaterFailPolicy RepeatFailPolicy
	UtilityBranches    []UtilityBranch
}

// treeDef is a validated, named behavior tree: a root node ID and the
// full node map it references.
type treeDef struct {
	root   string
	nodes  map[string]Node
	parent map[string]string // child id -> parent id
}

func buildParentMap(root string, nodes map[string]Node) map[string]string {
	parent := make(map[string]string)
	var walk func(id string)
	walk = func(id string) {
		node := nodes[id]
		switch node.Kind {
		case KindSequence, KindSelector:
			for _, c := range node.Children {
				parent[c] = id
				walk(c)
			}
		case KindParallel:
			for _, c := range node.ParallelChildren {
				parent[c] = id
				walk(c)
			}
		case KindUtilitySelector:
			for _, b := range node.UtilityBranches {
				parent[b.Child] = id
				walk(b.Child)
			}
		case KindInverter, KindRepeater, KindSucceeder, KindAlwaysFail:
			if node.Child != "" {
				parent[node.Child] = id
				walk(node.Child)
			}
		}
	}
	walk(root)
	return parent
}

func validateTree(root string, nodes map[string]Node) error {
	if _, ok := nodes[root]; !ok {
		return &kernelerr.BadInputError{Reason: "missing root: " + root}
	}
	for key, node := range nodes {
		if node.ID != key {
			return &kernelerr.BadInputError{Reason: fmt.Sprintf("id mismatch: node stored under %q has id %q", key, node.ID)}
		}
		var children []string
		switch node.Kind {
		case KindSequence, KindSelector:
			children = node.Children
		case KindParallel:
			children = node.ParallelChildren
		case KindUtilitySelector:
			for _, b := range node.UtilityBranches {
				children = append(children, b.Child)
			}
		case KindInverter, KindRepeater, KindSucceeder, KindAlwaysFail:
			if node.Child != "" {
				children = []string{node.Child}
			}
		}
		for _, c := range children {
			if _, ok := nodes[c]; !ok {
				return &kernelerr.BadInputError{Reason: "unknown child: " + c}
			}
		}
	}
	return nil
}

// BehaviorTree is the per-entity evaluation state: which tree definition
// drives this entity, the node currently RUNNING (empty if none), the
// last resolved status, and per-node repeat counters.
type BehaviorTree struct {
	TreeName     string         `json:"tree_name"`
	RunningNode  string         `json:"running_node,omitempty"`
	Status       string         `json:"status,omitempty"`
	RepeatCounts map[string]int `json:"repeat_counts,omitempty"`
}

// evalResult carries a node's status plus, when Running, the ID of the
// leaf that is actually running (used to populate running_node).
type evalResult struct {
	status     Status
	runningID  string
}

func (m *Manager) evalNode(def *treeDef, id string, w *ecs.World, ctx engine.TickContext, e ecs.Entity, bb *Blackboard, counts map[string]int, resume string) (evalResult, error) {
	node := def.nodes[id]

	childResume := func(childID string) string {
		if resume == "" {
			return ""
		}
		if resume == childID {
			return resume
		}
		for cur := resume; cur != ""; cur = def.parent[cur] {
			if cur == childID {
				return resume
			}
		}
		return ""
	}

	switch node.Kind {
	case KindAction:
		fn, ok := m.actions[node.Callback]
		if !ok {
			return evalResult{}, &kernelerr.UnknownNameError{Registry: "action", Name: node.Callback}
		}
		status := fn(w, ctx, e, bb)
		if status == Running {
			return evalResult{status: Running, runningID: id}, nil
		}
		return evalResult{status: status}, nil

	case KindCondition:
		fn, ok := m.conditions[node.Callback]
		if !ok {
			return evalResult{}, &kernelerr.UnknownNameError{Registry: "condition", Name: node.Callback}
		}
		if fn(w, ctx, e, bb) {
			return evalResult{status: Success}, nil
		}
		return evalResult{status: Failure}, nil

	case KindSequence:
		start := 0
		childRes := ""
		if resume != "" {
			for i, c := range node.Children {
				if childResume(c) != "" {
					start = i
					childRes = childResume(c)
					break
				}
			}
		}
		for i := start; i < len(node.Children); i++ {
			r := childRes
			if i != start {
				r = ""
			}
			res, err := m.evalNode(def, node.Children[i], w, ctx, e, bb, counts, r)
			if err != nil {
				return evalResult{}, err
			}
			if res.status == Running {
				return evalResult{status: Running, runningID: res.runningID}, nil
			}
			if res.status == Failure {
				return evalResult{status: Failure}, nil
			}
		}
		return evalResult{status: Success}, nil

	case KindSelector:
		start := 0
		childRes := ""
		if resume != "" {
			for i, c := range node.Children {
				if childResume(c) != "" {
					start = i
					childRes = childResume(c)
					break
				}
			}
		}
		for i := start; i < len(node.Children); i++ {
			r := childRes
			if i != start {
				r = ""
			}
			res, err := m.evalNode(def, node.Children[i], w, ctx, e, bb, counts, r)
			if err != nil {
				return evalResult{}, err
			}
			if res.status == Running {
				return evalResult{status: Running, runningID: res.runningID}, nil
			}
			if res.status == Success {
				return evalResult{status: Success}, nil
			}
		}
		return evalResult{status: Failure}, nil

	case KindParallel:
		successes, failures := 0, 0
		var runningID string
		for _, c := range node.ParallelChildren {
			res, err := m.evalNode(def, c, w, ctx, e, bb, counts, childResume(c))
			if err != nil {
				return evalResult{}, err
			}
			switch res.status {
			case Success:
				successes++
			case Failure:
				failures++
			case Running:
				if runningID == "" {
					runningID = res.runningID
				}
			}
		}
		total := len(node.ParallelChildren)
		switch node.ParallelPolicy {
		case RequireOne:
			if successes > 0 {
				return evalResult{status: Success}, nil
			}
			if failures == total {
				return evalResult{status: Failure}, nil
			}
		default: // RequireAll
			if failures > 0 {
				return evalResult{status: Failure}, nil
			}
			if successes == total {
				return evalResult{status: Success}, nil
			}
		}
		return evalResult{status: Running, runningID: runningID}, nil

	case KindUtilitySelector:
		if len(node.UtilityBranches) == 0 {
			return evalResult{status: Failure}, nil
		}
		bestIdx := -1
		bestScore := -1.0
		for i, b := range node.UtilityBranches {
			score := 1.0
			for _, cname := range b.Considerations {
				fn, ok := m.considerations[cname]
				if !ok {
					score = 0
					break
				}
				score *= clamp01(fn(w, ctx, e, bb))
			}
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		chosen := node.UtilityBranches[bestIdx].Child
		return m.evalNode(def, chosen, w, ctx, e, bb, counts, childResume(chosen))

	case KindInverter:
		res, err := m.evalNode(def, node.Child, w, ctx, e, bb, counts, childResume(node.Child))
		if err != nil {
			return evalResult{}, err
		}
		switch res.status {
		case Running:
			return evalResult{status: Running, runningID: res.runningID}, nil
		case Success:
			return evalResult{status: Failure}, nil
		default:
			return evalResult{status: Success}, nil
		}

	case KindRepeater:
		res, err := m.evalNode(def, node.Child, w, ctx, e, bb, counts, childResume(node.Child))
		if err != nil {
			return evalResult{}, err
		}
		switch res.status {
		case Running:
			return evalResult{status: Running, runningID: res.runningID}, nil
		case Failure:
			if node.RepeaterFailPolicy == RepeatFail {
				return evalResult{status: Failure}, nil
			}
			counts[id] = 0
			return evalResult{status: Running, runningID: id}, nil
		default: // Success
			counts[id]++
			if counts[id] >= node.RepeaterMaxCount {
				return evalResult{status: Success}, nil
			}
			return evalResult{status: Running, runningID: id}, nil
		}

	case KindSucceeder:
		res, err := m.evalNode(def, node.Child, w, ctx, e, bb, counts, childResume(node.Child))
		if err != nil {
			return evalResult{}, err
		}
		if res.status == Running {
			return evalResult{status: Running, runningID: res.runningID}, nil
		}
		return evalResult{status: Success}, nil

	case KindAlwaysFail:
		res, err := m.evalNode(def, node.Child, w, ctx, e, bb, counts, childResume(node.Child))
		if err != nil {
			return evalResult{}, err
		}
		if res.status == Running {
			return evalResult{status: Running, runningID: res.runningID}, nil
		}
		return evalResult{status: Failure}, nil
	}

	return evalResult{status: Failure}, nil
}

// BTHooks bundles the optional callback fired when a tree resolves.
type BTHooks struct {
	OnStatus func(e ecs.Entity, status Status)
}

// BTSystem returns an engine.System that evaluates, for every entity
// carrying a BehaviorTree and Blackboard component, the named tree
// definition — resuming at the stored running node when set. When the
// whole tree resolves to Success or Failure, running_node is cleared,
// repeat counts for nodes completed this evaluation are reset, and
// on_status fires.
func BTSystem(m *Manager, hooks BTHooks) engine.System {
	return func(w *ecs.World, ctx engine.TickContext) error {
		for row := range ecs.Query2[BehaviorTree, Blackboard](w) {
			bt, bb := row.A, row.B
			def, ok := m.trees[bt.TreeName]
			if !ok {
				return &kernelerr.UnknownNameError{Registry: "behavior_tree", Name: bt.TreeName}
			}
			if bt.RepeatCounts == nil {
				bt.RepeatCounts = make(map[string]int)
			}
			res, err := m.evalNode(def, def.root, w, ctx, row.Entity, bb, bt.RepeatCounts, bt.RunningNode)
			if err != nil {
				return err
			}
			if res.status == Running {
				bt.RunningNode = res.runningID
			} else {
				bt.RunningNode = ""
				bt.RepeatCounts = make(map[string]int)
			}
			bt.Status = statusName(res.status)
			if res.status != Running && hooks.OnStatus != nil {
				hooks.OnStatus(row.Entity, res.status)
			}
		}
		return nil
	}
}

func statusName(s Status) string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "running"
	}
}
