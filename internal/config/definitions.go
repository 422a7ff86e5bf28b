package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unmarco/tickengine/internal/ability"
	"github.com/unmarco/tickengine/internal/blueprint"
	"github.com/unmarco/tickengine/internal/eventsched"
	"github.com/unmarco/tickengine/internal/resource"
	"github.com/unmarco/tickengine/internal/script"
)

// scriptGuardPrefix marks a guard name in YAML as a JavaScript expression
// rather than a Go callback registered under that exact name. The guard's
// registry key is still the full prefixed name; only the suffix after the
// prefix is compiled and evaluated.
const scriptGuardPrefix = "script:"

// DurationDef mirrors the fixed-or-ranged duration shape shared by
// events and abilities.
type DurationDef struct {
	Fixed  int  `yaml:"fixed"`
	Min    int  `yaml:"min"`
	Max    int  `yaml:"max"`
	Ranged bool `yaml:"ranged"`
}

func (d DurationDef) resolved() (fixed, min, max int, ranged bool) {
	return d.Fixed, d.Min, d.Max, d.Ranged
}

// BlueprintDef declares one named entity-composition recipe.
type BlueprintDef struct {
	Name       string                    `yaml:"name"`
	Components map[string]map[string]any `yaml:"components"`
	Meta       map[string]any            `yaml:"meta"`
}

// EventDef declares one world-level timed event.
type EventDef struct {
	Name        string      `yaml:"name"`
	Duration    DurationDef `yaml:"duration"`
	Cooldown    int         `yaml:"cooldown"`
	Probability float64     `yaml:"probability"`
	Guards      []string    `yaml:"guards"`
}

// PhaseDef is one ordered phase of a cycle.
type PhaseDef struct {
	Name     string `yaml:"name"`
	Duration int    `yaml:"duration"`
}

// CycleDef declares a repeating sequence of phases.
type CycleDef struct {
	Name   string     `yaml:"name"`
	Phases []PhaseDef `yaml:"phases"`
	Delay  int        `yaml:"delay"`
}

// AbilityDef declares one ability.
type AbilityDef struct {
	Name        string      `yaml:"name"`
	Duration    DurationDef `yaml:"duration"`
	Cooldown    int         `yaml:"cooldown"`
	MaxCharges  int         `yaml:"max_charges"`
	ChargeRegen int         `yaml:"charge_regen"`
	Guards      []string    `yaml:"guards"`
}

// ResourceDef declares one resource kind.
type ResourceDef struct {
	Name       string         `yaml:"name"`
	MaxStack   int            `yaml:"max_stack"`
	DecayRate  int            `yaml:"decay_rate"`
	Properties map[string]any `yaml:"properties"`
}

// RecipeDef declares one crafting recipe.
type RecipeDef struct {
	Name     string         `yaml:"name"`
	Inputs   map[string]int `yaml:"inputs"`
	Outputs  map[string]int `yaml:"outputs"`
	Duration int            `yaml:"duration"`
}

// Definitions is the complete set of content definitions loaded from a
// single YAML document.
type Definitions struct {
	Blueprints []BlueprintDef `yaml:"blueprints"`
	Events     []EventDef     `yaml:"events"`
	Cycles     []CycleDef     `yaml:"cycles"`
	Abilities  []AbilityDef   `yaml:"abilities"`
	Resources  []ResourceDef  `yaml:"resources"`
	Recipes    []RecipeDef    `yaml:"recipes"`
}

// LoadDefinitions reads and parses a YAML definitions file at path.
func LoadDefinitions(path string) (Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definitions{}, fmt.Errorf("read definitions %s: %w", path, err)
	}
	return DecodeDefinitions(data)
}

// DecodeDefinitions parses a YAML definitions document from raw bytes.
func DecodeDefinitions(data []byte) (Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return Definitions{}, fmt.Errorf("decode definitions: %w", err)
	}
	return defs, nil
}

// ApplyBlueprints registers every blueprint in defs against reg.
func (defs Definitions) ApplyBlueprints(reg *blueprint.Registry) {
	for _, b := range defs.Blueprints {
		reg.Define(b.Name, blueprint.Recipe(b.Components), b.Meta)
	}
}

// ApplyEvents registers every event and cycle in defs against sched. Any
// guard name prefixed "script:" is compiled through scripts and registered
// into guards under its full prefixed name, so the scheduler's own
// by-name lookup resolves it like any other guard. scripts and guards may
// both be nil if defs declares no scripted guards.
func (defs Definitions) ApplyEvents(sched *eventsched.Scheduler, guards *eventsched.GuardRegistry, scripts *script.Engine) {
	for _, e := range defs.Events {
		fixed, min, max, ranged := e.Duration.resolved()
		sched.DefineEvent(eventsched.EventDef{
			Name:        e.Name,
			Duration:    eventsched.Duration{Fixed: fixed, Min: min, Max: max, Ranged: ranged},
			Cooldown:    e.Cooldown,
			Probability: e.Probability,
			Guards:      e.Guards,
		})
		for _, g := range e.Guards {
			if expr, ok := strings.CutPrefix(g, scriptGuardPrefix); ok && guards != nil && scripts != nil {
				guards.Register(g, scripts.EventGuard(expr))
			}
		}
	}
	for _, c := range defs.Cycles {
		phases := make([]eventsched.PhaseDef, len(c.Phases))
		for i, p := range c.Phases {
			phases[i] = eventsched.PhaseDef{Name: p.Name, Duration: p.Duration}
		}
		sched.DefineCycle(eventsched.CycleDef{Name: c.Name, Phases: phases, Delay: c.Delay})
	}
}

// ApplyAbilities registers every ability in defs against mgr. Any guard
// name prefixed "script:" is compiled through scripts and registered into
// guards under its full prefixed name, the same convention ApplyEvents
// uses. scripts and guards may both be nil if defs declares no scripted
// guards.
func (defs Definitions) ApplyAbilities(mgr *ability.Manager, guards *ability.GuardRegistry, scripts *script.Engine) {
	for _, a := range defs.Abilities {
		fixed, min, max, ranged := a.Duration.resolved()
		mgr.Define(ability.Def{
			Name:        a.Name,
			Duration:    ability.Duration{Fixed: fixed, Min: min, Max: max, Ranged: ranged},
			Cooldown:    a.Cooldown,
			MaxCharges:  a.MaxCharges,
			ChargeRegen: a.ChargeRegen,
			Guards:      a.Guards,
		})
		for _, g := range a.Guards {
			if expr, ok := strings.CutPrefix(g, scriptGuardPrefix); ok && guards != nil && scripts != nil {
				guards.Register(g, scripts.AbilityGuard(expr))
			}
		}
	}
}

// ApplyResources registers every resource definition in defs against reg.
func (defs Definitions) ApplyResources(reg *resource.Registry) {
	for _, r := range defs.Resources {
		reg.Define(resource.Def{
			Name:       r.Name,
			MaxStack:   r.MaxStack,
			DecayRate:  r.DecayRate,
			Properties: r.Properties,
		})
	}
}

// Recipes converts the declared recipe definitions into resource.Recipe
// values, in declaration order.
func (defs Definitions) Recipes() []resource.Recipe {
	out := make([]resource.Recipe, len(defs.Recipes))
	for i, r := range defs.Recipes {
		out[i] = resource.Recipe{
			Name:     r.Name,
			Inputs:   r.Inputs,
			Outputs:  r.Outputs,
			Duration: r.Duration,
		}
	}
	return out
}
