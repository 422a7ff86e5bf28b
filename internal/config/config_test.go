package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmarco/tickengine/internal/ability"
	"github.com/unmarco/tickengine/internal/blueprint"
	"github.com/unmarco/tickengine/internal/ecs"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/eventsched"
	"github.com/unmarco/tickengine/internal/resource"
	"github.com/unmarco/tickengine/internal/script"
)

func TestDefaultBootstrapIsReturnedWhenFileMissing(t *testing.T) {
	cfg, err := LoadBootstrap("/nonexistent/path/bootstrap.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultBootstrap(), cfg)
}

func TestDecodeBootstrapOverridesDefaults(t *testing.T) {
	data := []byte(`
[engine]
ticks_per_second = 60
seed = 99

[llm]
workers = 8
rate_limit_per_tick = 2
rate_limit_per_second = 5.5

[snapshot]
grid_width = 512
grid_height = 512
cell_size = 32
`)
	cfg, err := DecodeBootstrap(data)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Engine.TicksPerSecond)
	assert.EqualValues(t, 99, cfg.Engine.Seed)
	assert.Equal(t, 8, cfg.LLM.Workers)
	assert.Equal(t, 2, cfg.LLM.RateLimitPerTick)
	assert.Equal(t, 512, cfg.Snapshot.GridWidth)
	assert.Equal(t, 32, cfg.Snapshot.CellSize)

	// Untouched sections keep their default values.
	assert.Equal(t, "info", cfg.Logging.MinSeverity)
}

func TestDecodeBootstrapRejectsMalformedTOML(t *testing.T) {
	_, err := DecodeBootstrap([]byte("not = [valid toml"))
	assert.Error(t, err)
}

const sampleDefinitions = `
blueprints:
  - name: campfire
    components:
      Inventory:
        Capacity: 10
    meta:
      footprint: small

events:
  - name: storm
    duration:
      fixed: 5
    cooldown: 20
    probability: 1
    guards: ["weather_enabled"]

cycles:
  - name: day_night
    delay: 10
    phases:
      - name: day
        duration: 100
      - name: night
        duration: 50

abilities:
  - name: dash
    duration:
      fixed: 2
    cooldown: 10
    max_charges: 3
    charge_regen: 30

resources:
  - name: berries
    max_stack: 20
    decay_rate: 1

recipes:
  - name: stew
    inputs:
      berries: 2
    outputs:
      stew: 1
    duration: 15
`

func TestDecodeDefinitionsParsesEveryKind(t *testing.T) {
	defs, err := DecodeDefinitions([]byte(sampleDefinitions))
	require.NoError(t, err)

	t.Run("blueprints", func(t *testing.T) {
		require.Len(t, defs.Blueprints, 1)
		assert.Equal(t, "campfire", defs.Blueprints[0].Name)
	})
	t.Run("events", func(t *testing.T) {
		require.Len(t, defs.Events, 1)
		assert.Equal(t, 5, defs.Events[0].Duration.Fixed)
	})
	t.Run("cycles", func(t *testing.T) {
		require.Len(t, defs.Cycles, 1)
		assert.Len(t, defs.Cycles[0].Phases, 2)
	})
	t.Run("abilities", func(t *testing.T) {
		require.Len(t, defs.Abilities, 1)
		assert.Equal(t, 3, defs.Abilities[0].MaxCharges)
	})
	t.Run("resources", func(t *testing.T) {
		require.Len(t, defs.Resources, 1)
		assert.Equal(t, 20, defs.Resources[0].MaxStack)
	})
	t.Run("recipes", func(t *testing.T) {
		require.Len(t, defs.Recipes, 1)
		assert.Equal(t, 1, defs.Recipes[0].Outputs["stew"])
	})
}

func TestApplyBlueprintsRegistersRecipes(t *testing.T) {
	defs, err := DecodeDefinitions([]byte(sampleDefinitions))
	require.NoError(t, err)

	reg := blueprint.New()
	defs.ApplyBlueprints(reg)

	names := reg.Names()
	require.Len(t, names, 1)
	assert.Equal(t, "campfire", names[0])

	meta, ok := reg.Meta("campfire")
	require.True(t, ok)
	assert.Equal(t, "small", meta["footprint"])
}

func TestApplyEventsRegistersEventsAndCycles(t *testing.T) {
	defs, err := DecodeDefinitions([]byte(sampleDefinitions))
	require.NoError(t, err)

	sched := eventsched.New()
	guards := eventsched.NewGuardRegistry()
	guards.Register("weather_enabled", func(*ecs.World) bool { return true })
	defs.ApplyEvents(sched, guards, nil)

	e, err := engine.New(10, 1)
	require.NoError(t, err)
	e.AddSystem(eventsched.System(sched, guards, eventsched.Hooks{}))

	require.NoError(t, e.Step())
	assert.True(t, sched.IsActive("storm"), "expected storm (probability 1) to activate on the first roll")

	// day_night's 10 tick delay has only begun; exhaust it before the
	// first phase becomes active.
	for i := 0; i < 9; i++ {
		require.NoError(t, e.Step())
	}
	assert.True(t, sched.IsActive("day"), "expected the day_night cycle's first phase to become active once its delay elapses")
}

func TestApplyAbilitiesRegistersAbilities(t *testing.T) {
	defs, err := DecodeDefinitions([]byte(sampleDefinitions))
	require.NoError(t, err)

	mgr := ability.New()
	defs.ApplyAbilities(mgr, ability.NewGuardRegistry(), nil)

	charges, ok := mgr.Charges("dash")
	require.True(t, ok)
	assert.Equal(t, 3, charges)
}

func TestApplyEventsWiresScriptGuard(t *testing.T) {
	defs, err := DecodeDefinitions([]byte(`
events:
  - name: eclipse
    duration: {fixed: 3}
    probability: 1
    guards: ["script:false"]
  - name: aurora
    duration: {fixed: 3}
    probability: 1
    guards: ["script:true"]
`))
	require.NoError(t, err)

	sched := eventsched.New()
	guards := eventsched.NewGuardRegistry()
	defs.ApplyEvents(sched, guards, script.New())

	e, err := engine.New(10, 1)
	require.NoError(t, err)
	e.AddSystem(eventsched.System(sched, guards, eventsched.Hooks{}))

	require.NoError(t, e.Step())
	assert.False(t, sched.IsActive("eclipse"), "a script guard evaluating false must block activation")
	assert.True(t, sched.IsActive("aurora"), "a script guard evaluating true must allow activation")
}

func TestApplyAbilitiesWiresScriptGuard(t *testing.T) {
	defs, err := DecodeDefinitions([]byte(`
abilities:
  - name: overcharge
    duration: {fixed: 2}
    max_charges: -1
    guards: ["script:tick >= 5"]
`))
	require.NoError(t, err)

	mgr := ability.New()
	guards := ability.NewGuardRegistry()
	defs.ApplyAbilities(mgr, guards, script.New())

	e, err := engine.New(10, 1)
	require.NoError(t, err)

	ctx := engine.TickContext{Tick: 1}
	assert.False(t, mgr.Invoke("overcharge", e.World(), ctx, guards), "guard should block invocation before tick 5")

	ctx = engine.TickContext{Tick: 5}
	assert.True(t, mgr.Invoke("overcharge", e.World(), ctx, guards), "guard should allow invocation once tick >= 5")
}

func TestApplyResourcesAndRecipes(t *testing.T) {
	defs, err := DecodeDefinitions([]byte(sampleDefinitions))
	require.NoError(t, err)

	reg := resource.NewRegistry()
	defs.ApplyResources(reg)

	def, ok := reg.Lookup("berries")
	require.True(t, ok)
	assert.Equal(t, 20, def.MaxStack)

	recipes := defs.Recipes()
	require.Len(t, recipes, 1)
	assert.Equal(t, "stew", recipes[0].Name)

	inv := resource.NewInventory(-1)
	inv.Add("berries", 2)
	assert.True(t, recipes[0].CanCraft(&inv), "expected stew recipe to be craftable from 2 berries")
}

func TestLoadDefinitionsFailsOnMissingFile(t *testing.T) {
	_, err := LoadDefinitions("/nonexistent/path/defs.yaml")
	assert.Error(t, err)
}
