// Command enginectl bootstraps a tick engine from TOML/YAML configuration
// files, runs it for a fixed number of ticks or until interrupted, and can
// validate a definitions file without starting anything.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unmarco/tickengine/internal/ability"
	"github.com/unmarco/tickengine/internal/blueprint"
	"github.com/unmarco/tickengine/internal/config"
	"github.com/unmarco/tickengine/internal/engine"
	"github.com/unmarco/tickengine/internal/eventsched"
	"github.com/unmarco/tickengine/internal/resource"
	"github.com/unmarco/tickengine/internal/script"
	"github.com/unmarco/tickengine/internal/snapshot"
	"github.com/unmarco/tickengine/logging"
	abilitylog "github.com/unmarco/tickengine/logging/ability"
	eventlog "github.com/unmarco/tickengine/logging/eventsched"
	resourcelog "github.com/unmarco/tickengine/logging/resource"
	"github.com/unmarco/tickengine/logging/sinks"
)

var (
	bootstrapPath   string
	definitionsPath string
)

func main() {
	root := &cobra.Command{
		Use:   "enginectl",
		Short: "Bootstraps and drives a tick engine instance",
	}
	root.PersistentFlags().StringVar(&bootstrapPath, "bootstrap", "bootstrap.toml", "path to the TOML bootstrap config")
	root.PersistentFlags().StringVar(&definitionsPath, "definitions", "definitions.yaml", "path to the YAML content definitions")

	root.AddCommand(newRunCmd(), newValidateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Loads the bootstrap and definitions files and reports what they contain",
		RunE: func(cmd *cobra.Command, args []string) error {
			boot, err := config.LoadBootstrap(bootstrapPath)
			if err != nil {
				return err
			}
			defs, err := config.LoadDefinitions(definitionsPath)
			if err != nil {
				return err
			}
			fmt.Printf("engine: tps=%d seed=%d\n", boot.Engine.TicksPerSecond, boot.Engine.Seed)
			fmt.Printf("blueprints=%d events=%d cycles=%d abilities=%d resources=%d recipes=%d\n",
				len(defs.Blueprints), len(defs.Events), len(defs.Cycles),
				len(defs.Abilities), len(defs.Resources), len(defs.Recipes))
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var ticks int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Bootstraps an engine and runs it until interrupted, or for a fixed tick count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(ticks)
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 0, "run for exactly this many ticks, then exit (0 = run until interrupted)")
	return cmd
}

func runEngine(ticks int) error {
	boot, err := config.LoadBootstrap(bootstrapPath)
	if err != nil {
		return fmt.Errorf("load bootstrap: %w", err)
	}
	defs, err := config.LoadDefinitions(definitionsPath)
	if err != nil {
		return fmt.Errorf("load definitions: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.EnabledSinks = boot.Logging.Sinks
	router, err := logging.NewRouter(logCfg, logging.SystemClock{}, nil, map[string]logging.Sink{
		"console": sinks.NewConsoleSink(os.Stdout, logging.ConsoleConfig{Prefix: "enginectl "}),
	})
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer router.Close(context.Background())
	runCtx := context.Background()

	e, err := engine.New(boot.Engine.TicksPerSecond, boot.Engine.Seed)
	if err != nil {
		return fmt.Errorf("construct engine: %w", err)
	}

	blueprints := blueprint.New()
	defs.ApplyBlueprints(blueprints)

	scripts := script.New()

	sched := eventsched.New()
	eventGuards := eventsched.NewGuardRegistry()
	defs.ApplyEvents(sched, eventGuards, scripts)
	e.AddSystem(eventsched.System(sched, eventGuards, eventlog.Hooks(runCtx, router)))

	abilities := ability.New()
	abilityGuards := ability.NewGuardRegistry()
	defs.ApplyAbilities(abilities, abilityGuards, scripts)
	e.AddSystem(ability.System(abilities, abilityGuards, abilitylog.Hooks(runCtx, router)))

	resources := resource.NewRegistry()
	defs.ApplyResources(resources)
	e.AddSystem(resource.DecaySystem(resources, resourcelog.OnSpoiled(runCtx, router)))

	coord := snapshot.New(e,
		snapshot.WithScheduler(sched),
		snapshot.WithAbilityManager(abilities),
		snapshot.WithGrid(boot.Snapshot.GridWidth, boot.Snapshot.GridHeight),
	)

	fmt.Printf("enginectl: running with %d blueprint(s), tps=%d, seed=%d\n",
		len(blueprints.Names()), boot.Engine.TicksPerSecond, boot.Engine.Seed)

	if ticks > 0 {
		if err := e.Run(ticks); err != nil {
			return err
		}
		snap, err := coord.Snapshot()
		if err != nil {
			return fmt.Errorf("snapshot after run: %w", err)
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()
	return e.RunForever(stop)
}
