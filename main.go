package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
	"github.com/pthm-cable/brood/engine"
	"github.com/pthm-cable/brood/events"
	"github.com/pthm-cable/brood/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scenario := flag.String("scenario", "skirmish", "Scenario to run: skirmish, boss, midboss, mixed")
	maxTicks := flag.Int("max-ticks", 3600, "Stop after N ticks")
	seed := flag.Int64("seed", 0, "RNG seed override (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	watchConfig := flag.Bool("watch-config", false, "Hot-reload the config file on change")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *watchConfig && *configPath != "" {
		watcher, err := config.Watch(*configPath)
		if err != nil {
			slog.Error("failed to watch config", "error", err)
			os.Exit(1)
		}
		defer watcher.Close()
		go func() {
			for {
				select {
				case _, ok := <-watcher.Reloads:
					if !ok {
						return
					}
					slog.Info("config reloaded", "path", *configPath)
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					slog.Warn("config watch error", "error", err)
				}
			}
		}()
	}

	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	eng := engine.New()
	defer eng.Close()

	collector := telemetry.NewCollector(statsWindowSec, cfg.Derived.DT32)
	perf := telemetry.NewPerfCollector(cfg.Derived.TicksPerSecond)
	eng.SetPerf(perf)

	run, err := buildScenario(eng, *scenario)
	if err != nil {
		slog.Error("failed to build scenario", "scenario", *scenario, "error", err)
		os.Exit(1)
	}

	slog.Info("starting scenario",
		"scenario", *scenario,
		"agents", eng.AgentCount(),
		"max_ticks", *maxTicks,
		"seed", cfg.Simulation.Seed,
	)

	start := time.Now()
	var drained []events.Event

	for int(eng.Tick()) < *maxTicks {
		perf.StartTick()

		run.drive(eng)
		eng.Step()

		perf.StartPhase(telemetry.PhaseTelemetry)
		drained = eng.Events().DrainInto(drained[:0])
		for _, ev := range drained {
			collector.Record(ev)
		}
		if err := om.WriteEvents(drained); err != nil {
			slog.Warn("failed to write events", "error", err)
		}

		if collector.ShouldFlush(eng.Tick()) {
			var census telemetry.StateCensus
			eng.EachBehavior(func(_ ecs.Entity, b *components.Behavior) {
				census.Count(b.State)
			})
			stats := collector.Flush(eng.Tick(), eng.AgentCount(), census)
			if *logStats {
				stats.LogStats()
			}
			if err := om.WriteTelemetry(stats); err != nil {
				slog.Warn("failed to write telemetry", "error", err)
			}
			if err := om.WritePerf(perf.Stats(), eng.Tick()); err != nil {
				slog.Warn("failed to write perf", "error", err)
			}
		}
		perf.EndTick()
	}

	slog.Info("scenario finished",
		"ticks", eng.Tick(),
		"sim_time", eng.Now(),
		"wall_time", time.Since(start).String(),
	)
}

// scenarioRun drives scripted inputs between ticks: target movement,
// external damage, and stuns.
type scenarioRun struct {
	target  ecs.Entity
	agents  []ecs.Entity
	bosses  []ecs.Entity
	stunned bool
}

// drive applies this tick's scripted inputs before the engine steps.
func (r *scenarioRun) drive(eng *engine.Engine) {
	tick := eng.Tick()
	now := eng.Now()

	// Target walks a slow circle around the arena center.
	angle := now * 0.25
	r.target2D(eng, 20*float32(math.Cos(float64(angle))), 20*float32(math.Sin(float64(angle))))

	// Chip away at boss health so the phase controllers have work.
	if tick > 0 && tick%30 == 0 {
		for _, b := range r.bosses {
			if h := eng.Health(b); h != nil {
				eng.ApplyDamage(b, h.Max*0.01)
			}
		}
	}

	// One scripted stun partway through, to exercise the interrupt path.
	if !r.stunned && tick == 600 && len(r.agents) > 0 {
		eng.Stun(r.agents[0], 1.5)
		r.stunned = true
	}
}

func (r *scenarioRun) target2D(eng *engine.Engine, x, y float32) {
	eng.MoveTarget(r.target, x, y)
}

// buildScenario spawns the entities for a named scenario.
func buildScenario(eng *engine.Engine, name string) (*scenarioRun, error) {
	run := &scenarioRun{target: eng.SpawnTarget(20, 0)}

	spawnAgents := func() error {
		archetypes := []string{"skirmisher", "skirmisher", "reaver", "lurker"}
		for i, arch := range archetypes {
			angle := float64(i) / float64(len(archetypes)) * 2 * math.Pi
			x := 30 * float32(math.Cos(angle))
			y := 30 * float32(math.Sin(angle))
			e, err := eng.SpawnAgent(arch, x, y)
			if err != nil {
				return err
			}
			run.agents = append(run.agents, e)
		}
		return nil
	}
	spawnBoss := func() error {
		e, err := eng.SpawnBoss("hollow_warden", 0, 35)
		if err != nil {
			return err
		}
		run.bosses = append(run.bosses, e)
		return nil
	}
	spawnMidBoss := func() error {
		e, err := eng.SpawnMidBoss("pit_broodmother", 0, -35)
		if err != nil {
			return err
		}
		run.bosses = append(run.bosses, e)
		return nil
	}

	switch name {
	case "skirmish":
		if err := spawnAgents(); err != nil {
			return nil, err
		}
	case "boss":
		if err := spawnBoss(); err != nil {
			return nil, err
		}
	case "midboss":
		if err := spawnMidBoss(); err != nil {
			return nil, err
		}
	case "mixed":
		if err := spawnAgents(); err != nil {
			return nil, err
		}
		if err := spawnBoss(); err != nil {
			return nil, err
		}
		if err := spawnMidBoss(); err != nil {
			return nil, err
		}
	default:
		if err := spawnAgents(); err != nil {
			return nil, err
		}
	}

	return run, nil
}
