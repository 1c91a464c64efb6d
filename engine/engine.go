// Package engine orchestrates the per-tick behavior update: target
// snapshot, timers, the parallel decision pass, pursuit, attack
// execution, boss controllers, and the deferred mutation queue, in a
// fixed order every tick.
package engine

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
	"github.com/pthm-cable/brood/events"
	"github.com/pthm-cable/brood/systems"
	"github.com/pthm-cable/brood/telemetry"
)

// Engine holds the ECS world and everything needed to advance it.
type Engine struct {
	world *ecs.World
	rng   *rand.Rand

	// Agent mapper and filter over the five core agent components.
	agentMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Health,
		components.Behavior,
	]
	agentFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Health,
		components.Behavior,
	]

	// attackFilter matches exactly the agents with an attack in flight.
	attackFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Behavior,
		components.AttackProfile,
		components.ActiveAttack,
	]

	targetMapper  *ecs.Map2[components.Position, components.Target]
	targetFilter  *ecs.Filter2[components.Position, components.Target]
	bossFilter    *ecs.Filter3[components.Position, components.Health, components.Boss]
	midBossFilter *ecs.Filter3[components.Position, components.Health, components.MidBoss]

	// Individual component mappers for lookups
	posMap      *ecs.Map1[components.Position]
	velMap      *ecs.Map1[components.Velocity]
	rotMap      *ecs.Map1[components.Rotation]
	healthMap   *ecs.Map1[components.Health]
	behaviorMap *ecs.Map1[components.Behavior]
	profileMap  *ecs.Map1[components.AttackProfile]
	attackMap   *ecs.Map1[components.ActiveAttack]
	bossMap     *ecs.Map1[components.Boss]
	midBossMap  *ecs.Map1[components.MidBoss]
	stunMap     *ecs.Map1[components.Stunned]

	queue    *events.Queue
	parallel *parallelState
	deferred deferredMutations

	// Per-tick target snapshot, rebuilt at the start of every Step.
	targets []components.Position

	// Tunings, refreshed from the live config at the start of every Step
	// so hot reloads take effect between ticks.
	decTune  systems.DecisionTuning
	purTune  systems.PursuitTuning
	atkTune  systems.AttackTuning
	bossTune systems.BossTuning

	tick       int32
	nextID     uint32
	agentCount int

	perf *telemetry.PerfCollector
	log  *slog.Logger
}

// New creates an engine with an empty world. Configuration comes from
// the global config, so config.Init must have run first.
func New() *Engine {
	world := ecs.NewWorld()
	cfg := config.Cfg()

	e := &Engine{
		world: world,
		rng:   rand.New(rand.NewSource(cfg.Simulation.Seed)),
		queue: events.NewQueue(),
		log:   slog.With("component", "engine"),
		agentMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Health,
			components.Behavior,
		](world),
		agentFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Health,
			components.Behavior,
		](world),
		attackFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Behavior,
			components.AttackProfile,
			components.ActiveAttack,
		](world),
		targetMapper:  ecs.NewMap2[components.Position, components.Target](world),
		targetFilter:  ecs.NewFilter2[components.Position, components.Target](world),
		bossFilter:    ecs.NewFilter3[components.Position, components.Health, components.Boss](world),
		midBossFilter: ecs.NewFilter3[components.Position, components.Health, components.MidBoss](world),
		posMap:        ecs.NewMap1[components.Position](world),
		velMap:        ecs.NewMap1[components.Velocity](world),
		rotMap:        ecs.NewMap1[components.Rotation](world),
		healthMap:     ecs.NewMap1[components.Health](world),
		behaviorMap:   ecs.NewMap1[components.Behavior](world),
		profileMap:    ecs.NewMap1[components.AttackProfile](world),
		attackMap:     ecs.NewMap1[components.ActiveAttack](world),
		bossMap:       ecs.NewMap1[components.Boss](world),
		midBossMap:    ecs.NewMap1[components.MidBoss](world),
		stunMap:       ecs.NewMap1[components.Stunned](world),
		targets:       make([]components.Position, 0, 16),
	}
	e.parallel = newParallelState()
	return e
}

// config returns the live global configuration.
func (e *Engine) config() *config.Config {
	return config.Cfg()
}

// Events returns the queue external systems drain each tick.
func (e *Engine) Events() *events.Queue {
	return e.queue
}

// Tick returns the current simulation tick.
func (e *Engine) Tick() int32 {
	return e.tick
}

// Now returns the simulation time in seconds.
func (e *Engine) Now() float32 {
	return float32(e.tick) * e.config().Derived.DT32
}

// AgentCount returns the number of live agents.
func (e *Engine) AgentCount() int {
	return e.agentCount
}

// SetPerf attaches a performance collector. When set, Step records a
// phase sample per pass.
func (e *Engine) SetPerf(p *telemetry.PerfCollector) {
	e.perf = p
}

// EachBehavior calls fn for every live agent.
func (e *Engine) EachBehavior(fn func(ecs.Entity, *components.Behavior)) {
	query := e.agentFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, _, _, b := query.Get()
		fn(entity, b)
	}
}

// phase marks the start of a named pass for the perf collector.
func (e *Engine) phase(name string) {
	if e.perf != nil {
		e.perf.StartPhase(name)
	}
}

// Step advances the simulation by one tick. Pass order is fixed:
// targets, timers, decisions, pursuit, attacks, bosses, mid-bosses,
// then deferred structural mutations. Within a pass, processing order
// follows world iteration order, which is stable between ticks, so a
// run with the same spawns and inputs replays identically.
func (e *Engine) Step() {
	cfg := e.config()
	dt := cfg.Derived.DT32
	now := e.Now()

	e.decTune = systems.DecisionTuningFrom(cfg)
	e.purTune = systems.PursuitTuningFrom(cfg)
	e.atkTune = systems.AttackTuningFrom(cfg)
	e.bossTune = systems.BossTuningFrom(cfg)

	e.phase(telemetry.PhaseTargets)
	e.collectTargets()
	e.phase(telemetry.PhaseTimers)
	e.updateTimers(dt)
	e.phase(telemetry.PhaseDecisions)
	e.updateDecisions(now)
	e.phase(telemetry.PhasePursuit)
	e.updatePursuit()
	e.phase(telemetry.PhaseAttacks)
	e.updateAttacks(dt)
	e.phase(telemetry.PhaseBosses)
	e.updateBosses(dt)
	e.updateMidBosses(dt)
	e.phase(telemetry.PhaseDeferred)
	e.applyDeferred()

	e.tick++
}

// Close stops the worker pool.
func (e *Engine) Close() {
	e.parallel.stopWorkers()
}

// collectTargets rebuilds the per-tick target position snapshot.
func (e *Engine) collectTargets() {
	e.targets = e.targets[:0]
	query := e.targetFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		e.targets = append(e.targets, *pos)
	}
}

// updateTimers decrements every agent's timers and attack cooldown.
func (e *Engine) updateTimers(dt float32) {
	query := e.agentFilter.Query()
	for query.Next() {
		entity := query.Entity()
		_, _, _, _, b := query.Get()

		systems.TickTimers(b, dt)
		if p := e.profileMap.Get(entity); p != nil {
			systems.TickAttackCooldown(p, dt)
		}
	}
}

// updatePursuit resolves movement for every pursuing agent. This pass
// is the only velocity and facing writer for the Pursuing state.
func (e *Engine) updatePursuit() {
	query := e.agentFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, rot, _, b := query.Get()

		if b.State != components.StatePursuing {
			continue
		}
		if e.stunMap.Get(entity) != nil {
			vel.X, vel.Y = 0, 0
			continue
		}

		vx, vy, heading := systems.ResolvePursuit(*pos, rot.Heading, b, e.targets, e.purTune)
		vel.X, vel.Y = vx, vy
		rot.Heading = heading
	}
}

// updateAttacks advances every in-flight attack. A stunned executor
// holds still with its attack progress frozen; the attack resumes when
// the stun wears off. Completions are queued for the deferred pass so
// no component is removed mid-iteration.
func (e *Engine) updateAttacks(dt float32) {
	query := e.attackFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, vel, b, profile, atk := query.Get()

		if b.State == components.StateStunned || e.stunMap.Get(entity) != nil {
			vel.X, vel.Y = 0, 0
			continue
		}

		step := systems.AdvanceAttack(atk, profile, *pos, *vel, e.atkTune, dt)

		if step.WriteVelocity {
			vel.X, vel.Y = step.VelX, step.VelY
		}
		for _, d := range step.Damage {
			e.queue.Emit(events.NewDamage(
				e.tick, b.ID, d.X, d.Y, d.Amount, d.Radius,
				profile.Element, profile.Status, profile.StatusDuration,
			))
		}
		if step.Completed {
			e.deferred.queueAttackEnd(entity)
		}
	}
}

// updateBosses advances every boss phase controller.
func (e *Engine) updateBosses(dt float32) {
	query := e.bossFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, health, bs := query.Get()

		id := e.entityID(entity)
		step := systems.UpdateBoss(bs, *pos, health.Ratio(), e.targets, e.bossTune, dt)

		if step.Activated {
			e.queue.Emit(events.NewBossActivated(e.tick, id, bs.Kind, pos.X, pos.Y))
			e.log.Info("boss activated", "kind", bs.Kind.String(), "entity", id)
		}
		if step.TransitionStarted {
			e.queue.Emit(events.NewPhaseTransitionStart(e.tick, id, step.Phase))
		}
		if step.TransitionEnded {
			e.queue.Emit(events.NewPhaseTransitionEnd(e.tick, id, step.Phase))
		}
		if step.NewlyEnraged {
			e.queue.Emit(events.NewBossEnraged(e.tick, id, bs.Kind, bs.CurrentPhase))
			e.log.Info("boss enraged", "kind", bs.Kind.String(), "entity", id, "phase", bs.CurrentPhase)
		}
		if step.SpecialReady {
			e.queue.Emit(events.NewSpecialReady(e.tick, id, bs.Kind, bs.CurrentPhase))
		}
	}
}

// updateMidBosses advances every mid-boss controller.
func (e *Engine) updateMidBosses(dt float32) {
	query := e.midBossFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, health, mb := query.Get()

		id := e.entityID(entity)
		step := systems.UpdateMidBoss(mb, *pos, health.Ratio(), e.targets, e.bossTune, dt)

		if step.Activated {
			e.queue.Emit(events.NewMidBossActivated(e.tick, id, mb.Kind, pos.X, pos.Y))
			e.log.Info("mid-boss activated", "kind", mb.Kind.String(), "entity", id)
		}
		if step.NewlyEnraged {
			e.queue.Emit(events.NewMidBossEnraged(e.tick, id, mb.Kind))
		}
		if step.AbilityReady {
			e.queue.Emit(events.NewMidBossAbilityReady(e.tick, id, mb.Kind, mb.Ability))
		}
	}
}

// entityID returns the agent's stable id, or 0 for entities without a
// Behavior.
func (e *Engine) entityID(entity ecs.Entity) uint32 {
	if b := e.behaviorMap.Get(entity); b != nil {
		return b.ID
	}
	return 0
}
