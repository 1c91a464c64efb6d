package engine

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/events"
	"github.com/pthm-cable/brood/systems"
)

// SpawnAgent creates an agent from a named archetype at the given
// position. Agents start Idle with their wait timer armed.
func (e *Engine) SpawnAgent(archetype string, x, y float32) (ecs.Entity, error) {
	cfg := e.config()
	idx, ok := cfg.Derived.ArchetypeIndex[archetype]
	if !ok {
		return ecs.Entity{}, fmt.Errorf("unknown archetype %q", archetype)
	}
	arch := &cfg.Archetypes[idx]

	pattern, err := parsePattern(arch.Pattern)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("archetype %q: %w", archetype, err)
	}

	id := e.nextID
	e.nextID++

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	rot := components.Rotation{}
	health := components.Health{
		Current: float32(arch.MaxHealth),
		Max:     float32(arch.MaxHealth),
	}
	b := components.Behavior{
		ID:                  id,
		State:               components.StateIdle,
		DetectionRange:      float32(arch.DetectionRange),
		AttackRange:         float32(arch.AttackRange),
		MoveSpeed:           float32(arch.MoveSpeed),
		CanPatrol:           arch.CanPatrol,
		CanFlee:             arch.CanFlee,
		Aggressive:          arch.Aggressive,
		PatternIndex:        uint8(pattern),
		FleeHealthThreshold: float32(arch.FleeThreshold * arch.MaxHealth),
		WaitTimer:           float32(cfg.Decision.DefaultWaitTime),
	}

	entity := e.agentMapper.NewEntity(&pos, &vel, &rot, &health, &b)

	profile := components.AttackProfile{
		Pattern:        pattern,
		BaseDamage:     float32(arch.BaseDamage),
		Range:          float32(arch.AttackRange),
		Cooldown:       float32(arch.AttackCooldown),
		AreaEffect:     arch.AreaEffect,
		AreaRadius:     float32(arch.AreaRadius),
		Element:        parseElement(arch.Element),
		Status:         parseStatus(arch.Status),
		StatusDuration: float32(arch.StatusDuration),
	}
	e.profileMap.Add(entity, &profile)

	e.agentCount++
	e.log.Debug("agent spawned", "archetype", archetype, "entity", id)
	return entity, nil
}

// SpawnBoss creates a boss from a named encounter definition. The boss
// is a regular agent of the definition's archetype with a phase
// controller layered on top; it stays inert until a target closes to
// the activation radius.
func (e *Engine) SpawnBoss(name string, x, y float32) (ecs.Entity, error) {
	cfg := e.config()
	idx, ok := cfg.Derived.BossIndex[name]
	if !ok {
		return ecs.Entity{}, fmt.Errorf("unknown boss %q", name)
	}
	def := &cfg.Bosses[idx]

	entity, err := e.SpawnAgent(def.Archetype, x, y)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("boss %q: %w", name, err)
	}

	thresholds := make([]float32, len(def.PhaseThresholds))
	for i, t := range def.PhaseThresholds {
		thresholds[i] = float32(t)
	}

	boss := components.Boss{
		Kind:            parseBossKind(def.Kind),
		CurrentPhase:    0,
		TotalPhases:     len(thresholds) + 1,
		Thresholds:      thresholds,
		IntensityRate:   float32(def.IntensityRate),
		SpecialCooldown: float32(def.SpecialCooldown),
		HasMinions:      def.HasMinions,
		MinionCooldown:  float32(def.MinionCooldown),
	}
	e.bossMap.Add(entity, &boss)
	return entity, nil
}

// SpawnMidBoss creates a mid-boss from a named encounter definition.
func (e *Engine) SpawnMidBoss(name string, x, y float32) (ecs.Entity, error) {
	cfg := e.config()
	idx, ok := cfg.Derived.MidBossIndex[name]
	if !ok {
		return ecs.Entity{}, fmt.Errorf("unknown mid-boss %q", name)
	}
	def := &cfg.MidBosses[idx]

	entity, err := e.SpawnAgent(def.Archetype, x, y)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("mid-boss %q: %w", name, err)
	}

	mb := components.MidBoss{
		Kind:            parseBossKind(def.Kind),
		EnrageThreshold: float32(def.EnrageThreshold),
		Ability:         parseAbility(def.Ability),
		SpecialCooldown: float32(def.SpecialCooldown),
	}
	e.midBossMap.Add(entity, &mb)
	return entity, nil
}

// SpawnTarget creates a target entity whose position feeds the per-tick
// target snapshot.
func (e *Engine) SpawnTarget(x, y float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	tag := components.Target{}
	return e.targetMapper.NewEntity(&pos, &tag)
}

// Despawn removes an entity and all its components.
func (e *Engine) Despawn(entity ecs.Entity) {
	if e.behaviorMap.Get(entity) != nil {
		e.agentCount--
	}
	e.world.RemoveEntity(entity)
}

// Stun forces an agent into the Stunned state for the given duration,
// interrupting whatever it was doing. Its in-flight attack, if any,
// freezes in place and resumes when the stun wears off.
func (e *Engine) Stun(entity ecs.Entity, duration float32) {
	b := e.behaviorMap.Get(entity)
	pos := e.posMap.Get(entity)
	if b == nil || pos == nil {
		return
	}

	b.StunTimer = duration
	if b.State != components.StateStunned {
		prev := b.State
		systems.ExitState(b, prev)
		e.queue.Emit(events.NewStateExit(e.tick, b.ID, prev))
		systems.EnterState(b, components.StateStunned, *pos, e.decTune, e.Now())
		e.queue.Emit(events.NewStateEnter(e.tick, b.ID, components.StateStunned, 0, 0))
	}
	if vel := e.velMap.Get(entity); vel != nil {
		vel.X, vel.Y = 0, 0
	}
}

// SetStunMarker attaches the external stun marker. Marked agents are
// skipped by every behavioral pass until the marker is cleared.
func (e *Engine) SetStunMarker(entity ecs.Entity) {
	if e.stunMap.Get(entity) == nil {
		tag := components.Stunned{}
		e.stunMap.Add(entity, &tag)
	}
}

// ClearStunMarker removes the external stun marker.
func (e *Engine) ClearStunMarker(entity ecs.Entity) {
	if e.stunMap.Get(entity) != nil {
		e.stunMap.Remove(entity)
	}
}

// MoveTarget repositions a target entity. Scenario drivers use this to
// script target movement between ticks.
func (e *Engine) MoveTarget(entity ecs.Entity, x, y float32) {
	if pos := e.posMap.Get(entity); pos != nil {
		pos.X, pos.Y = x, y
	}
}

// ApplyDamage subtracts health from an agent, clamped at zero. Health
// mutation lives outside the behavioral passes; this is the hook the
// external damage subsystem calls between ticks.
func (e *Engine) ApplyDamage(entity ecs.Entity, amount float32) {
	h := e.healthMap.Get(entity)
	if h == nil {
		return
	}
	if bs := e.bossMap.Get(entity); bs != nil && bs.Invulnerable {
		return
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

// Component accessors for scenario drivers and tests.

func (e *Engine) Position(entity ecs.Entity) *components.Position { return e.posMap.Get(entity) }
func (e *Engine) Velocity(entity ecs.Entity) *components.Velocity { return e.velMap.Get(entity) }
func (e *Engine) Rotation(entity ecs.Entity) *components.Rotation { return e.rotMap.Get(entity) }
func (e *Engine) Health(entity ecs.Entity) *components.Health     { return e.healthMap.Get(entity) }
func (e *Engine) Behavior(entity ecs.Entity) *components.Behavior { return e.behaviorMap.Get(entity) }
func (e *Engine) Boss(entity ecs.Entity) *components.Boss         { return e.bossMap.Get(entity) }
func (e *Engine) MidBoss(entity ecs.Entity) *components.MidBoss   { return e.midBossMap.Get(entity) }

func (e *Engine) Profile(entity ecs.Entity) *components.AttackProfile {
	return e.profileMap.Get(entity)
}

func (e *Engine) ActiveAttack(entity ecs.Entity) *components.ActiveAttack {
	return e.attackMap.Get(entity)
}

// parsePattern maps a config pattern name to its enum value.
func parsePattern(name string) (components.AttackPattern, error) {
	switch name {
	case "direct":
		return components.PatternDirect, nil
	case "sweep":
		return components.PatternSweep, nil
	case "burst":
		return components.PatternBurst, nil
	case "charge":
		return components.PatternCharge, nil
	case "projectile":
		return components.PatternProjectile, nil
	case "aoe":
		return components.PatternAOE, nil
	case "summon":
		return components.PatternSummon, nil
	case "dot":
		return components.PatternDoT, nil
	case "teleport":
		return components.PatternTeleport, nil
	case "special":
		return components.PatternSpecial, nil
	}
	return 0, fmt.Errorf("unknown attack pattern %q", name)
}

func parseElement(name string) components.ElementType {
	switch name {
	case "fire":
		return components.ElementFire
	case "ice":
		return components.ElementIce
	case "lightning":
		return components.ElementLightning
	case "poison":
		return components.ElementPoison
	case "shadow":
		return components.ElementShadow
	}
	return components.ElementNone
}

func parseStatus(name string) components.StatusEffect {
	switch name {
	case "burn":
		return components.StatusBurn
	case "freeze":
		return components.StatusFreeze
	case "shock":
		return components.StatusShock
	case "poisoned":
		return components.StatusPoisoned
	case "weakened":
		return components.StatusWeakened
	}
	return components.StatusNone
}

func parseBossKind(name string) components.BossKind {
	switch name {
	case "colossus":
		return components.BossKindColossus
	case "broodmother":
		return components.BossKindBroodmother
	}
	return components.BossKindWarden
}

func parseAbility(name string) components.AbilityType {
	switch name {
	case "slam":
		return components.AbilitySlam
	case "roar":
		return components.AbilityRoar
	case "barrage":
		return components.AbilityBarrage
	}
	return components.AbilityNone
}
