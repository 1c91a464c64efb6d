package systems

import (
	"math"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
)

// DecisionTuning holds the decision-engine parameters as float32, built
// once per tick from the live config so hot reloads take effect between
// ticks, never inside one.
type DecisionTuning struct {
	AttackHysteresis  float32
	FleeRecovery      float32
	PatrolSpeedScale  float32
	FleeSpeedScale    float32
	PatrolAmplitude   float32
	PatrolFrequency   float32
	DefaultWaitTime   float32
	DefaultLoseTarget float32
}

// DecisionTuningFrom extracts decision tuning from a config.
func DecisionTuningFrom(cfg *config.Config) DecisionTuning {
	return DecisionTuning{
		AttackHysteresis:  float32(cfg.Decision.AttackHysteresis),
		FleeRecovery:      float32(cfg.Decision.FleeRecovery),
		PatrolSpeedScale:  float32(cfg.Decision.PatrolSpeedScale),
		FleeSpeedScale:    float32(cfg.Decision.FleeSpeedScale),
		PatrolAmplitude:   float32(cfg.Decision.PatrolAmplitude),
		PatrolFrequency:   float32(cfg.Decision.PatrolFrequency),
		DefaultWaitTime:   float32(cfg.Decision.DefaultWaitTime),
		DefaultLoseTarget: float32(cfg.Decision.DefaultLoseTarget),
	}
}

// TickTimers decrements the agent's cooldowns and timers toward zero,
// clamped so no timer ever goes negative.
func TickTimers(b *components.Behavior, dt float32) {
	if b.AbilityCooldown > 0 {
		b.AbilityCooldown -= dt
		if b.AbilityCooldown < 0 {
			b.AbilityCooldown = 0
		}
	}
	if b.WaitTimer > 0 {
		b.WaitTimer -= dt
		if b.WaitTimer < 0 {
			b.WaitTimer = 0
		}
	}
	if b.LoseTargetTimer > 0 {
		b.LoseTargetTimer -= dt
		if b.LoseTargetTimer < 0 {
			b.LoseTargetTimer = 0
		}
	}
	if b.StunTimer > 0 {
		b.StunTimer -= dt
		if b.StunTimer < 0 {
			b.StunTimer = 0
		}
	}
}

// TickAttackCooldown decrements the attack cooldown, clamped at zero.
func TickAttackCooldown(p *components.AttackProfile, dt float32) {
	if p.CooldownRemaining > 0 {
		p.CooldownRemaining -= dt
		if p.CooldownRemaining < 0 {
			p.CooldownRemaining = 0
		}
	}
}

// NextState applies the transition table to one agent and returns the
// state it should be in next tick. Pure: timers are expected to have been
// decremented already this tick, and nothing is mutated here.
//
// The flee rule overrides everything, including Attacking. All other
// rules key on visibility (distance < DetectionRange).
func NextState(b *components.Behavior, health float32, t TargetInfo, tune DecisionTuning) components.AIState {
	if b.CanFlee && health <= b.FleeHealthThreshold {
		return components.StateFleeing
	}

	visible := t.Found && t.Dist < b.DetectionRange
	inRange := t.Found && t.Dist <= b.AttackRange

	switch b.State {
	case components.StateIdle:
		if visible && inRange {
			return components.StateAttacking
		}
		if visible {
			return components.StatePursuing
		}
		if b.CanPatrol && b.WaitTimer <= 0 {
			return components.StatePatrolling
		}

	case components.StatePatrolling:
		if visible && inRange {
			return components.StateAttacking
		}
		if visible {
			return components.StatePursuing
		}

	case components.StatePursuing:
		if inRange {
			return components.StateAttacking
		}
		if !visible && b.LoseTargetTimer <= 0 {
			if b.CanPatrol {
				return components.StatePatrolling
			}
			return components.StateIdle
		}

	case components.StateAttacking:
		// Hysteresis band avoids flapping between Attacking and Pursuing
		// when a target hovers at the range boundary.
		if !t.Found || t.Dist > b.AttackRange*tune.AttackHysteresis {
			return components.StatePursuing
		}

	case components.StateFleeing:
		if health > b.FleeHealthThreshold*tune.FleeRecovery {
			if visible {
				return components.StatePursuing
			}
			return components.StateIdle
		}

	case components.StateStunned:
		if b.StunTimer <= 0 {
			if visible {
				return components.StatePursuing
			}
			return components.StateIdle
		}
	}

	return b.State
}

// ExitState runs the exit hook for the state being left. Animation
// intents are owned by the presentation layer, so there is nothing to
// cancel here; the hook exists so state teardown has a single home.
func ExitState(b *components.Behavior, prev components.AIState) {
	_ = prev
}

// EnterState runs the entry hook for the new state and stamps the
// state-enter time.
func EnterState(b *components.Behavior, next components.AIState, pos components.Position, tune DecisionTuning, now float32) {
	b.State = next
	b.StateEnterTime = now

	switch next {
	case components.StateIdle:
		b.WaitTimer = tune.DefaultWaitTime
	case components.StatePatrolling:
		b.PatrolHeading = patrolHeading(pos)
	case components.StatePursuing:
		b.LoseTargetTimer = tune.DefaultLoseTarget
	}
}

// patrolHeading derives a waypoint heading from the agent's position.
// Position-seeded so patrols are reproducible run to run.
func patrolHeading(pos components.Position) float32 {
	h := pos.X*12.9898 + pos.Y*78.233
	return normalizeAngle(float32(math.Mod(float64(h), 2*math.Pi)))
}

// Movement computes the velocity for every state except Pursuing, which
// the pursuit resolver owns. Idle, Stunned, and Attacking agents hold
// still; Patrolling follows a deterministic wandering curve at half
// speed; Fleeing runs directly away from the nearest target at 1.2x.
func Movement(b *components.Behavior, pos components.Position, t TargetInfo, tune DecisionTuning, now float32) (float32, float32) {
	switch b.State {
	case components.StatePatrolling:
		elapsed := now - b.StateEnterTime
		angle := b.PatrolHeading + tune.PatrolAmplitude*sin32(elapsed*tune.PatrolFrequency*2*math.Pi)
		speed := b.MoveSpeed * tune.PatrolSpeedScale
		return cos32(angle) * speed, sin32(angle) * speed

	case components.StateFleeing:
		if !t.Found {
			return 0, 0
		}
		dirX, dirY := normalizeVec(pos.X-t.X, pos.Y-t.Y)
		speed := b.MoveSpeed * tune.FleeSpeedScale
		return dirX * speed, dirY * speed
	}

	return 0, 0
}
