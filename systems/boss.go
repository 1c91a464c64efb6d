package systems

import (
	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
)

// BossTuning holds the shared phase-controller parameters.
type BossTuning struct {
	ActivationRadius        float32
	MidBossActivationRadius float32
	TransitionDuration      float32
}

// BossTuningFrom extracts boss tuning from a config.
func BossTuningFrom(cfg *config.Config) BossTuning {
	return BossTuning{
		ActivationRadius:        float32(cfg.Boss.ActivationRadius),
		MidBossActivationRadius: float32(cfg.Boss.MidBossActivationRadius),
		TransitionDuration:      float32(cfg.Boss.TransitionDuration),
	}
}

// BossStep lists what happened during one boss update, for the caller to
// turn into events.
type BossStep struct {
	Activated         bool
	TransitionStarted bool
	TransitionEnded   bool
	SpecialReady      bool
	NewlyEnraged      bool
	Phase             int
}

// UpdateBoss advances one boss encounter by a tick.
//
// Inactive bosses are inert: they only check the activation radius.
// A running phase-transition window forces invulnerability and blocks
// everything else until it expires. Phase transitions fire when the
// health ratio reaches the next threshold in the table; CurrentPhase
// only ever grows, and entering the final phase sets Enraged for good.
func UpdateBoss(bs *components.Boss, pos components.Position, healthRatio float32,
	targets []components.Position, tune BossTuning, dt float32) BossStep {

	var step BossStep

	if !bs.Activated {
		t := NearestTarget(pos.X, pos.Y, targets)
		if t.Found && t.Dist < tune.ActivationRadius {
			bs.Activated = true
			step.Activated = true
			step.Phase = bs.CurrentPhase
		}
		return step
	}

	// 1. Transition window: invulnerable until the timer runs out, and
	// nothing else happens this tick.
	if bs.PhaseTransitionTimer > 0 {
		bs.PhaseTransitionTimer -= dt
		bs.Invulnerable = true
		if bs.PhaseTransitionTimer <= 0 {
			bs.PhaseTransitionTimer = 0
			bs.Invulnerable = false
			step.TransitionEnded = true
			step.Phase = bs.CurrentPhase
		}
		return step
	}

	// 2. Separate short grace window, unrelated to phase transitions.
	if bs.InvulnerabilityTimer > 0 {
		bs.InvulnerabilityTimer -= dt
		if bs.InvulnerabilityTimer <= 0 {
			bs.InvulnerabilityTimer = 0
			bs.Invulnerable = false
		}
	}

	// 3. Phase transition predicate against the threshold table.
	if next := bs.CurrentPhase; next < len(bs.Thresholds) &&
		bs.CurrentPhase < bs.TotalPhases-1 &&
		healthRatio <= bs.Thresholds[next] {

		bs.CurrentPhase++
		bs.PhaseTransitionTimer = tune.TransitionDuration
		bs.Invulnerable = true
		bs.PhaseIntensity = 0
		step.TransitionStarted = true
		step.Phase = bs.CurrentPhase

		if bs.CurrentPhase == bs.TotalPhases-1 && !bs.Enraged {
			bs.Enraged = true
			step.NewlyEnraged = true
		}
	}

	// 4. Intensity ramps toward 1 over the phase.
	bs.PhaseIntensity = clamp01(bs.PhaseIntensity + dt*bs.IntensityRate)

	// 5. Special attack cooldown. Re-arming is the consumer's job; this
	// controller only counts down and signals readiness once.
	if bs.SpecialCooldown > 0 {
		bs.SpecialCooldown -= dt
		if bs.SpecialCooldown <= 0 {
			bs.SpecialCooldown = 0
			step.SpecialReady = true
		}
	}

	// 6. Minion spawn cooldown bookkeeping; the spawner watches it.
	if bs.HasMinions && bs.MinionCooldown > 0 {
		bs.MinionCooldown -= dt
		if bs.MinionCooldown < 0 {
			bs.MinionCooldown = 0
		}
	}

	return step
}
