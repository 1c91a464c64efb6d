package systems

import "github.com/pthm-cable/brood/components"

// MidBossStep lists what happened during one mid-boss update.
type MidBossStep struct {
	Activated    bool
	NewlyEnraged bool
	AbilityReady bool
}

// UpdateMidBoss advances one mid-boss encounter by a tick. Same
// activation and enrage-on-health-ratio shape as a boss, but a single
// enrage threshold instead of a phase table, and a simpler ability
// cooldown that is only counted down and signaled here.
func UpdateMidBoss(mb *components.MidBoss, pos components.Position, healthRatio float32,
	targets []components.Position, tune BossTuning, dt float32) MidBossStep {

	var step MidBossStep

	if !mb.Activated {
		t := NearestTarget(pos.X, pos.Y, targets)
		if t.Found && t.Dist < tune.MidBossActivationRadius {
			mb.Activated = true
			step.Activated = true
		}
		return step
	}

	// Enrage is one-way and announced exactly once.
	if !mb.Enraged && healthRatio <= mb.EnrageThreshold {
		mb.Enraged = true
		step.NewlyEnraged = true
	}

	if mb.SpecialCooldown > 0 {
		mb.SpecialCooldown -= dt
		if mb.SpecialCooldown <= 0 {
			mb.SpecialCooldown = 0
			step.AbilityReady = true
		}
	}

	return step
}
