package systems

import (
	"math"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
)

// AttackTuning holds the attack-pattern parameters.
type AttackTuning struct {
	PatternSpeed        float32
	StartupEnd          float32
	ActiveEnd           float32
	DirectApproachSpeed float32
	DirectHitRadius     float32
	SweepOffsetScale    float32
	SweepDamageScale    float32
	SweepTickInterval   float32
	RecoveryDecel       float32
}

// AttackTuningFrom extracts attack tuning from a config.
func AttackTuningFrom(cfg *config.Config) AttackTuning {
	return AttackTuning{
		PatternSpeed:        float32(cfg.Attack.PatternSpeed),
		StartupEnd:          float32(cfg.Attack.StartupEnd),
		ActiveEnd:           float32(cfg.Attack.ActiveEnd),
		DirectApproachSpeed: float32(cfg.Attack.DirectApproachSpeed),
		DirectHitRadius:     float32(cfg.Attack.DirectHitRadius),
		SweepOffsetScale:    float32(cfg.Attack.SweepOffsetScale),
		SweepDamageScale:    float32(cfg.Attack.SweepDamageScale),
		SweepTickInterval:   float32(cfg.Attack.SweepTickInterval),
		RecoveryDecel:       float32(cfg.Attack.RecoveryDecel),
	}
}

// PatternDuration returns the nominal duration in seconds for a pattern.
// Unknown patterns run for one second so a bad index still completes.
func PatternDuration(p components.AttackPattern) float32 {
	switch p {
	case components.PatternDirect:
		return 0.8
	case components.PatternSweep:
		return 1.2
	case components.PatternBurst:
		return 1.5
	case components.PatternCharge:
		return 2.0
	case components.PatternProjectile:
		return 1.0
	case components.PatternAOE:
		return 1.8
	case components.PatternSummon:
		return 2.5
	case components.PatternDoT:
		return 3.0
	case components.PatternTeleport:
		return 1.2
	case components.PatternSpecial:
		return 3.5
	}
	return 1.0
}

// PhaseFor maps a progress fraction to its lifecycle phase.
func PhaseFor(progress float32, tune AttackTuning) components.AttackPhase {
	switch {
	case progress < tune.StartupEnd:
		return components.PhaseStartup
	case progress < tune.ActiveEnd:
		return components.PhaseActive
	default:
		return components.PhaseRecovery
	}
}

// StartAttack builds the transient record for a newly issued attack.
func StartAttack(targetX, targetY float32, variant uint8, now float32) components.ActiveAttack {
	return components.ActiveAttack{
		TargetX:   targetX,
		TargetY:   targetY,
		Variant:   variant,
		Phase:     components.PhaseStartup,
		Progress:  0,
		StartTime: now,
	}
}

// DamageSpec is one damage emission produced while advancing an attack.
type DamageSpec struct {
	X, Y   float32
	Amount float32
	Radius float32
}

// AttackStep is the outcome of advancing one attack for one tick.
type AttackStep struct {
	Completed bool

	// Movement output. WriteVelocity is false for patterns (or phases)
	// that leave movement to whoever currently owns it.
	VelX, VelY    float32
	WriteVelocity bool

	Damage []DamageSpec
}

// AdvanceAttack advances an in-progress attack by one tick. Progress is
// non-decreasing; on reaching 1.0 the attack completes and the profile's
// cooldown is re-armed. Pattern types with no behavior entry advance and
// complete silently: no movement, no damage, no error.
func AdvanceAttack(atk *components.ActiveAttack, profile *components.AttackProfile,
	pos components.Position, vel components.Velocity, tune AttackTuning, dt float32) AttackStep {

	dur := PatternDuration(profile.Pattern)
	prev := atk.Progress
	atk.Progress += dt / dur * tune.PatternSpeed

	if atk.Progress >= 1 {
		atk.Progress = 1
		profile.CooldownRemaining = profile.Cooldown
		return AttackStep{Completed: true}
	}

	atk.Phase = PhaseFor(atk.Progress, tune)

	var step AttackStep
	switch profile.Pattern {
	case components.PatternDirect:
		stepDirect(&step, atk, profile, pos, prev, tune)
	case components.PatternSweep:
		stepSweep(&step, atk, profile, pos, vel, prev, tune)
	case components.PatternBurst:
		stepBurst(&step, atk, profile, prev, tune)
	case components.PatternCharge:
		stepCharge(&step, atk, profile, pos, vel, prev, tune)
	case components.PatternProjectile:
		stepProjectile(&step, atk, profile, prev, tune)
	case components.PatternAOE:
		stepAOE(&step, atk, profile, pos, prev, tune)
	}
	return step
}

// damageRadius picks the profile's area radius when it has one, else the
// given fallback.
func damageRadius(profile *components.AttackProfile, fallback float32) float32 {
	if profile.AreaEffect && profile.AreaRadius > 0 {
		return profile.AreaRadius
	}
	return fallback
}

// crossed reports whether progress passed boundary this tick.
func crossed(prev, cur, boundary float32) bool {
	return prev < boundary && cur >= boundary
}

// stepDirect: close in during startup, strike once on entering the
// active phase if the target is in range, then back away.
func stepDirect(step *AttackStep, atk *components.ActiveAttack, profile *components.AttackProfile,
	pos components.Position, prev float32, tune AttackTuning) {

	switch atk.Phase {
	case components.PhaseStartup:
		dirX, dirY := normalizeVec(atk.TargetX-pos.X, atk.TargetY-pos.Y)
		step.VelX = dirX * tune.DirectApproachSpeed
		step.VelY = dirY * tune.DirectApproachSpeed
		step.WriteVelocity = true

	case components.PhaseActive:
		step.WriteVelocity = true // halt
		if crossed(prev, atk.Progress, tune.StartupEnd) &&
			distance(pos.X, pos.Y, atk.TargetX, atk.TargetY) <= profile.Range {
			step.Damage = append(step.Damage, DamageSpec{
				X:      atk.TargetX,
				Y:      atk.TargetY,
				Amount: profile.BaseDamage,
				Radius: damageRadius(profile, tune.DirectHitRadius),
			})
		}

	case components.PhaseRecovery:
		dirX, dirY := normalizeVec(pos.X-atk.TargetX, pos.Y-atk.TargetY)
		step.VelX = dirX * tune.DirectApproachSpeed
		step.VelY = dirY * tune.DirectApproachSpeed
		step.WriteVelocity = true
	}
}

// stepSweep: move to an anchor at SweepOffsetScale*range from the
// target, trace a circular arc around it during the active phase with
// reduced-damage ticks at fixed progress sub-intervals, then decelerate.
func stepSweep(step *AttackStep, atk *components.ActiveAttack, profile *components.AttackProfile,
	pos components.Position, vel components.Velocity, prev float32, tune AttackTuning) {

	offset := profile.Range * tune.SweepOffsetScale

	switch atk.Phase {
	case components.PhaseStartup:
		// Seek the arc entry point (offset along the line target->agent).
		dirX, dirY := normalizeVec(pos.X-atk.TargetX, pos.Y-atk.TargetY)
		if dirX == 0 && dirY == 0 {
			dirX = 1
		}
		anchorX := atk.TargetX + dirX*offset
		anchorY := atk.TargetY + dirY*offset
		step.VelX, step.VelY = seekVelocity(pos, anchorX, anchorY)
		step.WriteVelocity = true

	case components.PhaseActive:
		span := tune.ActiveEnd - tune.StartupEnd
		angle := (atk.Progress - tune.StartupEnd) / span * 2 * math.Pi
		arcX := atk.TargetX + cos32(angle)*offset
		arcY := atk.TargetY + sin32(angle)*offset
		step.VelX, step.VelY = seekVelocity(pos, arcX, arcY)
		step.WriteVelocity = true

		if damageTickCrossed(prev, atk.Progress, tune.StartupEnd, tune.SweepTickInterval) {
			step.Damage = append(step.Damage, DamageSpec{
				X:      arcX,
				Y:      arcY,
				Amount: profile.BaseDamage * tune.SweepDamageScale,
				Radius: damageRadius(profile, tune.DirectHitRadius),
			})
		}

	case components.PhaseRecovery:
		step.VelX = vel.X * tune.RecoveryDecel
		step.VelY = vel.Y * tune.RecoveryDecel
		step.WriteVelocity = true
	}
}

// stepBurst: hold still, release three pulses across the active phase.
func stepBurst(step *AttackStep, atk *components.ActiveAttack, profile *components.AttackProfile,
	prev float32, tune AttackTuning) {

	step.WriteVelocity = true
	if atk.Phase != components.PhaseActive {
		return
	}
	interval := (tune.ActiveEnd - tune.StartupEnd) / 3
	if damageTickCrossed(prev, atk.Progress, tune.StartupEnd, interval) {
		step.Damage = append(step.Damage, DamageSpec{
			X:      atk.TargetX,
			Y:      atk.TargetY,
			Amount: profile.BaseDamage * 0.6,
			Radius: damageRadius(profile, tune.DirectHitRadius),
		})
	}
}

// stepCharge: wind up, rush the target through the active phase with a
// single hit on contact range, then bleed off speed.
func stepCharge(step *AttackStep, atk *components.ActiveAttack, profile *components.AttackProfile,
	pos components.Position, vel components.Velocity, prev float32, tune AttackTuning) {

	switch atk.Phase {
	case components.PhaseStartup:
		step.WriteVelocity = true // wind-up, hold position

	case components.PhaseActive:
		dirX, dirY := normalizeVec(atk.TargetX-pos.X, atk.TargetY-pos.Y)
		rush := tune.DirectApproachSpeed * 2
		step.VelX = dirX * rush
		step.VelY = dirY * rush
		step.WriteVelocity = true
		if crossed(prev, atk.Progress, tune.StartupEnd) {
			step.Damage = append(step.Damage, DamageSpec{
				X:      atk.TargetX,
				Y:      atk.TargetY,
				Amount: profile.BaseDamage,
				Radius: damageRadius(profile, tune.DirectHitRadius),
			})
		}

	case components.PhaseRecovery:
		step.VelX = vel.X * tune.RecoveryDecel
		step.VelY = vel.Y * tune.RecoveryDecel
		step.WriteVelocity = true
	}
}

// stepProjectile: stand still and deliver one hit at the target position
// when the active phase begins.
func stepProjectile(step *AttackStep, atk *components.ActiveAttack, profile *components.AttackProfile,
	prev float32, tune AttackTuning) {

	step.WriteVelocity = true
	if crossed(prev, atk.Progress, tune.StartupEnd) {
		step.Damage = append(step.Damage, DamageSpec{
			X:      atk.TargetX,
			Y:      atk.TargetY,
			Amount: profile.BaseDamage,
			Radius: damageRadius(profile, tune.DirectHitRadius),
		})
	}
}

// stepAOE: stand still and detonate around the agent itself when the
// active phase begins.
func stepAOE(step *AttackStep, atk *components.ActiveAttack, profile *components.AttackProfile,
	pos components.Position, prev float32, tune AttackTuning) {

	step.WriteVelocity = true
	if crossed(prev, atk.Progress, tune.StartupEnd) {
		step.Damage = append(step.Damage, DamageSpec{
			X:      pos.X,
			Y:      pos.Y,
			Amount: profile.BaseDamage,
			Radius: damageRadius(profile, profile.Range),
		})
	}
}

// seekVelocity is a proportional controller toward a point: velocity
// proportional to the remaining offset, so the agent converges over a
// few ticks instead of teleporting.
func seekVelocity(pos components.Position, x, y float32) (float32, float32) {
	const gain = 8.0 // per second
	return (x - pos.X) * gain, (y - pos.Y) * gain
}

// damageTickCrossed reports whether progress crossed a sub-interval
// boundary within the active window this tick.
func damageTickCrossed(prev, cur, activeStart, interval float32) bool {
	if interval <= 0 {
		return false
	}
	prevBin := int(math.Floor(float64((prev - activeStart) / interval)))
	curBin := int(math.Floor(float64((cur - activeStart) / interval)))
	if prev < activeStart {
		prevBin = -1
	}
	return curBin > prevBin
}
