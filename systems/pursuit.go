package systems

import (
	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
)

// PursuitTuning holds the pursuit-resolver parameters.
type PursuitTuning struct {
	MinSpeedScale float32
	FacingBlend   float32
	StopDistance  float32
}

// PursuitTuningFrom extracts pursuit tuning from a config.
func PursuitTuningFrom(cfg *config.Config) PursuitTuning {
	return PursuitTuning{
		MinSpeedScale: float32(cfg.Pursuit.MinSpeedScale),
		FacingBlend:   float32(cfg.Pursuit.FacingBlend),
		StopDistance:  float32(cfg.Pursuit.StopDistance),
	}
}

// ResolvePursuit computes the target-seeking velocity and facing for one
// pursuing agent. It is the sole movement owner for the Pursuing state.
//
// Approach speed is full MoveSpeed at or beyond attack range and eases
// down toward MinSpeedScale*MoveSpeed as the agent closes inside it, so
// arrivals settle instead of overshooting. Below StopDistance the
// velocity is zeroed to prevent jitter around the target.
func ResolvePursuit(pos components.Position, heading float32, b *components.Behavior,
	targets []components.Position, tune PursuitTuning) (velX, velY, newHeading float32) {

	newHeading = heading

	t := NearestTarget(pos.X, pos.Y, targets)
	if !t.Found || t.Dist <= tune.StopDistance {
		return 0, 0, newHeading
	}

	dirX := (t.X - pos.X) / t.Dist
	dirY := (t.Y - pos.Y) / t.Dist

	closeness := float32(1)
	if b.AttackRange > 0 {
		closeness = clamp01(t.Dist / b.AttackRange)
	}
	speed := lerp32(b.MoveSpeed*tune.MinSpeedScale, b.MoveSpeed, closeness)

	velX = dirX * speed
	velY = dirY * speed
	newHeading = rotateToward(heading, atan232(dirY, dirX), tune.FacingBlend)
	return velX, velY, newHeading
}
