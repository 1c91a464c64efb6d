package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
)

func pursuitTuning() PursuitTuning {
	return PursuitTuningFrom(config.Cfg())
}

func speedOf(vx, vy float32) float32 {
	return float32(math.Sqrt(float64(vx*vx + vy*vy)))
}

// ---------- direction and facing ----------

func TestResolvePursuit_MovesTowardTarget(t *testing.T) {
	tune := pursuitTuning()
	b := testAgent(components.StatePursuing)
	targets := []components.Position{{X: 10, Y: 0}}

	vx, vy, _ := ResolvePursuit(components.Position{}, 0, &b, targets, tune)
	if vx <= 0 {
		t.Errorf("target at +x: expected positive vx, got %f", vx)
	}
	if math.Abs(float64(vy)) > 1e-4 {
		t.Errorf("target on x axis: expected vy ~ 0, got %f", vy)
	}
}

func TestResolvePursuit_HeadingBlendsTowardTarget(t *testing.T) {
	tune := pursuitTuning()
	b := testAgent(components.StatePursuing)
	targets := []components.Position{{X: 0, Y: 10}}

	// Facing +x, target at +y (pi/2). One tick rotates partway.
	_, _, heading := ResolvePursuit(components.Position{}, 0, &b, targets, tune)
	if heading <= 0 || heading >= math.Pi/2 {
		t.Errorf("heading should rotate partway toward pi/2, got %f", heading)
	}
}

// ---------- speed easing ----------

func TestResolvePursuit_FullSpeedBeyondAttackRange(t *testing.T) {
	tune := pursuitTuning()
	b := testAgent(components.StatePursuing)
	targets := []components.Position{{X: 8, Y: 0}}

	vx, vy, _ := ResolvePursuit(components.Position{}, 0, &b, targets, tune)
	if math.Abs(float64(speedOf(vx, vy)-b.MoveSpeed)) > 1e-4 {
		t.Errorf("beyond attack range: expected full speed %f, got %f", b.MoveSpeed, speedOf(vx, vy))
	}
}

func TestResolvePursuit_EasesInsideAttackRange(t *testing.T) {
	tune := pursuitTuning()
	b := testAgent(components.StatePursuing)

	// Halfway into attack range: lerp(0.7, 1.0, 0.5) of MoveSpeed.
	targets := []components.Position{{X: b.AttackRange * 0.5, Y: 0}}
	vx, vy, _ := ResolvePursuit(components.Position{}, 0, &b, targets, tune)

	want := b.MoveSpeed * (tune.MinSpeedScale + (1-tune.MinSpeedScale)*0.5)
	if math.Abs(float64(speedOf(vx, vy)-want)) > 1e-3 {
		t.Errorf("half range: expected speed %f, got %f", want, speedOf(vx, vy))
	}
}

// ---------- degenerate cases ----------

func TestResolvePursuit_NoTarget(t *testing.T) {
	tune := pursuitTuning()
	b := testAgent(components.StatePursuing)

	vx, vy, heading := ResolvePursuit(components.Position{}, 1.0, &b, nil, tune)
	if vx != 0 || vy != 0 {
		t.Errorf("no target: expected zero velocity, got (%f, %f)", vx, vy)
	}
	if heading != 1.0 {
		t.Errorf("no target: heading must be unchanged, got %f", heading)
	}
}

func TestResolvePursuit_StopDistanceKillsJitter(t *testing.T) {
	tune := pursuitTuning()
	b := testAgent(components.StatePursuing)
	targets := []components.Position{{X: tune.StopDistance * 0.5, Y: 0}}

	vx, vy, _ := ResolvePursuit(components.Position{}, 0, &b, targets, tune)
	if vx != 0 || vy != 0 {
		t.Errorf("inside stop distance: expected zero velocity, got (%f, %f)", vx, vy)
	}
}

// ---------- target snapshot ----------

func TestNearestTarget_PicksClosest(t *testing.T) {
	targets := []components.Position{{X: 5, Y: 0}, {X: 2, Y: 0}, {X: 9, Y: 0}}

	got := NearestTarget(0, 0, targets)
	if !got.Found || got.X != 2 {
		t.Errorf("expected target at x=2, got %+v", got)
	}
	if math.Abs(float64(got.Dist-2)) > 1e-5 {
		t.Errorf("expected dist 2, got %f", got.Dist)
	}
}

func TestNearestTarget_TieBreaksToFirst(t *testing.T) {
	targets := []components.Position{{X: 3, Y: 0}, {X: -3, Y: 0}}

	got := NearestTarget(0, 0, targets)
	if got.X != 3 {
		t.Errorf("equidistant targets must resolve to the first, got %+v", got)
	}
}

func TestNearestTarget_Empty(t *testing.T) {
	got := NearestTarget(0, 0, nil)
	if got.Found {
		t.Error("no targets: Found must be false")
	}
	if !math.IsInf(float64(got.Dist), 1) {
		t.Errorf("no targets: Dist must be +Inf, got %f", got.Dist)
	}
}
