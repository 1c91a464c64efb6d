package systems

import (
	"testing"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
)

func bossTuning() BossTuning {
	return BossTuningFrom(config.Cfg())
}

func testBoss() components.Boss {
	return components.Boss{
		Kind:          components.BossKindWarden,
		TotalPhases:   4,
		Thresholds:    []float32{0.7, 0.5, 0.25},
		IntensityRate: 0.2,
	}
}

// runTransitionWindow ticks the boss until the transition timer expires.
func runTransitionWindow(t *testing.T, bs *components.Boss, healthRatio float32) BossStep {
	t.Helper()
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32

	for i := 0; i < 400; i++ {
		step := UpdateBoss(bs, components.Position{}, healthRatio, nil, tune, dt)
		if step.TransitionEnded {
			return step
		}
	}
	t.Fatal("transition window never ended")
	return BossStep{}
}

// ---------- activation ----------

func TestUpdateBoss_ActivatesInsideRadius(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()

	// Outside the radius: stays dormant.
	far := []components.Position{{X: tune.ActivationRadius + 1, Y: 0}}
	step := UpdateBoss(&bs, components.Position{}, 1.0, far, tune, dt)
	if bs.Activated || step.Activated {
		t.Fatal("boss must stay dormant outside the activation radius")
	}

	near := []components.Position{{X: tune.ActivationRadius - 1, Y: 0}}
	step = UpdateBoss(&bs, components.Position{}, 1.0, near, tune, dt)
	if !bs.Activated || !step.Activated {
		t.Fatal("boss must activate inside the activation radius")
	}
}

func TestUpdateBoss_DormantIgnoresHealth(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()

	// Critically low health, but nothing in range.
	step := UpdateBoss(&bs, components.Position{}, 0.1, nil, tune, dt)
	if step.TransitionStarted || bs.CurrentPhase != 0 {
		t.Error("dormant boss must not run phase logic")
	}
}

// ---------- phase transitions ----------

func TestUpdateBoss_SingleTransitionPerWindow(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()
	bs.Activated = true
	bs.CurrentPhase = 1 // already past the 0.7 threshold

	// Health drops from 0.6 to 0.49, crossing 0.5.
	step := UpdateBoss(&bs, components.Position{}, 0.49, nil, tune, dt)
	if !step.TransitionStarted || bs.CurrentPhase != 2 {
		t.Fatalf("expected transition into phase 2, got phase %d", bs.CurrentPhase)
	}
	if !bs.Invulnerable {
		t.Error("transition must force invulnerability")
	}

	// The window blocks further transitions until it ends.
	end := runTransitionWindow(t, &bs, 0.49)
	if end.Phase != 2 {
		t.Errorf("transition end must report phase 2, got %d", end.Phase)
	}
	if bs.Invulnerable {
		t.Error("invulnerability must drop when the window ends")
	}

	// 0.49 is above the next threshold (0.25), so the phase holds.
	UpdateBoss(&bs, components.Position{}, 0.49, nil, tune, dt)
	if bs.CurrentPhase != 2 {
		t.Errorf("phase must hold at 2, got %d", bs.CurrentPhase)
	}
}

func TestUpdateBoss_TransitionWindowDuration(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()
	bs.Activated = true

	UpdateBoss(&bs, components.Position{}, 0.65, nil, tune, dt)
	if !bs.Invulnerable {
		t.Fatal("expected transition to start")
	}

	// The window lasts TransitionDuration seconds of invulnerability.
	ticks := 0
	for bs.Invulnerable {
		UpdateBoss(&bs, components.Position{}, 0.65, nil, tune, dt)
		ticks++
		if ticks > 400 {
			t.Fatal("window never expired")
		}
	}

	wantTicks := int(tune.TransitionDuration/dt + 0.5)
	if ticks < wantTicks-1 || ticks > wantTicks+1 {
		t.Errorf("expected ~%d invulnerable ticks, got %d", wantTicks, ticks)
	}
}

func TestUpdateBoss_PhaseMonotone(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()
	bs.Activated = true
	bs.CurrentPhase = 2

	// Health back above earlier thresholds must never roll the phase back.
	for i := 0; i < 100; i++ {
		UpdateBoss(&bs, components.Position{}, 0.9, nil, tune, dt)
	}
	if bs.CurrentPhase != 2 {
		t.Errorf("phase must never decrease, got %d", bs.CurrentPhase)
	}
}

func TestUpdateBoss_DeepDropWalksPhasesOneWindowAtATime(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()
	bs.Activated = true

	// Health collapses straight to 0.2, below every threshold.
	step := UpdateBoss(&bs, components.Position{}, 0.2, nil, tune, dt)
	if !step.TransitionStarted || bs.CurrentPhase != 1 {
		t.Fatalf("first update must enter phase 1 only, got %d", bs.CurrentPhase)
	}

	runTransitionWindow(t, &bs, 0.2)
	UpdateBoss(&bs, components.Position{}, 0.2, nil, tune, dt)
	if bs.CurrentPhase != 2 {
		t.Fatalf("second window must enter phase 2, got %d", bs.CurrentPhase)
	}

	runTransitionWindow(t, &bs, 0.2)
	UpdateBoss(&bs, components.Position{}, 0.2, nil, tune, dt)
	if bs.CurrentPhase != 3 {
		t.Fatalf("third window must enter the final phase, got %d", bs.CurrentPhase)
	}
}

// ---------- enrage ----------

func TestUpdateBoss_EnragePermanent(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()
	bs.Activated = true
	bs.CurrentPhase = 2

	step := UpdateBoss(&bs, components.Position{}, 0.2, nil, tune, dt)
	if !step.NewlyEnraged || !bs.Enraged {
		t.Fatal("entering the final phase must enrage")
	}

	runTransitionWindow(t, &bs, 0.2)
	for i := 0; i < 100; i++ {
		step = UpdateBoss(&bs, components.Position{}, 0.9, nil, tune, dt)
		if step.NewlyEnraged {
			t.Fatal("enrage must be announced exactly once")
		}
	}
	if !bs.Enraged {
		t.Error("enrage must never revert")
	}
}

// ---------- intensity and special ----------

func TestUpdateBoss_IntensityRampsClamped(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()
	bs.Activated = true
	bs.IntensityRate = 2.0

	for i := 0; i < 120; i++ {
		UpdateBoss(&bs, components.Position{}, 0.9, nil, tune, dt)
	}
	if bs.PhaseIntensity != 1 {
		t.Errorf("intensity must clamp at 1, got %f", bs.PhaseIntensity)
	}
}

func TestUpdateBoss_SpecialReadySignaledOnce(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	bs := testBoss()
	bs.Activated = true
	bs.SpecialCooldown = 0.1

	ready := 0
	for i := 0; i < 60; i++ {
		step := UpdateBoss(&bs, components.Position{}, 0.9, nil, tune, dt)
		if step.SpecialReady {
			ready++
		}
	}
	if ready != 1 {
		t.Errorf("special readiness must fire exactly once, got %d", ready)
	}
	if bs.SpecialCooldown != 0 {
		t.Errorf("cooldown must clamp at zero, got %f", bs.SpecialCooldown)
	}
}
