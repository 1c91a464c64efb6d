package systems

import (
	"testing"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
)

func testMidBoss() components.MidBoss {
	return components.MidBoss{
		Kind:            components.BossKindBroodmother,
		EnrageThreshold: 0.35,
		Ability:         components.AbilitySlam,
	}
}

// ---------- activation ----------

func TestUpdateMidBoss_ActivationRadius(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	mb := testMidBoss()

	far := []components.Position{{X: tune.MidBossActivationRadius + 1, Y: 0}}
	step := UpdateMidBoss(&mb, components.Position{}, 1.0, far, tune, dt)
	if mb.Activated || step.Activated {
		t.Fatal("mid-boss must stay dormant outside its activation radius")
	}

	near := []components.Position{{X: tune.MidBossActivationRadius - 1, Y: 0}}
	step = UpdateMidBoss(&mb, components.Position{}, 1.0, near, tune, dt)
	if !mb.Activated || !step.Activated {
		t.Fatal("mid-boss must activate inside its activation radius")
	}
}

// ---------- enrage ----------

func TestUpdateMidBoss_EnrageAtExactThreshold(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	mb := testMidBoss()
	mb.Activated = true

	// Just above the threshold: calm.
	step := UpdateMidBoss(&mb, components.Position{}, 0.36, nil, tune, dt)
	if step.NewlyEnraged || mb.Enraged {
		t.Fatal("health above threshold must not enrage")
	}

	// Exactly at the threshold counts.
	step = UpdateMidBoss(&mb, components.Position{}, 0.35, nil, tune, dt)
	if !step.NewlyEnraged || !mb.Enraged {
		t.Fatal("health at exactly the threshold must enrage")
	}
}

func TestUpdateMidBoss_EnrageAnnouncedOnce(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	mb := testMidBoss()
	mb.Activated = true

	announced := 0
	for i := 0; i < 120; i++ {
		step := UpdateMidBoss(&mb, components.Position{}, 0.2, nil, tune, dt)
		if step.NewlyEnraged {
			announced++
		}
	}
	if announced != 1 {
		t.Errorf("enrage must be announced exactly once, got %d", announced)
	}

	// Healing back up never reverts it.
	UpdateMidBoss(&mb, components.Position{}, 0.9, nil, tune, dt)
	if !mb.Enraged {
		t.Error("mid-boss enrage must be one-way")
	}
}

// ---------- ability cooldown ----------

func TestUpdateMidBoss_AbilityReadyOnce(t *testing.T) {
	tune := bossTuning()
	dt := config.Cfg().Derived.DT32
	mb := testMidBoss()
	mb.Activated = true
	mb.SpecialCooldown = 0.1

	ready := 0
	for i := 0; i < 60; i++ {
		step := UpdateMidBoss(&mb, components.Position{}, 0.9, nil, tune, dt)
		if step.AbilityReady {
			ready++
		}
	}
	if ready != 1 {
		t.Errorf("ability readiness must fire exactly once, got %d", ready)
	}
}
