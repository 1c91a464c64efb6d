package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/events"
)

// ---------- windowing ----------

func TestCollector_WindowDuration(t *testing.T) {
	c := NewCollector(5.0, 1.0/60.0)
	if c.WindowDurationTicks() != 300 {
		t.Errorf("5s at 60Hz: expected 300 ticks, got %d", c.WindowDurationTicks())
	}

	if c.ShouldFlush(299) {
		t.Error("must not flush before the window elapses")
	}
	if !c.ShouldFlush(300) {
		t.Error("must flush once the window elapses")
	}
}

func TestCollector_TinyWindowClamps(t *testing.T) {
	c := NewCollector(0.001, 1.0/60.0)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window must be at least 1 tick, got %d", c.WindowDurationTicks())
	}
}

// ---------- counting ----------

func TestCollector_CountsEvents(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)

	c.Record(events.NewStateEnter(1, 1, components.StatePursuing, 0, 0))
	c.Record(events.NewStateExit(1, 1, components.StateIdle))
	c.Record(events.NewAttackIssued(2, 1, 0, 0, 0))
	c.Record(events.NewDamage(3, 1, 0, 0, 10, 1, components.ElementNone, components.StatusNone, 0))
	c.Record(events.NewDamage(3, 1, 0, 0, 20, 1, components.ElementNone, components.StatusNone, 0))
	c.Record(events.NewBossActivated(4, 2, components.BossKindWarden, 0, 0))
	c.Record(events.NewPhaseTransitionStart(5, 2, 1))
	c.Record(events.NewPhaseTransitionEnd(6, 2, 1))
	c.Record(events.NewBossEnraged(7, 2, components.BossKindWarden, 3))
	c.Record(events.NewMidBossEnraged(8, 3, components.BossKindBroodmother))

	stats := c.Flush(60, 5, StateCensus{Pursuing: 2, Idle: 3})

	if stats.StateTransitions != 1 {
		t.Errorf("exits must not double-count transitions, got %d", stats.StateTransitions)
	}
	if stats.AttacksIssued != 1 {
		t.Errorf("expected 1 attack issued, got %d", stats.AttacksIssued)
	}
	if stats.DamageEvents != 2 {
		t.Errorf("expected 2 damage events, got %d", stats.DamageEvents)
	}
	if stats.BossActivations != 1 || stats.PhaseTransitions != 1 || stats.BossEnrages != 1 {
		t.Errorf("boss counters wrong: %+v", stats)
	}
	if stats.MidBossEvents != 1 {
		t.Errorf("expected 1 mid-boss event, got %d", stats.MidBossEvents)
	}
	if stats.DamageMean != 15 {
		t.Errorf("expected damage mean 15, got %f", stats.DamageMean)
	}
	if stats.AgentCount != 5 || stats.Pursuing != 2 || stats.Idle != 3 {
		t.Errorf("census lost: %+v", stats)
	}
}

func TestCollector_FlushResets(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	c.Record(events.NewAttackIssued(1, 1, 0, 0, 0))
	c.Flush(60, 1, StateCensus{})

	stats := c.Flush(120, 1, StateCensus{})
	if stats.AttacksIssued != 0 || stats.DamageEvents != 0 {
		t.Errorf("counters must reset between windows: %+v", stats)
	}
	if stats.WindowStartTick != 60 {
		t.Errorf("window start must advance to the last flush, got %d", stats.WindowStartTick)
	}
}

// ---------- damage stats ----------

func TestComputeDamageStats_Empty(t *testing.T) {
	mean, std, p50, p90 := ComputeDamageStats(nil)
	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input must produce zeros")
	}
}

func TestComputeDamageStats_Known(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	mean, std, p50, p90 := ComputeDamageStats(values)
	if mean != 25 {
		t.Errorf("expected mean 25, got %f", mean)
	}
	if std <= 0 {
		t.Errorf("expected positive stddev, got %f", std)
	}
	if p50 < 10 || p50 > 30 {
		t.Errorf("median out of range: %f", p50)
	}
	if p90 < p50 || p90 > 40 {
		t.Errorf("p90 must sit between the median and the max, got %f", p90)
	}
}

func TestComputeDamageStats_SingleValue(t *testing.T) {
	mean, std, p50, p90 := ComputeDamageStats([]float64{7})
	if mean != 7 || std != 0 || p50 != 7 || p90 != 7 {
		t.Errorf("single value: got mean=%f std=%f p50=%f p90=%f", mean, std, p50, p90)
	}
}

// ---------- event rows ----------

func TestRowFor_DamagePayload(t *testing.T) {
	ev := events.NewDamage(9, 4, 1, 2, 12.5, 0.5,
		components.ElementPoison, components.StatusPoisoned, 3)

	row := RowFor(ev)
	if row.Type != "damage" || row.Damage != 12.5 {
		t.Errorf("damage row wrong: %+v", row)
	}
	if row.Element != "poison" || row.Status != "poisoned" {
		t.Errorf("element/status names wrong: %+v", row)
	}
}

func TestRowFor_StateEnter(t *testing.T) {
	ev := events.NewStateEnter(3, 2, components.StateFleeing, 5, 6)
	row := RowFor(ev)
	if row.State != "fleeing" || row.X != 5 || row.Y != 6 {
		t.Errorf("state-enter row wrong: %+v", row)
	}
}

func TestRowFor_MidBossAbility(t *testing.T) {
	ev := events.NewMidBossAbilityReady(4, 9, components.BossKindBroodmother, components.AbilitySlam)
	row := RowFor(ev)
	if row.Boss != "broodmother" || row.Ability != "slam" {
		t.Errorf("mid-boss row wrong: %+v", row)
	}
}

// isClose is a float helper for window math.
func isClose(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCollector_SimTime(t *testing.T) {
	c := NewCollector(1.0, 1.0/60.0)
	stats := c.Flush(120, 0, StateCensus{})
	if !isClose(stats.SimTimeSec, 2.0) {
		t.Errorf("120 ticks at 60Hz: expected 2.0s, got %f", stats.SimTimeSec)
	}
}
