package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseDecisions)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseAttacks)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if len(stats.PhaseAvg) == 0 {
		t.Error("expected phase averages to be populated")
	}
	if _, ok := stats.PhaseAvg[PhaseDecisions]; !ok {
		t.Error("expected decisions phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseAttacks]; !ok {
		t.Error("expected attacks phase to be tracked")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	// Push more ticks than the window holds.
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseDecisions)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)
	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("no samples: expected zero average")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("no samples: maps must still be non-nil")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.StartTick()
	pc.StartPhase(PhasePursuit)
	time.Sleep(100 * time.Microsecond)
	pc.EndTick()

	row := pc.Stats().ToCSV(42)
	if row.WindowEnd != 42 {
		t.Errorf("expected window end 42, got %d", row.WindowEnd)
	}
	if row.AvgTickUS <= 0 {
		t.Error("expected positive average tick time")
	}
	if row.PursuitPct <= 0 {
		t.Error("expected pursuit phase percentage to be recorded")
	}
}
