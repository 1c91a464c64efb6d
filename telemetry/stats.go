package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State census at window end
	AgentCount int `csv:"agents"`
	Idle       int `csv:"idle"`
	Patrolling int `csv:"patrolling"`
	Pursuing   int `csv:"pursuing"`
	Attacking  int `csv:"attacking"`
	Fleeing    int `csv:"fleeing"`
	Stunned    int `csv:"stunned"`

	// Events during window
	StateTransitions int `csv:"state_transitions"`
	AttacksIssued    int `csv:"attacks_issued"`
	DamageEvents     int `csv:"damage_events"`
	BossActivations  int `csv:"boss_activations"`
	PhaseTransitions int `csv:"phase_transitions"`
	BossEnrages      int `csv:"boss_enrages"`
	SpecialsReady    int `csv:"specials_ready"`
	MidBossEvents    int `csv:"midboss_events"`

	// Damage distribution over the window's damage events
	DamageMean float64 `csv:"damage_mean"`
	DamageStd  float64 `csv:"damage_std"`
	DamageP50  float64 `csv:"damage_p50"`
	DamageP90  float64 `csv:"damage_p90"`
}

// ComputeDamageStats calculates mean, standard deviation, and
// percentiles from per-event damage amounts.
func ComputeDamageStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"agents", s.AgentCount,
		"idle", s.Idle,
		"patrolling", s.Patrolling,
		"pursuing", s.Pursuing,
		"attacking", s.Attacking,
		"fleeing", s.Fleeing,
		"stunned", s.Stunned,
		"state_transitions", s.StateTransitions,
		"attacks_issued", s.AttacksIssued,
		"damage_events", s.DamageEvents,
		"boss_activations", s.BossActivations,
		"phase_transitions", s.PhaseTransitions,
		"boss_enrages", s.BossEnrages,
		"specials_ready", s.SpecialsReady,
		"midboss_events", s.MidBossEvents,
		"damage_mean", s.DamageMean,
		"damage_std", s.DamageStd,
		"damage_p50", s.DamageP50,
		"damage_p90", s.DamageP90,
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("agents", s.AgentCount),
		slog.Int("idle", s.Idle),
		slog.Int("patrolling", s.Patrolling),
		slog.Int("pursuing", s.Pursuing),
		slog.Int("attacking", s.Attacking),
		slog.Int("fleeing", s.Fleeing),
		slog.Int("stunned", s.Stunned),
		slog.Int("state_transitions", s.StateTransitions),
		slog.Int("attacks_issued", s.AttacksIssued),
		slog.Int("damage_events", s.DamageEvents),
		slog.Int("boss_activations", s.BossActivations),
		slog.Int("phase_transitions", s.PhaseTransitions),
		slog.Int("boss_enrages", s.BossEnrages),
		slog.Int("specials_ready", s.SpecialsReady),
		slog.Int("midboss_events", s.MidBossEvents),
		slog.Float64("damage_mean", s.DamageMean),
		slog.Float64("damage_std", s.DamageStd),
		slog.Float64("damage_p50", s.DamageP50),
		slog.Float64("damage_p90", s.DamageP90),
	)
}
