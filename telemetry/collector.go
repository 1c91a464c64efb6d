// Package telemetry aggregates engine events into windowed statistics
// and writes them to CSV alongside a raw event log.
package telemetry

import (
	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/events"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	stateTransitions int
	attacksIssued    int
	damageEvents     int
	bossActivations  int
	phaseTransitions int
	bossEnrages      int
	specialsReady    int
	midBossEvents    int

	// Per-event damage amounts, sampled for distribution stats.
	damageAmounts []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		damageAmounts:       make([]float64, 0, 64),
	}
}

// Record counts one engine event into the current window.
func (c *Collector) Record(ev events.Event) {
	switch ev.Type {
	case events.TypeStateEnter:
		c.stateTransitions++
	case events.TypeStateExit:
		// Counted on the matching enter.
	case events.TypeAttackIssued:
		c.attacksIssued++
	case events.TypeDamage:
		c.damageEvents++
		c.damageAmounts = append(c.damageAmounts, float64(ev.Damage))
	case events.TypeBossActivated:
		c.bossActivations++
	case events.TypePhaseTransitionStart:
		c.phaseTransitions++
	case events.TypePhaseTransitionEnd:
		// Start already counted the transition.
	case events.TypeBossEnraged:
		c.bossEnrages++
	case events.TypeSpecialReady:
		c.specialsReady++
	case events.TypeMidBossActivated, events.TypeMidBossEnraged, events.TypeMidBossAbilityReady:
		c.midBossEvents++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// StateCensus holds current agent counts per state, sampled at flush.
type StateCensus struct {
	Idle       int
	Patrolling int
	Pursuing   int
	Attacking  int
	Fleeing    int
	Stunned    int
}

// Count increments the bucket for a state.
func (sc *StateCensus) Count(s components.AIState) {
	switch s {
	case components.StateIdle:
		sc.Idle++
	case components.StatePatrolling:
		sc.Patrolling++
	case components.StatePursuing:
		sc.Pursuing++
	case components.StateAttacking:
		sc.Attacking++
	case components.StateFleeing:
		sc.Fleeing++
	case components.StateStunned:
		sc.Stunned++
	}
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the current tick, live agent count, and a census
// of agent states sampled at window end.
func (c *Collector) Flush(currentTick int32, agentCount int, census StateCensus) WindowStats {
	dmgMean, dmgStd, dmgP50, dmgP90 := ComputeDamageStats(c.damageAmounts)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		AgentCount: agentCount,
		Idle:       census.Idle,
		Patrolling: census.Patrolling,
		Pursuing:   census.Pursuing,
		Attacking:  census.Attacking,
		Fleeing:    census.Fleeing,
		Stunned:    census.Stunned,

		StateTransitions: c.stateTransitions,
		AttacksIssued:    c.attacksIssued,
		DamageEvents:     c.damageEvents,
		BossActivations:  c.bossActivations,
		PhaseTransitions: c.phaseTransitions,
		BossEnrages:      c.bossEnrages,
		SpecialsReady:    c.specialsReady,
		MidBossEvents:    c.midBossEvents,

		DamageMean: dmgMean,
		DamageStd:  dmgStd,
		DamageP50:  dmgP50,
		DamageP90:  dmgP90,
	}

	c.windowStartTick = currentTick
	c.stateTransitions = 0
	c.attacksIssued = 0
	c.damageEvents = 0
	c.bossActivations = 0
	c.phaseTransitions = 0
	c.bossEnrages = 0
	c.specialsReady = 0
	c.midBossEvents = 0
	c.damageAmounts = c.damageAmounts[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
