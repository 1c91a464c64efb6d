// Package events defines the ephemeral event records produced by the
// behavior engine and the per-tick queue external systems drain them from.
package events

import "github.com/pthm-cable/brood/components"

// Type identifies an event.
type Type uint8

const (
	TypeStateEnter Type = iota
	TypeStateExit
	TypeAttackIssued
	TypeDamage
	TypeBossActivated
	TypePhaseTransitionStart
	TypePhaseTransitionEnd
	TypeSpecialReady
	TypeBossEnraged
	TypeMidBossActivated
	TypeMidBossEnraged
	TypeMidBossAbilityReady
)

// String returns the event type name.
func (t Type) String() string {
	switch t {
	case TypeStateEnter:
		return "state_enter"
	case TypeStateExit:
		return "state_exit"
	case TypeAttackIssued:
		return "attack_issued"
	case TypeDamage:
		return "damage"
	case TypeBossActivated:
		return "boss_activated"
	case TypePhaseTransitionStart:
		return "phase_transition_start"
	case TypePhaseTransitionEnd:
		return "phase_transition_end"
	case TypeSpecialReady:
		return "special_ready"
	case TypeBossEnraged:
		return "boss_enraged"
	case TypeMidBossActivated:
		return "midboss_activated"
	case TypeMidBossEnraged:
		return "midboss_enraged"
	case TypeMidBossAbilityReady:
		return "midboss_ability_ready"
	}
	return "unknown"
}

// Event is a single engine event. Created and consumed within the same
// tick (or the following one); never persisted.
type Event struct {
	Type   Type
	Tick   int32
	Entity uint32

	// Optional fields depending on event type
	State     components.AIState // state enter/exit
	PrevState components.AIState // state exit
	TargetX   float32            // state enter, attack, damage
	TargetY   float32
	Variant   uint8 // attack issued

	// Damage payload
	Damage         float32
	Radius         float32
	Element        components.ElementType
	Status         components.StatusEffect
	StatusDuration float32

	// Boss payload
	BossKind   components.BossKind
	PhaseIndex int
	Ability    components.AbilityType
}

// NewStateEnter creates a state-enter event carrying the target position.
func NewStateEnter(tick int32, entity uint32, state components.AIState, targetX, targetY float32) Event {
	return Event{Type: TypeStateEnter, Tick: tick, Entity: entity, State: state, TargetX: targetX, TargetY: targetY}
}

// NewStateExit creates a state-exit event.
func NewStateExit(tick int32, entity uint32, prev components.AIState) Event {
	return Event{Type: TypeStateExit, Tick: tick, Entity: entity, PrevState: prev}
}

// NewAttackIssued creates an attack-issued event.
func NewAttackIssued(tick int32, entity uint32, targetX, targetY float32, variant uint8) Event {
	return Event{Type: TypeAttackIssued, Tick: tick, Entity: entity, TargetX: targetX, TargetY: targetY, Variant: variant}
}

// NewDamage creates a damage event at a target position.
func NewDamage(tick int32, source uint32, targetX, targetY, damage, radius float32,
	element components.ElementType, status components.StatusEffect, statusDuration float32) Event {
	return Event{
		Type: TypeDamage, Tick: tick, Entity: source,
		TargetX: targetX, TargetY: targetY,
		Damage: damage, Radius: radius,
		Element: element, Status: status, StatusDuration: statusDuration,
	}
}

// NewBossActivated creates a boss activation event.
func NewBossActivated(tick int32, entity uint32, kind components.BossKind, x, y float32) Event {
	return Event{Type: TypeBossActivated, Tick: tick, Entity: entity, BossKind: kind, TargetX: x, TargetY: y}
}

// NewPhaseTransitionStart creates a phase-transition-start event.
func NewPhaseTransitionStart(tick int32, entity uint32, phase int) Event {
	return Event{Type: TypePhaseTransitionStart, Tick: tick, Entity: entity, PhaseIndex: phase}
}

// NewPhaseTransitionEnd creates a phase-transition-end event.
func NewPhaseTransitionEnd(tick int32, entity uint32, phase int) Event {
	return Event{Type: TypePhaseTransitionEnd, Tick: tick, Entity: entity, PhaseIndex: phase}
}

// NewSpecialReady creates a boss special-attack-ready event.
func NewSpecialReady(tick int32, entity uint32, kind components.BossKind, phase int) Event {
	return Event{Type: TypeSpecialReady, Tick: tick, Entity: entity, BossKind: kind, PhaseIndex: phase}
}

// NewBossEnraged creates a boss enrage event.
func NewBossEnraged(tick int32, entity uint32, kind components.BossKind, phase int) Event {
	return Event{Type: TypeBossEnraged, Tick: tick, Entity: entity, BossKind: kind, PhaseIndex: phase}
}

// NewMidBossActivated creates a mid-boss activation event.
func NewMidBossActivated(tick int32, entity uint32, kind components.BossKind, x, y float32) Event {
	return Event{Type: TypeMidBossActivated, Tick: tick, Entity: entity, BossKind: kind, TargetX: x, TargetY: y}
}

// NewMidBossEnraged creates a mid-boss enrage event.
func NewMidBossEnraged(tick int32, entity uint32, kind components.BossKind) Event {
	return Event{Type: TypeMidBossEnraged, Tick: tick, Entity: entity, BossKind: kind}
}

// NewMidBossAbilityReady creates a mid-boss special-ability-ready event.
func NewMidBossAbilityReady(tick int32, entity uint32, kind components.BossKind, ability components.AbilityType) Event {
	return Event{Type: TypeMidBossAbilityReady, Tick: tick, Entity: entity, BossKind: kind, Ability: ability}
}
