package telemetry

import "github.com/pthm-cable/brood/events"

// EventRow is a flat CSV record for one engine event.
type EventRow struct {
	Tick    int32   `csv:"tick"`
	Type    string  `csv:"type"`
	Entity  uint32  `csv:"entity"`
	State   string  `csv:"state"`
	Prev    string  `csv:"prev_state"`
	X       float32 `csv:"x"`
	Y       float32 `csv:"y"`
	Variant uint8   `csv:"variant"`
	Damage  float32 `csv:"damage"`
	Radius  float32 `csv:"radius"`
	Element string  `csv:"element"`
	Status  string  `csv:"status"`
	Boss    string  `csv:"boss"`
	Phase   int     `csv:"phase"`
	Ability string  `csv:"ability"`
}

// RowFor flattens an engine event for the raw event log. Fields that
// do not apply to the event type are left zero.
func RowFor(ev events.Event) EventRow {
	row := EventRow{
		Tick:   ev.Tick,
		Type:   ev.Type.String(),
		Entity: ev.Entity,
		X:      ev.TargetX,
		Y:      ev.TargetY,
	}

	switch ev.Type {
	case events.TypeStateEnter:
		row.State = ev.State.String()
	case events.TypeStateExit:
		row.Prev = ev.PrevState.String()
	case events.TypeAttackIssued:
		row.Variant = ev.Variant
	case events.TypeDamage:
		row.Damage = ev.Damage
		row.Radius = ev.Radius
		row.Element = ev.Element.String()
		row.Status = ev.Status.String()
	case events.TypeBossActivated, events.TypeBossEnraged, events.TypeSpecialReady:
		row.Boss = ev.BossKind.String()
		row.Phase = ev.PhaseIndex
	case events.TypePhaseTransitionStart, events.TypePhaseTransitionEnd:
		row.Phase = ev.PhaseIndex
	case events.TypeMidBossActivated, events.TypeMidBossEnraged, events.TypeMidBossAbilityReady:
		row.Boss = ev.BossKind.String()
		row.Ability = ev.Ability.String()
	}

	return row
}
