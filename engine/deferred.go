package engine

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/brood/components"
)

// attackStart is a pending ActiveAttack attachment.
type attackStart struct {
	entity ecs.Entity
	atk    components.ActiveAttack
}

// deferredMutations queues structural component changes made during
// query iteration. Behavioral passes only read and queue; the engine
// applies everything at the end of the tick, so component layout never
// changes under an in-flight query.
type deferredMutations struct {
	starts []attackStart
	ends   []ecs.Entity
}

func (d *deferredMutations) queueAttackStart(entity ecs.Entity, atk components.ActiveAttack) {
	d.starts = append(d.starts, attackStart{entity: entity, atk: atk})
}

func (d *deferredMutations) queueAttackEnd(entity ecs.Entity) {
	d.ends = append(d.ends, entity)
}

// applyDeferred drains the mutation queue. Starts are skipped if an
// attack is somehow already attached; ends are skipped if the attack is
// already gone. Completion removal and cooldown re-arm happened in the
// same tick, so no second attack can slip in between them.
func (e *Engine) applyDeferred() {
	for i := range e.deferred.starts {
		s := &e.deferred.starts[i]
		if e.attackMap.Get(s.entity) == nil {
			atk := s.atk
			e.attackMap.Add(s.entity, &atk)
		}
	}
	for _, entity := range e.deferred.ends {
		if e.attackMap.Get(entity) != nil {
			e.attackMap.Remove(entity)
		}
	}
	e.deferred.starts = e.deferred.starts[:0]
	e.deferred.ends = e.deferred.ends[:0]
}
