package events

import (
	"sync"
	"testing"

	"github.com/pthm-cable/brood/components"
)

// ---------- ordering and lifecycle ----------

func TestQueue_DrainPreservesOrder(t *testing.T) {
	q := NewQueue()
	for i := int32(0); i < 5; i++ {
		q.Emit(NewStateExit(i, uint32(i), components.StateIdle))
	}

	var got []Event
	q.Drain(func(ev Event) { got = append(got, ev) })

	if len(got) != 5 {
		t.Fatalf("expected 5 events, got %d", len(got))
	}
	for i, ev := range got {
		if ev.Tick != int32(i) {
			t.Errorf("event %d out of order: tick %d", i, ev.Tick)
		}
	}
}

func TestQueue_DrainClears(t *testing.T) {
	q := NewQueue()
	q.Emit(NewStateExit(0, 1, components.StateIdle))
	q.Drain(func(Event) {})

	if q.Len() != 0 {
		t.Errorf("drained queue must be empty, got %d", q.Len())
	}

	var second int
	q.Drain(func(Event) { second++ })
	if second != 0 {
		t.Errorf("second drain must see nothing, got %d", second)
	}
}

func TestQueue_EventsAreEphemeral(t *testing.T) {
	q := NewQueue()
	q.Emit(NewAttackIssued(1, 7, 2, 3, 0))

	var first []Event
	q.Drain(func(ev Event) { first = append(first, ev) })

	// New emissions after a drain must not clobber what was drained.
	q.Emit(NewAttackIssued(2, 8, 4, 5, 1))
	if first[0].Entity != 7 || first[0].Tick != 1 {
		t.Errorf("drained events corrupted by later emission: %+v", first[0])
	}
}

func TestQueue_EmitAll(t *testing.T) {
	q := NewQueue()
	batch := []Event{
		NewStateEnter(1, 1, components.StatePursuing, 0, 0),
		NewStateEnter(1, 2, components.StateAttacking, 0, 0),
	}
	q.EmitAll(batch)
	q.EmitAll(nil)

	if q.Len() != 2 {
		t.Errorf("expected 2 events, got %d", q.Len())
	}
}

func TestQueue_DrainInto(t *testing.T) {
	q := NewQueue()
	q.Emit(NewDamage(3, 9, 1, 2, 10, 0.5, components.ElementFire, components.StatusBurn, 2))

	dst := q.DrainInto(nil)
	if len(dst) != 1 {
		t.Fatalf("expected 1 event, got %d", len(dst))
	}
	if dst[0].Damage != 10 || dst[0].Element != components.ElementFire {
		t.Errorf("payload lost in drain: %+v", dst[0])
	}
	if q.Len() != 0 {
		t.Error("DrainInto must clear the queue")
	}
}

// ---------- concurrency ----------

func TestQueue_ConcurrentEmit(t *testing.T) {
	q := NewQueue()
	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id uint32) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Emit(NewStateExit(0, id, components.StateIdle))
			}
		}(uint32(p))
	}
	wg.Wait()

	if q.Len() != producers*perProducer {
		t.Errorf("expected %d events, got %d", producers*perProducer, q.Len())
	}
}
