package events

import "sync"

// Queue is the per-tick event buffer. Appends are safe from multiple
// producers; draining is single-consumer and happens once per tick after
// all behavioral passes have run.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates a queue with a small preallocated buffer.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 256)}
}

// Emit appends a single event.
func (q *Queue) Emit(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// EmitAll appends a batch of events preserving their order.
func (q *Queue) EmitAll(evs []Event) {
	if len(evs) == 0 {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, evs...)
	q.mu.Unlock()
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Drain calls fn for every pending event in emission order and clears
// the queue. The backing buffer is reused across ticks.
func (q *Queue) Drain(fn func(Event)) {
	q.mu.Lock()
	pending := q.events
	q.events = q.events[len(q.events):]
	q.mu.Unlock()

	for i := range pending {
		fn(pending[i])
	}
}

// DrainInto appends all pending events to dst, clears the queue, and
// returns the extended slice.
func (q *Queue) DrainInto(dst []Event) []Event {
	q.mu.Lock()
	dst = append(dst, q.events...)
	q.events = q.events[:0]
	q.mu.Unlock()
	return dst
}
