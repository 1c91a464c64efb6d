package engine

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/events"
	"github.com/pthm-cable/brood/systems"
)

// defaultParallelThreshold is the minimum agent count to use parallel
// processing when the config leaves it unset. Below this,
// single-threaded is faster due to goroutine overhead.
const defaultParallelThreshold = 64

// agentSnapshot captures read-only state for the parallel decision pass.
type agentSnapshot struct {
	Entity   ecs.Entity
	Pos      components.Position
	Health   float32
	Behavior components.Behavior

	HasProfile    bool
	CooldownReady bool
	Attacking     bool
	Stunned       bool
}

// decisionIntent captures computed outputs to apply after the compute
// phase. No component is touched until the apply phase.
type decisionIntent struct {
	Target      systems.TargetInfo
	Next        components.AIState
	IssueAttack bool
}

// workChunk is a range of snapshots for one worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds resources for the parallel decision pass.
type parallelState struct {
	snapshots  []agentSnapshot
	intents    []decisionIntent
	numWorkers int

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]agentSnapshot, 0, 512),
		intents:    make([]decisionIntent, 0, 512),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(e *Engine) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(e)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(e *Engine) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			e.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// updateDecisions runs the three-phase decision pass: snapshot
// (single-threaded), compute (parallel when the population is large
// enough), apply (single-threaded, preserving world iteration order so
// event emission stays deterministic).
func (e *Engine) updateDecisions(now float32) {
	// Phase A: build snapshots.
	e.parallel.snapshots = e.parallel.snapshots[:0]

	query := e.agentFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, _, _, health, b := query.Get()

		snap := agentSnapshot{
			Entity:   entity,
			Pos:      *pos,
			Health:   health.Current,
			Behavior: *b,
			Stunned:  e.stunMap.Get(entity) != nil,
		}
		if p := e.profileMap.Get(entity); p != nil {
			snap.HasProfile = true
			snap.CooldownReady = p.CooldownRemaining <= 0
		}
		snap.Attacking = e.attackMap.Get(entity) != nil

		e.parallel.snapshots = append(e.parallel.snapshots, snap)
	}

	n := len(e.parallel.snapshots)
	if n == 0 {
		return
	}

	if cap(e.parallel.intents) < n {
		e.parallel.intents = make([]decisionIntent, n)
	}
	e.parallel.intents = e.parallel.intents[:n]

	// Phase B: compute.
	threshold := e.config().Parallel.Threshold
	if threshold <= 0 {
		threshold = defaultParallelThreshold
	}
	if n < threshold {
		e.computeChunk(0, n)
	} else {
		e.computeParallel(n)
	}

	// Phase C: apply.
	e.applyDecisions(now)
}

// computeParallel dispatches chunks to the worker pool and waits.
func (e *Engine) computeParallel(n int) {
	if !e.parallel.running {
		e.parallel.startWorkers(e)
	}

	numWorkers := e.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		e.parallel.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-e.parallel.doneChan
	}
}

// computeChunk evaluates the transition table for a range of snapshots.
// Pure reads only: snapshots, the target snapshot, and tunings.
func (e *Engine) computeChunk(i0, i1 int) {
	for i := i0; i < i1; i++ {
		snap := &e.parallel.snapshots[i]
		in := &e.parallel.intents[i]

		if snap.Stunned {
			in.Target = systems.TargetInfo{}
			in.Next = snap.Behavior.State
			in.IssueAttack = false
			continue
		}

		t := systems.NearestTarget(snap.Pos.X, snap.Pos.Y, e.targets)
		next := systems.NextState(&snap.Behavior, snap.Health, t, e.decTune)

		in.Target = t
		in.Next = next
		in.IssueAttack = next == components.StateAttacking &&
			snap.HasProfile && snap.CooldownReady && !snap.Attacking && t.Found
	}
}

// applyDecisions writes the computed transitions back to components,
// runs the exit and entry hooks, and emits events in snapshot order.
func (e *Engine) applyDecisions(now float32) {
	for i := range e.parallel.snapshots {
		snap := &e.parallel.snapshots[i]
		in := &e.parallel.intents[i]

		pos := e.posMap.Get(snap.Entity)
		vel := e.velMap.Get(snap.Entity)
		b := e.behaviorMap.Get(snap.Entity)
		if pos == nil || vel == nil || b == nil {
			continue
		}

		if snap.Stunned {
			vel.X, vel.Y = 0, 0
			continue
		}

		if in.Next != b.State {
			prev := b.State
			systems.ExitState(b, prev)
			e.queue.Emit(events.NewStateExit(e.tick, b.ID, prev))
			systems.EnterState(b, in.Next, *pos, e.decTune, now)
			e.queue.Emit(events.NewStateEnter(e.tick, b.ID, in.Next, in.Target.X, in.Target.Y))
		} else if b.State == components.StatePursuing &&
			in.Target.Found && in.Target.Dist < b.DetectionRange {
			// Target still visible, keep the pursuit grace topped up.
			b.LoseTargetTimer = e.decTune.DefaultLoseTarget
		}

		// Pursuit owns movement for Pursuing; everything else is
		// written here from the post-transition state.
		if b.State != components.StatePursuing {
			vx, vy := systems.Movement(b, *pos, in.Target, e.decTune, now)
			vel.X, vel.Y = vx, vy
		}

		if in.IssueAttack && b.State == components.StateAttacking {
			p := e.profileMap.Get(snap.Entity)
			if p != nil && p.CooldownRemaining <= 0 && e.attackMap.Get(snap.Entity) == nil {
				e.queue.Emit(events.NewAttackIssued(e.tick, b.ID, in.Target.X, in.Target.Y, b.PatternIndex))
				e.deferred.queueAttackStart(snap.Entity,
					systems.StartAttack(in.Target.X, in.Target.Y, b.PatternIndex, now))
			}
		}
	}
}
