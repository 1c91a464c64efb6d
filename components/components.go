// Package components defines ECS components for the behavior engine.
package components

// AIState is the behavioral state of an agent.
type AIState uint8

const (
	StateIdle AIState = iota
	StatePatrolling
	StatePursuing
	StateAttacking
	StateFleeing
	StateStunned
)

// String returns the state name for logs and events.
func (s AIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrolling:
		return "patrolling"
	case StatePursuing:
		return "pursuing"
	case StateAttacking:
		return "attacking"
	case StateFleeing:
		return "fleeing"
	case StateStunned:
		return "stunned"
	}
	return "unknown"
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity.
// Written exclusively by whichever behavioral pass owns the agent's
// movement for the current tick.
type Velocity struct {
	X, Y float32
}

// Rotation holds an entity's facing. The pursuit resolver is the only
// writer in this engine; everything else treats it as read-only.
type Rotation struct {
	Heading float32
}

// Health holds current and maximum health. Read-only input to decision
// logic; only the external damage subsystem mutates it.
type Health struct {
	Current float32
	Max     float32
}

// Ratio returns Current/Max, or 0 when Max is 0.
func (h *Health) Ratio() float32 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// Behavior holds per-agent decision state. Exactly one per agent,
// created at spawn and destroyed at despawn.
type Behavior struct {
	ID uint32 // stable id carried on events

	State          AIState
	StateEnterTime float32

	DetectionRange float32
	AttackRange    float32
	MoveSpeed      float32

	CanPatrol  bool
	CanFlee    bool
	Aggressive bool

	AbilityCooldown     float32
	PatternIndex        uint8
	FleeHealthThreshold float32

	WaitTimer       float32
	LoseTargetTimer float32
	StunTimer       float32

	// PatrolHeading is the waypoint heading chosen by the patrol entry
	// hook; the oscillating wander curve bends around it.
	PatrolHeading float32
}

// Target tags entities whose positions feed the per-tick target snapshot.
type Target struct{}

// Stunned is an externally applied marker. Agents carrying it are skipped
// by the decision pass and produce no movement.
type Stunned struct{}
