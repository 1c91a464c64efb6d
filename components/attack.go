package components

// AttackPattern identifies a timed attack shape.
type AttackPattern uint8

const (
	PatternDirect AttackPattern = iota
	PatternSweep
	PatternBurst
	PatternCharge
	PatternProjectile
	PatternAOE
	PatternSummon
	PatternDoT
	PatternTeleport
	PatternSpecial
)

// String returns the pattern name for logs and events.
func (p AttackPattern) String() string {
	switch p {
	case PatternDirect:
		return "direct"
	case PatternSweep:
		return "sweep"
	case PatternBurst:
		return "burst"
	case PatternCharge:
		return "charge"
	case PatternProjectile:
		return "projectile"
	case PatternAOE:
		return "aoe"
	case PatternSummon:
		return "summon"
	case PatternDoT:
		return "dot"
	case PatternTeleport:
		return "teleport"
	case PatternSpecial:
		return "special"
	}
	return "unknown"
}

// AttackPhase is the lifecycle stage of an executing attack.
type AttackPhase uint8

const (
	PhaseStartup AttackPhase = iota
	PhaseActive
	PhaseRecovery
)

// ElementType tags damage with an element.
type ElementType uint8

const (
	ElementNone ElementType = iota
	ElementFire
	ElementIce
	ElementLightning
	ElementPoison
	ElementShadow
)

// String returns the element name, or empty for none.
func (e ElementType) String() string {
	switch e {
	case ElementFire:
		return "fire"
	case ElementIce:
		return "ice"
	case ElementLightning:
		return "lightning"
	case ElementPoison:
		return "poison"
	case ElementShadow:
		return "shadow"
	}
	return ""
}

// StatusEffect identifies a status carried by a damage event.
type StatusEffect uint8

const (
	StatusNone StatusEffect = iota
	StatusBurn
	StatusFreeze
	StatusShock
	StatusPoisoned
	StatusWeakened
)

// String returns the status name, or empty for none.
func (s StatusEffect) String() string {
	switch s {
	case StatusBurn:
		return "burn"
	case StatusFreeze:
		return "freeze"
	case StatusShock:
		return "shock"
	case StatusPoisoned:
		return "poisoned"
	case StatusWeakened:
		return "weakened"
	}
	return ""
}

// AttackProfile describes what an agent attacks with. One per agent
// capable of attacking.
type AttackProfile struct {
	Pattern           AttackPattern
	BaseDamage        float32
	Range             float32
	Cooldown          float32
	CooldownRemaining float32
	AreaEffect        bool
	AreaRadius        float32
	Element           ElementType
	Status            StatusEffect
	StatusDuration    float32
}

// ActiveAttack is the transient record of an in-progress attack. It is
// present iff an attack is executing: added when the attack begins and
// removed atomically when it completes.
type ActiveAttack struct {
	TargetX, TargetY float32
	Variant          uint8
	Phase            AttackPhase
	Progress         float32
	StartTime        float32
}
