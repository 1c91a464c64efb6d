package components

// BossKind names the encounter type carried on boss events.
type BossKind uint8

const (
	BossKindWarden BossKind = iota
	BossKindColossus
	BossKindBroodmother
)

// String returns the boss kind name.
func (k BossKind) String() string {
	switch k {
	case BossKindWarden:
		return "warden"
	case BossKindColossus:
		return "colossus"
	case BossKindBroodmother:
		return "broodmother"
	}
	return "unknown"
}

// AbilityType identifies a mid-boss special ability.
type AbilityType uint8

const (
	AbilityNone AbilityType = iota
	AbilitySlam
	AbilityRoar
	AbilityBarrage
)

// String returns the ability name.
func (a AbilityType) String() string {
	switch a {
	case AbilitySlam:
		return "slam"
	case AbilityRoar:
		return "roar"
	case AbilityBarrage:
		return "barrage"
	}
	return "none"
}

// Boss holds the multi-phase encounter state layered on top of an
// agent's Behavior. CurrentPhase is monotonically non-decreasing and
// bounded by TotalPhases-1; Enraged never reverts once set.
type Boss struct {
	Kind      BossKind
	Activated bool

	CurrentPhase int
	TotalPhases  int
	// Thresholds holds the health ratio below which each phase after the
	// first begins; Thresholds[i] guards the transition into phase i+1.
	Thresholds []float32

	PhaseTransitionTimer float32
	Invulnerable         bool
	InvulnerabilityTimer float32
	Enraged              bool

	PhaseIntensity float32
	IntensityRate  float32

	SpecialCooldown float32

	HasMinions     bool
	MinionCooldown float32
}

// MidBoss is the single-threshold variant: same activation and
// enrage-on-health-ratio shape, no phase table.
type MidBoss struct {
	Kind      BossKind
	Activated bool

	EnrageThreshold float32
	Enraged         bool

	Ability         AbilityType
	SpecialCooldown float32
}
