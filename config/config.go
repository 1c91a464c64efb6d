// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Decision   DecisionConfig   `yaml:"decision"`
	Pursuit    PursuitConfig    `yaml:"pursuit"`
	Attack     AttackConfig     `yaml:"attack"`
	Boss       BossConfig       `yaml:"boss"`
	Parallel   ParallelConfig   `yaml:"parallel"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Archetypes []ArchetypeConfig `yaml:"archetypes"`
	Bosses     []BossDefConfig   `yaml:"bosses"`
	MidBosses  []MidBossDefConfig `yaml:"midbosses"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig holds tick timing parameters.
type SimulationConfig struct {
	DT   float64 `yaml:"dt"`   // seconds per tick
	Seed int64   `yaml:"seed"` // scenario runner RNG seed
}

// DecisionConfig holds decision-engine tuning.
type DecisionConfig struct {
	AttackHysteresis  float64 `yaml:"attack_hysteresis"`  // leave Attacking above AttackRange * this
	FleeRecovery      float64 `yaml:"flee_recovery"`      // leave Fleeing above FleeHealthThreshold * this
	PatrolSpeedScale  float64 `yaml:"patrol_speed_scale"` // patrol speed as fraction of MoveSpeed
	FleeSpeedScale    float64 `yaml:"flee_speed_scale"`   // flee speed as multiple of MoveSpeed
	PatrolAmplitude   float64 `yaml:"patrol_amplitude"`   // wander curve swing in radians
	PatrolFrequency   float64 `yaml:"patrol_frequency"`   // wander curve cycles per second
	DefaultWaitTime   float64 `yaml:"default_wait_time"`  // idle dwell before patrolling resumes
	DefaultLoseTarget float64 `yaml:"default_lose_target"` // pursuit grace after losing sight
}

// PursuitConfig holds pursuit-resolver tuning.
type PursuitConfig struct {
	MinSpeedScale float64 `yaml:"min_speed_scale"` // approach speed floor as fraction of MoveSpeed
	FacingBlend   float64 `yaml:"facing_blend"`    // heading interpolation factor per tick
	StopDistance  float64 `yaml:"stop_distance"`   // below this, velocity is zeroed
}

// AttackConfig holds attack-pattern tuning. Phase boundaries are part of
// the attack contract and default to 0.3/0.7.
type AttackConfig struct {
	PatternSpeed        float64 `yaml:"pattern_speed"`
	StartupEnd          float64 `yaml:"startup_end"`
	ActiveEnd           float64 `yaml:"active_end"`
	DirectApproachSpeed float64 `yaml:"direct_approach_speed"`
	DirectHitRadius     float64 `yaml:"direct_hit_radius"`
	SweepOffsetScale    float64 `yaml:"sweep_offset_scale"`
	SweepDamageScale    float64 `yaml:"sweep_damage_scale"`
	SweepTickInterval   float64 `yaml:"sweep_tick_interval"` // progress fraction between sweep damage ticks
	RecoveryDecel       float64 `yaml:"recovery_decel"`      // velocity multiplier per recovery tick
}

// BossConfig holds shared boss controller parameters.
type BossConfig struct {
	ActivationRadius        float64 `yaml:"activation_radius"`
	MidBossActivationRadius float64 `yaml:"midboss_activation_radius"`
	TransitionDuration      float64 `yaml:"transition_duration"`
}

// ParallelConfig holds worker pool parameters.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // minimum agent count for parallel processing
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// ArchetypeConfig defines a named agent template for spawning.
type ArchetypeConfig struct {
	Name            string  `yaml:"name"`
	DetectionRange  float64 `yaml:"detection_range"`
	AttackRange     float64 `yaml:"attack_range"`
	MoveSpeed       float64 `yaml:"move_speed"`
	CanPatrol       bool    `yaml:"can_patrol"`
	CanFlee         bool    `yaml:"can_flee"`
	Aggressive      bool    `yaml:"aggressive"`
	FleeThreshold   float64 `yaml:"flee_threshold"` // flee below this health ratio of max health
	MaxHealth       float64 `yaml:"max_health"`
	Pattern         string  `yaml:"pattern"`
	BaseDamage      float64 `yaml:"base_damage"`
	AttackCooldown  float64 `yaml:"attack_cooldown"`
	AreaEffect      bool    `yaml:"area_effect"`
	AreaRadius      float64 `yaml:"area_radius"`
	Element         string  `yaml:"element"`
	Status          string  `yaml:"status"`
	StatusDuration  float64 `yaml:"status_duration"`
}

// BossDefConfig defines a boss encounter template.
type BossDefConfig struct {
	Name            string    `yaml:"name"`
	Kind            string    `yaml:"kind"`
	Archetype       string    `yaml:"archetype"`       // underlying agent template
	PhaseThresholds []float64 `yaml:"phase_thresholds"` // health ratios guarding each later phase
	IntensityRate   float64   `yaml:"intensity_rate"`
	SpecialCooldown float64   `yaml:"special_cooldown"`
	HasMinions      bool      `yaml:"has_minions"`
	MinionCooldown  float64   `yaml:"minion_cooldown"`
}

// MidBossDefConfig defines a mid-boss encounter template.
type MidBossDefConfig struct {
	Name            string  `yaml:"name"`
	Kind            string  `yaml:"kind"`
	Archetype       string  `yaml:"archetype"`
	EnrageThreshold float64 `yaml:"enrage_threshold"`
	Ability         string  `yaml:"ability"`
	SpecialCooldown float64 `yaml:"special_cooldown"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32           float32
	TicksPerSecond int
	ArchetypeIndex map[string]int // name -> index into Archetypes
	BossIndex      map[string]int
	MidBossIndex   map[string]int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Simulation.DT <= 0 {
		c.Simulation.DT = 1.0 / 60.0
	}
	c.Derived.DT32 = float32(c.Simulation.DT)
	c.Derived.TicksPerSecond = int(1.0/c.Simulation.DT + 0.5)

	c.Derived.ArchetypeIndex = make(map[string]int, len(c.Archetypes))
	for i, arch := range c.Archetypes {
		c.Derived.ArchetypeIndex[arch.Name] = i
	}
	c.Derived.BossIndex = make(map[string]int, len(c.Bosses))
	for i, b := range c.Bosses {
		c.Derived.BossIndex[b.Name] = i
	}
	c.Derived.MidBossIndex = make(map[string]int, len(c.MidBosses))
	for i, m := range c.MidBosses {
		c.Derived.MidBossIndex[m.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
