// Package config provides Viper-based configuration loading for the arena
// combat core and simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CombatConfig holds the combat tuning knobs. These are balance constants,
// not structural behavior, so they load from configuration rather than being
// embedded as literals.
type CombatConfig struct {
	// AttackFallbackTimeout is how long an attack cycle waits for the
	// animation-complete event before forcing completion.
	AttackFallbackTimeout time.Duration `mapstructure:"attack_fallback_timeout"`
	// DeathGraceDelay is the pause between lethal damage and loot-drop/removal.
	DeathGraceDelay time.Duration `mapstructure:"death_grace_delay"`
	// DamageVariancePct is the ± percentage applied to non-critical damage.
	DamageVariancePct int `mapstructure:"damage_variance_pct"`
	// CriticalMultiplier scales raw attack power on a critical hit. Must be > 1.
	CriticalMultiplier float64 `mapstructure:"critical_multiplier"`
	// BlockMitigation multiplies non-critical damage dealt to a blocking
	// target. Must be in (0, 1].
	BlockMitigation float64 `mapstructure:"block_mitigation"`
	// HitboxReach is how far the melee volume extends from the attacker.
	HitboxReach float64 `mapstructure:"hitbox_reach"`
	// HitboxWidth is the lateral thickness of the melee volume.
	HitboxWidth float64 `mapstructure:"hitbox_width"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimConfig holds skirmish simulator settings.
type SimConfig struct {
	// TickInterval is the simulated frame duration.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// MaxTicks bounds a simulated skirmish; 0 means no bound.
	MaxTicks int `mapstructure:"max_ticks"`
	// LootTablePath points at the YAML loot-table file; empty disables loot.
	LootTablePath string `mapstructure:"loot_table_path"`
}

// Config is the top-level application configuration.
type Config struct {
	Combat  CombatConfig  `mapstructure:"combat"`
	Logging LoggingConfig `mapstructure:"logging"`
	Sim     SimConfig     `mapstructure:"sim"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing
// all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSim(c.Sim); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

func validateCombat(cc CombatConfig) error {
	if cc.AttackFallbackTimeout <= 0 {
		return fmt.Errorf("combat.attack_fallback_timeout must be > 0, got %s", cc.AttackFallbackTimeout)
	}
	if cc.DeathGraceDelay < 0 {
		return fmt.Errorf("combat.death_grace_delay must be >= 0, got %s", cc.DeathGraceDelay)
	}
	if cc.DamageVariancePct < 0 || cc.DamageVariancePct > 100 {
		return fmt.Errorf("combat.damage_variance_pct must be in [0, 100], got %d", cc.DamageVariancePct)
	}
	if cc.CriticalMultiplier <= 1 {
		return fmt.Errorf("combat.critical_multiplier must be > 1, got %g", cc.CriticalMultiplier)
	}
	if cc.BlockMitigation <= 0 || cc.BlockMitigation > 1 {
		return fmt.Errorf("combat.block_mitigation must be in (0, 1], got %g", cc.BlockMitigation)
	}
	if cc.HitboxReach <= 0 {
		return fmt.Errorf("combat.hitbox_reach must be > 0, got %g", cc.HitboxReach)
	}
	if cc.HitboxWidth <= 0 {
		return fmt.Errorf("combat.hitbox_width must be > 0, got %g", cc.HitboxWidth)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug|info|warn|error, got %q", l.Level)
	}
	switch l.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", l.Format)
	}
	return nil
}

func validateSim(s SimConfig) error {
	if s.TickInterval <= 0 {
		return fmt.Errorf("sim.tick_interval must be > 0, got %s", s.TickInterval)
	}
	if s.MaxTicks < 0 {
		return fmt.Errorf("sim.max_ticks must be >= 0, got %d", s.MaxTicks)
	}
	return nil
}

// Load reads configuration from the file at path, applying ARENA_-prefixed
// environment variable overrides and package defaults.
//
// Precondition: path must point at a readable config file.
// Postcondition: Returns a validated Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ARENA_ prefix
	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without reading any file.
//
// Postcondition: Returns a Config that passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic("config: unmarshalling defaults: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("combat.attack_fallback_timeout", "400ms")
	v.SetDefault("combat.death_grace_delay", "100ms")
	v.SetDefault("combat.damage_variance_pct", 10)
	v.SetDefault("combat.critical_multiplier", 1.5)
	v.SetDefault("combat.block_mitigation", 0.5)
	v.SetDefault("combat.hitbox_reach", 56)
	v.SetDefault("combat.hitbox_width", 40)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("sim.tick_interval", "16ms")
	v.SetDefault("sim.max_ticks", 1000)
	v.SetDefault("sim.loot_table_path", "")
}
