// Package config provides configuration management for the quantkit CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	qerrors "quantkit/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Pricing    PricingConfig    `mapstructure:"pricing"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SimulationConfig holds defaults for path simulation and Monte Carlo.
type SimulationConfig struct {
	Paths   int     `mapstructure:"paths"`
	Steps   int     `mapstructure:"steps"`
	Horizon float64 `mapstructure:"horizon"`
	// Seed of 0 means unseeded.
	Seed uint64 `mapstructure:"seed"`
}

// PricingConfig holds pricing defaults.
type PricingConfig struct {
	Strict bool `mapstructure:"strict"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/quantkit"
	}
	return filepath.Join(home, ".config", "quantkit")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{Paths: 100000, Steps: 10, Horizon: 1},
		Logging:    LoggingConfig{Level: "info", Console: true},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory. A missing
// config.toml is replaced by the commented template and defaults apply.
// QUANTKIT_* environment variables override file values, e.g.
// QUANTKIT_SIMULATION_PATHS.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := newViper()
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, qerrors.Wrap(err, "reading config.toml")
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, qerrors.Wrap(err, "writing config template")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, qerrors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, qerrors.Wrap(err, "validating config")
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	d := Default()
	v.SetDefault("simulation.paths", d.Simulation.Paths)
	v.SetDefault("simulation.steps", d.Simulation.Steps)
	v.SetDefault("simulation.horizon", d.Simulation.Horizon)
	v.SetDefault("simulation.seed", d.Simulation.Seed)
	v.SetDefault("pricing.strict", d.Pricing.Strict)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.console", d.Logging.Console)
	v.SetDefault("logging.file", d.Logging.File)

	v.SetEnvPrefix("QUANTKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Simulation.Paths < 1 {
		return qerrors.NewConfigError("simulation.paths", "must be positive")
	}
	if c.Simulation.Steps < 1 {
		return qerrors.NewConfigError("simulation.steps", "must be positive")
	}
	if c.Simulation.Horizon <= 0 {
		return qerrors.NewConfigError("simulation.horizon", "must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return qerrors.NewConfigError("logging.level", "must be one of debug, info, warn, error")
	}
	return nil
}

// SeedPtr returns the configured seed, or nil when unseeded.
func (s SimulationConfig) SeedPtr() *uint64 {
	if s.Seed == 0 {
		return nil
	}
	seed := s.Seed
	return &seed
}
