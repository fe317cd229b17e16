package config

import (
	"os"
	"path/filepath"
	"testing"

	qerrors "quantkit/internal/errors"
)

func TestLoadCreatesTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template not written: %v", err)
	}
	if cfg.Simulation.Paths != 100000 || cfg.Simulation.Steps != 10 || cfg.Logging.Level != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	// the template parses to the same values
	again, err := Load(dir)
	if err != nil {
		t.Fatalf("reloading template: %v", err)
	}
	if *again != *cfg {
		t.Errorf("template config %+v differs from defaults %+v", again, cfg)
	}
}

func TestLoadReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
[simulation]
paths = 500
seed = 7

[pricing]
strict = true
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUANTKIT_SIMULATION_STEPS", "25")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.Paths != 500 {
		t.Errorf("paths = %d, want 500", cfg.Simulation.Paths)
	}
	if cfg.Simulation.Steps != 25 {
		t.Errorf("steps = %d, want 25 from env", cfg.Simulation.Steps)
	}
	if !cfg.Pricing.Strict {
		t.Error("strict not loaded")
	}
	if s := cfg.Simulation.SeedPtr(); s == nil || *s != 7 {
		t.Errorf("seed = %v, want 7", s)
	}
	if Default().Simulation.SeedPtr() != nil {
		t.Error("zero seed should be unseeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"paths", func(c *Config) { c.Simulation.Paths = 0 }, "simulation.paths"},
		{"steps", func(c *Config) { c.Simulation.Steps = -1 }, "simulation.steps"},
		{"horizon", func(c *Config) { c.Simulation.Horizon = 0 }, "simulation.horizon"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var ce *qerrors.ConfigError
			if !qerrors.As(err, &ce) || ce.Key != tt.key {
				t.Fatalf("Validate() = %v, want ConfigError for %s", err, tt.key)
			}
			if !qerrors.Is(err, qerrors.ErrConfigInvalid) {
				t.Error("expected ErrConfigInvalid in chain")
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[logging]\nlevel = \"loud\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); !qerrors.Is(err, qerrors.ErrConfigInvalid) {
		t.Errorf("Load() = %v, want ErrConfigInvalid", err)
	}
}
