package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# quantkit configuration

[simulation]
# Number of Monte Carlo paths
paths = 100000
# Number of time steps on the simulation grid
steps = 10
# Simulation horizon in years
horizon = 1.0
# Random seed; 0 draws a fresh seed on every run
seed = 0

[pricing]
# Reject out-of-domain inputs instead of propagating NaN
strict = false

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the terminal (stderr)
console = true
# Log to ~/.config/quantkit/logs/quantkit.log with rotation
file = false
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
