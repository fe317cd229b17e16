// Package cli provides the command-line interface for quantkit.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"quantkit/internal/config"
	"quantkit/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-19"
)

// App holds the application dependencies. They are populated by the root
// command's PersistentPreRunE once flags are parsed.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd() *cobra.Command {
	app := &App{
		Config: config.Default(),
		Logger: zerolog.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:   "quantkit",
		Short: "quantkit - closed-form option pricing and Monte Carlo toolkit",
		Long: `quantkit prices vanilla options under the Black-Scholes and Bachelier
models, simulates Brownian paths and estimates prices by Monte Carlo.

Numeric flags accept comma-separated lists that broadcast against each
other, e.g. --strike 90,100,110 prices three strikes in one call.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configDir)
			if err != nil {
				return err
			}
			app.Config = cfg

			logCfg := logging.DefaultLogConfig()
			logCfg.Level = cfg.Logging.Level
			logCfg.Console = cfg.Logging.Console
			logCfg.File = cfg.Logging.File
			logCfg.Out = cmd.ErrOrStderr()
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				logCfg.Level = "debug"
			}
			app.Logger = logging.NewLoggerWithConfig(logCfg)
			app.Logger.Debug().Str("config_dir", configDir).Msg("Configuration loaded")
			cmd.SetContext(logging.WithLogger(cmd.Context(), app.Logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/quantkit)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	addPricingCommands(rootCmd, app)
	addSimulationCommands(rootCmd, app)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("quantkit v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			cfg := app.Config
			output.Bold("Simulation")
			output.Printf("  Paths:    %d\n", cfg.Simulation.Paths)
			output.Printf("  Steps:    %d\n", cfg.Simulation.Steps)
			output.Printf("  Horizon:  %g\n", cfg.Simulation.Horizon)
			output.Printf("  Seed:     %d\n", cfg.Simulation.Seed)
			output.Bold("Pricing")
			output.Printf("  Strict:   %v\n", cfg.Pricing.Strict)
			output.Bold("Logging")
			output.Printf("  Level:    %s\n", cfg.Logging.Level)
			output.Printf("  File:     %v\n", cfg.Logging.File)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			dir, _ := cmd.Flags().GetString("config")
			if dir == "" {
				dir = config.DefaultConfigDir()
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": dir})
			}
			output.Println(dir)
			return nil
		},
	})

	return cmd
}
