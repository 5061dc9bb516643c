// Package main is the entry point for pokebattle.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samdwyer/pokebattle/internal/config"
	"github.com/samdwyer/pokebattle/internal/logging"
	"github.com/samdwyer/pokebattle/internal/telemetry"
)

var (
	configPath string
	cfg        config.Config
	logger     = zap.NewNop()
	shutdown   = telemetry.Disabled()
)

// rootCmd runs an interactive battle when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "pokebattle",
	Short: "Turn-based Pokémon battles in the terminal",
	Long: `pokebattle pits a Pokémon against a computer-controlled opponent.

Run without a subcommand to play, or use simulate, history and chart.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, &loaded); err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		if cfg.Telemetry {
			setupOTelEnv()
			shutdown, err = telemetry.Setup(cmd.Context())
			if err != nil {
				log.Printf("Warning: telemetry setup failed: %v", err)
				shutdown = telemetry.Disabled()
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
		_ = logger.Sync()
		return nil
	},
	RunE: runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "pokebattle.toml", "Path to TOML config file")
	flags.Int64("seed", 0, "Random seed (0 for a random seed)")
	flags.Int("level", 0, "Level both combatants battle at")
	flags.Duration("delay", 0, "Pause before the opponent moves")
	flags.String("db", "", "Battle history database path")
	flags.String("log-file", "", "Log file path")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Bool("telemetry", false, "Export traces over OTLP")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(chartCmd)
}

// applyFlags overrides c with the persistent flags the user actually set.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("seed") {
		if c.Seed, err = flags.GetInt64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("level") {
		if c.Level, err = flags.GetInt("level"); err != nil {
			return err
		}
	}
	if flags.Changed("delay") {
		if c.OpponentDelay.Duration, err = flags.GetDuration("delay"); err != nil {
			return err
		}
	}
	if flags.Changed("db") {
		if c.DatabasePath, err = flags.GetString("db"); err != nil {
			return err
		}
	}
	if flags.Changed("log-file") {
		if c.LogPath, err = flags.GetString("log-file"); err != nil {
			return err
		}
	}
	if flags.Changed("log-level") {
		if c.LogLevel, err = flags.GetString("log-level"); err != nil {
			return err
		}
	}
	if flags.Changed("telemetry") {
		if c.Telemetry, err = flags.GetBool("telemetry"); err != nil {
			return err
		}
	}
	return c.Validate()
}

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_POKEBATTLE_API_KEY available
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may have an unexpanded variable reference that doesn't
	// work, so we construct the headers here
	apiKey := os.Getenv("HONEYCOMB_POKEBATTLE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_POKEBATTLE_DATASET")
	if dataset == "" {
		dataset = "pokebattle"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
