package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cfgpkg "github.com/KaramelBytes/playmetrics-cli/internal/config"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string
	verbose bool

	// Loaded configuration
	cfg *cfgpkg.Global

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "playmetrics",
	Short: "PlayMetrics CLI: player engagement KPIs and segment reports",
	Long: `PlayMetrics computes descriptive statistics from player engagement
datasets: headline KPIs (session duration, weekly sessions, purchases,
high-engagement retention) and segment tables grouped by genre, location
and engagement tier, rendered as text, JSON or YAML.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.playmetrics/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the loaded configuration, falling back to defaults
// when loading failed or never ran.
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		DataPath: "data/engagement_data.csv",
		TopRows:  5,
		Format:   "text",
	}
}
