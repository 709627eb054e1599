package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brickmind/brickmind/internal/brickapi"
	"github.com/brickmind/brickmind/internal/config"
	"github.com/brickmind/brickmind/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "brickmind",
	Short: "LEGO catalog assistant",
	Long: `An AI-powered LEGO catalog: aggregate set data from Brickset,
Rebrickable and BrickOwl, search it by keyword or meaning, and ask
collector questions answered by an LLM over your own catalog.`,
}

func getDBPath() string {
	path, _ := rootCmd.PersistentFlags().GetString("db")
	return path
}

func openStore() (*store.Store, error) {
	return store.NewStore(getDBPath())
}

// newLogger builds the process logger. Most commands run quiet; --verbose
// enables debug output on stderr.
func newLogger() *zap.Logger {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// loadConfig never fails the command: a missing or broken config file
// degrades to defaults.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil || cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// newAggregator wires the provider clients, or returns nil when no
// Brickset key is configured (offline mode).
func newAggregator(cfg *config.Config, logger *zap.Logger) *brickapi.Aggregator {
	keys := brickapi.KeysFromEnv()
	if keys.Brickset == "" {
		return nil
	}
	return brickapi.NewAggregator(cfg.Providers, keys, logger)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Catalog database path (default: BRICKMIND_DB or XDG cache)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
}
