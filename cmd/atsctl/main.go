// Package main implements atsctl, the operator CLI for the candidate
// pipeline: ingesting analysis results, driving pipeline statuses, and
// evaluating cross-job matches.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/talos/hvac-ats/internal/config"
	"github.com/talos/hvac-ats/internal/db"
	"github.com/talos/hvac-ats/internal/logger"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "atsctl",
	Short: "Candidate pipeline management CLI",
	Long:  "atsctl manages the HVAC hiring pipeline: candidate intake, tier scoring, status transitions, contact tracking, and cross-job match evaluation.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtime bundles the dependencies every database-backed command needs.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	store *db.DB
}

// newRuntime loads config, builds the logger, and connects to the store.
// Callers must Close the returned runtime.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.InitSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return &runtime{cfg: cfg, log: log, store: store}, nil
}

func (r *runtime) Close() {
	r.store.Close()
	_ = r.log.Sync()
}
