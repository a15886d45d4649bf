// Package main provides the routeviz CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/routeviz/internal/config"
	"github.com/matsen/routeviz/internal/logging"
	"github.com/matsen/routeviz/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	logJSON     bool
	debugLog    bool
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "routeviz",
	Short: "Render and animate weighted city route graphs",
	Long: `routeviz draws a weighted graph of cities and routes, highlights paths
with a travelling vehicle or pedestrian icon, and writes PNG or SVG frames.

The route network lives in a SQLite store managed with 'routeviz routes'.
All commands output JSON by default; use --human for readable text.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRuntime,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs to stderr as JSON")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
	rootCmd.Version = Version
}

// initRuntime loads .env overrides and sets up logging before any command.
func initRuntime(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := mustLoadConfig()
	logging.Initialize(logJSON || cfg.LogJSON, debugLog)
	logging.Logger.Debugw("config loaded", "path", config.GlobalConfigPath(), "db", cfg.DBPath)
	return nil
}

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the route store, creating its directory if needed.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase() *storage.DB {
	cfg := mustLoadConfig()
	if err := ensureParentDir(cfg.DBPath); err != nil {
		exitWithError(ExitConfigError, "preparing database directory: %v", err)
	}
	db, err := storage.OpenDB(cfg.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}
