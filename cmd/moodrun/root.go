// ABOUTME: Root Cobra command for the moodrun CLI.
// ABOUTME: Loads config and opens storage before each command, closes it after.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/moodrun/internal/config"
	"github.com/harperreed/moodrun/internal/logging"
	"github.com/harperreed/moodrun/internal/storage"
	"github.com/harperreed/moodrun/internal/tracker"
)

// skipStore marks commands that only need config, not storage.
const skipStore = "skip-store"

var (
	configPath  string
	backendFlag string
	dataDirFlag string

	cfg    *config.Config
	logger *zap.Logger
	repo   storage.Repository
	svc    *tracker.Service
)

var rootCmd = &cobra.Command{
	Use:   "moodrun",
	Short: "Personal run and mood tracker",
	Long: `moodrun tracks runs and how you feel.

WHAT IT TRACKS:

  Runs    name, date, distance, total time, and derived pace
  Moods   positivity, stress, energy, calmness, motivation (1-10 each)

QUICK START:

  $ moodrun run add 5 00:45:00 --name "Morning loop"   # pace 00:09:00
  $ moodrun mood add 7 3 6 8 5                         # log how you feel now
  $ moodrun recents                                    # latest run and mood
  $ moodrun serve                                      # HTTP API on :5000

MCP INTEGRATION:

  Run 'moodrun mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "moodrun": { "command": "moodrun", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  SQLite at ~/.local/share/moodrun/moodrun.db by default. Use --backend badger
  for an embedded KV store, or --backend postgres with database_url set in
  ~/.config/moodrun/config.yaml (or MOODRUN_DATABASE_URL).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}
		if err := loadConfig(cmd); err != nil {
			return err
		}
		if _, ok := cmd.Annotations[skipStore]; ok {
			return nil
		}

		var err error
		repo, err = cfg.OpenStorage(commandContext(cmd), logger)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		svc = tracker.NewService(repo)
		return nil
	},
}

// closeStore releases storage and flushes the logger after every Execute,
// including runs whose RunE failed.
func closeStore() {
	if repo != nil {
		if err := repo.Close(); err != nil && logger != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
		repo, svc = nil, nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

// loadConfig reads .env, the config file, env overrides, and flags, in that order.
func loadConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	var err error
	cfg, err = config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backendFlag
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = dataDirFlag
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}

// commandContext returns the command's context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	cobra.OnFinalize(closeStore)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/moodrun/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: sqlite, badger, or postgres")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory for sqlite and badger")
}
