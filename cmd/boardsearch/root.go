package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/boardsearch/internal/config"
	"github.com/kailas-cloud/boardsearch/internal/db/sqlite"
	logpkg "github.com/kailas-cloud/boardsearch/internal/logger"
	"github.com/kailas-cloud/boardsearch/internal/version"
)

// app carries state shared by subcommands once PersistentPreRunE has run.
type app struct {
	env    string
	dbPath string
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "boardsearch",
		Short:        "Workspace-scoped search over boards, cards and their children",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "config environment (local, dev, prod)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database path, overrides database.path")

	root.AddCommand(
		newServeCmd(a),
		newSeedCmd(a),
		newSearchCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	a.cfg = cfg

	logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	return nil
}

// openStore opens the database, creates the schema and waits until it answers.
func (a *app) openStore(ctx context.Context) (*sqlite.Store, error) {
	store, err := sqlite.NewStore(sqlite.Config{
		Path:          a.cfg.Database.Path,
		BusyTimeoutMS: a.cfg.Database.BusyTimeoutMS,
	})
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}
	if err := store.Init(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(a.cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	a.logger.Debug("Connected to database", zap.String("path", a.cfg.Database.Path))
	return store, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "boardsearch %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
