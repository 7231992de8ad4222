package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/boardsearch/internal/fixture"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load a YAML fixture into the database",
		Long: `Loads workspaces, members, boards, cards and their children from a YAML
fixture in one transaction. Relative due dates are resolved against the current time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fixture.Load(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Seed(cmd.Context(), f, time.Now()); err != nil {
				return err
			}

			a.logger.Info("Fixture loaded",
				zap.String("fixture", args[0]),
				zap.Int("workspaces", len(f.Workspaces)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d workspaces into %s\n", len(f.Workspaces), a.cfg.Database.Path)
			return nil
		},
	}
}
