package main

import (
	"github.com/deppfellow/job-board/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := bootstrap()
			if err != nil {
				return err
			}
			defer e.loggerService.Shutdown()

			if err := database.Migrate(cmd.Context(), &e.log, database.DSN(&e.cfg.Database)); err != nil {
				e.log.Error().Err(err).Msg("migration failed")
				return err
			}
			return nil
		},
	}
}
