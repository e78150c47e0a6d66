package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipemanager/backend/internal/database"
	"github.com/pageza/recipemanager/backend/internal/server"
)

// NewMigrateCommand creates the migrate command
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the recipe tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.Config()
			if cfg.DBDriver == server.DriverMemory {
				return errors.New("migrate needs a postgres or sqlite database")
			}

			db, err := database.Open(database.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.DBDriver)
			return nil
		},
	}
}
