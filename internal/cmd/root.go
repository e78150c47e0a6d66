// Package cmd holds the recipemanager command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pageza/recipemanager/backend/config"
	"github.com/pageza/recipemanager/backend/internal/log"
)

// RootOptions holds state shared by every subcommand
type RootOptions struct {
	LogLevel string

	// LoadConfig can be overridden in tests
	LoadConfig func() (*config.Config, error)

	cfg *config.Config
}

// Config is the configuration loaded before the subcommand ran
func (o *RootOptions) Config() *config.Config {
	return o.cfg
}

// NewRootCommand creates the recipemanager root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{LoadConfig: config.LoadConfig})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "recipemanager",
		Short:         "Recipe store with filtered search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			if opts.LogLevel != "" {
				cfg.LogLevel = opts.LogLevel
			}
			if err := log.SetLevel(cfg.LogLevel); err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override LOG_LEVEL (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
