package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipemanager/backend/internal/log"
	"github.com/pageza/recipemanager/backend/internal/seed"
	"github.com/pageza/recipemanager/backend/internal/server"
)

// SeedOptions holds flags for the seed command
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert recipes from a YAML file",
		Long: `Insert recipes from a YAML file through the recipe service.

Recipes whose name already exists are skipped. Recipes that fail
validation are reported and the rest are still inserted.

Example:
  recipemanager seed --file recipes.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "path to the seed file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	ctx := cmd.Context()

	recipes, err := seed.LoadFile(opts.File)
	if err != nil {
		return err
	}

	app, err := server.NewApp(ctx, opts.Config())
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error(ctx, "failed to close resources", "error", err)
		}
	}()

	report, err := seed.Apply(ctx, app.Recipes, recipes)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "inserted %d, skipped %d, rejected %d\n", report.Inserted, len(report.Skipped), len(report.Rejected))
	for _, name := range report.Skipped {
		fmt.Fprintf(out, "  skipped %q: name already exists\n", name)
	}
	for _, r := range report.Rejected {
		fmt.Fprintf(out, "  rejected %q: %s\n", r.Name, r.Reason)
	}
	return err
}
