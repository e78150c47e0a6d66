package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pageza/recipemanager/backend/internal/log"
	"github.com/pageza/recipemanager/backend/internal/server"
)

// NewServeCommand creates the serve command
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *RootOptions) error {
	cfg := opts.Config()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error(context.Background(), "failed to close resources", "error", err)
		}
	}()

	if err := server.New(cfg, app.Deps()).Start(ctx); err != nil {
		return err
	}
	log.Info(context.Background(), "server stopped")
	return nil
}
