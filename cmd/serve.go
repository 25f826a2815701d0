package cmd

import (
	"os/signal"
	"syscall"

	"sjsage522/pricecompare/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve comparisons over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		services, err := initializeServices(ctx, cfg)
		if err != nil {
			return err
		}
		defer services.Cleanup()

		router := server.SetupRouter(cfg, server.NewHandler(services.Aggregator))
		return server.Run(ctx, cfg, router)
	},
}
