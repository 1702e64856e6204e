package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/tariffpipe/ingest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP ingest service",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		svc, err := ingest.NewService(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return svc.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
