package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stft/internal/config"
	"github.com/cwbudde/algo-stft/internal/server"
)

func newServeCmd(a *app, defaults config.ServerConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve live STFT analysis over a websocket",
		Long: `serve accepts websocket connections on /ws/stft. Clients send binary
messages of little-endian float32 samples and receive one binary message
per column. Query parameters window, size, step, reduction, backend and
alpha override the analysis defaults per connection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, a.cfg)
		},
	}

	cmd.Flags().String("addr", defaults.Addr, "listen address")
	cmd.Flags().StringSlice("origin", defaults.AllowedOrigins, "allowed websocket origins (empty allows all)")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	srv := server.New(cfg.Server, cfg.Analysis, log.Logger)

	return srv.ListenAndServe(ctx)
}
