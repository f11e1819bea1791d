// ABOUTME: CLI command for starting the HTTP API.
// ABOUTME: Wires config, telemetry, and the gin server, then blocks until a signal.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/moodrun/internal/server"
	"github.com/harperreed/moodrun/internal/telemetry"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API.

ENDPOINTS:

  GET    /                 hello message
  GET    /health           store liveness
  GET    /api/recents      latest run and mood
  GET    /api/runs         list runs
  POST   /api/runs         add a run
  GET    /api/runs/:id     get a run
  DELETE /api/runs/:id     delete a run
  GET    /api/mood         list moods
  POST   /api/mood         add a mood
  GET    /api/mood/:id     get a mood
  DELETE /api/mood/:id     delete a mood

Set telemetry.endpoint (or OTEL_EXPORTER_OTLP_ENDPOINT) to export traces and
metrics over OTLP/HTTP.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		shutdown, err := telemetry.Init(ctx, telemetry.Config{
			Endpoint:    cfg.Telemetry.Endpoint,
			ServiceName: cfg.GetServiceName(),
			Version:     version,
			Insecure:    cfg.Telemetry.Insecure,
		})
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		srv := server.New(server.Config{
			Service:       svc,
			Logger:        logger,
			Addr:          addr,
			ReadTimeout:   cfg.Server.ReadTimeout,
			WriteTimeout:  cfg.Server.WriteTimeout,
			AllowedOrigin: cfg.Server.AllowedOrigin,
			Version:       version,
		})
		logger.Info("starting server",
			zap.String("addr", srv.Addr()),
			zap.String("backend", cfg.GetBackend()),
			zap.String("version", version),
		)

		serveErr := srv.ListenAndServe(ctx)

		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Join(serveErr, shutdown(flushCtx))
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", server.DefaultAddr, "listen address")
	rootCmd.AddCommand(serveCmd)
}
