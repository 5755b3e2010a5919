package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pizzahub/internal/config"
	"pizzahub/internal/logger"
	"pizzahub/internal/server"
	"pizzahub/internal/service"
	"pizzahub/internal/store"
	"pizzahub/internal/telemetry"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().Int("port", 3000, "server port (env PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	z, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.Wrap(z)
	defer log.Sync()

	shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.Config{
		ServiceName: "pizzahub",
		Endpoint:    cfg.OTLPEndpoint,
		Probability: 1.0,
	})
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	doc, err := server.LoadDocument(ctx)
	if err != nil {
		return err
	}
	svc := service.New(store.New(backend, log), store.UUIDs{}, server.Requirements(doc))
	srv, err := server.New(svc, doc, log)
	if err != nil {
		return err
	}

	log.Info(logger.ComponentHTTPServer, "Starting pizzahub",
		append(backendFields(cfg, backend), zap.Int("port", cfg.Port))...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}
