// Package server runs the HTTP server and coordinates graceful shutdown on
// SIGINT/SIGTERM.
package server

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmrodas/parkings-api/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 10 * time.Second

// Server is anything that can serve until told to stop.
type Server interface {
	// Run blocks serving requests until a fatal error occurs.
	Run() error
	// Shutdown drains in-flight requests and stops the server.
	Shutdown(ctx context.Context) error
}

// RunServer runs srv until the process receives SIGINT or SIGTERM, then
// shuts it down gracefully.
func RunServer(ctx context.Context, srv Server, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")

	return nil
}
