package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"postboard/app/config"
	"postboard/app/middleware"
	"postboard/app/repositories"
	"postboard/app/routes"
)

// RunAppServer serves the API until SIGINT or SIGTERM.
func RunAppServer(cfg *config.Config) int {
	log, err := newLogger(cfg)
	if err != nil {
		printf("Failed to create logger: %v\n", err)
		return 1
	}

	store, err := openStore(cfg, log)
	if err != nil {
		log.Error("failed to open store", "storage", cfg.Storage, "error", err)
		return 1
	}
	defer store.Close()

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		log.Error("failed to listen", "addr", cfg.Addr(), "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log, store, ln); err != nil {
		log.Error("server error", "error", err)
		return 1
	}
	return 0
}

// serve runs the HTTP server on ln and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, store repositories.Store, ln net.Listener) error {
	var metrics *middleware.Metrics
	if cfg.MetricsEnabled {
		metrics = middleware.NewMetrics()
	}

	srv := &http.Server{
		Handler:           routes.SetupRoutes(store, log, metrics),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", ln.Addr().String(), "storage", cfg.Storage, "env", cfg.Env)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}
