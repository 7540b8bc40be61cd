package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/voley-club/internal/app"
	"github.com/riskibarqy/voley-club/internal/config"
	"github.com/riskibarqy/voley-club/internal/observability"
	"github.com/riskibarqy/voley-club/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("api exited", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "init uptrace")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "init pyroscope")
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	stopPprof, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "start pprof")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := stopPprof(shutdownCtx); err != nil {
			logger.Warn("pprof shutdown failed", "error", err)
		}
	}()

	srv, closeStore, err := app.NewHTTPServer(ctx, cfg, logger)
	if err != nil {
		return errors.Wrap(err, "build app")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("close store failed", "error", err)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return errors.Wrap(err, "http server failed")
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown")
	}

	logger.Info("http server stopped")
	return nil
}
