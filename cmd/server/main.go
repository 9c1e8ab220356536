package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vgsales/internal/api"
	"vgsales/internal/config"
	"vgsales/internal/dashboard"
	"vgsales/internal/engine"
	"vgsales/internal/logger"
	"vgsales/internal/regions"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vgsales: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	})
	slog.SetDefault(log)
	appLog := logger.WithComponent(log, logger.ComponentApp)

	table := regions.Default()
	if cfg.Data.RegionsFile != "" {
		if table, err = regions.LoadFile(cfg.Data.RegionsFile); err != nil {
			return fmt.Errorf("region table: %w", err)
		}
	}

	// The dataset is loaded before listening; a server without data is useless.
	data, err := engine.LoadCSV(cfg.Data.Path,
		engine.WithLogger(logger.WithComponent(log, logger.ComponentLoader)))
	if err != nil {
		return err
	}

	svc := dashboard.NewService(data, table, logger.WithComponent(log, logger.ComponentDashboard))
	e := api.NewServer(svc, logger.WithComponent(log, logger.ComponentHTTP), api.Options{
		RateLimit: cfg.Server.RateLimit,
		Debug:     cfg.App.Environment == "development" && cfg.Logger.Level == "debug",
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server listening", "addr", cfg.Addr(), "records", data.Len())
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	appLog.Info("server stopped")
	return nil
}
