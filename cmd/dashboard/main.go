package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/config"
	"github.com/ccms-app/dashboard/internal/infra"
	"github.com/ccms-app/dashboard/internal/logging"
	"github.com/ccms-app/dashboard/internal/routes"
	"github.com/ccms-app/dashboard/internal/server"
	"github.com/ccms-app/dashboard/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := run(cfg, logger, sigCh); err != nil {
		logger.Error("dashboard stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited cleanly")
}

// run serves until a signal arrives on stop or the listener fails. Backends
// are closed on every return path.
func run(cfg config.Config, logger *slog.Logger, stop <-chan os.Signal) error {
	ctx := context.Background()

	backends, err := infra.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open backends: %w", err)
	}
	defer backends.Close(logger)

	sessions, err := backends.Sessions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open session store %s: %w", cfg.SessionStore, err)
	}

	client := apiclient.New(apiclient.Options{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.APITimeout,
		Sessions: sessions,
		Logger:   logger,
	})
	authCtx := auth.NewContext(users.NewAPI(client), client, logger)
	authCtx.Init(ctx)

	srv, err := server.New(cfg, routes.Deps{
		DB:     backends.DB,
		Cache:  backends.Cache,
		Logger: logger,
		Client: client,
		Auth:   authCtx,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()
	logger.Info("dashboard started", "addr", cfg.Address(), "api", cfg.APIBaseURL, "session_store", cfg.SessionStore)

	select {
	case sig := <-stop:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
