package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"aromateca/internal/config"
	applog "aromateca/internal/log"
	"aromateca/internal/server"
	"aromateca/internal/store"
)

func main() {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "error", err)
		os.Exit(1)
	}
	if cfg.Logging.JSON {
		applog.ReplaceLogger(slog.New(applog.NewHandler(os.Stdout, true)))
	}

	catalogStore, err := store.Open(cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to open store", "error", err)
		os.Exit(1)
	}
	defer catalogStore.Close()

	if err := catalogStore.SeedIfEmpty(ctx, cfg.Data.Dir); err != nil {
		applog.Error(ctx, "failed to seed catalog", "error", err)
		os.Exit(1)
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	if cfg.Data.Watch {
		go func() {
			if err := catalogStore.Watch(watchCtx, cfg.Data.Dir); err != nil && !errors.Is(err, context.Canceled) {
				applog.Error(watchCtx, "data watcher stopped", "error", err)
			}
		}()
	}

	srv, err := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Session: server.SessionConfig{
			Lifetime: cfg.Session.Lifetime,
		},
		Auth:  cfg.Auth,
		Store: catalogStore,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		os.Exit(1)
	}

	if cfg.DevMode() {
		applog.Warn(ctx, "no admin password hash configured, write endpoints are open")
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	applog.Info(ctx, "shutting down http server")
	cancelWatch()
	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
