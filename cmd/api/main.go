// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tankobon catalogue HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Load the catalogue snapshot (embedded, file or PostgreSQL).
//  4. Open the view-session store (memory or Redis).
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/tankobon/internal/api"
	"github.com/taibuivan/tankobon/internal/bootstrap"
	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/internal/platform/config"
	"github.com/taibuivan/tankobon/internal/platform/constants"
	pgstore "github.com/taibuivan/tankobon/internal/platform/postgres"
	redisstore "github.com/taibuivan/tankobon/internal/platform/redis"
	"github.com/taibuivan/tankobon/internal/premium"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
	slog.SetDefault(log)

	log.Info("[Tankobon] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("catalog_source", cfg.CatalogSource),
	)

	// Background work (session sweeper, rate limiter cleanup) stops with this context.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Startup deadline so misconfiguration is caught quickly rather than hanging.
	startupCtx, startupCancel := context.WithTimeout(appCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. Catalogue ──────────────────────────────────────────────────────
	opened, err := bootstrap.OpenCatalog(startupCtx, cfg, log)
	must(log, err, "load catalogue")
	defer func() {
		log.Info("closing catalogue resources")
		opened.Close()
	}()

	// ── 4. View Sessions ──────────────────────────────────────────────────
	sessions, err := bootstrap.OpenSessions(appCtx, startupCtx, cfg, log)
	must(log, err, "open view sessions")
	defer func() {
		if cerr := sessions.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Health handlers (wired with real dependency checkers) ──────────
	dependencies := api.HealthDependencies{
		CatalogTitles: opened.Store.Len,
	}
	if opened.Pool != nil {
		dependencies.CheckDatabase = func() error {
			return pgstore.Ping(context.Background(), opened.Pool)
		}
	}
	if sessions.Client != nil {
		dependencies.CheckCache = func() error {
			return redisstore.Ping(context.Background(), sessions.Client)
		}
	}
	liveness, readiness := api.NewHealthHandlers(dependencies, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	catalogService := catalog.NewService(opened.Store, sessions.Store, catalog.ServiceConfig{
		Locale:     cfg.CatalogLocale,
		PageSize:   cfg.CatalogPageSize,
		SessionTTL: cfg.SessionTTL,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(catalogService, nil),
		Premium:   premium.NewHandler(),
	}

	server := api.NewServer(appCtx, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
