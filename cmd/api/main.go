// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

// Command api is the entry point for the condominium administration API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Open the shared key-value store (memory or Redis).
//  5. Run database migrations (idempotent).
//  6. Build the security pipeline.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/condominio/condoadmin/internal/api"
	"github.com/condominio/condoadmin/internal/condo/areacomun"
	"github.com/condominio/condoadmin/internal/condo/blog"
	"github.com/condominio/condoadmin/internal/condo/calle"
	"github.com/condominio/condoadmin/internal/condo/casa"
	"github.com/condominio/condoadmin/internal/condo/dispositivo"
	"github.com/condominio/condoadmin/internal/condo/empleado"
	"github.com/condominio/condoadmin/internal/condo/engomado"
	"github.com/condominio/condoadmin/internal/condo/personacasa"
	"github.com/condominio/condoadmin/internal/condo/tag"
	"github.com/condominio/condoadmin/internal/platform/config"
	"github.com/condominio/condoadmin/internal/platform/constants"
	"github.com/condominio/condoadmin/internal/platform/kv"
	"github.com/condominio/condoadmin/internal/platform/metrics"
	"github.com/condominio/condoadmin/internal/platform/middleware"
	"github.com/condominio/condoadmin/internal/platform/migration"
	pgstore "github.com/condominio/condoadmin/internal/platform/postgres"
	"github.com/condominio/condoadmin/internal/platform/sec"
	"github.com/condominio/condoadmin/internal/security"
	"github.com/condominio/condoadmin/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.DefaultOptions(), log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Key-value store ────────────────────────────────────────────────
	store, closeStore := openStore(startupCtx, cfg, log)
	defer closeStore()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security ───────────────────────────────────────────────────────
	collector := metrics.New()

	pipeline, err := security.NewPipeline(cfg.Security(), store, log, collector, nil)
	must(log, err, "build security pipeline")

	tokens, err := sec.NewTokenIssuer(cfg.TokenSecret, constants.AuthIssuer)
	must(log, err, "initialize token issuer")

	crypto, err := sec.NewCryptoProvider(cfg.EncryptionKey)
	must(log, err, "initialize crypto provider")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers([]api.Check{
		{Name: "postgres", Ping: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: cfg.StoreDriver, Ping: store.Ping},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewUserRepository(pool), pipeline.Sessions(), tokens, pipeline.Settings().Token.TTL, pipeline.Limiter(), log, time.Now)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, pipeline.Guard, pipeline.CSRF(), pipeline.Settings().Session),
		Security:  security.NewHandler(pipeline),
		Condo:     condoHandlers(pool, pipeline, crypto, log),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	floodGuard := middleware.NewFloodGuard(constants.DefaultFloodGuardRPS, constants.DefaultFloodGuardBurst)

	runCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go floodGuard.Run(runCtx)

	server := api.NewServer(cfg, log, floodGuard, collector, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// condoHandlers builds one handler per administrative entity, keyed by route prefix.
func condoHandlers(pool *pgxpool.Pool, pipeline *security.Pipeline, crypto *sec.CryptoProvider, log *slog.Logger) map[string]api.RouteRegistrar {
	guard := pipeline.Guard

	return map[string]api.RouteRegistrar{
		"areas-comunes": areacomun.NewHandler(areacomun.NewService(areacomun.NewPostgresRepository(pool), pipeline, log), guard),
		"blog":          blog.NewHandler(blog.NewService(blog.NewPostgresRepository(pool), pipeline, log), guard),
		"calles":        calle.NewHandler(calle.NewService(calle.NewPostgresRepository(pool), pipeline, log), guard),
		"casas":         casa.NewHandler(casa.NewService(casa.NewPostgresRepository(pool), pipeline, log), guard),
		"dispositivos":  dispositivo.NewHandler(dispositivo.NewService(dispositivo.NewPostgresRepository(pool), pipeline, log), guard),
		"empleados":     empleado.NewHandler(empleado.NewService(empleado.NewPostgresRepository(pool), crypto, pipeline, log), guard),
		"engomados":     engomado.NewHandler(engomado.NewService(engomado.NewPostgresRepository(pool), pipeline, log), guard),
		"persona-casa":  personacasa.NewHandler(personacasa.NewService(personacasa.NewPostgresRepository(pool), pipeline, log), guard),
		"tags":          tag.NewHandler(tag.NewService(tag.NewPostgresRepository(pool), pipeline, log), guard),
	}
}

// openStore returns the configured key-value store and its release function.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (kv.Store, func()) {
	if cfg.StoreDriver != config.StoreRedis {
		store, err := kv.NewMemoryStore(constants.MemoryStoreCapacity)
		must(log, err, "create memory store")
		log.Warn("memory_store_in_use", slog.String("detail", "sessions and rate limits are not shared between instances"))
		return store, func() {}
	}

	client, err := kv.NewRedisClient(ctx, cfg.RedisURL, log)
	must(log, err, "connect to redis")

	return kv.NewRedisStore(client, log), func() {
		log.Info("closing_redis_client")
		if err := client.Close(); err != nil {
			log.Error("redis_close_error", slog.Any("error", err))
		}
	}
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
