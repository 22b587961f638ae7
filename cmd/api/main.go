// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yamdb HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Derive signing keys and wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/al3eon/api-yamdb/internal/api"
	"github.com/al3eon/api-yamdb/internal/core/reference"
	"github.com/al3eon/api-yamdb/internal/core/title"
	"github.com/al3eon/api-yamdb/internal/platform/config"
	"github.com/al3eon/api-yamdb/internal/platform/constants"
	"github.com/al3eon/api-yamdb/internal/platform/migration"
	"github.com/al3eon/api-yamdb/internal/platform/notify"
	pgstore "github.com/al3eon/api-yamdb/internal/platform/postgres"
	redisstore "github.com/al3eon/api-yamdb/internal/platform/redis"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/internal/social/review"
	"github.com/al3eon/api-yamdb/internal/users/account"
	"github.com/al3eon/api-yamdb/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("mail_backend", cfg.MailBackend),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Keys & Credentials ─────────────────────────────────────────────
	accessKey, err := sec.DeriveKey([]byte(cfg.SecretKey), constants.KeyLabelAccessToken)
	must(log, err, "derive access token key")

	codeKey, err := sec.DeriveKey([]byte(cfg.SecretKey), constants.KeyLabelConfirmationCode)
	must(log, err, "derive confirmation code key")

	tokens, err := sec.NewTokenService(accessKey, constants.AuthIssuer, cfg.AccessTokenTTL)
	must(log, err, "initialize jwt service")

	codes := sec.NewConfirmationCodes(codeKey, cfg.ConfirmationCodeTTL)

	sender, err := notify.New(cfg, log)
	must(log, err, "initialize mail sender")

	// ── 7. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	attemptLimiter := auth.NewAttemptLimiter(rdb, cfg.SignupAttemptsPerHour, auth.SignupAttemptWindow)
	authService := auth.NewService(userRepository, attemptLimiter, codes, tokens, sender)

	accountService := account.NewService(account.NewAccountRepository(pool), log)

	categoryService := reference.NewService(reference.NewPostgresRepository(pool, reference.Category), reference.Category)
	genreService := reference.NewService(reference.NewPostgresRepository(pool, reference.Genre), reference.Genre)

	titleService := title.NewService(title.NewPostgresRepository(pool), time.Now)

	reviewService := review.NewService(
		review.NewReviewRepository(pool),
		review.NewCommentRepository(pool),
	)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Category:  reference.NewHandler(categoryService),
		Genre:     reference.NewHandler(genreService),
		Title:     title.NewHandler(titleService),
		Review:    review.NewHandler(reviewService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server_listening", slog.String("addr", ":"+cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only for startup wiring. After startup, errors are returned and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
