// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command loaddata imports the CSV fixtures and bootstraps a superuser.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run ./cmd/loaddata -dir ./static/data
//	DATABASE_URL=postgres://... go run ./cmd/loaddata -superuser admin:admin@example.com
//
// Every insert is ON CONFLICT DO NOTHING and fixture IDs are derived
// deterministically, so running the import twice changes nothing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/al3eon/api-yamdb/internal/platform/migration"
	pgstore "github.com/al3eon/api-yamdb/internal/platform/postgres"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
	"github.com/al3eon/api-yamdb/internal/users/auth"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// settings is the subset of the server configuration the loader needs.
type settings struct {
	DatabaseURL   string `env:"DATABASE_URL,required"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`
}

var (
	dataDir   = flag.String("dir", "static/data", "Directory holding the CSV fixtures")
	superuser = flag.String("superuser", "", "Create or elevate a superuser, given as name:email")
	migrate   = flag.Bool("migrate", true, "Apply pending migrations before loading")
)

func main() {
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "yamdb-loaddata"))
	slog.SetDefault(log)

	cfg := settings{}
	if err := env.Parse(&cfg); err != nil {
		fail(log, err, "load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		fail(log, err, "connect to postgres")
	}
	defer pool.Close()

	if *migrate {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			fail(log, err, "run migrations")
		}
	}

	if *superuser != "" {
		username, email, err := parseSuperuser(*superuser)
		if err != nil {
			fail(log, err, "parse -superuser")
		}
		if err := ensureSuperuser(ctx, pool, username, email); err != nil {
			fail(log, err, "bootstrap superuser")
		}
		log.Info("superuser_ready", slog.String("username", username))
		return
	}

	for _, item := range fixtures {
		inserted, err := load(ctx, pool, *dataDir, item)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("fixture_missing", slog.String("file", item.file))
			continue
		}
		if err != nil {
			fail(log, err, "load "+item.file)
		}
		log.Info("fixture_loaded", slog.String("file", item.file), slog.Int64("inserted", inserted))
	}
}

// load inserts every row of one fixture file in a single transaction.
func load(ctx context.Context, pool *pgxpool.Pool, dir string, item fixture) (int64, error) {
	file, err := os.Open(filepath.Join(dir, item.file))
	if err != nil {
		return 0, err
	}
	defer file.Close()

	records, err := readRecords(file)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", item.file, err)
	}

	batch := &pgx.Batch{}
	for line, row := range records {
		args, err := item.bind(row)
		if err != nil {
			return 0, fmt.Errorf("%s row %d: %w", item.file, line+2, err)
		}
		batch.Queue(item.statement, args...)
	}

	var inserted int64
	err = pgstore.InTx(ctx, pool, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for line := range records {
			tag, err := results.Exec()
			if err != nil {
				return fmt.Errorf("%s row %d: %w", item.file, line+2, err)
			}
			inserted += tag.RowsAffected()
		}
		return results.Close()
	})

	return inserted, err
}

// parseSuperuser splits and validates a name:email pair.
func parseSuperuser(value string) (string, string, error) {
	username, email, found := strings.Cut(value, ":")
	if !found {
		return "", "", fmt.Errorf("expected name:email, got %q", value)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	err := (&validate.Validator{}).
		Username(auth.FieldUsername, username).
		Email(auth.FieldEmail, email).
		Err()

	return username, email, err
}

// ensureSuperuser inserts the account as an admin superuser, or elevates it
// when the username already exists.
func ensureSuperuser(ctx context.Context, pool *pgxpool.Pool, username, email string) error {
	const statement = `
		INSERT INTO users.account (id, username, email, role, issuperuser)
		VALUES ($1, $2, $3, 'admin', TRUE)
		ON CONFLICT (username) DO UPDATE
		SET role = 'admin', issuperuser = TRUE, updatedat = now()`

	_, err := pool.Exec(ctx, statement, uuid.New(), username, email)
	return err
}

func fail(log *slog.Logger, err error, step string) {
	log.Error("loaddata_failed", slog.String("step", step), slog.Any("error", err))
	os.Exit(1)
}
