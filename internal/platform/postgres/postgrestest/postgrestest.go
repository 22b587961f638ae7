// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgrestest opens a migrated PostgreSQL pool for repository tests.
//
// Tests using it are skipped unless TEST_DATABASE_URL names a disposable
// database. Rows are never truncated: every helper derives unique keys, so
// packages may run against the same database concurrently.
package postgrestest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/platform/migration"
	"github.com/al3eon/api-yamdb/internal/platform/postgres"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// EnvDSN names the variable holding the test database URL.
const EnvDSN = "TEST_DATABASE_URL"

// Open returns a pool on a fully migrated test database and closes it when
// the test ends.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, migrationsDir(t), logger))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// migrationsDir resolves the repository's migrations directory from this file.
func migrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "cannot locate postgrestest source")

	dir, err := filepath.Abs(filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations"))
	require.NoError(t, err)
	return dir
}

// Unique returns prefix followed by a random suffix short enough for slugs.
func Unique(prefix string) string {
	return prefix + uuid.New()[24:]
}

// SeedUser inserts a plain account and returns its ID and username.
func SeedUser(t *testing.T, pool *pgxpool.Pool) (string, string) {
	t.Helper()

	id, username := uuid.New(), Unique("user")
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users.account (id, username, email) VALUES ($1, $2, $3)`,
		id, username, username+"@yamdb.test")
	require.NoError(t, err)

	return id, username
}

// SeedTitle inserts a bare title and returns its ID.
func SeedTitle(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO core.title (id, name, year) VALUES ($1, $2, 2001)`,
		id, Unique("title"))
	require.NoError(t, err)

	return id
}

// Count runs a SELECT COUNT(*) statement and returns the result.
func Count(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, pool.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}
