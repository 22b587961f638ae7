// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/postgres/postgrestest"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/internal/users/account"
	"github.com/al3eon/api-yamdb/internal/users/auth"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Postgres Repository

/*
TestAccountRepository_CreateConflicts verifies that each unique constraint
is reported against its own field.
*/
func TestAccountRepository_CreateConflicts(t *testing.T) {
	pool := postgrestest.Open(t)
	repo := account.NewAccountRepository(pool)
	ctx := context.Background()

	_, username := postgrestest.SeedUser(t, pool)
	email := username + "@yamdb.test"

	tests := []struct {
		name      string
		username  string
		email     string
		wantField string
	}{
		{name: "taken username", username: username, email: postgrestest.Unique("free") + "@yamdb.test", wantField: auth.FieldUsername},
		{name: "taken email", username: postgrestest.Unique("free"), email: email, wantField: auth.FieldEmail},
		{name: "both free", username: postgrestest.Unique("free"), email: postgrestest.Unique("free") + "@yamdb.test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, &auth.User{ID: uuid.New(), Username: tt.username, Email: tt.email, Role: sec.RoleModerator})

			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae, "expected AppError, got %v", err)
			assert.Equal(t, apperr.CodeConflict, ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
		})
	}
}

/*
TestAccountRepository_SearchIsLiteral verifies that an underscore in the
search term matches only an underscore.
*/
func TestAccountRepository_SearchIsLiteral(t *testing.T) {
	pool := postgrestest.Open(t)
	repo := account.NewAccountRepository(pool)
	ctx := context.Background()

	prefix := postgrestest.Unique("find")
	for _, username := range []string{prefix + "_x", prefix + "ax"} {
		require.NoError(t, repo.Create(ctx, &auth.User{ID: uuid.New(), Username: username, Email: username + "@yamdb.test", Role: sec.RoleUser}))
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "underscore", search: prefix + "_", want: []string{prefix + "_x"}},
		{name: "percent", search: prefix + "%", want: []string{}},
		{name: "prefix", search: prefix, want: []string{prefix + "_x", prefix + "ax"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, total, err := repo.List(ctx, account.Filter{Search: tt.search}, 10, 0)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), total)

			got := make([]string, 0, len(users))
			for _, user := range users {
				got = append(got, user.Username)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

/*
TestAccountRepository_DeleteCascadesReviews verifies that removing an account
removes the reviews it wrote.
*/
func TestAccountRepository_DeleteCascadesReviews(t *testing.T) {
	pool := postgrestest.Open(t)
	repo := account.NewAccountRepository(pool)
	ctx := context.Background()

	userID, _ := postgrestest.SeedUser(t, pool)
	titleID := postgrestest.SeedTitle(t, pool)
	_, err := pool.Exec(ctx, `INSERT INTO social.review (id, titleid, authorid, text, score) VALUES ($1, $2, $3, 'bye', 4)`,
		uuid.New(), titleID, userID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, userID))

	assert.Zero(t, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM social.review WHERE authorid = $1`, userID))
	assert.Equal(t, 1, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM core.title WHERE id = $1`, titleID))
}
