// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/platform/postgres/postgrestest"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/internal/users/auth"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Postgres Repository

/*
TestUserRepository_UpsertPending verifies that the single upsert statement
re-issues a nonce for a matching pair and reports which field collides
otherwise.
*/
func TestUserRepository_UpsertPending(t *testing.T) {
	pool := postgrestest.Open(t)
	repo := auth.NewUserRepository(pool)
	ctx := context.Background()

	candidate := func(username, email string) *auth.User {
		return &auth.User{ID: uuid.New(), Username: username, Email: email, Role: sec.RoleUser, CodeNonce: uuid.New()}
	}

	username := postgrestest.Unique("signup")
	email := username + "@yamdb.test"
	original, err := repo.UpsertPending(ctx, candidate(username, email))
	require.NoError(t, err)

	tests := []struct {
		name      string
		username  string
		email     string
		wantField string
	}{
		{name: "same pair reuses the row", username: username, email: email},
		{name: "taken username with another email", username: username, email: postgrestest.Unique("other") + "@yamdb.test", wantField: auth.FieldEmail},
		{name: "taken email with another username", username: postgrestest.Unique("other"), email: email, wantField: auth.FieldUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := candidate(tt.username, tt.email)
			stored, err := repo.UpsertPending(ctx, next)

			if tt.wantField != "" {
				assert.Nil(t, stored)
				assert.Equal(t, tt.wantField, conflictField(t, err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, original.ID, stored.ID)
			assert.Equal(t, next.CodeNonce, stored.CodeNonce)
		})
	}

	assert.Equal(t, 1, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM users.account WHERE username = $1`, username))
	assert.Equal(t, 1, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM users.account WHERE email = $1`, email))
}

/*
TestUserRepository_ConsumeNonce verifies that a nonce can be swapped only once
and that the swap confirms the account.
*/
func TestUserRepository_ConsumeNonce(t *testing.T) {
	pool := postgrestest.Open(t)
	repo := auth.NewUserRepository(pool)
	ctx := context.Background()

	username := postgrestest.Unique("confirm")
	user, err := repo.UpsertPending(ctx, &auth.User{
		ID: uuid.New(), Username: username, Email: username + "@yamdb.test", Role: sec.RoleUser, CodeNonce: "first",
	})
	require.NoError(t, err)
	require.Nil(t, user.ConfirmedAt)

	swapped, err := repo.ConsumeNonce(ctx, user.ID, "first", "second")
	require.NoError(t, err)
	assert.True(t, swapped)

	swapped, err = repo.ConsumeNonce(ctx, user.ID, "first", "third")
	require.NoError(t, err)
	assert.False(t, swapped)

	confirmed, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", confirmed.CodeNonce)
	assert.NotNil(t, confirmed.ConfirmedAt)
}
