// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/database/schema"
	"github.com/al3eon/api-yamdb/internal/platform/dberr"
)

// UserColumns is the select list matching [ScanUser].
const UserColumns = `id, username, email, firstname, lastname, bio, role, issuperuser, codenonce, confirmedat, createdat, updatedat`

// ScanUser hydrates a [User] from a row selected with [UserColumns].
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.CodeNonce,
		&user.ConfirmedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// IdentityConflict maps a unique violation on users.account onto the
// conflict reported to the client, or returns nil for any other error.
func IdentityConflict(err error) error {
	switch {
	case dberr.IsUniqueViolation(err, schema.UserAccount.UniqueUsername):
		return apperr.ConflictField(FieldUsername, "A user with this username already exists")
	case dberr.IsUniqueViolation(err, schema.UserAccount.UniqueEmail):
		return apperr.ConflictField(FieldEmail, "A user with this email already exists")
	}
	return nil
}

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `SELECT ` + UserColumns + ` FROM users.account WHERE id = $1`

	user, err := ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `SELECT ` + UserColumns + ` FROM users.account WHERE username = $1`

	user, err := ScanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
UpsertPending creates the account or rotates the nonce of the matching one.

Description: A single statement covers both cases, so two concurrent signups
for the same pair never produce two rows. The DO UPDATE branch only fires when
the stored email matches; otherwise no row is returned and the username is
known to belong to someone else. A brand-new username whose email is taken
fails on the email constraint instead.

Parameters:
  - context: context.Context
  - candidate: *User

Returns:
  - *User: The stored row
  - error: apperr.Conflict or database errors
*/
func (repository *PostgresUserRepository) UpsertPending(context context.Context, candidate *User) (*User, error) {
	const query = `
		INSERT INTO users.account (id, username, email, role, codenonce, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT ON CONSTRAINT account_username_key DO UPDATE
			SET codenonce = EXCLUDED.codenonce,
			    updatedat = EXCLUDED.updatedat
			WHERE users.account.email = EXCLUDED.email
		RETURNING ` + UserColumns

	now := time.Now()
	user, err := ScanUser(repository.pool.QueryRow(context, query,
		candidate.ID,
		candidate.Username,
		candidate.Email,
		candidate.Role,
		candidate.CodeNonce,
		now,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ConflictField(FieldEmail, "This username is registered with a different email")
		}
		if dberr.IsUniqueViolation(err, schema.UserAccount.UniqueEmail) {
			return nil, apperr.ConflictField(FieldUsername, "This email is registered with a different username")
		}
		return nil, fmt.Errorf("postgres_user_repo_upsert_pending_failed: %w", err)
	}

	return user, nil
}

/*
ConsumeNonce swaps the code nonce if it is unchanged and marks the account confirmed.

Parameters:
  - context: context.Context
  - userID: string
  - expected: string
  - replacement: string

Returns:
  - bool: Whether this call performed the swap
  - error: Database errors
*/
func (repository *PostgresUserRepository) ConsumeNonce(context context.Context, userID, expected, replacement string) (bool, error) {
	const query = `
		UPDATE users.account
		SET codenonce = $3,
		    confirmedat = COALESCE(confirmedat, now()),
		    updatedat = now()
		WHERE id = $1 AND codenonce = $2`

	tag, err := repository.pool.Exec(context, query, userID, expected, replacement)
	if err != nil {
		return false, fmt.Errorf("postgres_user_repo_consume_nonce_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
