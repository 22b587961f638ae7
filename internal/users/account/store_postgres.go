// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/database/schema"
	"github.com/al3eon/api-yamdb/internal/platform/dberr"
	"github.com/al3eon/api-yamdb/internal/platform/postgres"
	"github.com/al3eon/api-yamdb/internal/users/auth"
)

// # Repository Implementation

// PostgresAccountRepository implements [AccountRepository].
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
List returns a page of accounts and the total count.

Description: COUNT(*) OVER() carries the total on every row, so a page and
its count need one round trip.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching rows
  - error: Database errors
*/
func (repository *PostgresAccountRepository) List(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() FROM %s WHERE TRUE`,
		auth.UserColumns, schema.UserAccount.Table))

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND %s ILIKE $%d %s`, schema.UserAccount.Username, argID, postgres.LikeEscape))
		args = append(args, postgres.Contains(filter.Search))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, schema.UserAccount.Username, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list accounts: %w", err)
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	total := 0
	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
			&user.Bio, &user.Role, &user.IsSuperuser, &user.CodeNonce, &user.ConfirmedAt,
			&user.CreatedAt, &user.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan account: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate accounts: %w", err)
	}

	return users, total, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, auth.UserColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, auth.UserColumns, schema.UserAccount.Table, schema.UserAccount.Username)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
Create persists a new account created by an administrator.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.Conflict or database errors
*/
func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, firstname, lastname, bio, role, issuperuser, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.IsSuperuser,
		now,
	)

	if err != nil {
		if conflict := auth.IdentityConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("postgres_account_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to the mutable profile fields.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.NotFound, apperr.Conflict or database errors
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET username = $2, email = $3, firstname = $4, lastname = $5, bio = $6, role = $7, updatedat = $8
		WHERE id = $1`

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.UpdatedAt,
	)

	if err != nil {
		if conflict := auth.IdentityConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
Delete physically removes the account.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
