// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user administration and self-service profiles.

Admins manage every account through /users; any identified caller reads and
edits their own profile through /users/me, where the role is read-only.

# Architecture

  - Entities: reuses [auth.User] from the auth package.
  - Repository: [AccountRepository], implemented on PostgreSQL.
  - Security: collection access is gated by the router; the service trusts it.
*/
package account

import (
	"context"

	"github.com/al3eon/api-yamdb/internal/users/auth"
)

// # Query Types

// Filter narrows the user listing.
type Filter struct {
	// Search matches a case-insensitive substring of the username.
	Search string
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		List returns a page of accounts ordered by username, and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*auth.User: The requested page
		  - int: Total rows matching filter
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: apperr.Conflict naming the duplicate field, or storage failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update modifies the mutable fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: apperr.Conflict naming the duplicate field, or storage failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete removes the account and, by cascade, its reviews and comments.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id string) error
}
