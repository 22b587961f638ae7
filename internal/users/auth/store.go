// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for the sign-in flow.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		UpsertPending atomically creates the account or, when the exact
		(username, email) pair already exists, rotates its code nonce.

		Parameters:
		  - context: context.Context
		  - candidate: *User (ID, Username, Email, Role and the new CodeNonce)

		Returns:
		  - *User: The stored row, carrying the new nonce
		  - error: apperr.Conflict naming "email" when the username belongs to
		    another email, or "username" when the email belongs to another username
	*/
	UpsertPending(context context.Context, candidate *User) (*User, error)

	/*
		ConsumeNonce replaces the nonce only if it still equals expected and
		stamps the confirmation time.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - expected: string (Nonce the verified code was bound to)
		  - replacement: string

		Returns:
		  - bool: false if another request consumed the nonce first
		  - error: Database failures
	*/
	ConsumeNonce(context context.Context, userID, expected, replacement string) (bool, error)
}

// # Volatile Data Access

// AttemptLimiter throttles confirmation-code delivery per username.
type AttemptLimiter interface {

	/*
		Hit records one signup attempt for username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: apperr.RateLimited once the window's budget is spent
	*/
	Hit(context context.Context, username string) error
}
