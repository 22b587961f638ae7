// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity model and the confirmation-code
sign-in flow.

It defines the User entity and the passwordless lifecycle:

	Unregistered ──Signup──▶ PendingConfirmation ──Token──▶ Confirmed

Signup may be repeated for the same (username, email) pair; each repetition
issues a fresh code and voids the previous one.

# Architecture

Entities defined here have no storage dependencies. The account package reuses
[User] for profile and administration endpoints.
*/
package auth

import (
	"time"

	"github.com/al3eon/api-yamdb/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Yamdb platform.
type User struct {
	ID          string       `json:"-"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         string       `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"-"`

	// CodeNonce is the mutable state confirmation codes are bound to.
	// It is never serialized.
	CodeNonce   string     `json:"-"`
	ConfirmedAt *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// Principal returns the authorization identity of the user as stored now.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
	}
}

// CodeSubject returns the state a confirmation code for this user is bound to.
func (user *User) CodeSubject() sec.CodeSubject {
	return sec.CodeSubject{
		UserID: user.ID,
		Email:  user.Email,
		Nonce:  user.CodeNonce,
	}
}

// IsConfirmed reports whether the user ever exchanged a code for a token.
func (user *User) IsConfirmed() bool {
	return user.ConfirmedAt != nil
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldToken            = "token"
)
