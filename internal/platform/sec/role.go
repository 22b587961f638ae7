// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full catalogue and user management
	RoleAdmin UserRole = "admin"

	// Can edit and delete any review or comment
	RoleModerator UserRole = "moderator"

	// Default role for registered users
	RoleUser UserRole = "user"
)

// IsValid reports whether r is a recognised [UserRole] value.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// RoleValues returns the recognised roles as strings, lowest privilege first.
func RoleValues() []string {
	return []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
}

// # Principal

// Principal is the acting identity of a request.
//
// It is rebuilt from the account row on every authenticated request, so a role
// change is visible on the caller's very next request. A nil *Principal is the
// anonymous caller; every method is safe to call on nil.
type Principal struct {
	UserID      string
	Username    string
	Role        UserRole
	IsSuperuser bool
}

// IsAuthenticated reports whether the caller presented a valid identity.
func (p *Principal) IsAuthenticated() bool {
	return p != nil
}

// IsAdmin reports admin capability: the admin role or the superuser flag.
func (p *Principal) IsAdmin() bool {
	return p != nil && (p.Role == RoleAdmin || p.IsSuperuser)
}

// IsModerator reports moderator capability.
func (p *Principal) IsModerator() bool {
	return p != nil && p.Role == RoleModerator
}

// Owns reports whether the caller is the author identified by authorID.
func (p *Principal) Owns(authorID string) bool {
	return p != nil && authorID != "" && p.UserID == authorID
}
