// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
)

var (
	anonymous  *sec.Principal
	plainUser  = &sec.Principal{UserID: "u-1", Username: "alice", Role: sec.RoleUser}
	otherUser  = &sec.Principal{UserID: "u-2", Username: "bob", Role: sec.RoleUser}
	moderator  = &sec.Principal{UserID: "u-3", Username: "mod", Role: sec.RoleModerator}
	admin      = &sec.Principal{UserID: "u-4", Username: "root", Role: sec.RoleAdmin}
	superOnly  = &sec.Principal{UserID: "u-5", Username: "su", Role: sec.RoleUser, IsSuperuser: true}
	allActions = []sec.Action{sec.ActionRead, sec.ActionCreate, sec.ActionUpdate, sec.ActionDelete}
)

/*
TestPrincipal_Capabilities verifies the capability predicates, including nil safety.
*/
func TestPrincipal_Capabilities(t *testing.T) {
	assert.False(t, anonymous.IsAuthenticated())
	assert.False(t, anonymous.IsAdmin())
	assert.False(t, anonymous.Owns("u-1"))

	assert.True(t, admin.IsAdmin())
	assert.True(t, superOnly.IsAdmin(), "superuser flag grants admin capability")
	assert.False(t, moderator.IsAdmin())
	assert.True(t, moderator.IsModerator())

	assert.True(t, plainUser.Owns("u-1"))
	assert.False(t, plainUser.Owns(""))
}

/*
TestUserRole_IsValid verifies role parsing.
*/
func TestUserRole_IsValid(t *testing.T) {
	for _, role := range sec.RoleValues() {
		assert.True(t, sec.UserRole(role).IsValid(), role)
	}
	assert.False(t, sec.UserRole("owner").IsValid())
	assert.False(t, sec.UserRole("").IsValid())
}

/*
TestActionFromMethod verifies HTTP method classification.
*/
func TestActionFromMethod(t *testing.T) {
	assert.Equal(t, sec.ActionRead, sec.ActionFromMethod(http.MethodGet))
	assert.Equal(t, sec.ActionRead, sec.ActionFromMethod(http.MethodHead))
	assert.Equal(t, sec.ActionCreate, sec.ActionFromMethod(http.MethodPost))
	assert.Equal(t, sec.ActionUpdate, sec.ActionFromMethod(http.MethodPatch))
	assert.Equal(t, sec.ActionUpdate, sec.ActionFromMethod(http.MethodPut))
	assert.Equal(t, sec.ActionDelete, sec.ActionFromMethod(http.MethodDelete))
	assert.False(t, sec.ActionFromMethod("PROPFIND").IsSafe())
}

/*
TestAuthorize_Catalogue verifies that reads are public and writes are admin-only.
*/
func TestAuthorize_Catalogue(t *testing.T) {
	for _, resource := range []sec.Resource{sec.ResourceCategory, sec.ResourceGenre, sec.ResourceTitle} {
		for _, subject := range []*sec.Principal{anonymous, plainUser, moderator, admin} {
			assert.True(t, sec.Authorize(sec.ActionRead, subject, resource).Allowed)
		}

		for _, action := range allActions[1:] {
			decision := sec.Authorize(action, anonymous, resource)
			assert.False(t, decision.Allowed)
			assert.Equal(t, sec.DenyUnauthenticated, decision.Reason)

			decision = sec.Authorize(action, plainUser, resource)
			assert.Equal(t, sec.DenyInsufficientRole, decision.Reason)

			decision = sec.Authorize(action, moderator, resource)
			assert.Equal(t, sec.DenyInsufficientRole, decision.Reason)

			assert.True(t, sec.Authorize(action, admin, resource).Allowed)
			assert.True(t, sec.Authorize(action, superOnly, resource).Allowed)
		}
	}
}

/*
TestAuthorize_Users verifies the admin-only users collection and the self resource.
*/
func TestAuthorize_Users(t *testing.T) {
	for _, action := range allActions {
		assert.Equal(t, sec.DenyUnauthenticated, sec.Authorize(action, anonymous, sec.ResourceUser).Reason)
		assert.Equal(t, sec.DenyInsufficientRole, sec.Authorize(action, moderator, sec.ResourceUser).Reason)
		assert.True(t, sec.Authorize(action, admin, sec.ResourceUser).Allowed)
	}

	assert.Equal(t, sec.DenyUnauthenticated, sec.Authorize(sec.ActionRead, anonymous, sec.ResourceSelf).Reason)
	assert.True(t, sec.Authorize(sec.ActionRead, plainUser, sec.ResourceSelf).Allowed)
	assert.True(t, sec.Authorize(sec.ActionUpdate, plainUser, sec.ResourceSelf).Allowed)
	assert.False(t, sec.Authorize(sec.ActionDelete, plainUser, sec.ResourceSelf).Allowed)
}

/*
TestAuthorizeObject_Content verifies the author/moderator/admin matrix for reviews and comments.
*/
func TestAuthorizeObject_Content(t *testing.T) {
	authorID := plainUser.UserID

	tests := []struct {
		name    string
		subject *sec.Principal
		action  sec.Action
		allowed bool
		reason  sec.DenyReason
	}{
		{"anonymous read", anonymous, sec.ActionRead, true, ""},
		{"anonymous update", anonymous, sec.ActionUpdate, false, sec.DenyUnauthenticated},
		{"author update", plainUser, sec.ActionUpdate, true, ""},
		{"author delete", plainUser, sec.ActionDelete, true, ""},
		{"other user update", otherUser, sec.ActionUpdate, false, sec.DenyNotOwner},
		{"other user delete", otherUser, sec.ActionDelete, false, sec.DenyNotOwner},
		{"moderator update", moderator, sec.ActionUpdate, true, ""},
		{"moderator delete", moderator, sec.ActionDelete, true, ""},
		{"admin delete", admin, sec.ActionDelete, true, ""},
		{"superuser delete", superOnly, sec.ActionDelete, true, ""},
	}

	for _, resource := range []sec.Resource{sec.ResourceReview, sec.ResourceComment} {
		for _, tt := range tests {
			t.Run(string(resource)+"/"+tt.name, func(t *testing.T) {
				decision := sec.AuthorizeObject(tt.action, tt.subject, resource, authorID)
				assert.Equal(t, tt.allowed, decision.Allowed)
				assert.Equal(t, tt.reason, decision.Reason)
			})
		}
	}
}

/*
TestDecision_Err verifies the mapping of deny reasons onto client errors.
*/
func TestDecision_Err(t *testing.T) {
	assert.NoError(t, sec.Decision{Allowed: true}.Err())

	err := sec.Decision{Reason: sec.DenyUnauthenticated}.Err()
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	err = sec.Decision{Reason: sec.DenyInsufficientRole}.Err()
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	err = sec.Decision{Reason: sec.DenyNotOwner}.Err()
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}
