// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"net/http"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
)

// # Actions

// Action is the operation a caller attempts on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// IsSafe reports whether the action never mutates state.
func (a Action) IsSafe() bool {
	return a == ActionRead
}

// ActionFromMethod maps an HTTP method onto an [Action].
//
// Unknown methods map to [ActionUpdate] so that they are never treated as safe.
func ActionFromMethod(method string) Action {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	case http.MethodPost:
		return ActionCreate
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionUpdate
	}
}

// # Resources

// Resource names a protected collection.
type Resource string

const (
	ResourceCategory Resource = "category"
	ResourceGenre    Resource = "genre"
	ResourceTitle    Resource = "title"
	ResourceReview   Resource = "review"
	ResourceComment  Resource = "comment"
	ResourceUser     Resource = "user"

	// ResourceSelf is the caller's own account (/users/me).
	ResourceSelf Resource = "self"
)

// # Decisions

// DenyReason explains a negative [Decision].
type DenyReason string

const (
	DenyUnauthenticated  DenyReason = "unauthenticated"
	DenyInsufficientRole DenyReason = "insufficient_role"
	DenyNotOwner         DenyReason = "not_owner"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

var allow = Decision{Allowed: true}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Err converts the decision into the error reported to the client, or nil.
//
// An anonymous caller always receives UNAUTHORIZED; an identified caller
// receives FORBIDDEN regardless of whether the target object exists.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Reason == DenyUnauthenticated:
		return apperr.Unauthorized("Authentication required")
	case d.Reason == DenyNotOwner:
		return apperr.Forbidden("Only the author, a moderator or an admin may change this content")
	default:
		return apperr.Forbidden("Insufficient permissions")
	}
}

// # Gate

// Authorize is the collection-level gate.
//
// Reads are public for catalogue and user content. Catalogue writes need admin,
// review/comment writes need any identity (ownership is checked per object by
// [AuthorizeObject]). The users collection is admin-only for every action; the
// self resource needs only an identity and supports read and update.
func Authorize(action Action, subject *Principal, resource Resource) Decision {
	switch resource {
	case ResourceCategory, ResourceGenre, ResourceTitle:
		if action.IsSafe() {
			return allow
		}
		if !subject.IsAuthenticated() {
			return deny(DenyUnauthenticated)
		}
		if !subject.IsAdmin() {
			return deny(DenyInsufficientRole)
		}
		return allow

	case ResourceReview, ResourceComment:
		if action.IsSafe() {
			return allow
		}
		if !subject.IsAuthenticated() {
			return deny(DenyUnauthenticated)
		}
		return allow

	case ResourceUser:
		if !subject.IsAuthenticated() {
			return deny(DenyUnauthenticated)
		}
		if !subject.IsAdmin() {
			return deny(DenyInsufficientRole)
		}
		return allow

	case ResourceSelf:
		if !subject.IsAuthenticated() {
			return deny(DenyUnauthenticated)
		}
		if action != ActionRead && action != ActionUpdate {
			return deny(DenyInsufficientRole)
		}
		return allow
	}

	return deny(DenyInsufficientRole)
}

// AuthorizeObject is the object-level gate for authored content.
//
// A review or comment may be changed by its author, a moderator or an admin.
// For every other resource the collection-level decision stands.
func AuthorizeObject(action Action, subject *Principal, resource Resource, authorID string) Decision {
	collection := Authorize(action, subject, resource)
	if !collection.Allowed {
		return collection
	}

	switch resource {
	case ResourceReview, ResourceComment:
		if action.IsSafe() || subject.IsAdmin() || subject.IsModerator() || subject.Owns(authorID) {
			return allow
		}
		return deny(DenyNotOwner)
	}

	return collection
}
