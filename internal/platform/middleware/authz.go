// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/constants"
	"github.com/al3eon/api-yamdb/internal/platform/ctxutil"
	"github.com/al3eon/api-yamdb/internal/platform/respond"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining TokenVerifier here decouples the middleware from the `sec`
// implementation, allowing tests to inject a stub.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// PrincipalResolver loads the current account state for a verified identity.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (*sec.Principal, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Load the account via [PrincipalResolver] so that role changes and
//     deletions take effect immediately.
//  5. Inject [*sec.Principal] into the request context for downstream use.
//
// # Parameters
//   - verifier: The TokenVerifier instance.
//   - resolver: The PrincipalResolver instance.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(verifier TokenVerifier, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, tokenStr, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || tokenStr == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Current Account State ──────────────────────────────────────
			principal, err := resolver.ResolvePrincipal(request.Context(), claims.UserID)
			if err != nil {
				if apperr.HasCode(err, apperr.CodeNotFound) {
					err = apperr.Unauthorized("Account no longer exists")
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			recordPrincipal(request.Context(), principal)
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Gate applies the collection-level authorization decision for resource.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. The action is derived
// from the HTTP method, so one Gate covers every route of a collection.
// Anonymous writes are rejected here, before any object lookup happens.
func Gate(resource sec.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			action := sec.ActionFromMethod(request.Method)
			decision := sec.Authorize(action, GetPrincipal(request.Context()), resource)

			if err := decision.Err(); err != nil {
				respond.Error(writer, request, err)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// GetPrincipal retrieves the [*sec.Principal] from the [context.Context].
//
// # Returns
//   - The acting principal if the user is authenticated.
//   - nil if the user is anonymous.
func GetPrincipal(ctx context.Context) *sec.Principal {
	return ctxutil.GetPrincipal(ctx)
}
