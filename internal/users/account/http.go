// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/al3eon/api-yamdb/internal/platform/middleware"
	requestutil "github.com/al3eon/api-yamdb/internal/platform/request"
	"github.com/al3eon/api-yamdb/internal/platform/respond"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
//
// # Endpoints
//   - GET    /me          : Own profile (any identified caller)
//   - PATCH  /me          : Edit own profile, role excluded
//   - GET    /            : List accounts (admin)
//   - POST   /            : Create an account (admin)
//   - GET    /{username}  : Read an account (admin)
//   - PATCH  /{username}  : Edit an account, role included (admin)
//   - DELETE /{username}  : Delete an account (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self service
	router.Group(func(router chi.Router) {
		router.Use(middleware.Gate(sec.ResourceSelf))
		router.Get("/me", handler.getMe)
		router.Patch("/me", handler.updateMe)
	})

	// Administration
	router.Group(func(router chi.Router) {
		router.Use(middleware.Gate(sec.ResourceUser))
		router.Get("/", handler.list)
		router.Post("/", handler.create)
		router.Get("/{username}", handler.get)
		router.Patch("/{username}", handler.update)
		router.Delete("/{username}", handler.delete)
	})

	return router
}

// # Self Service

/*
GET /api/v1/users/me.

Response:
  - 200: User: The caller's profile
  - 401: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetSelf(request.Context(), principal)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Request:
  - body: UpdateInput (Partial JSON, role ignored)

Response:
  - 200: User: The updated profile
  - 400: Validation failure
  - 409: Username or email taken
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateSelf(request.Context(), principal, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Administration

/*
GET /api/v1/users.

Request:
  - search: string (Username substring)
  - page, limit: int

Response:
  - 200: []User with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	filter := Filter{Search: request.URL.Query().Get("search")}

	users, total, err := handler.accountService.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
POST /api/v1/users.

Request:
  - body: CreateInput

Response:
  - 201: User
  - 400: Validation failure
  - 409: Username or email taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.Get(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateByAdmin(request.Context(), requestutil.Param(request, "username"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.accountService.Delete(request.Context(), requestutil.Param(request, "username")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
