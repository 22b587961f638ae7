// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/al3eon/api-yamdb/internal/platform/middleware"
	requestutil "github.com/al3eon/api-yamdb/internal/platform/request"
	"github.com/al3eon/api-yamdb/internal/platform/respond"
	"github.com/al3eon/api-yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for one taxonomy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the taxonomy endpoints.
//
// # Endpoints
//   - GET    /        : List, public
//   - POST   /        : Create, admin
//   - DELETE /{slug}  : Delete, admin
//
// A taxon has no single-item view, so GET /{slug} answers 405.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Gate(handler.service.Kind().Resource))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)

	return router
}

/*
GET /api/v1/{categories|genres}.

Request:
  - search: string (Name substring)
  - page, limit: int

Response:
  - 200: []Taxon with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	filter := Filter{Search: request.URL.Query().Get("search")}

	taxa, total, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, taxa, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
POST /api/v1/{categories|genres}.

Request:
  - body: CreateInput

Response:
  - 201: Taxon
  - 400: Validation failure
  - 409: Slug taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	taxon, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, taxon)
}

/*
DELETE /api/v1/{categories|genres}/{slug}.

Response:
  - 204: Deleted
  - 404: Unknown slug
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
