// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/al3eon/api-yamdb/internal/platform/middleware"
	requestutil "github.com/al3eon/api-yamdb/internal/platform/request"
	"github.com/al3eon/api-yamdb/internal/platform/respond"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/pkg/pagination"
	"github.com/al3eon/api-yamdb/pkg/query"
)

// Handler implements the HTTP layer for titles.
type Handler struct {
	service *Service
}

// NewHandler constructs a title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the title collection.
//
// # Endpoints
//   - GET    /           : List with filters, public
//   - GET    /{titleID}  : Retrieve, public
//   - POST   /           : Create, admin
//   - PATCH  /{titleID}  : Update, admin
//   - DELETE /{titleID}  : Delete, admin
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Gate(sec.ResourceTitle))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{titleID}", handler.get)
	router.Patch("/{titleID}", handler.update)
	router.Delete("/{titleID}", handler.delete)

	return router
}

/*
GET /api/v1/titles.

Request:
  - genre: string (Genre slug)
  - category: string (Category slug)
  - name: string (Name substring)
  - year: int
  - page, limit: int

Response:
  - 200: []Title with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	page := pagination.FromRequest(request)

	filter := Filter{
		Genre:    values.Get("genre"),
		Category: values.Get("category"),
		Name:     values.Get("name"),
	}
	if year, ok := query.Int(values.Get("year")); ok {
		filter.Year = &year
	}

	titles, total, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	title, err := handler.service.Get(request.Context(), requestutil.Param(request, "titleID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
POST /api/v1/titles.

Request:
  - body: CreateInput

Response:
  - 201: Title
  - 400: Validation failure, unknown category or genre
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Update(request.Context(), requestutil.Param(request, "titleID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "titleID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
