// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/al3eon/api-yamdb/internal/platform/middleware"
	requestutil "github.com/al3eon/api-yamdb/internal/platform/request"
	"github.com/al3eon/api-yamdb/internal/platform/respond"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for reviews and comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the review subtree to the root API router.
// Reviews live under /titles/{titleID}, comments under a review.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/titles/{titleID}/reviews", func(reviews chi.Router) {
		reviews.Group(func(router chi.Router) {
			router.Use(middleware.Gate(sec.ResourceReview))
			router.Get("/", handler.listReviews)
			router.Post("/", handler.createReview)
			router.Get("/{reviewID}", handler.getReview)
			router.Patch("/{reviewID}", handler.updateReview)
			router.Delete("/{reviewID}", handler.deleteReview)
		})

		reviews.Route("/{reviewID}/comments", func(router chi.Router) {
			router.Use(middleware.Gate(sec.ResourceComment))
			router.Get("/", handler.listComments)
			router.Post("/", handler.createComment)
			router.Get("/{commentID}", handler.getComment)
			router.Patch("/{commentID}", handler.updateComment)
			router.Delete("/{commentID}", handler.deleteComment)
		})
	})
}

// # Review Endpoints

/*
GET /api/v1/titles/{titleID}/reviews.

Response:
  - 200: []Review with pagination meta
  - 404: Title not found
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	reviews, total, err := handler.service.ListReviews(request.Context(), requestutil.Param(request, "titleID"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
POST /api/v1/titles/{titleID}/reviews.

Request:
  - body: CreateReviewInput

Response:
  - 201: Review
  - 400: Validation failure
  - 401: Authentication required
  - 404: Title not found
  - 409: The caller already reviewed this title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), principal, requestutil.Param(request, "titleID"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	review, err := handler.service.GetReview(request.Context(),
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{reviewID}.

Request:
  - body: UpdateReviewInput

Response:
  - 200: Review
  - 403: Neither author, moderator nor admin
  - 404: Review not found under this title
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateReviewInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), principal,
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		input,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.DeleteReview(request.Context(), principal,
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
