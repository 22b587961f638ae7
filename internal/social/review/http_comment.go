// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	requestutil "github.com/al3eon/api-yamdb/internal/platform/request"
	"github.com/al3eon/api-yamdb/internal/platform/respond"
	"github.com/al3eon/api-yamdb/pkg/pagination"
)

// # Comment Endpoints

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments.

Response:
  - 200: []Comment with pagination meta
  - 404: Review not found under this title
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(),
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		page,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.service.GetComment(request.Context(),
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		requestutil.Param(request, "commentID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments.

Request:
  - body: CommentInput

Response:
  - 201: Comment
  - 401: Authentication required
  - 404: Review not found under this title
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), principal,
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		input,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), principal,
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		requestutil.Param(request, "commentID"),
		input,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.DeleteComment(request.Context(), principal,
		requestutil.Param(request, "titleID"),
		requestutil.Param(request, "reviewID"),
		requestutil.Param(request, "commentID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
