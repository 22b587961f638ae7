// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/ctxutil"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
	"github.com/al3eon/api-yamdb/pkg/pagination"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// CommentInput is the payload for creating or editing a comment.
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// ListComments returns a page of a review's comments, newest first.
func (service *Service) ListComments(context context.Context, titleID, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return nil, 0, err
	}
	return service.comments.List(context, review.ID, page.Limit, page.Offset())
}

// GetComment returns one comment, addressed through its title and review.
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !uuid.Valid(commentID) {
		return nil, apperr.NotFound("Comment")
	}
	return service.comments.FindByID(context, review.ID, commentID)
}

/*
CreateComment attaches the caller's comment to a review.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (Becomes the author)
  - titleID, reviewID: string (The review must belong to the title)
  - input: CommentInput

Returns:
  - *Comment: The stored comment
  - error: NotFound or Validation
*/
func (service *Service) CreateComment(context context.Context, principal *sec.Principal, titleID, reviewID string, input CommentInput) (*Comment, error) {
	if err := sec.Authorize(sec.ActionCreate, principal, sec.ResourceComment).Err(); err != nil {
		return nil, err
	}

	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).Struct(input).Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		ReviewID: review.ID,
		AuthorID: principal.UserID,
		Author:   principal.Username,
		Text:     input.Text,
	}

	if err := service.comments.Create(context, comment); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", review.ID),
	)

	return comment, nil
}

// UpdateComment replaces the text of a comment.
func (service *Service) UpdateComment(context context.Context, principal *sec.Principal, titleID, reviewID, commentID string, input CommentInput) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorizeObject(sec.ActionUpdate, principal, sec.ResourceComment, comment.AuthorID).Err(); err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).Struct(input).Err(); err != nil {
		return nil, err
	}

	comment.Text = input.Text
	if err := service.comments.Update(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment.
func (service *Service) DeleteComment(context context.Context, principal *sec.Principal, titleID, reviewID, commentID string) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := sec.AuthorizeObject(sec.ActionDelete, principal, sec.ResourceComment, comment.AuthorID).Err(); err != nil {
		return err
	}

	if err := service.comments.Delete(context, comment.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "comment_deleted", slog.String("comment_id", comment.ID))
	return nil
}
