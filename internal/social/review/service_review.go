// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/al3eon/api-yamdb/internal/platform/ctxutil"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
	"github.com/al3eon/api-yamdb/pkg/pagination"
	"github.com/al3eon/api-yamdb/pkg/pointer"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// CreateReviewInput is the payload for a new review.
type CreateReviewInput struct {
	Text  string `json:"text" validate:"required"`
	Score *int   `json:"score" validate:"required,gte=1,lte=10"`
}

// UpdateReviewInput is a partial change to a review.
type UpdateReviewInput struct {
	Text  *string `json:"text" validate:"omitnil,min=1"`
	Score *int    `json:"score" validate:"omitnil,gte=1,lte=10"`
}

/*
ListReviews returns a page of a title's reviews, newest first.

Parameters:
  - context: context.Context
  - titleID: string
  - page: pagination.Params

Returns:
  - []*Review: The page
  - int: Total reviews of the title
  - error: apperr.NotFound when the title is absent
*/
func (service *Service) ListReviews(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.reviews.List(context, titleID, page.Limit, page.Offset())
}

// GetReview returns one review of a title.
func (service *Service) GetReview(context context.Context, titleID, reviewID string) (*Review, error) {
	return service.requireReview(context, titleID, reviewID)
}

/*
CreateReview records the caller's review of a title.

Description: The title is resolved first (404). A prior review by the same
author is reported as a conflict; a concurrent duplicate that slips past the
pre-check is rejected by the store with the same conflict.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (Becomes the author)
  - titleID: string
  - input: CreateReviewInput

Returns:
  - *Review: The stored review
  - error: NotFound, Validation or Conflict
*/
func (service *Service) CreateReview(context context.Context, principal *sec.Principal, titleID string, input CreateReviewInput) (*Review, error) {
	if err := sec.Authorize(sec.ActionCreate, principal, sec.ResourceReview).Err(); err != nil {
		return nil, err
	}

	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).Struct(input).Err(); err != nil {
		return nil, err
	}

	taken, err := service.reviews.ExistsForAuthor(context, titleID, principal.UserID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrAlreadyReviewed
	}

	review := &Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: principal.UserID,
		Author:   principal.Username,
		Text:     input.Text,
		Score:    *input.Score,
	}

	if err := service.reviews.Create(context, review); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "review_created",
		slog.String("review_id", review.ID),
		slog.String("title_id", titleID),
		slog.Int("score", review.Score),
	)

	return review, nil
}

/*
UpdateReview changes the text or score of a review.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - titleID, reviewID: string
  - input: UpdateReviewInput

Returns:
  - *Review: The updated review
  - error: NotFound, Forbidden or Validation
*/
func (service *Service) UpdateReview(context context.Context, principal *sec.Principal, titleID, reviewID string, input UpdateReviewInput) (*Review, error) {
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := sec.AuthorizeObject(sec.ActionUpdate, principal, sec.ResourceReview, review.AuthorID).Err(); err != nil {
		return nil, err
	}

	if err := (&validate.Validator{}).Struct(input).Err(); err != nil {
		return nil, err
	}

	pointer.Apply(&review.Text, input.Text)
	pointer.Apply(&review.Score, input.Score)

	if err := service.reviews.Update(context, review); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "review_updated",
		slog.String("review_id", review.ID),
		slog.Bool("by_author", principal.Owns(review.AuthorID)),
	)

	return review, nil
}

// DeleteReview removes a review and its comments.
func (service *Service) DeleteReview(context context.Context, principal *sec.Principal, titleID, reviewID string) error {
	review, err := service.requireReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := sec.AuthorizeObject(sec.ActionDelete, principal, sec.ResourceReview, review.AuthorID).Err(); err != nil {
		return err
	}

	if err := service.reviews.Delete(context, review.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "review_deleted",
		slog.String("review_id", review.ID),
		slog.Bool("by_author", principal.Owns(review.AuthorID)),
	)
	return nil
}
