// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates reviews and comments.
type Service struct {
	reviews  ReviewRepository
	comments CommentRepository
}

// NewService constructs a new [Service].
func NewService(reviews ReviewRepository, comments CommentRepository) *Service {
	return &Service{reviews: reviews, comments: comments}
}

// requireTitle resolves the parent title of the path.
func (service *Service) requireTitle(context context.Context, titleID string) error {
	if !uuid.Valid(titleID) {
		return apperr.NotFound("Title")
	}

	exists, err := service.reviews.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// requireReview resolves a review scoped by its title.
func (service *Service) requireReview(context context.Context, titleID, reviewID string) (*Review, error) {
	if !uuid.Valid(titleID) || !uuid.Valid(reviewID) {
		return nil, apperr.NotFound("Review")
	}
	return service.reviews.FindByID(context, titleID, reviewID)
}
