// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	// TitleExists reports whether the parent title is present.
	TitleExists(context context.Context, titleID string) (bool, error)

	/*
		List retrieves a page of a title's reviews, newest first.

		Parameters:
		  - context: context.Context
		  - titleID: string
		  - limit, offset: int

		Returns:
		  - []*Review: The page
		  - int: Total reviews of the title
		  - error: Database failures
	*/
	List(context context.Context, titleID string, limit, offset int) ([]*Review, int, error)

	// FindByID retrieves a review scoped by its title, or apperr.NotFound.
	FindByID(context context.Context, titleID, reviewID string) (*Review, error)

	// ExistsForAuthor reports whether authorID already reviewed titleID.
	ExistsForAuthor(context context.Context, titleID, authorID string) (bool, error)

	/*
		Create persists a review and stamps its PubDate.

		Returns:
		  - error: apperr.Conflict when (title, author) is already taken
	*/
	Create(context context.Context, review *Review) error

	// Update overwrites text and score.
	Update(context context.Context, review *Review) error

	// Delete removes the review; its comments cascade.
	Delete(context context.Context, reviewID string) error
}

// CommentRepository defines the persistence contract for comments.
type CommentRepository interface {
	// List retrieves a page of a review's comments, newest first.
	List(context context.Context, reviewID string, limit, offset int) ([]*Comment, int, error)

	// FindByID retrieves a comment scoped by its review, or apperr.NotFound.
	FindByID(context context.Context, reviewID, commentID string) (*Comment, error)

	// Create persists a comment and stamps its PubDate.
	Create(context context.Context, comment *Comment) error

	// Update overwrites the text.
	Update(context context.Context, comment *Comment) error

	// Delete removes the comment.
	Delete(context context.Context, commentID string) error
}
