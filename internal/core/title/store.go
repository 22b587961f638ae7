// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import "context"

// Repository defines the persistence contract for titles.
type Repository interface {

	/*
		List retrieves a page of titles with their rating, category and genres.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Title: Page of hydrated titles
		  - int: Total matching count
		  - error: Database failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	// FindByID retrieves one hydrated title, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Title, error)

	/*
		Create inserts a title and links its taxa in one transaction.

		Returns:
		  - error: Validation naming "category" or "genre" for an unknown slug
	*/
	Create(context context.Context, draft *Draft) error

	// Update overwrites the title row and re-links its taxa in one transaction.
	Update(context context.Context, draft *Draft) error

	// Delete removes the title; reviews and their comments cascade.
	Delete(context context.Context, id string) error
}
