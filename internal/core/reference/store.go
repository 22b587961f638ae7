// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract for one taxonomy.
type Repository interface {

	/*
		List retrieves a page of taxa ordered by name.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int (Pagination bounds)

		Returns:
		  - []*Taxon: Page of results
		  - int: Total matching count for pagination metadata
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Taxon, int, error)

	// Create persists a new taxon. A taken slug yields a conflict on "slug".
	Create(context context.Context, taxon *Taxon) error

	// DeleteBySlug removes a taxon. Titles referencing it are detached, not deleted.
	DeleteBySlug(context context.Context, slug string) error
}
