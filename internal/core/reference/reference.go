// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the taxonomies titles are classified by.

Categories and genres share one shape, a name plus a unique slug, and differ
only in the table they live in. A single repository and service serve both,
parameterized by a [Kind].

# Core Responsibility

  - Identity: a taxon is addressed by its slug, never by its surrogate ID.
  - Lifecycle: create, list and delete only. Slugs are never renamed.
*/
package reference

import (
	"github.com/al3eon/api-yamdb/internal/platform/database/schema"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
)

// # Domain

// Taxon is the `{name, slug}` value shared by categories and genres.
type Taxon struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Kind binds a taxonomy to its storage table and protected resource.
type Kind struct {
	// Label names the taxonomy in errors and logs.
	Label    string
	Table    schema.TaxonTable
	Resource sec.Resource
}

var (
	// Category classifies titles by medium (book, film, music).
	Category = Kind{Label: "Category", Table: schema.CoreCategory, Resource: sec.ResourceCategory}
	// Genre classifies titles by style; a title may carry several.
	Genre = Kind{Label: "Genre", Table: schema.CoreGenre, Resource: sec.ResourceGenre}
)

// # Search Params

// Filter narrows a taxonomy listing.
type Filter struct {
	// Search matches a case-insensitive substring of the name.
	Search string
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)
