// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the reviewable works of the catalogue.

A title belongs to at most one category and any number of genres. Its rating
is never stored: every read derives it from the review scores in the same
statement that loads the title.
*/
package title

import (
	"github.com/al3eon/api-yamdb/internal/core/reference"
)

// # Domain Entities

// Title is a book, film or record that users review.
type Title struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description *string           `json:"description"`
	Genres      []reference.Taxon `json:"genre"`
	Category    *reference.Taxon  `json:"category"`

	// ScoreSum and ReviewCount are the aggregates Rating is derived from.
	ScoreSum    int64 `json:"-"`
	ReviewCount int64 `json:"-"`
}

// Mean returns the arithmetic mean of count scores adding up to sum, or nil
// when there are no scores.
func Mean(sum, count int64) *float64 {
	if count <= 0 {
		return nil
	}
	mean := float64(sum) / float64(count)
	return &mean
}

// Draft is the full writable state of a title, with taxa addressed by slug.
type Draft struct {
	ID           string
	Name         string
	Year         int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// # Search Params

// Filter narrows a title listing. Zero values are ignored.
type Filter struct {
	Genre    string // genre slug
	Category string // category slug
	Name     string // case-insensitive substring
	Year     *int
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)
