// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/ctxutil"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
	"github.com/al3eon/api-yamdb/pkg/pagination"
	"github.com/al3eon/api-yamdb/pkg/pointer"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates the title catalogue.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a title [Service].
//
// now is consulted on every write to bound the release year; pass nil for
// the wall clock.
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, now: now}
}

// # Inputs

// CreateInput is the payload for a new title. Taxa are referenced by slug.
type CreateInput struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        *int     `json:"year" validate:"required"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateInput is a partial change. Nil fields are left untouched.
type UpdateInput struct {
	Name        *string   `json:"name" validate:"omitnil,min=1,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// # Queries

/*
List returns a page of titles with their ratings.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Title: Page of titles
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	return service.repo.List(context, filter, page.Limit, page.Offset())
}

// Get returns one title with its rating.
func (service *Service) Get(context context.Context, id string) (*Title, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Title")
	}
	return service.repo.FindByID(context, id)
}

// # Commands

/*
Create validates and persists a new title.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: The stored title as a reader would see it
  - error: Validation (including unknown taxa)
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.Struct(input)
	if input.Year != nil {
		validator.Year(FieldYear, *input.Year, service.now())
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	draft := &Draft{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Year:         *input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   distinct(input.Genre),
	}

	if err := service.repo.Create(context, draft); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "title_created", slog.String("title_id", draft.ID))

	return service.repo.FindByID(context, draft.ID)
}

/*
Update applies a partial change to a title.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Title: The updated title
  - error: NotFound or Validation
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Title, error) {
	current, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Struct(input)
	if input.Year != nil {
		validator.Year(FieldYear, *input.Year, service.now())
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	draft := draftOf(current)
	if input.Name != nil {
		draft.Name = strings.TrimSpace(*input.Name)
	}
	pointer.Apply(&draft.Year, input.Year)
	if input.Description != nil {
		draft.Description = input.Description
	}
	if input.Category != nil {
		draft.CategorySlug = input.Category
	}
	if input.Genre != nil {
		draft.GenreSlugs = distinct(*input.Genre)
	}

	if err := service.repo.Update(context, draft); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "title_updated", slog.String("title_id", id))

	return service.repo.FindByID(context, id)
}

// Delete removes a title together with its reviews and their comments.
func (service *Service) Delete(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound("Title")
	}
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "title_deleted", slog.String("title_id", id))
	return nil
}

// # Helpers

func draftOf(title *Title) *Draft {
	draft := &Draft{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		GenreSlugs:  make([]string, 0, len(title.Genres)),
	}
	if title.Category != nil {
		draft.CategorySlug = pointer.To(title.Category.Slug)
	}
	for _, genre := range title.Genres {
		draft.GenreSlugs = append(draft.GenreSlugs, genre.Slug)
	}
	return draft
}

// distinct drops duplicate slugs, keeping first occurrence order.
func distinct(slugs []string) []string {
	result := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if !slices.Contains(result, slug) {
			result = append(result, slug)
		}
	}
	return result
}
