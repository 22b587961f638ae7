// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"
	"strings"

	"github.com/al3eon/api-yamdb/internal/platform/ctxutil"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
	"github.com/al3eon/api-yamdb/pkg/pagination"
	"github.com/al3eon/api-yamdb/pkg/slug"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for one taxonomy.
type Service struct {
	repo Repository
	kind Kind
}

// NewService constructs a new reference [Service] for kind.
func NewService(repo Repository, kind Kind) *Service {
	return &Service{repo: repo, kind: kind}
}

// Kind reports the taxonomy this service manages.
func (service *Service) Kind() Kind {
	return service.kind
}

// CreateInput is the payload for a new taxon. Slug may be omitted.
type CreateInput struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug"`
}

/*
List returns a page of taxa ordered by name.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Taxon: The page
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Taxon, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return service.repo.List(context, filter, page.Limit, page.Offset())
}

/*
Create validates and persists a new taxon.

Description: An omitted slug is derived from the name. Uniqueness is left to
the store's constraint so two concurrent creates cannot both succeed.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Taxon: The created taxon
  - error: Validation or Conflict
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Taxon, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)

	derived := input.Slug == ""
	if derived {
		input.Slug = slug.FromLimit(input.Name, validate.MaxSlugLen)
	}

	validator := &validate.Validator{}
	validator.Struct(input)
	if derived && input.Slug == "" && input.Name != "" {
		validator.Custom(FieldSlug, true, "Could not derive a slug from the name; provide one")
	} else if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	taxon := &Taxon{ID: uuid.New(), Name: input.Name, Slug: input.Slug}
	if err := service.repo.Create(context, taxon); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "taxon_created",
		slog.String("kind", strings.ToLower(service.kind.Label)),
		slog.String("slug", taxon.Slug),
	)

	return taxon, nil
}

// Delete removes the taxon with the given slug.
func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repo.DeleteBySlug(context, slug); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "taxon_deleted",
		slog.String("kind", strings.ToLower(service.kind.Label)),
		slog.String("slug", slug),
	)
	return nil
}
