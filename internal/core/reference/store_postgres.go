// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/dberr"
	"github.com/al3eon/api-yamdb/internal/platform/postgres"
)

// PostgresRepository implements [Repository] for the table of one [Kind].
type PostgresRepository struct {
	db   *pgxpool.Pool
	kind Kind
}

// NewPostgresRepository returns a postgres repository bound to kind.
func NewPostgresRepository(db *pgxpool.Pool, kind Kind) *PostgresRepository {
	return &PostgresRepository{db: db, kind: kind}
}

/*
List retrieves a page of taxa ordered by name.

Description: Uses COUNT(*) OVER() so the page and the total arrive in one
round trip.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Taxon: Page of results
  - int: Total matching count
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Taxon, int, error) {
	table := repository.kind.Table

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, %s, %s, COUNT(*) OVER() FROM %s WHERE TRUE`,
		table.ID, table.Name, table.Slug, table.Table))

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND %s ILIKE $%d %s`, table.Name, argID, postgres.LikeEscape))
		args = append(args, postgres.Contains(filter.Search))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY %s ASC, %s ASC LIMIT $%d OFFSET $%d`, table.Name, table.Slug, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list %s: %w", table.Table, err)
	}
	defer rows.Close()

	taxa := make([]*Taxon, 0)
	total := 0
	for rows.Next() {
		taxon := &Taxon{}
		if err := rows.Scan(&taxon.ID, &taxon.Name, &taxon.Slug, &total); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan %s: %w", table.Table, err)
		}
		taxa = append(taxa, taxon)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate %s: %w", table.Table, err)
	}

	return taxa, total, nil
}

/*
Create persists a new taxon.

Parameters:
  - context: context.Context
  - taxon: *Taxon (ID assigned by the caller)

Returns:
  - error: apperr.Conflict on a taken slug, or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, taxon *Taxon) error {
	table := repository.kind.Table
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		table.Table, table.ID, table.Name, table.Slug)

	_, err := repository.db.Exec(context, query, taxon.ID, taxon.Name, taxon.Slug)
	if err != nil {
		if dberr.IsUniqueViolation(err, table.UniqueSlug) {
			return apperr.ConflictField(FieldSlug, fmt.Sprintf("%s with this slug already exists", repository.kind.Label))
		}
		return fmt.Errorf("postgres_%s_create_failed: %w", strings.ToLower(repository.kind.Label), err)
	}

	return nil
}

/*
DeleteBySlug removes a taxon by slug.

Description: core.title.categoryid is ON DELETE SET NULL and core.titlegenre
rows cascade, so titles survive the deletion.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	table := repository.kind.Table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.Slug)

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return fmt.Errorf("postgres_%s_delete_failed: %w", strings.ToLower(repository.kind.Label), err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.kind.Label)
	}

	return nil
}
