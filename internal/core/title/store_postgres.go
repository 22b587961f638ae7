// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/al3eon/api-yamdb/internal/core/reference"
	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/database/schema"
	"github.com/al3eon/api-yamdb/internal/platform/postgres"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
)

// titleRepository implements [Repository] using pgx.
type titleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a pgx-backed title repository.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &titleRepository{pool: pool}
}

// selectTitles loads titles with every derived attribute in a single statement.
//
// Reviews are grouped once per title, genres are folded into a JSON array and
// COUNT(*) OVER() carries the filtered total.
func selectTitles() string {
	t, c, g, tg, r := schema.CoreTitle, schema.CoreCategory, schema.CoreGenre, schema.TitleGenre, schema.SocialReview

	return fmt.Sprintf(`
		SELECT
			t.%s, t.%s, t.%s, t.%s,
			c.%s, c.%s,
			COALESCE(gs.genres, '[]'::json),
			COALESCE(rs.reviewcount, 0), COALESCE(rs.scoresum, 0),
			COUNT(*) OVER()
		FROM %s t
		LEFT JOIN %s c ON c.%s = t.%s
		LEFT JOIN (
			SELECT %s AS titleid, COUNT(*) AS reviewcount, SUM(%s) AS scoresum
			FROM %s
			GROUP BY %s
		) rs ON rs.titleid = t.%s
		LEFT JOIN LATERAL (
			SELECT json_agg(json_build_object('name', ge.%s, 'slug', ge.%s) ORDER BY ge.%s) AS genres
			FROM %s tg
			JOIN %s ge ON ge.%s = tg.%s
			WHERE tg.%s = t.%s
		) gs ON TRUE
		WHERE TRUE`,
		t.ID, t.Name, t.Year, t.Description,
		c.Name, c.Slug,
		t.Table,
		c.Table, c.ID, t.CategoryID,
		r.TitleID, r.Score,
		r.Table,
		r.TitleID,
		t.ID,
		g.Name, g.Slug, g.Name,
		tg.Table,
		g.Table, g.ID, tg.GenreID,
		tg.TitleID, t.ID,
	)
}

func scanTitle(row pgx.Row) (*Title, int, error) {
	title := &Title{}
	var categoryName, categorySlug *string
	var total int

	err := row.Scan(
		&title.ID, &title.Name, &title.Year, &title.Description,
		&categoryName, &categorySlug,
		&title.Genres,
		&title.ReviewCount, &title.ScoreSum,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}

	if categorySlug != nil {
		title.Category = &reference.Taxon{Name: *categoryName, Slug: *categorySlug}
	}
	title.Rating = Mean(title.ScoreSum, title.ReviewCount)

	return title, total, nil
}

/*
List retrieves titles matching the filter.

Description: Builds the WHERE clause dynamically. Each title's rating, category
and genres come from the same statement, so a page never costs a query per
title.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Title: Page of titles
  - int: Total matching rows
  - error: Database failures
*/
func (repository *titleRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(selectTitles())

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(`
		AND EXISTS (
			SELECT 1 FROM %s ftg JOIN %s fg ON fg.%s = ftg.%s
			WHERE ftg.%s = t.%s AND fg.%s = $%d
		)`,
			schema.TitleGenre.Table, schema.CoreGenre.Table, schema.CoreGenre.ID, schema.TitleGenre.GenreID,
			schema.TitleGenre.TitleID, schema.CoreTitle.ID, schema.CoreGenre.Slug, argID))
		args = append(args, filter.Genre)
		argID++
	}

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND c.%s = $%d`, schema.CoreCategory.Slug, argID))
		args = append(args, filter.Category)
		argID++
	}

	if filter.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND t.%s ILIKE $%d %s`, schema.CoreTitle.Name, argID, postgres.LikeEscape))
		args = append(args, postgres.Contains(filter.Name))
		argID++
	}

	if filter.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(` AND t.%s = $%d`, schema.CoreTitle.Year, argID))
		args = append(args, *filter.Year)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY t.%s ASC, t.%s ASC LIMIT $%d OFFSET $%d`,
		schema.CoreTitle.Name, schema.CoreTitle.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list titles: %w", err)
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	total := 0
	for rows.Next() {
		title, count, err := scanTitle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan title: %w", err)
		}
		titles = append(titles, title)
		total = count
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate titles: %w", err)
	}

	return titles, total, nil
}

/*
FindByID retrieves one hydrated title.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Title: The title with its rating
  - error: apperr.NotFound or database failures
*/
func (repository *titleRepository) FindByID(context context.Context, id string) (*Title, error) {
	query := selectTitles() + fmt.Sprintf(` AND t.%s = $1`, schema.CoreTitle.ID)

	title, _, err := scanTitle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, fmt.Errorf("postgres: failed to load title: %w", err)
	}

	return title, nil
}

/*
Create inserts a title and links its taxa.

Parameters:
  - context: context.Context
  - draft: *Draft (ID assigned by the caller)

Returns:
  - error: Validation for unknown slugs, or database failures
*/
func (repository *titleRepository) Create(context context.Context, draft *Draft) error {
	return postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		categoryID, genreIDs, err := resolveTaxa(context, transaction, draft)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
			schema.CoreTitle.Table, schema.CoreTitle.ID, schema.CoreTitle.Name, schema.CoreTitle.Year,
			schema.CoreTitle.Description, schema.CoreTitle.CategoryID)

		if _, err := transaction.Exec(context, query, draft.ID, draft.Name, draft.Year, draft.Description, categoryID); err != nil {
			return fmt.Errorf("postgres_title_create_failed: %w", err)
		}

		return syncGenres(context, transaction, draft.ID, genreIDs)
	})
}

/*
Update overwrites a title and re-links its taxa.

Parameters:
  - context: context.Context
  - draft: *Draft (Full state after the patch)

Returns:
  - error: apperr.NotFound, Validation for unknown slugs, or database failures
*/
func (repository *titleRepository) Update(context context.Context, draft *Draft) error {
	return postgres.InTx(context, repository.pool, func(transaction pgx.Tx) error {
		categoryID, genreIDs, err := resolveTaxa(context, transaction, draft)
		if err != nil {
			return err
		}

		query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = now() WHERE %s = $1`,
			schema.CoreTitle.Table, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
			schema.CoreTitle.CategoryID, schema.CoreTitle.UpdatedAt, schema.CoreTitle.ID)

		tag, err := transaction.Exec(context, query, draft.ID, draft.Name, draft.Year, draft.Description, categoryID)
		if err != nil {
			return fmt.Errorf("postgres_title_update_failed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("Title")
		}

		return syncGenres(context, transaction, draft.ID, genreIDs)
	})
}

// Delete removes the title; social.review and social.comment rows cascade.
func (repository *titleRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTitle.Table, schema.CoreTitle.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_title_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}

// # Taxa

// resolveTaxa maps the draft's slugs onto row IDs inside the transaction.
func resolveTaxa(context context.Context, querier postgres.Querier, draft *Draft) (*string, []string, error) {
	var categoryID *string
	if draft.CategorySlug != nil {
		query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
			schema.CoreCategory.ID, schema.CoreCategory.Table, schema.CoreCategory.Slug)

		var id string
		err := querier.QueryRow(context, query, *draft.CategorySlug).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, validate.RequiredError(FieldCategory, fmt.Sprintf("Unknown category %q", *draft.CategorySlug))
		}
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: failed to resolve category: %w", err)
		}
		categoryID = &id
	}

	if len(draft.GenreSlugs) == 0 {
		return categoryID, nil, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.CoreGenre.ID, schema.CoreGenre.Slug, schema.CoreGenre.Table, schema.CoreGenre.Slug)

	rows, err := querier.Query(context, query, draft.GenreSlugs)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: failed to resolve genres: %w", err)
	}
	defer rows.Close()

	found := make(map[string]string, len(draft.GenreSlugs))
	for rows.Next() {
		var id, slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, nil, fmt.Errorf("postgres: failed to scan genre: %w", err)
		}
		found[slug] = id
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("postgres: failed to iterate genres: %w", err)
	}

	genreIDs := make([]string, 0, len(draft.GenreSlugs))
	for _, slug := range draft.GenreSlugs {
		id, ok := found[slug]
		if !ok {
			return nil, nil, validate.RequiredError(FieldGenre, fmt.Sprintf("Unknown genre %q", slug))
		}
		genreIDs = append(genreIDs, id)
	}

	return categoryID, genreIDs, nil
}

// syncGenres replaces the genre links of a title.
//
// Existing links are cleared first, then the new set is queued on one
// pgx.Batch so the round trips do not grow with the number of genres.
func syncGenres(context context.Context, transaction pgx.Tx, titleID string, genreIDs []string) error {
	table := schema.TitleGenre

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.TitleID)
	if _, err := transaction.Exec(context, deleteQuery, titleID); err != nil {
		return fmt.Errorf("postgres: failed to clear %s: %w", table.Table, err)
	}

	if len(genreIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, table.Table, table.TitleID, table.GenreID)
	batch := &pgx.Batch{}
	for _, genreID := range genreIDs {
		batch.Queue(insertQuery, titleID, genreID)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return fmt.Errorf("postgres: failed to batch insert into %s: %w", table.Table, err)
	}

	return nil
}
