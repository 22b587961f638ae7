// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/core/reference"
	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/postgres/postgrestest"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Postgres Repository

/*
TestPostgresRepository_Kinds runs the same create, search and delete
sequence against both taxonomy tables.
*/
func TestPostgresRepository_Kinds(t *testing.T) {
	pool := postgrestest.Open(t)
	ctx := context.Background()

	for _, kind := range []reference.Kind{reference.Category, reference.Genre} {
		t.Run(kind.Label, func(t *testing.T) {
			repo := reference.NewPostgresRepository(pool, kind)

			prefix := postgrestest.Unique("tx")
			taxon := &reference.Taxon{ID: uuid.New(), Name: prefix + " 100% pure", Slug: postgrestest.Unique("s")}
			require.NoError(t, repo.Create(ctx, taxon))
			require.NoError(t, repo.Create(ctx, &reference.Taxon{ID: uuid.New(), Name: prefix + " 100 pure", Slug: postgrestest.Unique("s")}))

			duplicate := repo.Create(ctx, &reference.Taxon{ID: uuid.New(), Name: "Copy", Slug: taxon.Slug})
			ae := apperr.As(duplicate)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeConflict, ae.Code)
			assert.Equal(t, reference.FieldSlug, ae.Details[0].Field)

			found, total, err := repo.List(ctx, reference.Filter{Search: prefix + " 100%"}, 10, 0)
			require.NoError(t, err)
			require.Equal(t, 1, total)
			assert.Equal(t, taxon.Slug, found[0].Slug)

			require.NoError(t, repo.DeleteBySlug(ctx, taxon.Slug))
			assert.Equal(t, apperr.CodeNotFound, apperr.As(repo.DeleteBySlug(ctx, taxon.Slug)).Code)
		})
	}
}

/*
TestPostgresRepository_DeleteDetachesTitles verifies that deleting a category
or genre keeps the titles that referenced it.
*/
func TestPostgresRepository_DeleteDetachesTitles(t *testing.T) {
	pool := postgrestest.Open(t)
	ctx := context.Background()

	categories := reference.NewPostgresRepository(pool, reference.Category)
	genres := reference.NewPostgresRepository(pool, reference.Genre)

	category := &reference.Taxon{ID: uuid.New(), Name: "Film", Slug: postgrestest.Unique("c")}
	genre := &reference.Taxon{ID: uuid.New(), Name: "Noir", Slug: postgrestest.Unique("g")}
	require.NoError(t, categories.Create(ctx, category))
	require.NoError(t, genres.Create(ctx, genre))

	titleID := postgrestest.SeedTitle(t, pool)
	_, err := pool.Exec(ctx, `UPDATE core.title SET categoryid = $2 WHERE id = $1`, titleID, category.ID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO core.titlegenre (titleid, genreid) VALUES ($1, $2)`, titleID, genre.ID)
	require.NoError(t, err)

	require.NoError(t, categories.DeleteBySlug(ctx, category.Slug))
	require.NoError(t, genres.DeleteBySlug(ctx, genre.Slug))

	assert.Equal(t, 1, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM core.title WHERE id = $1 AND categoryid IS NULL`, titleID))
	assert.Zero(t, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM core.titlegenre WHERE titleid = $1`, titleID))
}
