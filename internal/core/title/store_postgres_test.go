// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/core/title"
	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/postgres/postgrestest"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Postgres Repository

func seedReview(t *testing.T, pool *pgxpool.Pool, titleID string, score int) string {
	t.Helper()

	authorID, _ := postgrestest.SeedUser(t, pool)
	reviewID := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO social.review (id, titleid, authorid, text, score) VALUES ($1, $2, $3, 'text', $4)`,
		reviewID, titleID, authorID, score)
	require.NoError(t, err)

	return reviewID
}

/*
TestTitleRepository_Rating verifies that the rating is derived from the
review scores on every read: null without reviews, the exact mean otherwise.
*/
func TestTitleRepository_Rating(t *testing.T) {
	pool := postgrestest.Open(t)
	repo := title.NewPostgresRepository(pool)
	ctx := context.Background()

	tests := []struct {
		name   string
		scores []int
		want   *float64
	}{
		{name: "no reviews", scores: nil, want: nil},
		{name: "single review", scores: []int{10}, want: title.Mean(10, 1)},
		{name: "half point mean", scores: []int{3, 8}, want: title.Mean(11, 2)},
		{name: "repeating mean", scores: []int{1, 2, 2}, want: title.Mean(5, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := &title.Draft{ID: uuid.New(), Name: postgrestest.Unique("rated"), Year: 1994}
			require.NoError(t, repo.Create(ctx, draft))

			for _, score := range tt.scores {
				seedReview(t, pool, draft.ID, score)
			}

			found, err := repo.FindByID(ctx, draft.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, found.Rating)
			assert.Equal(t, int64(len(tt.scores)), found.ReviewCount)

			listed, total, err := repo.List(ctx, title.Filter{Name: draft.Name}, 10, 0)
			require.NoError(t, err)
			require.Equal(t, 1, total)
			assert.Equal(t, tt.want, listed[0].Rating)
		})
	}
}

/*
TestTitleRepository_DeleteCascades verifies that deleting a title removes its
genre links, reviews and their comments while leaving the accounts in place.
*/
func TestTitleRepository_DeleteCascades(t *testing.T) {
	pool := postgrestest.Open(t)
	repo := title.NewPostgresRepository(pool)
	ctx := context.Background()

	genreSlug := postgrestest.Unique("g")
	_, err := pool.Exec(ctx, `INSERT INTO core.genre (id, name, slug) VALUES ($1, 'Drama', $2)`, uuid.New(), genreSlug)
	require.NoError(t, err)

	draft := &title.Draft{ID: uuid.New(), Name: postgrestest.Unique("doomed"), Year: 1972, GenreSlugs: []string{genreSlug}}
	require.NoError(t, repo.Create(ctx, draft))

	reviewID := seedReview(t, pool, draft.ID, 9)
	commenterID, _ := postgrestest.SeedUser(t, pool)
	_, err = pool.Exec(ctx, `INSERT INTO social.comment (id, reviewid, authorid, text) VALUES ($1, $2, $3, 'agreed')`,
		uuid.New(), reviewID, commenterID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, draft.ID))

	assert.Zero(t, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM core.title WHERE id = $1`, draft.ID))
	assert.Zero(t, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM core.titlegenre WHERE titleid = $1`, draft.ID))
	assert.Zero(t, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM social.review WHERE titleid = $1`, draft.ID))
	assert.Zero(t, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM social.comment WHERE reviewid = $1`, reviewID))
	assert.Equal(t, 1, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM users.account WHERE id = $1`, commenterID))
	assert.Equal(t, 1, postgrestest.Count(t, pool, `SELECT COUNT(*) FROM core.genre WHERE slug = $1`, genreSlug))

	err = repo.Delete(ctx, draft.ID)
	assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
}

/*
TestTitleRepository_NameFilterIsLiteral verifies that LIKE metacharacters in
the name filter match only themselves.
*/
func TestTitleRepository_NameFilterIsLiteral(t *testing.T) {
	pool := postgrestest.Open(t)
	repo := title.NewPostgresRepository(pool)
	ctx := context.Background()

	prefix := postgrestest.Unique("like")
	for _, name := range []string{prefix + " 50%_off", prefix + " 50abcoff", prefix + ` C:\films`} {
		require.NoError(t, repo.Create(ctx, &title.Draft{ID: uuid.New(), Name: name, Year: 2000}))
	}

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{name: "percent and underscore", search: prefix + " 50%_off", want: 1},
		{name: "bare percent", search: prefix + " %", want: 0},
		{name: "backslash", search: prefix + ` C:\films`, want: 1},
		{name: "case insensitive prefix", search: strings.ToUpper(prefix), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, err := repo.List(ctx, title.Filter{Name: tt.search}, 10, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
		})
	}
}
