// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/database/schema"
	"github.com/al3eon/api-yamdb/internal/platform/dberr"
)

// ErrAlreadyReviewed is returned when (title, author) already has a review.
var ErrAlreadyReviewed = apperr.Conflict("You have already reviewed this title")

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository returns a pgx-backed [ReviewRepository].
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

// selectReviews joins the author so the username is loaded with the review.
// extra is appended to the select list.
func selectReviews(extra string) string {
	r, u := schema.SocialReview, schema.UserAccount
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, u.%s, r.%s, r.%s, r.%s%s
		FROM %s r
		JOIN %s u ON u.%s = r.%s`,
		r.ID, r.TitleID, r.AuthorID, u.Username, r.Text, r.Score, r.CreatedAt, extra,
		r.Table,
		u.Table, u.ID, r.AuthorID,
	)
}

func scanReview(row pgx.Row, extra ...any) (*Review, error) {
	review := &Review{}
	dest := append([]any{
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return review, nil
}

func (repository *reviewRepository) TitleExists(context context.Context, titleID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CoreTitle.Table, schema.CoreTitle.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check title: %w", err)
	}
	return exists, nil
}

/*
List retrieves a page of a title's reviews, newest first.

Parameters:
  - context: context.Context
  - titleID: string
  - limit, offset: int

Returns:
  - []*Review: The page
  - int: Total reviews for the title
  - error: Database failures
*/
func (repository *reviewRepository) List(context context.Context, titleID string, limit, offset int) ([]*Review, int, error) {
	r := schema.SocialReview
	query := selectReviews(", COUNT(*) OVER()") + fmt.Sprintf(` WHERE r.%s = $1 ORDER BY r.%s DESC, r.%s DESC LIMIT $2 OFFSET $3`,
		r.TitleID, r.CreatedAt, r.ID)

	rows, err := repository.pool.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	total := 0
	for rows.Next() {
		review, err := scanReview(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate reviews: %w", err)
	}

	return reviews, total, nil
}

func (repository *reviewRepository) FindByID(context context.Context, titleID, reviewID string) (*Review, error) {
	r := schema.SocialReview
	query := selectReviews("") + fmt.Sprintf(` WHERE r.%s = $1 AND r.%s = $2`, r.ID, r.TitleID)

	review, err := scanReview(repository.pool.QueryRow(context, query, reviewID, titleID))
	if err != nil {
		return nil, dberr.Wrap(err, "Review")
	}
	return review, nil
}

func (repository *reviewRepository) ExistsForAuthor(context context.Context, titleID, authorID string) (bool, error) {
	r := schema.SocialReview
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`, r.Table, r.TitleID, r.AuthorID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, titleID, authorID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check review: %w", err)
	}
	return exists, nil
}

/*
Create persists a review.

Description: The unique constraint on (titleid, authorid) decides races
between concurrent creates; the loser receives [ErrAlreadyReviewed].

Parameters:
  - context: context.Context
  - review: *Review (ID assigned by the caller)

Returns:
  - error: ErrAlreadyReviewed, apperr.NotFound when the title vanished, or database failures
*/
func (repository *reviewRepository) Create(context context.Context, review *Review) error {
	r := schema.SocialReview
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s`,
		r.Table, r.ID, r.TitleID, r.AuthorID, r.Text, r.Score, r.CreatedAt)

	err := repository.pool.QueryRow(context, query,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.PubDate)

	switch {
	case err == nil:
		return nil
	case dberr.IsUniqueViolation(err, r.UniqueTitleAuthor):
		return ErrAlreadyReviewed
	case dberr.IsForeignKeyViolation(err):
		return apperr.NotFound("Title")
	default:
		return fmt.Errorf("postgres_review_create_failed: %w", err)
	}
}

func (repository *reviewRepository) Update(context context.Context, review *Review) error {
	r := schema.SocialReview
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`, r.Table, r.Text, r.Score, r.ID)

	tag, err := repository.pool.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return fmt.Errorf("postgres_review_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *reviewRepository) Delete(context context.Context, reviewID string) error {
	r := schema.SocialReview
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.Table, r.ID)

	tag, err := repository.pool.Exec(context, query, reviewID)
	if err != nil {
		return fmt.Errorf("postgres_review_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
