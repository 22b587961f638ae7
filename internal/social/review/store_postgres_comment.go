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

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository returns a pgx-backed [CommentRepository].
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func selectComments(extra string) string {
	c, u := schema.SocialComment, schema.UserAccount
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, u.%s, c.%s, c.%s%s
		FROM %s c
		JOIN %s u ON u.%s = c.%s`,
		c.ID, c.ReviewID, c.AuthorID, u.Username, c.Text, c.CreatedAt, extra,
		c.Table,
		u.Table, u.ID, c.AuthorID,
	)
}

func scanComment(row pgx.Row, extra ...any) (*Comment, error) {
	comment := &Comment{}
	dest := append([]any{
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate,
	}, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return comment, nil
}

func (repository *commentRepository) List(context context.Context, reviewID string, limit, offset int) ([]*Comment, int, error) {
	c := schema.SocialComment
	query := selectComments(", COUNT(*) OVER()") + fmt.Sprintf(` WHERE c.%s = $1 ORDER BY c.%s DESC, c.%s DESC LIMIT $2 OFFSET $3`,
		c.ReviewID, c.CreatedAt, c.ID)

	rows, err := repository.pool.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	total := 0
	for rows.Next() {
		comment, err := scanComment(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to iterate comments: %w", err)
	}

	return comments, total, nil
}

func (repository *commentRepository) FindByID(context context.Context, reviewID, commentID string) (*Comment, error) {
	c := schema.SocialComment
	query := selectComments("") + fmt.Sprintf(` WHERE c.%s = $1 AND c.%s = $2`, c.ID, c.ReviewID)

	comment, err := scanComment(repository.pool.QueryRow(context, query, commentID, reviewID))
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return comment, nil
}

func (repository *commentRepository) Create(context context.Context, comment *Comment) error {
	c := schema.SocialComment
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		c.Table, c.ID, c.ReviewID, c.AuthorID, c.Text, c.CreatedAt)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.PubDate)

	switch {
	case err == nil:
		return nil
	case dberr.IsForeignKeyViolation(err):
		return apperr.NotFound("Review")
	default:
		return fmt.Errorf("postgres_comment_create_failed: %w", err)
	}
}

func (repository *commentRepository) Update(context context.Context, comment *Comment) error {
	c := schema.SocialComment
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`, c.Table, c.Text, c.ID)

	tag, err := repository.pool.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return fmt.Errorf("postgres_comment_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

func (repository *commentRepository) Delete(context context.Context, commentID string) error {
	c := schema.SocialComment
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.ID)

	tag, err := repository.pool.Exec(context, query, commentID)
	if err != nil {
		return fmt.Errorf("postgres_comment_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}
