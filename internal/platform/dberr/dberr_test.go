// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Title"))

	err := dberr.Wrap(fmt.Errorf("scan: %w", pgx.ErrNoRows), "Title")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	conflict := apperr.Conflict("taken")
	assert.Same(t, conflict, dberr.Wrap(conflict, "Title"))

	err = dberr.Wrap(errors.New("connection reset"), "Title")
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "review_title_author_key",
	})

	assert.True(t, dberr.IsUniqueViolation(err, ""))
	assert.True(t, dberr.IsUniqueViolation(err, "review_title_author_key"))
	assert.False(t, dberr.IsUniqueViolation(err, "account_email_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain"), ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, dberr.IsForeignKeyViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, dberr.IsForeignKeyViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
}
