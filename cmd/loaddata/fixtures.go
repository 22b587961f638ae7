// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// record is one CSV row keyed by header name.
type record map[string]string

func (r record) get(column string) (string, error) {
	value, ok := r[column]
	if !ok {
		return "", fmt.Errorf("missing column %q", column)
	}
	return strings.TrimSpace(value), nil
}

// fixture describes one CSV file and the statement each of its rows feeds.
type fixture struct {
	file      string
	statement string
	bind      func(row record) ([]any, error)
}

// fixtureID maps a fixture's integer key onto a stable UUID for kind.
func fixtureID(kind, raw string) string {
	return uuid.Stable("yamdb/fixture/" + kind + "/" + raw)
}

// fixtures lists the files in dependency order.
var fixtures = []fixture{
	{
		file: "users.csv",
		statement: `INSERT INTO users.account (id, username, email, role, bio, firstname, lastname)
			VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING`,
		bind: bindUser,
	},
	{
		file:      "category.csv",
		statement: `INSERT INTO core.category (id, name, slug) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		bind:      bindTaxon("category"),
	},
	{
		file:      "genre.csv",
		statement: `INSERT INTO core.genre (id, name, slug) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		bind:      bindTaxon("genre"),
	},
	{
		file: "titles.csv",
		statement: `INSERT INTO core.title (id, name, year, description, categoryid)
			VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
		bind: bindTitle,
	},
	{
		file:      "genre_title.csv",
		statement: `INSERT INTO core.titlegenre (titleid, genreid) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		bind:      bindTitleGenre,
	},
	{
		file: "review.csv",
		statement: `INSERT INTO social.review (id, titleid, authorid, text, score, createdat)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
		bind: bindReview,
	},
	{
		file: "comments.csv",
		statement: `INSERT INTO social.comment (id, reviewid, authorid, text, createdat)
			VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
		bind: bindComment,
	},
}

// readRecords parses a headed CSV stream.
func readRecords(source io.Reader) ([]record, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var records []record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}

		row := make(record, len(header))
		for i, column := range header {
			if i < len(fields) {
				row[column] = fields[i]
			}
		}
		records = append(records, row)
	}
}

// # Row Binders

func bindUser(row record) ([]any, error) {
	id, err := row.get("id")
	if err != nil {
		return nil, err
	}
	username, err := row.get("username")
	if err != nil {
		return nil, err
	}
	email, err := row.get("email")
	if err != nil {
		return nil, err
	}

	role := sec.UserRole(strings.ToLower(row["role"]))
	if role == "" {
		role = sec.RoleUser
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("user %s: unknown role %q", username, role)
	}

	return []any{
		fixtureID("user", id),
		username,
		strings.ToLower(email),
		string(role),
		row["bio"],
		row["first_name"],
		row["last_name"],
	}, nil
}

func bindTaxon(kind string) func(row record) ([]any, error) {
	return func(row record) ([]any, error) {
		id, err := row.get("id")
		if err != nil {
			return nil, err
		}
		name, err := row.get("name")
		if err != nil {
			return nil, err
		}
		slug, err := row.get("slug")
		if err != nil {
			return nil, err
		}
		return []any{fixtureID(kind, id), name, slug}, nil
	}
}

func bindTitle(row record) ([]any, error) {
	id, err := row.get("id")
	if err != nil {
		return nil, err
	}
	name, err := row.get("name")
	if err != nil {
		return nil, err
	}
	rawYear, err := row.get("year")
	if err != nil {
		return nil, err
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return nil, fmt.Errorf("title %s: bad year %q", id, rawYear)
	}

	var description *string
	if value := strings.TrimSpace(row["description"]); value != "" {
		description = &value
	}

	var categoryID *string
	if value := strings.TrimSpace(row["category"]); value != "" {
		resolved := fixtureID("category", value)
		categoryID = &resolved
	}

	return []any{fixtureID("title", id), name, year, description, categoryID}, nil
}

func bindTitleGenre(row record) ([]any, error) {
	titleID, err := row.get("title_id")
	if err != nil {
		return nil, err
	}
	genreID, err := row.get("genre_id")
	if err != nil {
		return nil, err
	}
	return []any{fixtureID("title", titleID), fixtureID("genre", genreID)}, nil
}

func bindReview(row record) ([]any, error) {
	id, err := row.get("id")
	if err != nil {
		return nil, err
	}
	titleID, err := row.get("title_id")
	if err != nil {
		return nil, err
	}
	author, err := row.get("author")
	if err != nil {
		return nil, err
	}
	rawScore, err := row.get("score")
	if err != nil {
		return nil, err
	}
	score, err := strconv.Atoi(rawScore)
	if err != nil || score < 1 || score > 10 {
		return nil, fmt.Errorf("review %s: score %q outside 1..10", id, rawScore)
	}
	published, err := publishedAt(row)
	if err != nil {
		return nil, fmt.Errorf("review %s: %w", id, err)
	}

	return []any{
		fixtureID("review", id),
		fixtureID("title", titleID),
		fixtureID("user", author),
		row["text"],
		score,
		published,
	}, nil
}

func bindComment(row record) ([]any, error) {
	id, err := row.get("id")
	if err != nil {
		return nil, err
	}
	reviewID, err := row.get("review_id")
	if err != nil {
		return nil, err
	}
	author, err := row.get("author")
	if err != nil {
		return nil, err
	}
	published, err := publishedAt(row)
	if err != nil {
		return nil, fmt.Errorf("comment %s: %w", id, err)
	}

	return []any{
		fixtureID("comment", id),
		fixtureID("review", reviewID),
		fixtureID("user", author),
		row["text"],
		published,
	}, nil
}

// publishedAt reads pub_date, defaulting to now when the column is blank.
func publishedAt(row record) (time.Time, error) {
	raw := strings.TrimSpace(row["pub_date"])
	if raw == "" {
		return time.Now().UTC(), nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad pub_date %q", raw)
	}
	return parsed, nil
}
