// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements the user-generated content under a title: reviews
and the comments on them.

# Invariants

  - A user reviews a title at most once. The store's unique constraint is the
    authority; the service pre-check only produces a friendlier error.
  - A comment is addressed through its title and review. A review id that
    belongs to another title resolves to NOT_FOUND.
  - Author, parent and timestamp are fixed at creation; only text (and score
    for reviews) change afterwards.

# Security

Writes require an identity at the collection level. Changing or deleting an
existing item additionally requires authorship or a moderator/admin role; see
[sec.AuthorizeObject].
*/
package review

import "time"

// # Domain Entities

// Review is a scored opinion of one user about one title.
type Review struct {
	ID       string `json:"id"`
	TitleID  string `json:"-"`
	AuthorID string `json:"-"`

	// Author is the username of the author.
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)
