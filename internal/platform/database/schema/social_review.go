package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table     string
	ID        string
	TitleID   string
	AuthorID  string
	Text      string
	Score     string
	CreatedAt string

	// UniqueTitleAuthor is the constraint enforcing one review per (title, author).
	UniqueTitleAuthor string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:     "social.review",
	ID:        "id",
	TitleID:   "titleid",
	AuthorID:  "authorid",
	Text:      "text",
	Score:     "score",
	CreatedAt: "createdat",

	UniqueTitleAuthor: "review_title_author_key",
}
