package schema

// CoreGenre is the schema definition for core.genre
var CoreGenre = TaxonTable{
	Table: "core.genre",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",

	UniqueSlug: "genre_slug_key",
}
