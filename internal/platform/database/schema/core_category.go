package schema

// TaxonTable describes a `{name, slug}` reference table.
//
// Category and Genre share the same column layout and differ only in table name.
type TaxonTable struct {
	Table string
	ID    string
	Name  string
	Slug  string

	// UniqueSlug is the constraint enforcing slug uniqueness.
	UniqueSlug string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = TaxonTable{
	Table: "core.category",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",

	UniqueSlug: "category_slug_key",
}

// Columns returns all standard column names
func (t TaxonTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
