package category

// Category is a topical grouping of websites (e.g. "Landing Pages").
//
// WebsiteCount is denormalized and refreshed by the importer's recount pass;
// it is never written by the CRUD path.
type Category struct {
	ID           int64   `json:"id"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	WebsiteCount int     `json:"website_count"`
	SortOrder    int     `json:"sort_order"`
	IsActive     bool    `json:"is_active"`
}

// Patch carries PATCH-style partial updates; nil means unchanged.
type Patch struct {
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// Filter narrows list and count queries.
type Filter struct {
	IncludeInactive bool
}

// Global field names for validation
const (
	FieldSlug        = "slug"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldSortOrder   = "sort_order"
)
