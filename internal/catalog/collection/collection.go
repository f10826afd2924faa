package collection

// Collection is a curated grouping of websites (e.g. "Portfolio Inspiration").
type Collection struct {
	ID           int64   `json:"id"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	WebsiteCount int     `json:"website_count"`
	IsActive     bool    `json:"is_active"`
}

// Patch carries PATCH-style partial updates; nil means unchanged.
type Patch struct {
	Slug        *string `json:"slug"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type Filter struct {
	IncludeInactive bool
}

const (
	FieldSlug        = "slug"
	FieldTitle       = "title"
	FieldDescription = "description"
)
