package style

// Style is a visual-design tag for websites (e.g. "Dark", "Brutalist").
type Style struct {
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
