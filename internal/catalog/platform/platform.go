package platform

// Platform is the hosting or builder service a website runs on
// (e.g. "Webflow", "Framer"). Platforms are referenced by websites
// and cannot be deleted while still in use.
type Platform struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Patch carries PATCH-style partial updates; nil means unchanged.
type Patch struct {
	Slug  *string `json:"slug"`
	Title *string `json:"title"`
	URL   *string `json:"url"`
}

const (
	FieldSlug  = "slug"
	FieldTitle = "title"
	FieldURL   = "url"
)
