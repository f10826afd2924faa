package website

import "time"

// Tag is a lightweight taxonomy reference (category, style, or collection)
// hydrated onto a website row.
type Tag struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Platform is the originating platform a website was built with (e.g. Webflow).
type Platform struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Website is a single directory entry.
type Website struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	OriginalURL  string    `json:"original_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	ImageURL     *string   `json:"image_url"`
	PlatformID   *int64    `json:"platform_id,omitempty"`
	Platform     *Platform `json:"platform"`
	IsFeatured   bool      `json:"is_featured"`
	IsActive     bool      `json:"is_active"`
	ViewCount    int64     `json:"view_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Hydrated taxonomy sets, always non-nil on reads.
	Categories  []Tag `json:"categories"`
	Styles      []Tag `json:"styles"`
	Collections []Tag `json:"collections"`

	// Input-only relation id sets consumed on Create. Ids without a
	// matching taxonomy row are dropped silently.
	CategoryIDs   []int64 `json:"category_ids,omitempty"`
	StyleIDs      []int64 `json:"style_ids,omitempty"`
	CollectionIDs []int64 `json:"collection_ids,omitempty"`
}

// Patch carries PATCH-style partial updates.
//
// # Semantics
//
// A nil pointer means "leave unchanged". For the relation id slices, nil
// means unchanged while an explicit empty slice clears the whole set.
type Patch struct {
	Slug         *string `json:"slug"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	OriginalURL  *string `json:"original_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	ImageURL     *string `json:"image_url"`
	PlatformID   *int64  `json:"platform_id"`
	IsFeatured   *bool   `json:"is_featured"`
	IsActive     *bool   `json:"is_active"`

	CategoryIDs   []int64 `json:"category_ids"`
	StyleIDs      []int64 `json:"style_ids"`
	CollectionIDs []int64 `json:"collection_ids"`
}

// Filter holds the AND-composed predicates for list and count queries.
type Filter struct {
	CategoryID   *int64
	StyleID      *int64
	CollectionID *int64
	PlatformID   *int64
	Featured     *bool

	// IncludeInactive lifts the default active-only visibility (admin reads).
	IncludeInactive bool

	// Query is a case-insensitive substring match over title and description.
	Query string

	Sort string
}

// Sort orders accepted by list endpoints.
const (
	SortLatest  = "latest"
	SortPopular = "popular"
	SortTitle   = "title"
)

// Global field names for validation
const (
	FieldSlug         = "slug"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldOriginalURL  = "original_url"
	FieldThumbnailURL = "thumbnail_url"
	FieldImageURL     = "image_url"
)
