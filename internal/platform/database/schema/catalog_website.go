package schema

// CatalogWebsiteTable represents the 'catalog.website' table
type CatalogWebsiteTable struct {
	Table        string
	ID           string
	Slug         string
	Title        string
	Description  string
	OriginalURL  string
	ThumbnailURL string
	ImageURL     string
	PlatformID   string
	IsFeatured   string
	IsActive     string
	ViewCount    string
	CreatedAt    string
	UpdatedAt    string
}

// CatalogWebsite is the schema definition for catalog.website
var CatalogWebsite = CatalogWebsiteTable{
	Table:        "catalog.website",
	ID:           "id",
	Slug:         "slug",
	Title:        "title",
	Description:  "description",
	OriginalURL:  "originalurl",
	ThumbnailURL: "thumbnailurl",
	ImageURL:     "imageurl",
	PlatformID:   "platformid",
	IsFeatured:   "isfeatured",
	IsActive:     "isactive",
	ViewCount:    "viewcount",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t CatalogWebsiteTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Description, t.OriginalURL, t.ThumbnailURL,
		t.ImageURL, t.PlatformID, t.IsFeatured, t.IsActive, t.ViewCount,
		t.CreatedAt, t.UpdatedAt,
	}
}
