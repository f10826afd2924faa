package schema

// CatalogStyleTable represents the 'catalog.style' table
type CatalogStyleTable struct {
	Table        string
	ID           string
	Slug         string
	Title        string
	Description  string
	WebsiteCount string
	IsActive     string
}

// CatalogStyle is the schema definition for catalog.style
var CatalogStyle = CatalogStyleTable{
	Table:        "catalog.style",
	ID:           "id",
	Slug:         "slug",
	Title:        "title",
	Description:  "description",
	WebsiteCount: "websitecount",
	IsActive:     "isactive",
}
