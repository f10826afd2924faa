package schema

// CatalogPlatformTable represents the 'catalog.platform' table
type CatalogPlatformTable struct {
	Table string
	ID    string
	Slug  string
	Title string
	URL   string
}

// CatalogPlatform is the schema definition for catalog.platform
var CatalogPlatform = CatalogPlatformTable{
	Table: "catalog.platform",
	ID:    "id",
	Slug:  "slug",
	Title: "title",
	URL:   "url",
}
