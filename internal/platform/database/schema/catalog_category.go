package schema

// CatalogCategoryTable represents the 'catalog.category' table
type CatalogCategoryTable struct {
	Table        string
	ID           string
	Slug         string
	Title        string
	Description  string
	Icon         string
	WebsiteCount string
	SortOrder    string
	IsActive     string
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogCategoryTable{
	Table:        "catalog.category",
	ID:           "id",
	Slug:         "slug",
	Title:        "title",
	Description:  "description",
	Icon:         "icon",
	WebsiteCount: "websitecount",
	SortOrder:    "sortorder",
	IsActive:     "isactive",
}
