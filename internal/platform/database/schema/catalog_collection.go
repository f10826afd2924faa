package schema

// CatalogCollectionTable represents the 'catalog.collection' table
type CatalogCollectionTable struct {
	Table        string
	ID           string
	Slug         string
	Title        string
	Description  string
	WebsiteCount string
	IsActive     string
}

// CatalogCollection is the schema definition for catalog.collection
var CatalogCollection = CatalogCollectionTable{
	Table:        "catalog.collection",
	ID:           "id",
	Slug:         "slug",
	Title:        "title",
	Description:  "description",
	WebsiteCount: "websitecount",
	IsActive:     "isactive",
}
