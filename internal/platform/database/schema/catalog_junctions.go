package schema

// Junction tables linking catalog.website to its taxonomy entities.
// Composite primary key on (website id, taxonomy id); both sides cascade
// on delete so no orphan association rows can survive.

// WebsiteCategoryTable represents the 'catalog.websitecategory' table
type WebsiteCategoryTable struct {
	Table      string
	WebsiteID  string
	CategoryID string
}

// WebsiteCategory is the schema definition for catalog.websitecategory
var WebsiteCategory = WebsiteCategoryTable{
	Table:      "catalog.websitecategory",
	WebsiteID:  "websiteid",
	CategoryID: "categoryid",
}

// WebsiteStyleTable represents the 'catalog.websitestyle' table
type WebsiteStyleTable struct {
	Table     string
	WebsiteID string
	StyleID   string
}

// WebsiteStyle is the schema definition for catalog.websitestyle
var WebsiteStyle = WebsiteStyleTable{
	Table:     "catalog.websitestyle",
	WebsiteID: "websiteid",
	StyleID:   "styleid",
}

// WebsiteCollectionTable represents the 'catalog.websitecollection' table
type WebsiteCollectionTable struct {
	Table        string
	WebsiteID    string
	CollectionID string
}

// WebsiteCollection is the schema definition for catalog.websitecollection
var WebsiteCollection = WebsiteCollectionTable{
	Table:        "catalog.websitecollection",
	WebsiteID:    "websiteid",
	CollectionID: "collectionid",
}
