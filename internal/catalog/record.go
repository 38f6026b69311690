package catalog

// Fields is the filterable view of a record.
type Fields struct {
	// ID is unique within a catalog.
	ID string
	// Text holds the fields eligible for substring matching (title, summary, ...).
	Text []string
	// Tags is an unordered set of labels; values may repeat across records.
	Tags []string
	// Category is empty when the record has no category.
	Category string
	// Year is zero when the record has no year.
	Year int
}

// Record is implemented by anything that can be placed in a catalog.
type Record interface {
	CatalogFields() Fields
}
