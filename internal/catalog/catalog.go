package catalog

import (
	"slices"
	"strconv"

	"github.com/gcbaptista/go-portfolio/internal/errors"
)

// Catalog is a named, immutable, ordered set of records.
// It is safe for concurrent use because nothing mutates it after New.
type Catalog[R Record] struct {
	name    string
	records []R
	byID    map[string]int
	facets  map[Facet][]string
	years   []int
}

// Faceted is the type-independent view of a catalog used by handlers that only
// need facet metadata.
type Faceted interface {
	Name() string
	Len() int
	FacetValues(facet Facet) []string
}

// New builds a catalog from records, keeping their order.
// Record identifiers must be non-empty and unique.
func New[R Record](name string, records []R) (*Catalog[R], error) {
	c := &Catalog[R]{
		name:    name,
		records: slices.Clone(records),
		byID:    make(map[string]int, len(records)),
		facets:  make(map[Facet][]string, len(Facets)),
	}
	if c.records == nil {
		c.records = []R{}
	}

	for i, record := range c.records {
		id := record.CatalogFields().ID
		if id == "" {
			return nil, errors.NewValidationError("id", "record at position "+strconv.Itoa(i)+" in catalog '"+name+"' has no ID")
		}
		if _, dup := c.byID[id]; dup {
			return nil, errors.NewDuplicateRecordError(id, name)
		}
		c.byID[id] = i
	}

	// Facet values only depend on the records, so they are computed once.
	for _, facet := range Facets {
		c.facets[facet] = AvailableFacetValues(c.records, facet)
	}
	c.years = AvailableYears(c.records)

	return c, nil
}

// Name returns the catalog name.
func (c *Catalog[R]) Name() string { return c.name }

// Len returns the number of records.
func (c *Catalog[R]) Len() int { return len(c.records) }

// Records returns a copy of all records in catalog order.
func (c *Catalog[R]) Records() []R {
	return slices.Clone(c.records)
}

// Get returns the record with the given identifier.
func (c *Catalog[R]) Get(id string) (R, error) {
	i, ok := c.byID[id]
	if !ok {
		var zero R
		return zero, errors.NewRecordNotFoundError(id, c.name)
	}
	return c.records[i], nil
}

// Filter applies criteria to the catalog.
func (c *Catalog[R]) Filter(criteria Criteria) []R {
	return Apply(c.records, criteria)
}

// FacetValues returns the distinct values of facet across the whole catalog.
func (c *Catalog[R]) FacetValues(facet Facet) []string {
	if !facet.valid() {
		return []string{}
	}
	return slices.Clone(c.facets[facet])
}

// Years returns the distinct years across the catalog, newest first.
func (c *Catalog[R]) Years() []int {
	return slices.Clone(c.years)
}
