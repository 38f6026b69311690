// Package catalog implements filtering over small, immutable record catalogs.
//
// A catalog is a fixed, ordered collection of records (blog posts, projects).
// Criteria are plain data owned by the caller; filtering is a pure function of
// (catalog, criteria) that preserves the catalog's original order.
package catalog

import (
	"strings"

	"github.com/gcbaptista/go-portfolio/internal/errors"
)

// Facet is a filterable dimension of a record.
// The set of facets is closed; each facet carries its own comparison rule.
type Facet int

const (
	// FacetTag is multi-valued. A record matches when its tags intersect the selection.
	FacetTag Facet = iota
	// FacetCategory is single-valued and compared by exact match.
	FacetCategory
	// FacetYear is single-valued and compared as an integer.
	FacetYear
)

// Facets lists every facet in display order.
var Facets = []Facet{FacetTag, FacetCategory, FacetYear}

// String returns the facet's query-string name.
func (f Facet) String() string {
	switch f {
	case FacetTag:
		return "tag"
	case FacetCategory:
		return "category"
	case FacetYear:
		return "year"
	default:
		return "unknown"
	}
}

// ParseFacet resolves a facet from its name. "tags" and "technology" are accepted
// as aliases for the tag facet since the projects page labels tags as technologies.
func ParseFacet(name string) (Facet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tag", "tags", "technology", "technologies":
		return FacetTag, nil
	case "category", "categories":
		return FacetCategory, nil
	case "year", "years":
		return FacetYear, nil
	default:
		return 0, errors.NewUnknownFacetError(name)
	}
}

// valid reports whether f is one of the declared facets.
func (f Facet) valid() bool {
	return f >= FacetTag && f <= FacetYear
}
