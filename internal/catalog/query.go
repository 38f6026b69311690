package catalog

import (
	"net/url"
	"strconv"
)

// ParamQuery is the query-string key holding the free-text query.
// Facet selections use Facet.String() as their key and may repeat.
const ParamQuery = "q"

// facetAliases are extra query-string keys accepted when parsing.
var facetAliases = map[string]Facet{
	"technology": FacetTag,
}

// ParseCriteria builds Criteria from query-string values.
// Repeated facet keys select several values. Empty values are ignored and
// duplicates collapse; an unparsable year is a validation error.
func ParseCriteria(values url.Values) (Criteria, error) {
	var c Criteria
	c.SetQuery(values.Get(ParamQuery))

	for _, facet := range Facets {
		for _, raw := range values[facet.String()] {
			if err := c.add(facet, raw); err != nil {
				return Criteria{}, err
			}
		}
	}
	for key, facet := range facetAliases {
		for _, raw := range values[key] {
			if err := c.add(facet, raw); err != nil {
				return Criteria{}, err
			}
		}
	}
	return c, nil
}

// Values encodes c as query-string values. For criteria built with SetQuery
// and Toggle, ParseCriteria(c.Values()) == c.
func (c Criteria) Values() url.Values {
	values := url.Values{}
	if c.Query != "" {
		values.Set(ParamQuery, c.Query)
	}
	for _, tag := range c.Tags {
		values.Add(FacetTag.String(), tag)
	}
	for _, category := range c.Categories {
		values.Add(FacetCategory.String(), category)
	}
	for _, year := range c.Years {
		values.Add(FacetYear.String(), strconv.Itoa(year))
	}
	return values
}

// Encode returns the criteria as an encoded query string, without the leading "?".
func (c Criteria) Encode() string {
	return c.Values().Encode()
}
