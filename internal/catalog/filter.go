package catalog

import (
	"slices"
	"strconv"
	"strings"
)

// matcher is Criteria normalized for comparison: the query and the selected
// tags are lower-cased once so a full pass over the catalog does not redo it.
type matcher struct {
	query      string
	tags       map[string]struct{}
	categories map[string]struct{}
	years      map[int]struct{}
}

func newMatcher(c Criteria) matcher {
	m := matcher{query: strings.ToLower(c.Query)}
	if len(c.Tags) > 0 {
		m.tags = make(map[string]struct{}, len(c.Tags))
		for _, tag := range c.Tags {
			m.tags[strings.ToLower(tag)] = struct{}{}
		}
	}
	if len(c.Categories) > 0 {
		m.categories = make(map[string]struct{}, len(c.Categories))
		for _, category := range c.Categories {
			m.categories[category] = struct{}{}
		}
	}
	if len(c.Years) > 0 {
		m.years = make(map[int]struct{}, len(c.Years))
		for _, year := range c.Years {
			m.years[year] = struct{}{}
		}
	}
	return m
}

func (m matcher) match(f Fields) bool {
	return m.matchText(f) && m.matchTags(f) && m.matchCategory(f) && m.matchYear(f)
}

// matchText is a case-insensitive substring test over the text fields and the tags.
func (m matcher) matchText(f Fields) bool {
	if m.query == "" {
		return true
	}
	for _, text := range f.Text {
		if strings.Contains(strings.ToLower(text), m.query) {
			return true
		}
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), m.query) {
			return true
		}
	}
	return false
}

func (m matcher) matchTags(f Fields) bool {
	if len(m.tags) == 0 {
		return true
	}
	for _, tag := range f.Tags {
		if _, ok := m.tags[strings.ToLower(tag)]; ok {
			return true
		}
	}
	return false
}

func (m matcher) matchCategory(f Fields) bool {
	if len(m.categories) == 0 {
		return true
	}
	_, ok := m.categories[f.Category]
	return ok
}

func (m matcher) matchYear(f Fields) bool {
	if len(m.years) == 0 {
		return true
	}
	_, ok := m.years[f.Year]
	return ok
}

// Matches reports whether record satisfies the text query and every non-empty
// facet selection. Selections are OR-ed within a facet and AND-ed across facets.
func Matches[R Record](record R, criteria Criteria) bool {
	return newMatcher(criteria).match(record.CatalogFields())
}

// Apply returns the records matching criteria, in catalog order.
// Neither argument is modified; the result is always a fresh slice.
func Apply[R Record](records []R, criteria Criteria) []R {
	if criteria.IsEmpty() {
		return slices.Clone(records)
	}

	m := newMatcher(criteria)
	out := make([]R, 0, len(records))
	for _, record := range records {
		if m.match(record.CatalogFields()) {
			out = append(out, record)
		}
	}
	return out
}

// AvailableFacetValues returns the distinct values of facet across records.
// Tags and categories keep first-appearance order, years are newest first.
// Tags that differ only in case are reported once, with the first spelling seen.
func AvailableFacetValues[R Record](records []R, facet Facet) []string {
	switch facet {
	case FacetTag:
		seen := make(map[string]struct{})
		values := make([]string, 0)
		for _, record := range records {
			for _, tag := range record.CatalogFields().Tags {
				key := strings.ToLower(tag)
				if _, ok := seen[key]; ok || tag == "" {
					continue
				}
				seen[key] = struct{}{}
				values = append(values, tag)
			}
		}
		return values
	case FacetCategory:
		seen := make(map[string]struct{})
		values := make([]string, 0)
		for _, record := range records {
			category := record.CatalogFields().Category
			if _, ok := seen[category]; ok || category == "" {
				continue
			}
			seen[category] = struct{}{}
			values = append(values, category)
		}
		return values
	case FacetYear:
		years := AvailableYears(records)
		values := make([]string, len(years))
		for i, year := range years {
			values[i] = strconv.Itoa(year)
		}
		return values
	default:
		return []string{}
	}
}

// AvailableYears returns the distinct non-zero years across records, newest first.
func AvailableYears[R Record](records []R) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, record := range records {
		year := record.CatalogFields().Year
		if _, ok := seen[year]; ok || year == 0 {
			continue
		}
		seen[year] = struct{}{}
		years = append(years, year)
	}
	slices.SortFunc(years, func(a, b int) int { return b - a })
	return years
}
