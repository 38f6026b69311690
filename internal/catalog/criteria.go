package catalog

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gcbaptista/go-portfolio/internal/errors"
)

// Criteria is the query state for one listing: a free-text query plus one
// selection set per facet. The zero value selects everything.
//
// Criteria is plain data. The caller owns it, mutates it in response to input
// events and passes it to Apply or Matches; the filter never keeps a reference.
type Criteria struct {
	Query      string   `json:"query"`
	Tags       []string `json:"tags,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Years      []int    `json:"years,omitempty"`
}

// IsEmpty reports whether the criteria impose no restriction at all.
func (c Criteria) IsEmpty() bool {
	return c.Query == "" && !c.HasSelections()
}

// HasSelections reports whether any facet has a selected value.
func (c Criteria) HasSelections() bool {
	return len(c.Tags) > 0 || len(c.Categories) > 0 || len(c.Years) > 0
}

// Clone returns a deep copy.
func (c Criteria) Clone() Criteria {
	return Criteria{
		Query:      c.Query,
		Tags:       slices.Clone(c.Tags),
		Categories: slices.Clone(c.Categories),
		Years:      slices.Clone(c.Years),
	}
}

// SetQuery replaces the free-text query. Surrounding whitespace is dropped.
func (c *Criteria) SetQuery(query string) {
	c.Query = strings.TrimSpace(query)
}

// Clear resets the query and every selection.
func (c *Criteria) Clear() {
	*c = Criteria{}
}

// Toggle adds value to the facet's selection, or removes it if already selected.
// Year values must be integers. An empty value is ignored.
func (c *Criteria) Toggle(facet Facet, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	switch facet {
	case FacetTag:
		c.ToggleTag(value)
	case FacetCategory:
		c.ToggleCategory(value)
	case FacetYear:
		year, err := parseYear(value)
		if err != nil {
			return err
		}
		c.ToggleYear(year)
	default:
		return errors.NewUnknownFacetError(facet.String())
	}
	return nil
}

// ToggleTag flips the selection of a tag. Tags compare case-insensitively.
func (c *Criteria) ToggleTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	if i := indexFold(c.Tags, tag); i >= 0 {
		c.Tags = slices.Delete(c.Tags, i, i+1)
		return
	}
	c.Tags = append(c.Tags, tag)
}

// ToggleCategory flips the selection of a category.
func (c *Criteria) ToggleCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		return
	}
	if i := slices.Index(c.Categories, category); i >= 0 {
		c.Categories = slices.Delete(c.Categories, i, i+1)
		return
	}
	c.Categories = append(c.Categories, category)
}

// ToggleYear flips the selection of a year.
func (c *Criteria) ToggleYear(year int) {
	if i := slices.Index(c.Years, year); i >= 0 {
		c.Years = slices.Delete(c.Years, i, i+1)
		return
	}
	c.Years = append(c.Years, year)
}

// Toggled returns a copy of c with value toggled, leaving c untouched.
// Templates use it to build the link for each selectable facet value.
func (c Criteria) Toggled(facet Facet, value string) (Criteria, error) {
	next := c.Clone()
	if err := next.Toggle(facet, value); err != nil {
		return c, err
	}
	return next, nil
}

// IsSelected reports whether value is currently selected for facet.
func (c Criteria) IsSelected(facet Facet, value string) bool {
	switch facet {
	case FacetTag:
		return indexFold(c.Tags, value) >= 0
	case FacetCategory:
		return slices.Contains(c.Categories, value)
	case FacetYear:
		year, err := strconv.Atoi(strings.TrimSpace(value))
		return err == nil && slices.Contains(c.Years, year)
	default:
		return false
	}
}

// Selected returns the selected values of a facet in their display form.
func (c Criteria) Selected(facet Facet) []string {
	switch facet {
	case FacetTag:
		return slices.Clone(c.Tags)
	case FacetCategory:
		return slices.Clone(c.Categories)
	case FacetYear:
		out := make([]string, len(c.Years))
		for i, y := range c.Years {
			out[i] = strconv.Itoa(y)
		}
		return out
	default:
		return nil
	}
}

// add selects value without toggling; duplicates are dropped.
func (c *Criteria) add(facet Facet, value string) error {
	value = strings.TrimSpace(value)
	if value == "" || c.IsSelected(facet, value) {
		return nil
	}
	return c.Toggle(facet, value)
}

func parseYear(value string) (int, error) {
	year, err := strconv.Atoi(value)
	if err != nil || year <= 0 {
		return 0, errors.NewValidationError("year", "'"+value+"' is not a valid year")
	}
	return year, nil
}

func indexFold(values []string, target string) int {
	for i, v := range values {
		if strings.EqualFold(v, target) {
			return i
		}
	}
	return -1
}
