package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
	internalErrors "github.com/gcbaptista/go-portfolio/internal/errors"
	"github.com/gcbaptista/go-portfolio/internal/testutil"
	"github.com/gcbaptista/go-portfolio/model"
)

func TestNew(t *testing.T) {
	c, err := catalog.New("projects", testutil.SampleProjects())
	require.NoError(t, err)

	assert.Equal(t, "projects", c.Name())
	assert.Equal(t, 8, c.Len())
	assert.Equal(t, []int{2023, 2022, 2021}, c.Years())
	assert.Equal(t, []string{"2023", "2022", "2021"}, c.FacetValues(catalog.FacetYear))
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	projects := []model.Project{{ID: "1", Title: "One"}, {ID: "1", Title: "Uno"}}

	_, err := catalog.New("projects", projects)

	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrDuplicateRecord))
}

func TestNew_RejectsMissingID(t *testing.T) {
	_, err := catalog.New("projects", []model.Project{{Title: "Nameless"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))
}

func TestNew_NilRecords(t *testing.T) {
	c, err := catalog.New[model.BlogPost]("blog", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, c.Len())
	assert.NotNil(t, c.Records())
	assert.Empty(t, c.Filter(catalog.Criteria{}))
	assert.Empty(t, c.FacetValues(catalog.FacetTag))
}

func TestCatalog_IsIsolatedFromCallerSlices(t *testing.T) {
	projects := testutil.SampleProjects()
	c, err := catalog.New("projects", projects)
	require.NoError(t, err)

	projects[0].Title = "changed"
	records := c.Records()
	records[1].Title = "changed too"

	assert.Equal(t, "E-Commerce Platform", c.Records()[0].Title)
	assert.Equal(t, "Task Management App", c.Records()[1].Title)

	values := c.FacetValues(catalog.FacetCategory)
	values[0] = "changed"
	assert.Equal(t, "Web Development", c.FacetValues(catalog.FacetCategory)[0])
}

func TestCatalog_Get(t *testing.T) {
	c := testutil.PostCatalog(t)

	post, err := c.Get("getting-started-nextjs-14")
	require.NoError(t, err)
	assert.Equal(t, "Getting Started with Next.js 14", post.Title)

	_, err = c.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrRecordNotFound))
	assert.Contains(t, err.Error(), "blog")
}

func TestCatalog_FacetValuesUnknownFacet(t *testing.T) {
	c := testutil.ProjectCatalog(t)

	assert.Empty(t, c.FacetValues(catalog.Facet(9)))
}

func TestCatalog_SatisfiesFaceted(t *testing.T) {
	var faceted catalog.Faceted = testutil.ProjectCatalog(t)

	assert.Equal(t, "projects", faceted.Name())
	assert.Len(t, faceted.FacetValues(catalog.FacetCategory), 4)
}
