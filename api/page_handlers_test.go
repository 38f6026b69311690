package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
)

func TestHomePage(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.get(t, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Sami Ullah Saleem")
	assert.Contains(t, body, "E-Commerce Platform")
	assert.Contains(t, body, `action="/contact"`)
}

func TestBlogPage(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.get(t, "/blog?q=typescript")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Power of TypeScript in Modern Web Development")
	assert.NotContains(t, w.Body.String(), "Getting Started with Next.js 14")
	assert.Contains(t, w.Body.String(), "Clear filters")

	w = srv.get(t, "/blog?q=kubernetes")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), emptyBlogMessage)

	w = srv.get(t, "/blog")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), emptyBlogMessage)
	assert.NotContains(t, w.Body.String(), "Clear filters")
}

func TestProjectsPage(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.get(t, "/projects?category=Mobile+Development")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Weather App")
	assert.Contains(t, body, "Fitness Tracker")
	assert.NotContains(t, body, "Blog Platform")

	w = srv.get(t, "/projects?category=Game+Development")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), emptyProjectsMessage)

	w = srv.get(t, "/projects?year=soon")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostPage(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.get(t, "/blog/getting-started-nextjs-14")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Getting Started with Next.js 14")
	assert.Contains(t, w.Body.String(), "February 28, 2024")

	w = srv.get(t, "/blog/missing-post")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")
}

func TestFacetOptions(t *testing.T) {
	criteria := catalog.Criteria{Query: "app", Categories: []string{"Web Development"}}

	options := facetOptions("/projects", criteria, catalog.FacetCategory, []string{"Web Development", "AI/ML"})
	require.Len(t, options, 2)

	assert.True(t, options[0].Selected)
	assert.Equal(t, "/projects?q=app", options[0].URL)

	assert.False(t, options[1].Selected)
	assert.Equal(t, "/projects?category=Web+Development&category=AI%2FML&q=app", options[1].URL)

	// Toggling never changes the criteria the page was rendered with.
	assert.Equal(t, []string{"Web Development"}, criteria.Categories)
}

func TestListingURL(t *testing.T) {
	assert.Equal(t, "/blog", listingURL("/blog", catalog.Criteria{}))
	assert.Equal(t, "/blog?tag=Go", listingURL("/blog", catalog.Criteria{Tags: []string{"Go"}}))
}

func TestParagraphs(t *testing.T) {
	text := "First line\nwraps here.\n\n\nSecond paragraph.\n"
	assert.Equal(t, []string{"First line wraps here.", "Second paragraph."}, paragraphs(text))
	assert.Empty(t, paragraphs("  \n\n "))
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, m)

	_, err = dict("odd")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)
}

func TestBlogPage_Suggestion(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.get(t, "/blog?q=typscript&tag=TypeScript")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, emptyBlogMessage)
	assert.Contains(t, body, "Did you mean")
	assert.Contains(t, body, `href="/blog?q=typescript&amp;tag=TypeScript"`)
}
