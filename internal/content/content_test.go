package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-portfolio/internal/errors"
	"github.com/gcbaptista/go-portfolio/internal/testutil"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "Sami Ullah Saleem", c.Profile.Name)
	assert.Len(t, c.Profile.Skills, 3)
	assert.Len(t, c.Profile.Experience, 2)

	// The embedded catalogs are the same data the tests use everywhere else.
	assert.Equal(t, testutil.SamplePosts()[0].PublishedAt, c.Posts.Records()[0].PublishedAt)
	assert.Equal(t, testutil.PostTitles(testutil.SamplePosts()), testutil.PostTitles(c.Posts.Records()))
	assert.Equal(t, testutil.ProjectTitles(testutil.SampleProjects()), testutil.ProjectTitles(c.Projects.Records()))

	for i, p := range c.Projects.Records() {
		expected := testutil.SampleProjects()[i]
		assert.Equal(t, expected.Technologies, p.Technologies)
		assert.Equal(t, expected.Category, p.Category)
		assert.Equal(t, expected.Year, p.Year)
	}
}

func TestLoad_DirectoryOverridesSingleDocument(t *testing.T) {
	dir := t.TempDir()
	projects := `
- id: go-1
  title: Portfolio Service
  description: The site itself.
  category: Backend
  technologies: [Go, SQLite]
  year: 2026
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.yaml"), []byte(projects), 0o600))

	c, err := Load(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, c.Projects.Len())
	assert.Equal(t, []string{"Go", "SQLite"}, c.Projects.Records()[0].Technologies)
	assert.Equal(t, 6, c.Posts.Len(), "posts fall back to the embedded defaults")
}

func TestLoad_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		body  string
		field string
	}{
		{
			name:  "project without id",
			file:  "projects.yaml",
			body:  "- title: Nameless\n",
			field: "id",
		},
		{
			name:  "post without date",
			file:  "posts.yaml",
			body:  "- slug: draft\n  title: Draft\n",
			field: "date",
		},
		{
			name:  "profile without name",
			file:  "profile.yaml",
			body:  "headline: Nobody\n",
			field: "profile.name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.body), 0o600))

			_, err := Load(dir, nil)
			require.Error(t, err)

			var validationErr *internalErrors.ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestLoad_DuplicateProjectIDs(t *testing.T) {
	dir := t.TempDir()
	body := "- id: a\n  title: One\n- id: a\n  title: Two\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.yaml"), []byte(body), 0o600))

	_, err := Load(dir, nil)

	assert.True(t, errors.Is(err, internalErrors.ErrDuplicateRecord))
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts.yaml"), []byte("- slug: [unterminated\n"), 0o600))

	_, err := Load(dir, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "posts.yaml")
}

func TestContent_Catalog(t *testing.T) {
	c := MustLoadDefaults()

	blog, err := c.Catalog(BlogCatalog)
	require.NoError(t, err)
	assert.Equal(t, 6, blog.Len())

	projects, err := c.Catalog(ProjectsCatalog)
	require.NoError(t, err)
	assert.Equal(t, 8, projects.Len())

	_, err = c.Catalog("recipes")
	assert.True(t, errors.Is(err, internalErrors.ErrCatalogNotFound))
}
