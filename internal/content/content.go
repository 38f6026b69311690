// Package content loads the profile and the blog and project catalogs.
//
// The defaults are embedded in the binary. A content directory may override
// any of the three documents; files missing from it fall back to the defaults.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
	"github.com/gcbaptista/go-portfolio/internal/errors"
	"github.com/gcbaptista/go-portfolio/model"
)

// Catalog names used in routes and analytics.
const (
	BlogCatalog     = "blog"
	ProjectsCatalog = "projects"
)

const (
	profileFile  = "profile.yaml"
	postsFile    = "posts.yaml"
	projectsFile = "projects.yaml"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// Content is everything the site renders. It is immutable once loaded.
type Content struct {
	Profile  model.Profile
	Posts    *catalog.Catalog[model.BlogPost]
	Projects *catalog.Catalog[model.Project]
}

// Catalog returns the faceted view of a catalog by name.
func (c *Content) Catalog(name string) (catalog.Faceted, error) {
	switch name {
	case BlogCatalog:
		return c.Posts, nil
	case ProjectsCatalog:
		return c.Projects, nil
	default:
		return nil, errors.NewCatalogNotFoundError(name)
	}
}

// Load reads the content documents. An empty dir uses the embedded defaults only.
func Load(dir string, logger *zap.Logger) (*Content, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var profile model.Profile
	if err := decode(dir, profileFile, &profile, logger); err != nil {
		return nil, err
	}
	if strings.TrimSpace(profile.Name) == "" {
		return nil, errors.NewValidationError("profile.name", "profile name is required")
	}

	var posts []model.BlogPost
	if err := decode(dir, postsFile, &posts, logger); err != nil {
		return nil, err
	}
	if err := validatePosts(posts); err != nil {
		return nil, err
	}

	var projects []model.Project
	if err := decode(dir, projectsFile, &projects, logger); err != nil {
		return nil, err
	}
	if err := validateProjects(projects); err != nil {
		return nil, err
	}

	postCatalog, err := catalog.New(BlogCatalog, posts)
	if err != nil {
		return nil, err
	}
	projectCatalog, err := catalog.New(ProjectsCatalog, projects)
	if err != nil {
		return nil, err
	}

	logger.Info("Content loaded",
		zap.String("dir", dir),
		zap.Int("posts", postCatalog.Len()),
		zap.Int("projects", projectCatalog.Len()))

	return &Content{Profile: profile, Posts: postCatalog, Projects: projectCatalog}, nil
}

// MustLoadDefaults loads the embedded content or panics.
func MustLoadDefaults() *Content {
	c, err := Load("", nil)
	if err != nil {
		panic(err)
	}
	return c
}

func decode(dir, name string, out any, logger *zap.Logger) error {
	data, source, err := read(dir, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", source, err)
	}
	logger.Debug("Decoded content document", zap.String("source", source))
	return nil
}

func read(dir, name string) ([]byte, string, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(filepath.Clean(path))
		if err == nil {
			return data, path, nil
		}
		if !os.IsNotExist(err) {
			return nil, path, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	data, err := fs.ReadFile(defaults, "defaults/"+name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return data, "embedded:" + name, nil
}

func validatePosts(posts []model.BlogPost) error {
	for i, p := range posts {
		if strings.TrimSpace(p.Slug) == "" {
			return errors.NewValidationError("slug", fmt.Sprintf("post %d has no slug", i))
		}
		if strings.TrimSpace(p.Title) == "" {
			return errors.NewValidationError("title", fmt.Sprintf("post '%s' has no title", p.Slug))
		}
		if p.PublishedAt.IsZero() {
			return errors.NewValidationError("date", fmt.Sprintf("post '%s' has no publication date", p.Slug))
		}
	}
	return nil
}

func validateProjects(projects []model.Project) error {
	for i, p := range projects {
		if strings.TrimSpace(p.ID) == "" {
			return errors.NewValidationError("id", fmt.Sprintf("project %d has no id", i))
		}
		if strings.TrimSpace(p.Title) == "" {
			return errors.NewValidationError("title", fmt.Sprintf("project '%s' has no title", p.ID))
		}
		if p.Year < 0 {
			return errors.NewValidationError("year", fmt.Sprintf("project '%s' has a negative year", p.ID))
		}
	}
	return nil
}

// CatalogNames lists the catalogs in navigation order.
func (c *Content) CatalogNames() []string {
	return []string{BlogCatalog, ProjectsCatalog}
}
