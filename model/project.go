package model

import (
	"github.com/gcbaptista/go-portfolio/internal/catalog"
)

// Project is an entry of the projects catalog.
type Project struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Image        string   `json:"image,omitempty" yaml:"image"`
	Category     string   `json:"category" yaml:"category"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Year         int      `json:"year" yaml:"year"`
	DemoURL      string   `json:"demo_url,omitempty" yaml:"demo_url"`
	GitHubURL    string   `json:"github_url,omitempty" yaml:"github_url"`
	Featured     bool     `json:"featured,omitempty" yaml:"featured"`
}

// CatalogFields maps technologies onto the tag facet.
func (p Project) CatalogFields() catalog.Fields {
	return catalog.Fields{
		ID:       p.ID,
		Text:     []string{p.Title, p.Description},
		Tags:     p.Technologies,
		Category: p.Category,
		Year:     p.Year,
	}
}
