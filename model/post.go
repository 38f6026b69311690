package model

import (
	"time"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
)

// BlogPost is an entry of the blog catalog.
// The slug is the record identifier and the path segment of the post page.
type BlogPost struct {
	Slug        string    `json:"slug" yaml:"slug"`
	Title       string    `json:"title" yaml:"title"`
	Excerpt     string    `json:"excerpt" yaml:"excerpt"`
	Content     string    `json:"content,omitempty" yaml:"content"`
	Image       string    `json:"image,omitempty" yaml:"image"`
	Author      string    `json:"author" yaml:"author"`
	PublishedAt time.Time `json:"published_at" yaml:"date"`
	ReadTime    string    `json:"read_time" yaml:"read_time"`
	Tags        []string  `json:"tags" yaml:"tags"`
}

// CatalogFields exposes title and excerpt as searchable text and the
// publication year as the year facet. Posts have no category.
func (p BlogPost) CatalogFields() catalog.Fields {
	fields := catalog.Fields{
		ID:   p.Slug,
		Text: []string{p.Title, p.Excerpt},
		Tags: p.Tags,
	}
	if !p.PublishedAt.IsZero() {
		fields.Year = p.PublishedAt.Year()
	}
	return fields
}

// DisplayDate formats the publication date the way the listing shows it.
func (p BlogPost) DisplayDate() string {
	if p.PublishedAt.IsZero() {
		return ""
	}
	return p.PublishedAt.Format("January 2, 2006")
}

// PreviewTags returns at most n tags plus the number left out.
func (p BlogPost) PreviewTags(n int) ([]string, int) {
	if len(p.Tags) <= n {
		return p.Tags, 0
	}
	return p.Tags[:n], len(p.Tags) - n
}
