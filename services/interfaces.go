package services

import (
	"context"
	"time"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
	"github.com/gcbaptista/go-portfolio/model"
)

// ListingResult is one filtered view of a catalog.
type ListingResult[R any] struct {
	Items       []R                 `json:"items"`
	Total       int                 `json:"total"`        // Number of records matching the criteria
	CatalogSize int                 `json:"catalog_size"` // Number of records in the whole catalog
	Criteria    catalog.Criteria    `json:"criteria"`
	Facets      map[string][]string `json:"facets"` // Available values per facet, over the whole catalog
	Took        int64               `json:"took"`   // microseconds
	QueryID     string              `json:"query_id"`
	Suggestion  *Suggestion         `json:"suggestion,omitempty"` // Only set when nothing matched
}

// Suggestion is a spelling-corrected query offered for an empty listing.
type Suggestion struct {
	Query string `json:"query"`
	Total int    `json:"total"` // Number of records the corrected query matches
}

// CatalogProvider resolves catalogs by name
type CatalogProvider interface {
	Catalog(name string) (catalog.Faceted, error)
	CatalogNames() []string
}

// FilterTracker records listing requests for analytics
type FilterTracker interface {
	TrackFilterEvent(event model.FilterEvent) error
}

// AnalyticsReporter builds the analytics dashboard
type AnalyticsReporter interface {
	GetDashboardData() (model.AnalyticsDashboard, error)
}

// ContactStore persists contact form submissions
type ContactStore interface {
	SaveContactMessage(ctx context.Context, msg *model.ContactMessage) error
	GetContactMessage(ctx context.Context, id string) (model.ContactMessage, error)
	ListContactMessages(ctx context.Context, limit int) ([]model.ContactMessage, error)
	MarkNotified(ctx context.Context, id string, at time.Time) error
}

// VisitorStore persists privacy-preserving page visits
type VisitorStore interface {
	RecordVisit(ctx context.Context, visit model.Visit) error
	VisitorStats(ctx context.Context, now time.Time) (model.SiteStats, error)
	DeleteVisitsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Notifier delivers a contact message to the site owner
type Notifier interface {
	NotifyContact(ctx context.Context, msg model.ContactMessage) error
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(jobType model.JobType, status *model.JobStatus) []*model.Job
}
