package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-portfolio/config"
	"github.com/gcbaptista/go-portfolio/internal/content"
	"github.com/gcbaptista/go-portfolio/internal/jobs"
	"github.com/gcbaptista/go-portfolio/internal/metrics"
	"github.com/gcbaptista/go-portfolio/internal/suggest"
	"github.com/gcbaptista/go-portfolio/services"
)

// Dependencies are the collaborators of the HTTP handlers.
// Contacts, Visitors and Jobs may be nil; the endpoints needing them then
// answer 503 and visits are not tracked.
type Dependencies struct {
	Settings  config.Settings
	Content   *content.Content
	Analytics interface {
		services.FilterTracker
		services.AnalyticsReporter
	}
	Contacts services.ContactStore
	Visitors services.VisitorStore
	Notifier services.Notifier
	Jobs     *jobs.Manager
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	// Pinger reports storage health; optional.
	Pinger interface{ Ping(ctx context.Context) error }
}

// API holds dependencies for API handlers.
type API struct {
	settings  config.Settings
	content   *content.Content
	analytics interface {
		services.FilterTracker
		services.AnalyticsReporter
	}
	contacts services.ContactStore
	visitors services.VisitorStore
	notifier services.Notifier
	jobs     *jobs.Manager
	metrics  *metrics.Metrics
	logger   *zap.Logger
	pinger   interface{ Ping(ctx context.Context) error }

	suggesters map[string]*suggest.Suggester
	startedAt  time.Time
	pending    sync.WaitGroup
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Dependencies) *API {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	suggesters := make(map[string]*suggest.Suggester)
	if deps.Content != nil {
		suggesters[content.BlogCatalog] = suggest.ForRecords(deps.Content.Posts.Records())
		suggesters[content.ProjectsCatalog] = suggest.ForRecords(deps.Content.Projects.Records())
	}

	return &API{
		settings:  deps.Settings,
		content:   deps.Content,
		analytics: deps.Analytics,
		contacts:  deps.Contacts,
		visitors:  deps.Visitors,
		notifier:  deps.Notifier,
		jobs:      deps.Jobs,
		metrics:   deps.Metrics,
		logger:    log,
		pinger:    deps.Pinger,

		suggesters: suggesters,
		startedAt:  time.Now(),
	}
}

// Close waits for background visit recording to finish.
func (api *API) Close() {
	api.pending.Wait()
}

// SetupRoutes registers middleware and every route on router.
func SetupRoutes(router *gin.Engine, api *API) error {
	if err := api.loadTemplates(router); err != nil {
		return err
	}

	router.Use(
		RequestIDMiddleware(),
		RequestLoggerMiddleware(api.logger),
		api.metrics.Middleware(),
		CORSMiddleware(api.settings.HTTP.CORSOrigins),
		RequestSizeLimitMiddleware(api.settings.HTTP.MaxBodyBytes),
	)
	if api.settings.VisitorTrackingEnabled() {
		router.Use(api.VisitorTrackingMiddleware())
	}

	router.GET("/health", api.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(api.metrics.Handler()))

	// Pages
	router.GET("/", api.HomePageHandler)
	router.GET("/blog", api.BlogPageHandler)
	router.GET("/blog/:slug", api.PostPageHandler)
	router.GET("/projects", api.ProjectsPageHandler)
	router.POST("/contact", api.ContactFormHandler)

	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/profile", api.GetProfileHandler)
		apiRoutes.GET("/posts", api.ListPostsHandler)
		apiRoutes.GET("/posts/:id", api.GetPostHandler)
		apiRoutes.GET("/projects", api.ListProjectsHandler)
		apiRoutes.GET("/projects/:id", api.GetProjectHandler)
		apiRoutes.GET("/facets/:catalog/:facet", api.FacetsHandler)
		apiRoutes.POST("/contact", api.CreateContactHandler)
	}

	adminRoutes := router.Group("/admin", api.AdminAuthMiddleware())
	{
		adminRoutes.GET("/analytics", api.GetAnalyticsHandler)
		adminRoutes.GET("/stats", api.GetStatsHandler)
		adminRoutes.GET("/contacts", api.ListContactsHandler)
		adminRoutes.GET("/jobs", api.ListJobsHandler)
		adminRoutes.GET("/jobs/:jobId", api.GetJobHandler)         // Get job status by ID
		adminRoutes.GET("/jobs/metrics", api.GetJobMetricsHandler) // Get job performance metrics
		adminRoutes.POST("/privacy/cleanup", api.PrivacyCleanupHandler)
	}

	router.NoRoute(api.NotFoundHandler)
	return nil
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":    "healthy",
		"service":   "go-portfolio",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
		"uptime":    time.Since(api.startedAt).Round(time.Second).String(),
	}

	catalogs := gin.H{}
	for _, name := range api.content.CatalogNames() {
		if cat, err := api.content.Catalog(name); err == nil {
			catalogs[name] = cat.Len()
		}
	}
	body["catalogs"] = catalogs

	if api.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := api.pinger.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = err.Error()
		} else {
			body["database"] = "ok"
		}
	}

	c.JSON(status, body)
}

// NotFoundHandler answers JSON for API paths and the HTML error page otherwise.
func (api *API) NotFoundHandler(c *gin.Context) {
	if isAPIRequest(c) {
		SendError(c, http.StatusNotFound, ErrorCodeRecordNotFound, "No route for "+c.Request.Method+" "+c.Request.URL.Path)
		return
	}
	api.renderError(c, http.StatusNotFound, "Page not found")
}
