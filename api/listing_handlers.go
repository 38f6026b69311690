package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-portfolio/internal/catalog"
	internalErrors "github.com/gcbaptista/go-portfolio/internal/errors"
	"github.com/gcbaptista/go-portfolio/internal/logger"
	"github.com/gcbaptista/go-portfolio/model"
	"github.com/gcbaptista/go-portfolio/services"
)

// GetProfileHandler returns the biography shown on the home page.
func (api *API) GetProfileHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.content.Profile)
}

// ListPostsHandler filters the blog catalog.
// Query: ?q=&tag=&year= (repeat a facet key to select several values)
func (api *API) ListPostsHandler(c *gin.Context) {
	result, ok := listCatalog(api, c, api.content.Posts)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListProjectsHandler filters the projects catalog.
// Query: ?q=&category=&tag=&technology=&year=
func (api *API) ListProjectsHandler(c *gin.Context) {
	result, ok := listCatalog(api, c, api.content.Projects)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPostHandler returns one post by slug.
func (api *API) GetPostHandler(c *gin.Context) {
	getRecord(c, api.content.Posts)
}

// GetProjectHandler returns one project by ID.
func (api *API) GetProjectHandler(c *gin.Context) {
	getRecord(c, api.content.Projects)
}

// FacetsHandler returns the distinct values of a facet over a whole catalog.
func (api *API) FacetsHandler(c *gin.Context) {
	name := c.Param("catalog")

	facet, result := ValidateFacetName(c.Param("facet"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	cat, err := api.content.Catalog(name)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCatalogNotFound) {
			SendCatalogNotFoundError(c, name)
			return
		}
		SendInternalError(c, "resolve catalog", err)
		return
	}

	values := cat.FacetValues(facet)
	c.JSON(http.StatusOK, gin.H{
		"catalog": cat.Name(),
		"facet":   facet.String(),
		"values":  values,
		"total":   len(values),
	})
}

// parseListingCriteria reads and bounds the criteria of a listing request.
// On failure the error response has already been written.
func (api *API) parseListingCriteria(c *gin.Context) (catalog.Criteria, bool) {
	criteria, err := catalog.ParseCriteria(c.Request.URL.Query())
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid listing criteria: "+err.Error())
		return catalog.Criteria{}, false
	}

	if result := ValidateCriteria(criteria, api.settings.Filter.MaxQueryLength, api.settings.Filter.MaxSelections); result.HasErrors() {
		SendValidationError(c, result)
		return catalog.Criteria{}, false
	}
	return criteria, true
}

// listCatalog runs one filter request against cat and records it.
func listCatalog[R catalog.Record](api *API, c *gin.Context, cat *catalog.Catalog[R]) (services.ListingResult[R], bool) {
	criteria, ok := api.parseListingCriteria(c)
	if !ok {
		return services.ListingResult[R]{}, false
	}

	start := time.Now()
	items := cat.Filter(criteria)
	took := time.Since(start)

	facets := make(map[string][]string, len(catalog.Facets))
	for _, facet := range catalog.Facets {
		facets[facet.String()] = cat.FacetValues(facet)
	}

	api.recordFilter(c, cat.Name(), criteria, len(items), took)

	var suggestion *services.Suggestion
	if len(items) == 0 {
		suggestion, _ = suggestFor(api, cat, criteria)
	}

	return services.ListingResult[R]{
		Items:       items,
		Total:       len(items),
		CatalogSize: cat.Len(),
		Criteria:    criteria,
		Facets:      facets,
		Took:        took.Microseconds(),
		QueryID:     uuid.NewString(),
		Suggestion:  suggestion,
	}, true
}

// recordFilter feeds one listing request to analytics and prometheus.
func (api *API) recordFilter(c *gin.Context, catalogName string, criteria catalog.Criteria, results int, took time.Duration) {
	api.metrics.ObserveFilter(catalogName, took, results)

	if api.analytics == nil {
		return
	}

	selections := make(map[string][]string)
	for _, facet := range catalog.Facets {
		if values := criteria.Selected(facet); len(values) > 0 {
			selections[facet.String()] = values
		}
	}

	event := model.FilterEvent{
		Catalog:      catalogName,
		Query:        criteria.Query,
		Selections:   selections,
		ResponseTime: took,
		ResultCount:  results,
	}
	if err := api.analytics.TrackFilterEvent(event); err != nil {
		logger.FromContext(c.Request.Context()).Warn("Failed to track filter event",
			zap.String("catalog", catalogName), zap.Error(err))
	}
}

func getRecord[R catalog.Record](c *gin.Context, cat *catalog.Catalog[R]) {
	id := c.Param("id")
	if result := ValidateRecordID(id); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	record, err := cat.Get(id)
	if err != nil {
		if errors.Is(err, internalErrors.ErrRecordNotFound) {
			SendRecordNotFoundError(c, id, cat.Name())
			return
		}
		SendInternalError(c, "get record", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// suggestFor offers a spelling-corrected query that matches at least one record
// under the same facet selections, along with the corrected criteria.
func suggestFor[R catalog.Record](api *API, cat *catalog.Catalog[R], criteria catalog.Criteria) (*services.Suggestion, catalog.Criteria) {
	s := api.suggesters[cat.Name()]
	if s == nil || criteria.Query == "" {
		return nil, criteria
	}

	corrected, ok := s.Correct(criteria.Query)
	if !ok {
		return nil, criteria
	}

	alternative := criteria.Clone()
	alternative.SetQuery(corrected)
	n := len(cat.Filter(alternative))
	if n == 0 {
		return nil, criteria
	}
	return &services.Suggestion{Query: corrected, Total: n}, alternative
}
