package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAnalyticsHandler handles the request to get filter analytics
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	if api.analytics == nil {
		SendUnavailableError(c, "Analytics")
		return
	}

	dashboard, err := api.analytics.GetDashboardData()
	if err != nil {
		SendInternalError(c, "retrieve analytics data", err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetStatsHandler reports visitor statistics
func (api *API) GetStatsHandler(c *gin.Context) {
	if api.visitors == nil {
		SendUnavailableError(c, "Visitor statistics")
		return
	}

	stats, err := api.visitors.VisitorStats(c.Request.Context(), time.Now())
	if err != nil {
		SendPersistenceError(c, "load visitor statistics", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"tracking":       api.settings.VisitorTrackingEnabled(),
		"retention_days": api.settings.Privacy.RetentionDays,
	})
}
