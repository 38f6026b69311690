package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-portfolio/internal/jobs"
	"github.com/gcbaptista/go-portfolio/model"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	if api.jobs == nil {
		SendUnavailableError(c, "Job management")
		return
	}

	jobID := c.Param("jobId")
	job, err := api.jobs.GetJob(jobID)
	if err != nil {
		SendJobNotFoundError(c, jobID)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs
// Query: ?type=&status=
func (api *API) ListJobsHandler(c *gin.Context) {
	if api.jobs == nil {
		SendUnavailableError(c, "Job management")
		return
	}

	jobType := model.JobType(c.Query("type"))
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobList := api.jobs.ListJobs(jobType, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobList,
		"type":  jobType,
		"total": len(jobList),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	if api.jobs == nil {
		SendUnavailableError(c, "Job management")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":          api.jobs.GetMetrics(),
		"success_rate":     api.jobs.GetJobSuccessRate(),
		"current_workload": api.jobs.GetCurrentWorkload(),
	})
}

// PrivacyCleanupHandler starts a visitor retention cleanup immediately
func (api *API) PrivacyCleanupHandler(c *gin.Context) {
	if api.jobs == nil || api.visitors == nil {
		SendUnavailableError(c, "Visitor cleanup")
		return
	}

	retention := time.Duration(api.settings.Privacy.RetentionDays) * 24 * time.Hour
	jobID, err := api.jobs.Submit(model.JobTypeVisitorCleanup, "manual", nil,
		jobs.VisitorCleanup(api.visitors, retention, api.logger))
	if err != nil {
		SendJobExecutionError(c, "visitor cleanup", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":         "accepted",
		"job_id":         jobID,
		"retention_days": api.settings.Privacy.RetentionDays,
	})
}
