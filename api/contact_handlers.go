package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-portfolio/internal/jobs"
	"github.com/gcbaptista/go-portfolio/internal/logger"
	"github.com/gcbaptista/go-portfolio/model"
)

const (
	contactSuccessMessage = "Thank you for your message! I'll get back to you soon."
	contactErrorMessage   = "Sorry, there was an error sending your message. Please try again later."
)

var errContactsUnavailable = errors.New("contact storage is not configured")

// ContactRequest is a contact form submission, as JSON or form fields.
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// CreateContactHandler stores a contact message and starts its notification job.
// Request Body: ContactRequest
func (api *API) CreateContactHandler(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateContactRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	msg, jobID, err := api.submitContact(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, errContactsUnavailable) {
			SendUnavailableError(c, "Contact form")
			return
		}
		SendPersistenceError(c, "save contact message", err)
		return
	}

	response := gin.H{
		"id":      msg.ID,
		"status":  "accepted",
		"message": contactSuccessMessage,
	}
	if jobID != "" {
		response["job_id"] = jobID
	}
	c.JSON(http.StatusAccepted, response)
}

// ContactFormHandler handles the form posted from the home page and answers
// with an HTML fragment for the page to swap in.
func (api *API) ContactFormHandler(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "contact_result.html", gin.H{"Error": contactErrorMessage})
		return
	}

	if result := ValidateContactRequest(&req); result.HasErrors() {
		c.HTML(http.StatusOK, "contact_result.html", gin.H{
			"Error":    "Please check the form and try again.",
			"Problems": result.Errors,
		})
		return
	}

	if _, _, err := api.submitContact(c.Request.Context(), req); err != nil {
		c.HTML(http.StatusOK, "contact_result.html", gin.H{"Error": contactErrorMessage})
		return
	}

	c.HTML(http.StatusOK, "contact_result.html", gin.H{"Success": contactSuccessMessage})
}

// submitContact persists a validated request and schedules the notification.
// A notification that cannot be scheduled is logged; the message is kept either way.
func (api *API) submitContact(ctx context.Context, req ContactRequest) (model.ContactMessage, string, error) {
	log := logger.FromContext(ctx)

	if api.contacts == nil {
		return model.ContactMessage{}, "", errContactsUnavailable
	}

	msg := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := api.contacts.SaveContactMessage(ctx, &msg); err != nil {
		log.Error("Failed to save contact message", zap.Error(err))
		return model.ContactMessage{}, "", err
	}
	api.metrics.ContactReceived()

	if api.jobs == nil || api.notifier == nil {
		return msg, "", nil
	}

	jobID, err := api.jobs.Submit(model.JobTypeContactNotification, msg.ID, nil,
		jobs.ContactNotification(api.contacts, api.notifier, api.jobs.UpdateJobProgress))
	if err != nil {
		log.Warn("Failed to schedule contact notification", zap.String("contact_id", msg.ID), zap.Error(err))
		return msg, "", nil
	}

	log.Info("Contact message received", zap.String("contact_id", msg.ID), zap.String("job_id", jobID))
	return msg, jobID, nil
}

// ListContactsHandler lists the most recent contact messages.
// Query: ?limit= (default 50, max 200)
func (api *API) ListContactsHandler(c *gin.Context) {
	if api.contacts == nil {
		SendUnavailableError(c, "Contact form")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "limit must be an integer")
			return
		}
		limit = n
	}
	limit = ValidateLimit(limit, 50, 200)

	messages, err := api.contacts.ListContactMessages(c.Request.Context(), limit)
	if err != nil {
		SendPersistenceError(c, "list contact messages", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
		"limit":    limit,
	})
}
