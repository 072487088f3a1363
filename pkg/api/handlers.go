package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"phone-dialer/pkg/models"
	"phone-dialer/pkg/services"
)

const (
	SubmittedMessage  = "Phone number submitted successfully!"
	CallPlacedMessage = "Call successfully placed!"
	CallFailedMessage = "Failed to place call."
	formTitle         = "Enter your phone number"
	formSubmitLabel   = "Submit"
)

// Handlers contains all HTTP handlers for the phone number form
type Handlers struct {
	submissionService services.SubmissionService
	logger            *logrus.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(submissionService services.SubmissionService, logger *logrus.Logger) *Handlers {
	return &Handlers{
		submissionService: submissionService,
		logger:            logger,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ShowForm renders the phone number form
func (h *Handlers) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, formTemplate, gin.H{
		"Title":  formTitle,
		"Submit": formSubmitLabel,
	})
}

// HandleSubmission reads the phone-number field and hands it to the configured
// action. Every outcome is answered with 200 and a fixed plain-text body.
func (h *Handlers) HandleSubmission(c *gin.Context) {
	var submission models.Submission

	// An unreadable body is treated like an absent field
	if err := c.ShouldBind(&submission); err != nil {
		h.logger.WithContext(c.Request.Context()).WithError(err).Warn("could not bind form submission")
		submission = models.Submission{}
	}

	outcome := h.submissionService.Process(c.Request.Context(), submission)

	c.String(http.StatusOK, responseText(outcome))
}

func responseText(outcome models.Outcome) string {
	switch {
	case !outcome.Succeeded:
		return CallFailedMessage
	case outcome.Call != nil:
		return CallPlacedMessage
	default:
		return SubmittedMessage
	}
}
