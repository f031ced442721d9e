package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/services"
)

// ApplicationHandlers serves the rental application pipeline
type ApplicationHandlers struct {
	service *services.ApplicationService
	logger  *logrus.Logger
}

// NewApplicationHandlers creates a new application handlers instance
func NewApplicationHandlers(service *services.ApplicationService, logger *logrus.Logger) *ApplicationHandlers {
	return &ApplicationHandlers{
		service: service,
		logger:  logger,
	}
}

// List returns applications filtered by ?search= and ?status=, ordered by ?sort=
// GET /api/v1/applications
func (h *ApplicationHandlers) List(c *gin.Context) {
	apps := h.service.List(services.ApplicationQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	})
	respond(c, http.StatusOK, apps)
}

// Stats counts applications per status
// GET /api/v1/applications/stats
func (h *ApplicationHandlers) Stats(c *gin.Context) {
	respond(c, http.StatusOK, h.service.Stats())
}

// ChangeStatus moves an application to a new status
// POST /api/v1/applications/:id/status
func (h *ApplicationHandlers) ChangeStatus(c *gin.Context) {
	var req models.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	app, err := h.service.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err, "Failed to change application status")
		return
	}
	respond(c, http.StatusOK, app)
}

// Convert creates a tenant from an approved application
// POST /api/v1/applications/:id/convert
func (h *ApplicationHandlers) Convert(c *gin.Context) {
	tenant, app, err := h.service.Convert(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to convert application")
		return
	}
	respond(c, http.StatusCreated, gin.H{
		"tenant":      tenant,
		"application": app,
	})
}
