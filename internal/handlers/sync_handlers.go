package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/services"
)

// SyncHandlers exposes the remote analytics sync adapter
type SyncHandlers struct {
	service *services.SyncService
	logger  *logrus.Logger
	// onRefresh receives every applied refresh result, e.g. for websocket fan-out
	onRefresh func(*models.SyncResult)
}

// NewSyncHandlers creates a new sync handlers instance
func NewSyncHandlers(service *services.SyncService, onRefresh func(*models.SyncResult), logger *logrus.Logger) *SyncHandlers {
	return &SyncHandlers{
		service:   service,
		logger:    logger,
		onRefresh: onRefresh,
	}
}

// ImportSnapshot replaces local state with a full client snapshot
// POST /api/v1/sync/localstorage
func (h *SyncHandlers) ImportSnapshot(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		badRequest(c, "Invalid snapshot: "+err.Error())
		return
	}

	if err := h.service.ImportSnapshot(c.Request.Context(), &snapshot); err != nil {
		respondError(c, h.logger, err, "Failed to import snapshot")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"properties":   len(snapshot.Properties),
		"tenants":      len(snapshot.Tenants),
		"workOrders":   len(snapshot.WorkOrders),
		"transactions": len(snapshot.Transactions),
		"documents":    len(snapshot.Documents),
		"applications": len(snapshot.Applications),
	})
}

// Refresh pushes local state and pulls remote aggregates, falling back to local metrics
// POST /api/v1/sync/refresh
func (h *SyncHandlers) Refresh(c *gin.Context) {
	result := h.service.Refresh(c.Request.Context())
	if h.onRefresh != nil && !result.Stale {
		h.onRefresh(result)
	}
	respondSource(c, result, result.Source)
}

// Status reports the adapter state
// GET /api/v1/sync/status
func (h *SyncHandlers) Status(c *gin.Context) {
	respond(c, http.StatusOK, h.service.Status())
}
