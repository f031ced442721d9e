package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tesseract-hub/property-service/internal/events"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/storage"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	kv storage.KVStore

	mu         sync.RWMutex
	natsClient *events.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(kv storage.KVStore) *HealthHandler {
	return &HealthHandler{kv: kv}
}

// SetNATSClient updates the NATS client (used for deferred connection)
func (h *HealthHandler) SetNATSClient(client *events.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.natsClient = client
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "property-service",
	})
}

// Ready reports whether the entity store backend answers
func (h *HealthHandler) Ready(c *gin.Context) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if _, _, err := h.kv.Get(ctx, models.CollectionProperties); err != nil {
		checks["storage"] = "error: " + err.Error()
		status = "not ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["storage"] = "connected"
	}

	// NATS is optional; change events are skipped while it is down
	h.mu.RLock()
	natsClient := h.natsClient
	h.mu.RUnlock()
	if natsClient.IsConnected() {
		checks["nats"] = "connected"
	} else {
		checks["nats"] = "disconnected (optional)"
	}

	c.JSON(httpStatus, gin.H{
		"status": status,
		"checks": checks,
	})
}
