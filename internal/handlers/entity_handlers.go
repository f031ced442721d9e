package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/repository"
)

// EntityHandlers serves CRUD endpoints for one entity collection
type EntityHandlers[T any] struct {
	name   string
	list   func() []T
	get    func(id string) (*T, error)
	create func(ctx context.Context, item *T) error
	update func(ctx context.Context, id string, item *T) error
	remove func(ctx context.Context, id string) error
	logger *logrus.Logger
}

// List returns every record
// GET /api/v1/<collection>
func (h *EntityHandlers[T]) List(c *gin.Context) {
	respond(c, http.StatusOK, h.list())
}

// Get returns one record
// GET /api/v1/<collection>/:id
func (h *EntityHandlers[T]) Get(c *gin.Context) {
	item, err := h.get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get "+h.name)
		return
	}
	respond(c, http.StatusOK, item)
}

// Create validates and stores a new record
// POST /api/v1/<collection>
func (h *EntityHandlers[T]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.create(c.Request.Context(), &item); err != nil {
		respondError(c, h.logger, err, "Failed to create "+h.name)
		return
	}
	respond(c, http.StatusCreated, item)
}

// Update replaces a record
// PUT /api/v1/<collection>/:id
func (h *EntityHandlers[T]) Update(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.update(c.Request.Context(), c.Param("id"), &item); err != nil {
		respondError(c, h.logger, err, "Failed to update "+h.name)
		return
	}
	respond(c, http.StatusOK, item)
}

// Delete removes a record
// DELETE /api/v1/<collection>/:id
func (h *EntityHandlers[T]) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.remove(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "Failed to delete "+h.name)
		return
	}
	respond(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// Register mounts the CRUD routes on group
func (h *EntityHandlers[T]) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// EntitySet groups the CRUD handlers of every collection
type EntitySet struct {
	Properties   *EntityHandlers[models.Property]
	Tenants      *EntityHandlers[models.Tenant]
	WorkOrders   *EntityHandlers[models.WorkOrder]
	Transactions *EntityHandlers[models.Transaction]
	Documents    *EntityHandlers[models.Document]
	Applications *EntityHandlers[models.Application]
}

// NewEntitySet wires CRUD handlers to the entity repository. Document deletes
// go through removeDocument so stored payloads are cleaned up too.
func NewEntitySet(repo *repository.EntityRepository, removeDocument func(ctx context.Context, id string) error, logger *logrus.Logger) *EntitySet {
	return &EntitySet{
		Properties: &EntityHandlers[models.Property]{
			name: "property", list: repo.ListProperties, get: repo.GetProperty,
			create: repo.CreateProperty, update: repo.UpdateProperty, remove: repo.DeleteProperty,
			logger: logger,
		},
		Tenants: &EntityHandlers[models.Tenant]{
			name: "tenant", list: repo.ListTenants, get: repo.GetTenant,
			create: repo.CreateTenant, update: repo.UpdateTenant, remove: repo.DeleteTenant,
			logger: logger,
		},
		WorkOrders: &EntityHandlers[models.WorkOrder]{
			name: "work order", list: repo.ListWorkOrders, get: repo.GetWorkOrder,
			create: repo.CreateWorkOrder, update: repo.UpdateWorkOrder, remove: repo.DeleteWorkOrder,
			logger: logger,
		},
		Transactions: &EntityHandlers[models.Transaction]{
			name: "transaction", list: repo.ListTransactions, get: repo.GetTransaction,
			create: repo.CreateTransaction, update: repo.UpdateTransaction, remove: repo.DeleteTransaction,
			logger: logger,
		},
		Documents: &EntityHandlers[models.Document]{
			name: "document", list: repo.ListDocuments, get: repo.GetDocument,
			create: repo.CreateDocument, update: repo.UpdateDocument, remove: removeDocument,
			logger: logger,
		},
		Applications: &EntityHandlers[models.Application]{
			name: "application", list: repo.ListApplications, get: repo.GetApplication,
			create: repo.CreateApplication, update: repo.UpdateApplication, remove: repo.DeleteApplication,
			logger: logger,
		},
	}
}
