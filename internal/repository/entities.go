package repository

import (
	"context"
	"fmt"

	"github.com/tesseract-hub/property-service/internal/models"
)

// Properties

func (r *EntityRepository) ListProperties() []models.Property {
	return listFrom(r, &r.data.Properties)
}

func (r *EntityRepository) GetProperty(id string) (*models.Property, error) {
	return getFrom[models.Property](r, &r.data.Properties, id)
}

func (r *EntityRepository) CreateProperty(ctx context.Context, p *models.Property) error {
	return createIn(ctx, r, models.CollectionProperties, &r.data.Properties, p)
}

// UpdateProperty refuses to rename a property that tenants still reference by name
func (r *EntityRepository) UpdateProperty(ctx context.Context, id string, p *models.Property) error {
	return updateIn(ctx, r, models.CollectionProperties, &r.data.Properties, id, p, func(prev models.Property, next *models.Property) error {
		if prev.Name == next.Name {
			return nil
		}
		return r.propertyUnreferencedLocked(prev)
	})
}

// DeleteProperty refuses to remove a property that tenants still reference by name
func (r *EntityRepository) DeleteProperty(ctx context.Context, id string) error {
	return deleteIn[models.Property](ctx, r, models.CollectionProperties, &r.data.Properties, id, r.propertyUnreferencedLocked)
}

func (r *EntityRepository) propertyUnreferencedLocked(p models.Property) error {
	for _, t := range r.data.Tenants {
		if t.Property == p.Name {
			return fmt.Errorf("%w: %s", models.ErrPropertyInUse, p.Name)
		}
	}
	return nil
}

// Tenants

func (r *EntityRepository) ListTenants() []models.Tenant {
	return listFrom(r, &r.data.Tenants)
}

func (r *EntityRepository) GetTenant(id string) (*models.Tenant, error) {
	return getFrom[models.Tenant](r, &r.data.Tenants, id)
}

func (r *EntityRepository) CreateTenant(ctx context.Context, t *models.Tenant) error {
	return createIn(ctx, r, models.CollectionTenants, &r.data.Tenants, t)
}

func (r *EntityRepository) UpdateTenant(ctx context.Context, id string, t *models.Tenant) error {
	return updateIn(ctx, r, models.CollectionTenants, &r.data.Tenants, id, t, nil)
}

func (r *EntityRepository) DeleteTenant(ctx context.Context, id string) error {
	return deleteIn[models.Tenant](ctx, r, models.CollectionTenants, &r.data.Tenants, id, nil)
}

// Work orders

func (r *EntityRepository) ListWorkOrders() []models.WorkOrder {
	return listFrom(r, &r.data.WorkOrders)
}

func (r *EntityRepository) GetWorkOrder(id string) (*models.WorkOrder, error) {
	return getFrom[models.WorkOrder](r, &r.data.WorkOrders, id)
}

func (r *EntityRepository) CreateWorkOrder(ctx context.Context, w *models.WorkOrder) error {
	return createIn(ctx, r, models.CollectionWorkOrders, &r.data.WorkOrders, w)
}

func (r *EntityRepository) UpdateWorkOrder(ctx context.Context, id string, w *models.WorkOrder) error {
	return updateIn(ctx, r, models.CollectionWorkOrders, &r.data.WorkOrders, id, w, nil)
}

func (r *EntityRepository) DeleteWorkOrder(ctx context.Context, id string) error {
	return deleteIn[models.WorkOrder](ctx, r, models.CollectionWorkOrders, &r.data.WorkOrders, id, nil)
}

// Transactions

func (r *EntityRepository) ListTransactions() []models.Transaction {
	return listFrom(r, &r.data.Transactions)
}

func (r *EntityRepository) GetTransaction(id string) (*models.Transaction, error) {
	return getFrom[models.Transaction](r, &r.data.Transactions, id)
}

func (r *EntityRepository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return createIn(ctx, r, models.CollectionTransactions, &r.data.Transactions, t)
}

func (r *EntityRepository) UpdateTransaction(ctx context.Context, id string, t *models.Transaction) error {
	return updateIn(ctx, r, models.CollectionTransactions, &r.data.Transactions, id, t, nil)
}

func (r *EntityRepository) DeleteTransaction(ctx context.Context, id string) error {
	return deleteIn[models.Transaction](ctx, r, models.CollectionTransactions, &r.data.Transactions, id, nil)
}

// Documents

func (r *EntityRepository) ListDocuments() []models.Document {
	return listFrom(r, &r.data.Documents)
}

func (r *EntityRepository) GetDocument(id string) (*models.Document, error) {
	return getFrom[models.Document](r, &r.data.Documents, id)
}

func (r *EntityRepository) CreateDocument(ctx context.Context, d *models.Document) error {
	return createIn(ctx, r, models.CollectionDocuments, &r.data.Documents, d)
}

func (r *EntityRepository) UpdateDocument(ctx context.Context, id string, d *models.Document) error {
	return updateIn(ctx, r, models.CollectionDocuments, &r.data.Documents, id, d, nil)
}

func (r *EntityRepository) DeleteDocument(ctx context.Context, id string) error {
	return deleteIn[models.Document](ctx, r, models.CollectionDocuments, &r.data.Documents, id, nil)
}

// Applications

func (r *EntityRepository) ListApplications() []models.Application {
	return listFrom(r, &r.data.Applications)
}

func (r *EntityRepository) GetApplication(id string) (*models.Application, error) {
	return getFrom[models.Application](r, &r.data.Applications, id)
}

// CreateApplication stores a new application. Every application starts submitted and unconverted.
func (r *EntityRepository) CreateApplication(ctx context.Context, a *models.Application) error {
	a.Status = models.ApplicationSubmitted
	a.TenantID = ""
	return createIn(ctx, r, models.CollectionApplications, &r.data.Applications, a)
}

// UpdateApplication edits applicant details. A status change must follow the
// status table and the tenant link only changes through ConvertApplication.
func (r *EntityRepository) UpdateApplication(ctx context.Context, id string, a *models.Application) error {
	return updateIn(ctx, r, models.CollectionApplications, &r.data.Applications, id, a, func(prev models.Application, next *models.Application) error {
		next.TenantID = prev.TenantID
		if next.Status == "" || next.Status == prev.Status {
			next.Status = prev.Status
			return nil
		}
		return models.ValidateTransition(prev.Status, next.Status)
	})
}

func (r *EntityRepository) DeleteApplication(ctx context.Context, id string) error {
	return deleteIn[models.Application](ctx, r, models.CollectionApplications, &r.data.Applications, id, nil)
}
