package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tesseract-hub/property-service/internal/analytics"
	"github.com/tesseract-hub/property-service/internal/models"
)

// DefaultLeaseTerm is the lease length given to tenants created from applications
const DefaultLeaseTerm = 12 // months

// ChangeApplicationStatus moves an application through the status table
func (r *EntityRepository) ChangeApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	r.mu.Lock()
	idx := indexOf[models.Application](r.data.Applications, id)
	if idx < 0 {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	app := r.data.Applications[idx]
	if err := models.ValidateTransition(app.Status, status); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	app.Status = status

	next := append([]models.Application{}, r.data.Applications...)
	next[idx] = app
	if err := commit(ctx, r, models.CollectionApplications, &r.data.Applications, next,
		ChangeEvent{EntityID: id, Type: ChangeUpdated, Entity: app}); err != nil {
		return nil, err
	}
	return &app, nil
}

// ConvertApplication creates a current tenant from an approved or conditional
// application and links it through the application's tenant id.
func (r *EntityRepository) ConvertApplication(ctx context.Context, id string, now time.Time) (*models.Tenant, *models.Application, error) {
	r.mu.Lock()
	idx := indexOf[models.Application](r.data.Applications, id)
	if idx < 0 {
		r.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	app := r.data.Applications[idx]
	if app.IsConverted() {
		r.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: %s", models.ErrAlreadyConverted, id)
	}
	if !app.Status.CanConvert() {
		r.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: cannot convert %s application", models.ErrInvalidTransition, app.Status)
	}

	tenant := tenantFromApplication(app, r.data.Properties, now)
	app.TenantID = tenant.ID

	tenants := append(append([]models.Tenant{}, r.data.Tenants...), tenant)
	apps := append([]models.Application{}, r.data.Applications...)
	apps[idx] = app

	next := r.data
	next.Tenants = tenants
	next.Applications = apps
	if err := r.persistAllLocked(ctx, &next, []string{models.CollectionTenants, models.CollectionApplications}); err != nil {
		r.mu.Unlock()
		return nil, nil, err
	}
	r.data.Tenants = tenants
	r.data.Applications = apps
	r.markPendingLocked(models.CollectionTenants, tenant.ID)
	r.markPendingLocked(models.CollectionApplications, app.ID)
	listeners := r.listeners
	r.mu.Unlock()

	occurred := time.Now()
	dispatch(listeners, ChangeEvent{
		Collection: models.CollectionTenants,
		EntityID:   tenant.ID,
		Type:       ChangeCreated,
		Entity:     tenant,
		OccurredAt: occurred,
	})
	dispatch(listeners, ChangeEvent{
		Collection: models.CollectionApplications,
		EntityID:   app.ID,
		Type:       ChangeUpdated,
		Entity:     app,
		OccurredAt: occurred,
	})
	return &tenant, &app, nil
}

// tenantFromApplication derives the new tenant. Rent defaults to the revenue per unit of
// the named property when it is known.
func tenantFromApplication(app models.Application, properties []models.Property, now time.Time) models.Tenant {
	start := app.DesiredMoveInDate
	if start.IsZero() {
		start = now
	}
	tenant := models.Tenant{
		ID:         uuid.NewString(),
		Name:       app.FullName(),
		Email:      app.Email,
		Phone:      app.Phone,
		Property:   app.PropertyName,
		Unit:       app.DesiredUnit,
		LeaseStart: start,
		LeaseEnd:   start.AddDate(0, DefaultLeaseTerm, 0),
		Status:     models.TenantStatusCurrent,
	}
	if p, ok := analytics.NewPropertyIndex(properties).Lookup(app.PropertyName); ok && p.Units > 0 {
		tenant.Rent = p.MonthlyRevenue / float64(p.Units)
	}
	return tenant
}
