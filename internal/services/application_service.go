package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/analytics"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/repository"
)

// ApplicationQuery filters and orders the application list
type ApplicationQuery struct {
	Search string
	Status string
	Sort   string
}

// ApplicationService runs the rental application pipeline
type ApplicationService struct {
	repo   *repository.EntityRepository
	logger *logrus.Logger
	now    func() time.Time
}

// NewApplicationService creates a new application service
func NewApplicationService(repo *repository.EntityRepository, logger *logrus.Logger) *ApplicationService {
	return &ApplicationService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// List applies search, status filter and sort to the stored applications
func (s *ApplicationService) List(q ApplicationQuery) []models.Application {
	apps := analytics.FilterApplications(s.repo.ListApplications(), q.Search, q.Status)
	return analytics.SortApplications(apps, q.Sort)
}

// Stats counts applications per status
func (s *ApplicationService) Stats() models.ApplicationStats {
	return analytics.ComputeApplicationStats(s.repo.ListApplications())
}

// ChangeStatus moves an application to status when the transition is allowed
func (s *ApplicationService) ChangeStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	app, err := s.repo.ChangeApplicationStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to change application status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": id,
		"status":         status,
	}).Info("Application status changed")
	return app, nil
}

// Convert turns an approved application into a current tenant
func (s *ApplicationService) Convert(ctx context.Context, id string) (*models.Tenant, *models.Application, error) {
	tenant, app, err := s.repo.ConvertApplication(ctx, id, s.now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to convert application: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": id,
		"tenant_id":      tenant.ID,
		"property":       tenant.Property,
	}).Info("Application converted to tenant")
	return tenant, app, nil
}
