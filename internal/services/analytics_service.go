package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/analytics"
	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/export"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/repository"
	"github.com/tesseract-hub/property-service/internal/storage"
)

// AnalyticsService computes derived metrics from fresh entity snapshots
type AnalyticsService struct {
	repo    *repository.EntityRepository
	kv      storage.KVStore
	cfg     config.AnalyticsConfig
	budgets []models.Budget
	logger  *logrus.Logger
	now     func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo *repository.EntityRepository, kv storage.KVStore, cfg config.AnalyticsConfig, logger *logrus.Logger) *AnalyticsService {
	if cfg.LeaseWindow <= 0 {
		cfg.LeaseWindow = 90
	}
	return &AnalyticsService{
		repo:    repo,
		kv:      kv,
		cfg:     cfg,
		budgets: analytics.DefaultBudgets,
		logger:  logger,
		now:     time.Now,
	}
}

// SetClock replaces the time source
func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.now = now
}

// GetDashboard builds the headline dashboard and caches it under the derived dashboard key
func (s *AnalyticsService) GetDashboard(ctx context.Context) *models.Dashboard {
	snapshot, pending := s.repo.SnapshotWithPending()
	dashboard := s.BuildDashboard(snapshot, pending.Count())
	s.cache(ctx, storage.DashboardCacheKey, dashboard)

	s.logger.WithFields(logrus.Fields{
		"properties":     dashboard.PropertyCount,
		"occupancy_rate": dashboard.Occupancy.OccupancyRate,
		"monthly_income": dashboard.Financial.MonthlyIncome,
		"notifications":  len(dashboard.Notifications),
	}).Debug("Generated dashboard")
	return dashboard
}

// BuildDashboard computes the dashboard of an existing snapshot
func (s *AnalyticsService) BuildDashboard(snapshot *models.Snapshot, pendingSync int) *models.Dashboard {
	perUnit := s.cfg.PerUnitCharge
	if perUnit == 0 {
		perUnit = analytics.DefaultPerUnitCharge
	}
	return analytics.BuildDashboard(snapshot, analytics.DashboardOptions{
		Now:           s.now(),
		PerUnitCharge: perUnit,
		PendingSync:   pendingSync,
	})
}

func (s *AnalyticsService) GetFinancialSummary() models.FinancialSummary {
	snap := s.repo.Snapshot()
	return analytics.ComputeFinancialSummary(snap.Tenants, snap.Transactions)
}

func (s *AnalyticsService) GetExpenseCategories() []models.ExpenseCategory {
	return analytics.ComputeExpenseCategories(s.repo.ListTransactions(), s.budgets)
}

func (s *AnalyticsService) GetPropertyPerformance() []models.PropertyPerformance {
	snap := s.repo.Snapshot()
	return analytics.ComputePropertyPerformance(snap.Properties, snap.Tenants)
}

func (s *AnalyticsService) GetMaintenanceStats() models.MaintenanceStats {
	return analytics.ComputeMaintenanceStats(s.repo.ListWorkOrders())
}

// GetLeaseExpirations lists leases ending within windowDays; zero uses the configured window
func (s *AnalyticsService) GetLeaseExpirations(windowDays int) []models.LeaseExpiration {
	if windowDays == 0 {
		windowDays = s.cfg.LeaseWindow
	}
	return analytics.ComputeLeaseExpirations(s.repo.ListTenants(), s.now(), windowDays)
}

func (s *AnalyticsService) GetCollectionRate() models.CollectionRate {
	perUnit := s.cfg.PerUnitCharge
	if perUnit == 0 {
		perUnit = analytics.DefaultPerUnitCharge
	}
	return analytics.ComputeCollectionRate(s.repo.ListTransactions(), perUnit)
}

// GetRevenueProjections projects current scheduled revenue. A nil growth rate uses the configured rate.
func (s *AnalyticsService) GetRevenueProjections(growthRate *float64) models.RevenueProjections {
	g := s.cfg.GrowthRate
	if growthRate != nil {
		g = *growthRate
	}
	totals := analytics.ComputeRevenueTotals(s.repo.ListProperties())
	return analytics.ComputeRevenueProjections(totals.MonthlyRevenue, g)
}

func (s *AnalyticsService) GetPropertyTypes() []models.PropertyTypeBreakdown {
	return analytics.ComputePropertyTypeBreakdown(s.repo.ListProperties())
}

func (s *AnalyticsService) GetRankings(by string) []models.PropertyRanking {
	return analytics.RankProperties(s.GetPropertyPerformance(), by)
}

func (s *AnalyticsService) GetPortfolio() models.Portfolio {
	snap := s.repo.Snapshot()
	return analytics.ComputePortfolio(snap.Properties, snap.Tenants)
}

func (s *AnalyticsService) GetCorrelations() models.Correlations {
	return analytics.ComputeCorrelations(s.repo.ListProperties())
}

// GetNotifications derives the capped notification list, most recent work orders first
func (s *AnalyticsService) GetNotifications() []models.Notification {
	snap := s.repo.Snapshot()
	return analytics.DeriveNotifications(snap.Tenants, analytics.RecentFirst(snap.WorkOrders), s.now())
}

// ExportCollection encodes one entity collection
func (s *AnalyticsService) ExportCollection(collection string, format export.Format) ([]byte, error) {
	data, err := export.Collection(s.repo.Snapshot(), collection, format)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", collection, err)
	}

	s.logger.WithFields(logrus.Fields{
		"collection": collection,
		"format":     format,
		"bytes":      len(data),
	}).Info("Exported collection")
	return data, nil
}

// ExportDashboardReport exports the dashboard as Metric/Value CSV sections
func (s *AnalyticsService) ExportDashboardReport(ctx context.Context) ([]byte, error) {
	d := s.GetDashboard(ctx)

	var csvData [][]string

	// Header
	csvData = append(csvData, []string{"Metric", "Value"})

	// Summary
	csvData = append(csvData, []string{"Properties", fmt.Sprintf("%d", d.PropertyCount)})
	csvData = append(csvData, []string{"Current Tenants", fmt.Sprintf("%d", d.TenantCount)})
	csvData = append(csvData, []string{"Total Units", fmt.Sprintf("%d", d.Occupancy.TotalUnits)})
	csvData = append(csvData, []string{"Occupied Units", fmt.Sprintf("%d", d.Occupancy.OccupiedUnits)})
	csvData = append(csvData, []string{"Occupancy Rate (%)", fmt.Sprintf("%d", d.Occupancy.OccupancyRate)})
	csvData = append(csvData, []string{"Monthly Income", fmt.Sprintf("%.2f", d.Financial.MonthlyIncome)})
	csvData = append(csvData, []string{"Monthly Expenses", fmt.Sprintf("%.2f", d.Financial.MonthlyExpenses)})
	csvData = append(csvData, []string{"Net Income", fmt.Sprintf("%.2f", d.Financial.NetIncome)})
	csvData = append(csvData, []string{"Outstanding Balance", fmt.Sprintf("%.2f", d.Financial.OutstandingBalance)})
	csvData = append(csvData, []string{"Overdue Tenants", fmt.Sprintf("%d", d.Financial.OverdueCount)})
	csvData = append(csvData, []string{"Collection Rate (%)", fmt.Sprintf("%.2f", d.Collection.Rate)})
	csvData = append(csvData, []string{"Open Work Orders", fmt.Sprintf("%d", d.Maintenance.Open)})

	csvData = append(csvData, []string{""}) // Empty row

	// Expense categories
	csvData = append(csvData, []string{"Expense Categories"})
	csvData = append(csvData, []string{"Category", "Amount", "Budget", "Used (%)"})
	for _, c := range s.GetExpenseCategories() {
		csvData = append(csvData, []string{
			c.Category,
			fmt.Sprintf("%.2f", c.Amount),
			fmt.Sprintf("%.2f", c.Budget),
			fmt.Sprintf("%.2f", c.Percentage),
		})
	}

	csvData = append(csvData, []string{""}) // Empty row

	// Property performance
	csvData = append(csvData, []string{"Property Performance"})
	csvData = append(csvData, []string{"Property", "Occupancy (%)", "Tenants", "Revenue Per Unit"})
	for _, p := range s.GetPropertyPerformance() {
		csvData = append(csvData, []string{
			p.Name,
			fmt.Sprintf("%d", p.OccupancyRate),
			fmt.Sprintf("%d", p.TenantCount),
			fmt.Sprintf("%.2f", p.RevenuePerUnit),
		})
	}

	var buf []byte
	if err := export.WriteCSV(&byteSink{data: &buf}, csvData); err != nil {
		return nil, err
	}

	s.logger.Info("Exported dashboard report")
	return buf, nil
}

// byteSink is a helper to write CSV to byte slice
type byteSink struct {
	data *[]byte
}

func (w *byteSink) Write(p []byte) (n int, err error) {
	*w.data = append(*w.data, p...)
	return len(p), nil
}

// cache stores a derived value; failures are logged and otherwise ignored
func (s *AnalyticsService) cache(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to encode derived cache")
		return
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to write derived cache")
	}
}
