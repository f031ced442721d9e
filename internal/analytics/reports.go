package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/tesseract-hub/property-service/internal/models"
)

// Ranking keys accepted by RankProperties
const (
	RankByRevenue        = "revenue"
	RankByOccupancy      = "occupancy"
	RankByRevenuePerUnit = "revenuePerUnit"
	RankByTenants        = "tenants"
)

// ComputePropertyTypeBreakdown groups properties by type, ordered by revenue descending
func ComputePropertyTypeBreakdown(properties []models.Property) []models.PropertyTypeBreakdown {
	byType := make(map[models.PropertyType]*models.PropertyTypeBreakdown)
	var order []models.PropertyType
	totalRevenue := 0.0
	for _, p := range properties {
		row, ok := byType[p.Type]
		if !ok {
			row = &models.PropertyTypeBreakdown{Type: p.Type}
			byType[p.Type] = row
			order = append(order, p.Type)
		}
		row.Count++
		row.Units += p.Units
		row.Occupied += p.Occupied
		row.MonthlyRevenue += p.MonthlyRevenue
		totalRevenue += p.MonthlyRevenue
	}

	out := make([]models.PropertyTypeBreakdown, 0, len(order))
	for _, t := range order {
		row := *byType[t]
		row.OccupancyRate = int(math.Round(percentOf(float64(row.Occupied), float64(row.Units))))
		row.Percentage = percentOf(row.MonthlyRevenue, totalRevenue)
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MonthlyRevenue > out[j].MonthlyRevenue
	})
	return out
}

// RankProperties orders property performance rows descending by the given key.
// Unknown keys rank by revenue.
func RankProperties(perf []models.PropertyPerformance, by string) []models.PropertyRanking {
	rows := append([]models.PropertyPerformance{}, perf...)
	var key func(models.PropertyPerformance) float64
	switch by {
	case RankByOccupancy:
		key = func(p models.PropertyPerformance) float64 { return float64(p.OccupancyRate) }
	case RankByRevenuePerUnit:
		key = func(p models.PropertyPerformance) float64 { return p.RevenuePerUnit }
	case RankByTenants:
		key = func(p models.PropertyPerformance) float64 { return float64(p.TenantCount) }
	default:
		key = func(p models.PropertyPerformance) float64 { return p.MonthlyRevenue }
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return key(rows[i]) > key(rows[j])
	})

	out := make([]models.PropertyRanking, len(rows))
	for i, p := range rows {
		out[i] = models.PropertyRanking{Rank: i + 1, PropertyPerformance: p}
	}
	return out
}

// ComputePortfolio summarises the whole portfolio
func ComputePortfolio(properties []models.Property, tenants []models.Tenant) models.Portfolio {
	perf := ComputePropertyPerformance(properties, tenants)
	revenue := ComputeRevenueTotals(properties)

	portfolio := models.Portfolio{
		PropertyCount: len(properties),
		Occupancy:     ComputeOccupancy(properties),
		Revenue:       revenue,
		AnnualYield:   percentOf(revenue.AnnualRevenue, revenue.PortfolioValue),
		TypeBreakdown: ComputePropertyTypeBreakdown(properties),
	}
	for _, t := range tenants {
		if t.Status == models.TenantStatusCurrent {
			portfolio.TenantCount++
		}
	}

	for i := range perf {
		p := perf[i]
		if portfolio.TopPerformer == nil || p.MonthlyRevenue > portfolio.TopPerformer.MonthlyRevenue {
			portfolio.TopPerformer = &p
		}
		if portfolio.LowestOccupancy == nil || p.OccupancyRate < portfolio.LowestOccupancy.OccupancyRate {
			portfolio.LowestOccupancy = &p
		}
	}
	return portfolio
}

// ComputeCorrelations reports Pearson coefficients across properties. A coefficient is
// 0 when fewer than two properties exist or either series is constant.
func ComputeCorrelations(properties []models.Property) models.Correlations {
	n := len(properties)
	units := make([]float64, n)
	revenue := make([]float64, n)
	occupancy := make([]float64, n)
	perUnit := make([]float64, n)
	price := make([]float64, n)
	for i, p := range properties {
		units[i] = float64(p.Units)
		revenue[i] = p.MonthlyRevenue
		occupancy[i] = percentOf(float64(p.Occupied), float64(p.Units))
		perUnit[i] = ratio(p.MonthlyRevenue, float64(p.Units))
		price[i] = p.PurchasePrice
	}
	return models.Correlations{
		SampleSize:                n,
		UnitsVsRevenue:            pearson(units, revenue),
		OccupancyVsRevenue:        pearson(occupancy, revenue),
		OccupancyVsRevenuePerUnit: pearson(occupancy, perUnit),
		PriceVsRevenue:            pearson(price, revenue),
	}
}

func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	den := math.Sqrt(varX * varY)
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	return math.Round(cov/den*10000) / 10000
}

// DashboardOptions carries the tunables of BuildDashboard
type DashboardOptions struct {
	Now           time.Time
	PerUnitCharge float64
	PendingSync   int
}

// BuildDashboard composes the headline metrics from one snapshot
func BuildDashboard(s *models.Snapshot, opts DashboardOptions) *models.Dashboard {
	current := 0
	for _, t := range s.Tenants {
		if t.Status == models.TenantStatusCurrent {
			current++
		}
	}
	return &models.Dashboard{
		GeneratedAt:   opts.Now,
		PropertyCount: len(s.Properties),
		TenantCount:   current,
		Occupancy:     ComputeOccupancy(s.Properties),
		Financial:     ComputeFinancialSummary(s.Tenants, s.Transactions),
		Maintenance:   ComputeMaintenanceStats(s.WorkOrders),
		Collection:    ComputeCollectionRate(s.Transactions, opts.PerUnitCharge),
		LeaseExpiry:   LeaseExpiryWindows(s.Tenants, opts.Now),
		Notifications: DeriveNotifications(s.Tenants, RecentFirst(s.WorkOrders), opts.Now),
		Applications:  ComputeApplicationStats(s.Applications),
		PendingSync:   opts.PendingSync,
	}
}

// RecentFirst returns work orders ordered by completion (or submission) time, newest first
func RecentFirst(workOrders []models.WorkOrder) []models.WorkOrder {
	out := append([]models.WorkOrder{}, workOrders...)
	when := func(wo models.WorkOrder) time.Time {
		if wo.DateCompleted != nil {
			return *wo.DateCompleted
		}
		return wo.DateSubmitted
	}
	sort.SliceStable(out, func(i, j int) bool {
		return when(out[i]).After(when(out[j]))
	})
	return out
}
