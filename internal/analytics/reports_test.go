package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/property-service/internal/models"
)

func sampleProperties() []models.Property {
	return []models.Property{
		{ID: "p1", Name: "Maple Court", Type: models.PropertyTypeResidential, Units: 20, Occupied: 18, MonthlyRevenue: 24000, PurchasePrice: 2400000},
		{ID: "p2", Name: "Cedar Plaza", Type: models.PropertyTypeCommercial, Units: 8, Occupied: 4, MonthlyRevenue: 16000, PurchasePrice: 1600000},
		{ID: "p3", Name: "Birch Lofts", Type: models.PropertyTypeResidential, Units: 12, Occupied: 12, MonthlyRevenue: 14000, PurchasePrice: 1400000},
	}
}

func TestComputePropertyTypeBreakdown(t *testing.T) {
	got := ComputePropertyTypeBreakdown(sampleProperties())

	require.Len(t, got, 2)
	assert.Equal(t, models.PropertyTypeResidential, got[0].Type)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, 32, got[0].Units)
	assert.Equal(t, 94, got[0].OccupancyRate)
	assert.InDelta(t, 70.37, got[0].Percentage, 0.01)
	assert.Equal(t, models.PropertyTypeCommercial, got[1].Type)

	assert.Empty(t, ComputePropertyTypeBreakdown(nil))
}

func TestRankProperties(t *testing.T) {
	perf := ComputePropertyPerformance(sampleProperties(), nil)

	byRevenue := RankProperties(perf, RankByRevenue)
	require.Len(t, byRevenue, 3)
	assert.Equal(t, 1, byRevenue[0].Rank)
	assert.Equal(t, "Maple Court", byRevenue[0].Name)

	byOccupancy := RankProperties(perf, RankByOccupancy)
	assert.Equal(t, "Birch Lofts", byOccupancy[0].Name)
	assert.Equal(t, "Cedar Plaza", byOccupancy[2].Name)

	byUnitRevenue := RankProperties(perf, RankByRevenuePerUnit)
	assert.Equal(t, "Cedar Plaza", byUnitRevenue[0].Name)

	assert.Equal(t, byRevenue, RankProperties(perf, "unknown"))
}

func TestComputePortfolio(t *testing.T) {
	tenants := []models.Tenant{
		{Property: "Maple Court", Status: models.TenantStatusCurrent},
		{Property: "Cedar Plaza", Status: models.TenantStatusFormer},
	}

	got := ComputePortfolio(sampleProperties(), tenants)

	assert.Equal(t, 3, got.PropertyCount)
	assert.Equal(t, 1, got.TenantCount)
	assert.Equal(t, 40, got.Occupancy.TotalUnits)
	assert.InDelta(t, 12.0, got.AnnualYield, 1e-9)
	require.NotNil(t, got.TopPerformer)
	assert.Equal(t, "Maple Court", got.TopPerformer.Name)
	require.NotNil(t, got.LowestOccupancy)
	assert.Equal(t, "Cedar Plaza", got.LowestOccupancy.Name)
}

func TestComputePortfolio_Empty(t *testing.T) {
	got := ComputePortfolio(nil, nil)
	assert.Nil(t, got.TopPerformer)
	assert.Equal(t, 0.0, got.AnnualYield)
}

func TestComputeCorrelations(t *testing.T) {
	properties := []models.Property{
		{Units: 10, Occupied: 5, MonthlyRevenue: 1000, PurchasePrice: 100},
		{Units: 20, Occupied: 10, MonthlyRevenue: 2000, PurchasePrice: 100},
		{Units: 30, Occupied: 15, MonthlyRevenue: 3000, PurchasePrice: 100},
	}

	got := ComputeCorrelations(properties)

	assert.Equal(t, 3, got.SampleSize)
	assert.Equal(t, 1.0, got.UnitsVsRevenue)
	// constant series
	assert.Equal(t, 0.0, got.OccupancyVsRevenue)
	assert.Equal(t, 0.0, got.PriceVsRevenue)

	assert.Equal(t, models.Correlations{SampleSize: 1}, ComputeCorrelations(properties[:1]))
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := &models.Snapshot{
		Properties: sampleProperties(),
		Tenants: []models.Tenant{
			{ID: "t1", Name: "Jane", Property: "Maple Court", Rent: 1200, Status: models.TenantStatusCurrent, Balance: -300, LeaseEnd: now.AddDate(0, 0, 20)},
			{ID: "t2", Name: "Joe", Property: "Cedar Plaza", Rent: 2000, Status: models.TenantStatusCurrent, LeaseEnd: now.AddDate(0, 0, 75)},
		},
		Transactions: []models.Transaction{
			{Type: models.TransactionIncome, Description: "Rent - Jane", Amount: 1200, Status: models.TransactionCompleted},
			{Type: models.TransactionExpense, Amount: -400, Category: "Maintenance", Status: models.TransactionCompleted},
		},
		Applications: []models.Application{{Status: models.ApplicationSubmitted}},
	}

	got := BuildDashboard(snapshot, DashboardOptions{Now: now, PerUnitCharge: DefaultPerUnitCharge, PendingSync: 2})

	assert.Equal(t, now, got.GeneratedAt)
	assert.Equal(t, 3, got.PropertyCount)
	assert.Equal(t, 2, got.TenantCount)
	assert.Equal(t, 3200.0, got.Financial.MonthlyIncome)
	assert.Equal(t, 2800.0, got.Financial.NetIncome)
	assert.Equal(t, 100.0, got.Collection.Rate)
	assert.Equal(t, models.LeaseExpiryWindows{Within30: 1, Within60: 1, Within90: 2}, got.LeaseExpiry)
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, 1, got.Applications.Total)
	assert.Equal(t, 2, got.PendingSync)
}
