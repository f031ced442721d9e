package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tesseract-hub/property-service/internal/models"
)

func TestComputeOccupancy(t *testing.T) {
	tests := []struct {
		name       string
		properties []models.Property
		want       models.Occupancy
	}{
		{
			name: "empty portfolio",
			want: models.Occupancy{},
		},
		{
			name:       "single property",
			properties: []models.Property{{Units: 10, Occupied: 7}},
			want:       models.Occupancy{TotalUnits: 10, OccupiedUnits: 7, VacantUnits: 3, OccupancyRate: 70},
		},
		{
			name: "rounds to nearest percent",
			properties: []models.Property{
				{Units: 3, Occupied: 2},
			},
			want: models.Occupancy{TotalUnits: 3, OccupiedUnits: 2, VacantUnits: 1, OccupancyRate: 67},
		},
		{
			name: "zero unit property",
			properties: []models.Property{
				{Units: 0, Occupied: 0},
			},
			want: models.Occupancy{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeOccupancy(tt.properties))
		})
	}
}

func TestComputeOccupancy_RateBounded(t *testing.T) {
	properties := []models.Property{
		{Units: 12, Occupied: 12},
		{Units: 7, Occupied: 0},
		{Units: 25, Occupied: 19},
		{Units: 0, Occupied: 0},
	}
	for i := range properties {
		occ := ComputeOccupancy(properties[:i+1])
		assert.GreaterOrEqual(t, occ.OccupancyRate, 0)
		assert.LessOrEqual(t, occ.OccupancyRate, 100)
	}
}

func TestComputeFinancialSummary(t *testing.T) {
	tenants := []models.Tenant{
		{ID: "t1", Rent: 1000, Status: models.TenantStatusCurrent},
		{ID: "t2", Rent: 500, Status: models.TenantStatusFormer},
		{ID: "t3", Rent: 1500, Status: models.TenantStatusCurrent, Balance: -250},
		{ID: "t4", Rent: 800, Status: models.TenantStatusPending, Balance: -100.5},
	}
	transactions := []models.Transaction{
		{Type: models.TransactionIncome, Amount: 1000, Description: "Rent - Unit 1"},
		{Type: models.TransactionExpense, Amount: -300.25, Category: "Maintenance"},
		{Type: models.TransactionExpense, Amount: -199.75, Category: "Utilities"},
	}

	summary := ComputeFinancialSummary(tenants, transactions)

	assert.Equal(t, 2500.0, summary.MonthlyIncome)
	assert.Equal(t, 500.0, summary.MonthlyExpenses)
	assert.Equal(t, 2000.0, summary.NetIncome)
	assert.Equal(t, 350.5, summary.OutstandingBalance)
	assert.Equal(t, 2, summary.OverdueCount)
	assert.Equal(t, 80.0, summary.ProfitMargin)
}

func TestComputeFinancialSummary_FormerExcluded(t *testing.T) {
	tenants := []models.Tenant{
		{Rent: 1000, Status: models.TenantStatusCurrent},
		{Rent: 500, Status: models.TenantStatusFormer},
	}
	assert.Equal(t, 1000.0, ComputeFinancialSummary(tenants, nil).MonthlyIncome)
}

func TestComputeFinancialSummary_NetIsExactDifference(t *testing.T) {
	tenants := []models.Tenant{
		{Rent: 1234.56, Status: models.TenantStatusCurrent},
		{Rent: 0.1, Status: models.TenantStatusCurrent},
	}
	transactions := []models.Transaction{
		{Type: models.TransactionExpense, Amount: -0.2},
		{Type: models.TransactionExpense, Amount: -99.99},
	}
	summary := ComputeFinancialSummary(tenants, transactions)
	assert.Equal(t, summary.MonthlyIncome-summary.MonthlyExpenses, summary.NetIncome)
}

func TestComputeFinancialSummary_Empty(t *testing.T) {
	summary := ComputeFinancialSummary(nil, nil)
	assert.Equal(t, models.FinancialSummary{}, summary)
}

func TestComputeExpenseCategories(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TransactionExpense, Amount: -2500, Category: "maintenance"},
		{Type: models.TransactionExpense, Amount: -3500, Category: " Utilities "},
		{Type: models.TransactionExpense, Amount: -50, Category: "Unbudgeted"},
		{Type: models.TransactionIncome, Amount: 9000, Category: "Maintenance"},
	}
	budgets := []models.Budget{
		{Category: "Maintenance", Limit: 5000},
		{Category: "Utilities", Limit: 3000},
		{Category: "Marketing", Limit: 0},
	}

	got := ComputeExpenseCategories(transactions, budgets)

	assert.Len(t, got, 3)
	assert.Equal(t, "Maintenance", got[0].Category)
	assert.Equal(t, 2500.0, got[0].Amount)
	assert.Equal(t, 50.0, got[0].Percentage)
	assert.False(t, got[0].OverBudget)

	assert.Equal(t, 3500.0, got[1].Amount)
	assert.True(t, got[1].OverBudget)
	assert.Equal(t, -500.0, got[1].Remaining)

	assert.Equal(t, 0.0, got[2].Percentage)
}

func TestComputeExpenseCategories_ZeroBudgetIsFinite(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TransactionExpense, Amount: -100, Category: "Marketing"},
	}
	got := ComputeExpenseCategories(transactions, []models.Budget{{Category: "Marketing", Limit: 0}})

	assert.Len(t, got, 1)
	assert.False(t, math.IsNaN(got[0].Percentage))
	assert.False(t, math.IsInf(got[0].Percentage, 0))
	assert.Equal(t, 0.0, got[0].Percentage)
	assert.True(t, got[0].OverBudget)
}

func TestComputePropertyPerformance(t *testing.T) {
	properties := []models.Property{
		{ID: "p1", Name: "Oak Ridge", Type: models.PropertyTypeResidential, Units: 10, Occupied: 8, MonthlyRevenue: 12000},
		{ID: "p2", Name: "Empty Lot", Type: models.PropertyTypeOther, Units: 0},
	}
	tenants := []models.Tenant{
		{Property: "Oak Ridge", Status: models.TenantStatusCurrent},
		{Property: "Oak Ridge", Status: models.TenantStatusCurrent},
		{Property: "Oak Ridge", Status: models.TenantStatusFormer},
		{Property: "oak ridge", Status: models.TenantStatusCurrent},
		{Property: "Unknown", Status: models.TenantStatusCurrent},
	}

	got := ComputePropertyPerformance(properties, tenants)

	assert.Len(t, got, 2)
	assert.Equal(t, 80, got[0].OccupancyRate)
	assert.Equal(t, 2, got[0].TenantCount)
	assert.Equal(t, 1200.0, got[0].RevenuePerUnit)

	assert.Equal(t, 0, got[1].OccupancyRate)
	assert.Equal(t, 0, got[1].TenantCount)
	assert.Equal(t, 0.0, got[1].RevenuePerUnit)
}

func TestComputeCollectionRate(t *testing.T) {
	tests := []struct {
		name          string
		transactions  []models.Transaction
		perUnitCharge float64
		wantRate      float64
		wantCollected float64
	}{
		{
			name:          "no rent charges is full collection",
			transactions:  []models.Transaction{{Type: models.TransactionIncome, Description: "Late fee", Amount: 50, Status: models.TransactionCompleted}},
			perUnitCharge: DefaultPerUnitCharge,
			wantRate:      100,
		},
		{
			name: "half collected",
			transactions: []models.Transaction{
				{Type: models.TransactionIncome, Description: "Rent - 101", Amount: 1200, Status: models.TransactionCompleted},
				{Type: models.TransactionIncome, Description: "Rent - 102", Amount: 1200, Status: models.TransactionPending},
			},
			perUnitCharge: 1200,
			wantRate:      50,
			wantCollected: 1200,
		},
		{
			name: "match is case sensitive",
			transactions: []models.Transaction{
				{Type: models.TransactionIncome, Description: "rent payment", Amount: 1200, Status: models.TransactionCompleted},
			},
			perUnitCharge: 1200,
			wantRate:      100,
		},
		{
			name: "overpayment is not capped",
			transactions: []models.Transaction{
				{Type: models.TransactionIncome, Description: "Rent", Amount: 1800, Status: models.TransactionCompleted},
			},
			perUnitCharge: 1200,
			wantRate:      150,
			wantCollected: 1800,
		},
		{
			name: "non positive charge",
			transactions: []models.Transaction{
				{Type: models.TransactionIncome, Description: "Rent", Amount: 1800, Status: models.TransactionCompleted},
			},
			perUnitCharge: 0,
			wantRate:      100,
			wantCollected: 1800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCollectionRate(tt.transactions, tt.perUnitCharge)
			assert.Equal(t, tt.wantRate, got.Rate)
			assert.Equal(t, tt.wantCollected, got.Collected)
		})
	}
}

func TestComputeRevenueProjections(t *testing.T) {
	got := ComputeRevenueProjections(10000, DefaultGrowthRate)

	assert.InDelta(t, 30375.0, got.Month3, 1e-6)
	assert.InDelta(t, 61500.0, got.Month6, 1e-6)
	assert.InDelta(t, 126000.0, got.Year1, 1e-6)
	assert.InDelta(t, 262080.0, got.Year2, 1e-6)
	assert.Equal(t, 10000.0, got.CurrentMonthly)
}

func TestComputeRevenueProjections_Zero(t *testing.T) {
	got := ComputeRevenueProjections(0, DefaultGrowthRate)
	assert.Equal(t, 0.0, got.Year2)
}

func TestComputeRevenueProjections_NonFinite(t *testing.T) {
	tests := []struct {
		name    string
		revenue float64
		growth  float64
	}{
		{"nan growth", 10000, math.NaN()},
		{"infinite growth", 10000, math.Inf(1)},
		{"infinite revenue", math.Inf(-1), 0.05},
		{"overflow", math.MaxFloat64, 1e300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRevenueProjections(tt.revenue, tt.growth)
			for _, v := range []float64{got.CurrentMonthly, got.GrowthRate, got.Month3, got.Month6, got.Year1, got.Year2} {
				assert.True(t, IsFinite(v), "value %v", v)
			}
			_, err := json.Marshal(got)
			assert.NoError(t, err)
		})
	}
}

func TestComputeRevenueProjections_ZeroGrowth(t *testing.T) {
	got := ComputeRevenueProjections(1000, 0)
	assert.Equal(t, 0.0, got.GrowthRate)
	assert.Equal(t, 12000.0, got.Year1)
	assert.Equal(t, 24000.0, got.Year2)
}

func TestComputeRevenueTotals(t *testing.T) {
	properties := []models.Property{
		{MonthlyRevenue: 10000, PurchasePrice: 1000000},
		{MonthlyRevenue: 5000, PurchasePrice: 500000},
	}
	got := ComputeRevenueTotals(properties)

	assert.Equal(t, 15000.0, got.MonthlyRevenue)
	assert.Equal(t, 180000.0, got.AnnualRevenue)
	assert.Equal(t, 7500.0, got.AverageRevenue)
	assert.Equal(t, 1500000.0, got.PortfolioValue)

	assert.Equal(t, models.RevenueTotals{}, ComputeRevenueTotals(nil))
}

func TestComputeMaintenanceStats(t *testing.T) {
	workOrders := []models.WorkOrder{
		{Status: models.WorkOrderOpen, Priority: models.PriorityHigh, EstimatedCost: 500},
		{Status: models.WorkOrderOpen, Priority: models.PriorityLow, EstimatedCost: 100},
		{Status: models.WorkOrderInProgress, Priority: models.PriorityHigh, EstimatedCost: 250},
		{Status: models.WorkOrderCompleted, Priority: models.PriorityMedium, EstimatedCost: 75},
	}

	got := ComputeMaintenanceStats(workOrders)

	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 2, got.Open)
	assert.Equal(t, 1, got.InProgress)
	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 1, got.HighPriorityOpen)
	assert.Equal(t, 25.0, got.CompletionRate)
	assert.Equal(t, 925.0, got.TotalEstimated)
	assert.Equal(t, 850.0, got.OpenEstimatedCost)

	assert.Equal(t, 0.0, ComputeMaintenanceStats(nil).CompletionRate)
}
