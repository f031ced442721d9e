package analytics

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tesseract-hub/property-service/internal/models"
)

// DefaultGrowthRate is the annual growth assumed by revenue projections
const DefaultGrowthRate = 0.05

// DefaultPerUnitCharge is the expected rent per rent transaction used by the collection rate
const DefaultPerUnitCharge = 1200.0

// DefaultBudgets is the monthly expense budget table, in display order
var DefaultBudgets = []models.Budget{
	{Category: "Maintenance", Limit: 5000},
	{Category: "Utilities", Limit: 3000},
	{Category: "Insurance", Limit: 2000},
	{Category: "Property Tax", Limit: 4000},
	{Category: "Management", Limit: 2500},
	{Category: "Marketing", Limit: 1000},
}

// percentOf returns 100*part/whole, or 0 when whole is zero
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * part / whole
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// ComputeOccupancy totals units across properties
func ComputeOccupancy(properties []models.Property) models.Occupancy {
	var occ models.Occupancy
	for _, p := range properties {
		occ.TotalUnits += p.Units
		occ.OccupiedUnits += p.Occupied
	}
	occ.VacantUnits = occ.TotalUnits - occ.OccupiedUnits
	occ.OccupancyRate = int(math.Round(percentOf(float64(occ.OccupiedUnits), float64(occ.TotalUnits))))
	return occ
}

// ComputeFinancialSummary derives monthly income from the rent roll of current
// tenants and expenses from expense transactions.
func ComputeFinancialSummary(tenants []models.Tenant, transactions []models.Transaction) models.FinancialSummary {
	income := decimal.Zero
	outstanding := decimal.Zero
	overdue := 0
	for _, t := range tenants {
		if t.Status == models.TenantStatusCurrent {
			income = income.Add(decimal.NewFromFloat(t.Rent))
		}
		if t.IsOverdue() {
			outstanding = outstanding.Add(decimal.NewFromFloat(t.Balance).Abs())
			overdue++
		}
	}

	expenses := decimal.Zero
	for _, tx := range transactions {
		if tx.Type == models.TransactionExpense {
			expenses = expenses.Add(decimal.NewFromFloat(tx.Amount).Abs())
		}
	}

	net := income.Sub(expenses)
	summary := models.FinancialSummary{
		MonthlyIncome:      income.InexactFloat64(),
		MonthlyExpenses:    expenses.InexactFloat64(),
		OutstandingBalance: outstanding.InexactFloat64(),
		OverdueCount:       overdue,
	}
	summary.NetIncome = summary.MonthlyIncome - summary.MonthlyExpenses
	if !income.IsZero() {
		summary.ProfitMargin = net.Div(income).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}
	return summary
}

// ComputeExpenseCategories sums expense transactions per budget category.
// Category matching is case-insensitive; a zero budget yields a zero percentage.
func ComputeExpenseCategories(transactions []models.Transaction, budgets []models.Budget) []models.ExpenseCategory {
	totals := make(map[string]decimal.Decimal, len(budgets))
	for _, tx := range transactions {
		if tx.Type != models.TransactionExpense {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(tx.Category))
		totals[key] = totals[key].Add(decimal.NewFromFloat(tx.Amount).Abs())
	}

	out := make([]models.ExpenseCategory, 0, len(budgets))
	for _, b := range budgets {
		amount := totals[strings.ToLower(strings.TrimSpace(b.Category))].InexactFloat64()
		out = append(out, models.ExpenseCategory{
			Category:   b.Category,
			Amount:     amount,
			Budget:     b.Limit,
			Percentage: percentOf(amount, b.Limit),
			Remaining:  b.Limit - amount,
			OverBudget: amount > b.Limit,
		})
	}
	return out
}

// ComputePropertyPerformance reports occupancy, current tenant count and revenue per unit for each property
func ComputePropertyPerformance(properties []models.Property, tenants []models.Tenant) []models.PropertyPerformance {
	index := NewPropertyIndex(properties)
	counts := index.CurrentTenantCounts(tenants)

	out := make([]models.PropertyPerformance, 0, len(properties))
	for _, p := range properties {
		out = append(out, models.PropertyPerformance{
			PropertyID:     p.ID,
			Name:           p.Name,
			Type:           p.Type,
			OccupancyRate:  int(math.Round(percentOf(float64(p.Occupied), float64(p.Units)))),
			TenantCount:    counts[p.Name],
			RevenuePerUnit: ratio(p.MonthlyRevenue, float64(p.Units)),
			MonthlyRevenue: p.MonthlyRevenue,
		})
	}
	return out
}

// IsRentPayment reports whether a transaction is a rent receipt
func IsRentPayment(tx models.Transaction) bool {
	return tx.Type == models.TransactionIncome && strings.Contains(tx.Description, "Rent")
}

// ComputeCollectionRate compares completed rent receipts with the charges expected
// for every rent transaction. Without rent charges collection is vacuously 100%.
func ComputeCollectionRate(transactions []models.Transaction, perUnitCharge float64) models.CollectionRate {
	collected := decimal.Zero
	charges := 0
	for _, tx := range transactions {
		if !IsRentPayment(tx) {
			continue
		}
		charges++
		if tx.Status == models.TransactionCompleted {
			collected = collected.Add(decimal.NewFromFloat(tx.Amount))
		}
	}

	result := models.CollectionRate{Collected: collected.InexactFloat64()}
	if charges == 0 || perUnitCharge <= 0 {
		result.Rate = 100
		return result
	}
	result.Expected = float64(charges) * perUnitCharge
	result.Rate = percentOf(result.Collected, result.Expected)
	return result
}

// ComputeRevenueProjections projects cumulative revenue at 3, 6, 12 and 24 months.
// Non-finite inputs are treated as zero and overflowing results are reported as zero.
func ComputeRevenueProjections(currentMonthlyRevenue, growthRate float64) models.RevenueProjections {
	r, g := finite(currentMonthlyRevenue), finite(growthRate)
	return models.RevenueProjections{
		CurrentMonthly: r,
		GrowthRate:     g,
		Month3:         finite(r * 3 * (1 + g/4)),
		Month6:         finite(r * 6 * (1 + g/2)),
		Year1:          finite(r * 12 * (1 + g)),
		Year2:          finite(r * 24 * (1 + g) * (1 + g*0.8)),
	}
}

// IsFinite reports whether v is neither NaN nor infinite
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite(v float64) float64 {
	if !IsFinite(v) {
		return 0
	}
	return v
}

// ComputeRevenueTotals aggregates scheduled revenue and purchase value
func ComputeRevenueTotals(properties []models.Property) models.RevenueTotals {
	monthly := decimal.Zero
	value := decimal.Zero
	for _, p := range properties {
		monthly = monthly.Add(decimal.NewFromFloat(p.MonthlyRevenue))
		value = value.Add(decimal.NewFromFloat(p.PurchasePrice))
	}
	totals := models.RevenueTotals{
		MonthlyRevenue: monthly.InexactFloat64(),
		AnnualRevenue:  monthly.Mul(decimal.NewFromInt(12)).InexactFloat64(),
		PortfolioValue: value.InexactFloat64(),
	}
	totals.AverageRevenue = ratio(totals.MonthlyRevenue, float64(len(properties)))
	return totals
}

// ComputeMaintenanceStats counts work orders per status
func ComputeMaintenanceStats(workOrders []models.WorkOrder) models.MaintenanceStats {
	var stats models.MaintenanceStats
	total := decimal.Zero
	open := decimal.Zero
	for _, wo := range workOrders {
		stats.Total++
		cost := decimal.NewFromFloat(wo.EstimatedCost)
		total = total.Add(cost)
		switch wo.Status {
		case models.WorkOrderOpen:
			stats.Open++
			open = open.Add(cost)
			if wo.Priority == models.PriorityHigh {
				stats.HighPriorityOpen++
			}
		case models.WorkOrderInProgress:
			stats.InProgress++
			open = open.Add(cost)
		case models.WorkOrderCompleted:
			stats.Completed++
		case models.WorkOrderCancelled:
			stats.Cancelled++
		}
	}
	stats.CompletionRate = percentOf(float64(stats.Completed), float64(stats.Total))
	stats.TotalEstimated = total.InexactFloat64()
	stats.OpenEstimatedCost = open.InexactFloat64()
	return stats
}
