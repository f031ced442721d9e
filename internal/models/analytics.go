package models

import (
	"encoding/json"
	"time"
)

// Occupancy summarises unit usage across properties
type Occupancy struct {
	TotalUnits    int `json:"totalUnits"`
	OccupiedUnits int `json:"occupiedUnits"`
	VacantUnits   int `json:"vacantUnits"`
	OccupancyRate int `json:"occupancyRate"` // Percentage, rounded
}

// FinancialSummary represents monthly financial metrics
type FinancialSummary struct {
	MonthlyIncome      float64 `json:"monthlyIncome"`
	MonthlyExpenses    float64 `json:"monthlyExpenses"`
	NetIncome          float64 `json:"netIncome"`
	OutstandingBalance float64 `json:"outstandingBalance"`
	OverdueCount       int     `json:"overdueCount"`
	ProfitMargin       float64 `json:"profitMargin"` // Percentage
}

// ExpenseCategory is budget utilisation for one category
type ExpenseCategory struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
	OverBudget bool    `json:"overBudget"`
}

// Budget is a spending ceiling for an expense category
type Budget struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
}

// PropertyPerformance represents per-property metrics
type PropertyPerformance struct {
	PropertyID     string       `json:"propertyId"`
	Name           string       `json:"name"`
	Type           PropertyType `json:"type"`
	OccupancyRate  int          `json:"occupancyRate"`
	TenantCount    int          `json:"tenantCount"`
	RevenuePerUnit float64      `json:"revenuePerUnit"`
	MonthlyRevenue float64      `json:"monthlyRevenue"`
}

// CollectionRate is rent collected against expected charges
type CollectionRate struct {
	Collected float64 `json:"collected"`
	Expected  float64 `json:"expected"`
	Rate      float64 `json:"rate"` // Percentage, not capped
}

// RevenueProjections are projected revenue totals for fixed horizons
type RevenueProjections struct {
	CurrentMonthly float64 `json:"currentMonthly"`
	GrowthRate     float64 `json:"growthRate"`
	Month3         float64 `json:"month3"`
	Month6         float64 `json:"month6"`
	Year1          float64 `json:"year1"`
	Year2          float64 `json:"year2"`
}

// RevenueTotals aggregates property revenue
type RevenueTotals struct {
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	AnnualRevenue  float64 `json:"annualRevenue"`
	AverageRevenue float64 `json:"averageRevenue"` // Per property
	PortfolioValue float64 `json:"portfolioValue"` // Sum of purchase prices
}

// MaintenanceStats summarises work orders
type MaintenanceStats struct {
	Total             int     `json:"total"`
	Open              int     `json:"open"`
	InProgress        int     `json:"inProgress"`
	Completed         int     `json:"completed"`
	Cancelled         int     `json:"cancelled"`
	HighPriorityOpen  int     `json:"highPriorityOpen"`
	CompletionRate    float64 `json:"completionRate"` // Percentage
	TotalEstimated    float64 `json:"totalEstimatedCost"`
	OpenEstimatedCost float64 `json:"openEstimatedCost"`
}

// LeaseExpiration is a lease ending inside the requested window
type LeaseExpiration struct {
	TenantID      string    `json:"tenantId"`
	TenantName    string    `json:"tenantName"`
	Property      string    `json:"property"`
	Unit          string    `json:"unit"`
	LeaseEnd      time.Time `json:"leaseEnd"`
	DaysRemaining int       `json:"daysRemaining"`
}

// LeaseExpiryWindows counts leases ending within 30, 60 and 90 days
type LeaseExpiryWindows struct {
	Within30 int `json:"within30"`
	Within60 int `json:"within60"`
	Within90 int `json:"within90"`
}

// PropertyTypeBreakdown aggregates properties of a single type
type PropertyTypeBreakdown struct {
	Type           PropertyType `json:"type"`
	Count          int          `json:"count"`
	Units          int          `json:"units"`
	Occupied       int          `json:"occupied"`
	OccupancyRate  int          `json:"occupancyRate"`
	MonthlyRevenue float64      `json:"monthlyRevenue"`
	Percentage     float64      `json:"percentage"` // Share of total revenue
}

// PropertyRanking is a ranked property performance row
type PropertyRanking struct {
	Rank int `json:"rank"`
	PropertyPerformance
}

// Portfolio summarises the whole property portfolio
type Portfolio struct {
	PropertyCount   int                     `json:"propertyCount"`
	TenantCount     int                     `json:"tenantCount"`
	Occupancy       Occupancy               `json:"occupancy"`
	Revenue         RevenueTotals           `json:"revenue"`
	AnnualYield     float64                 `json:"annualYield"` // Annual revenue / portfolio value, percentage
	TypeBreakdown   []PropertyTypeBreakdown `json:"typeBreakdown"`
	TopPerformer    *PropertyPerformance    `json:"topPerformer,omitempty"`
	LowestOccupancy *PropertyPerformance    `json:"lowestOccupancy,omitempty"`
}

// Correlations holds Pearson coefficients between property metrics
type Correlations struct {
	SampleSize                int     `json:"sampleSize"`
	UnitsVsRevenue            float64 `json:"unitsVsRevenue"`
	OccupancyVsRevenue        float64 `json:"occupancyVsRevenue"`
	OccupancyVsRevenuePerUnit float64 `json:"occupancyVsRevenuePerUnit"`
	PriceVsRevenue            float64 `json:"priceVsRevenue"`
}

// Dashboard is the headline view of the portfolio
type Dashboard struct {
	GeneratedAt   time.Time          `json:"generatedAt"`
	PropertyCount int                `json:"propertyCount"`
	TenantCount   int                `json:"tenantCount"`
	Occupancy     Occupancy          `json:"occupancy"`
	Financial     FinancialSummary   `json:"financial"`
	Maintenance   MaintenanceStats   `json:"maintenance"`
	Collection    CollectionRate     `json:"collection"`
	LeaseExpiry   LeaseExpiryWindows `json:"leaseExpiry"`
	Notifications []Notification     `json:"notifications"`
	Applications  ApplicationStats   `json:"applications"`
	PendingSync   int                `json:"pendingSync"`
}

// NotificationType is the severity of a derived notification
type NotificationType string

const (
	NotificationWarning NotificationType = "warning"
	NotificationAlert   NotificationType = "alert"
	NotificationSuccess NotificationType = "success"
)

// Notification is an exception condition derived from the current snapshot
type Notification struct {
	ID      string           `json:"id"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
	Time    time.Time        `json:"time"`
}

// ApplicationStats counts applications per status
type ApplicationStats struct {
	Total       int `json:"total"`
	Submitted   int `json:"submitted"`
	Screening   int `json:"screening"`
	Approved    int `json:"approved"`
	Rejected    int `json:"rejected"`
	Conditional int `json:"conditional"`
	Withdrawn   int `json:"withdrawn"`
	Converted   int `json:"converted"`
}

// RemoteAggregates are the analytics computed by the remote service.
// Payloads are kept opaque; only their presence is interpreted.
type RemoteAggregates struct {
	Dashboard     json.RawMessage `json:"dashboard,omitempty"`
	PropertyTypes json.RawMessage `json:"propertyTypes,omitempty"`
	Rankings      json.RawMessage `json:"rankings,omitempty"`
	Portfolio     json.RawMessage `json:"portfolio,omitempty"`
	Correlations  json.RawMessage `json:"correlations,omitempty"`
	FetchedAt     time.Time       `json:"fetchedAt"`
}

// SyncResult is the outcome of one refresh attempt
type SyncResult struct {
	Sequence  uint64            `json:"sequence"`
	Source    string            `json:"source"`
	Stale     bool              `json:"stale"`
	Error     string            `json:"error,omitempty"`
	Dashboard *Dashboard        `json:"dashboard"`
	Remote    *RemoteAggregates `json:"remote,omitempty"`
	SyncedAt  time.Time         `json:"syncedAt"`
}

// SyncStatus reports the adapter state
type SyncStatus struct {
	Enabled      bool        `json:"enabled"`
	LastSequence uint64      `json:"lastSequence"`
	LastResult   *SyncResult `json:"lastResult,omitempty"`
	PendingSync  int         `json:"pendingSync"`
	BreakerState string      `json:"breakerState"`
}
