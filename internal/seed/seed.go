// Package seed builds the demo portfolio loaded by the seed command.
package seed

import (
	"time"

	"github.com/tesseract-hub/property-service/internal/models"
)

// Demo returns a small, internally consistent portfolio with dates relative to now
func Demo(now time.Time) *models.Snapshot {
	day := func(offset int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	completed := day(-3)

	return &models.Snapshot{
		Properties: []models.Property{
			{ID: "prop-1", Name: "Maple Court", Address: "12 Maple Ave", Type: models.PropertyTypeResidential,
				Units: 12, Occupied: 10, MonthlyRevenue: 14400, PurchasePrice: 1450000},
			{ID: "prop-2", Name: "Harbor Plaza", Address: "400 Harbor Blvd", Type: models.PropertyTypeCommercial,
				Units: 6, Occupied: 4, MonthlyRevenue: 21000, PurchasePrice: 3200000},
			{ID: "prop-3", Name: "Riverside Lofts", Address: "88 River Rd", Type: models.PropertyTypeMixed,
				Units: 20, Occupied: 18, MonthlyRevenue: 26000, PurchasePrice: 2800000},
			{ID: "prop-4", Name: "Eastgate Depot", Address: "5 Industrial Way", Type: models.PropertyTypeIndustrial,
				Units: 2, Occupied: 1, MonthlyRevenue: 9000, PurchasePrice: 1100000},
		},
		Tenants: []models.Tenant{
			{ID: "ten-1", Name: "Jane Roe", Email: "jane@example.com", Property: "Maple Court", Unit: "1A",
				Rent: 1200, LeaseStart: day(-340), LeaseEnd: day(25), Balance: 0, Status: models.TenantStatusCurrent},
			{ID: "ten-2", Name: "Omar Haddad", Email: "omar@example.com", Property: "Maple Court", Unit: "2C",
				Rent: 1250, LeaseStart: day(-200), LeaseEnd: day(165), Balance: -450, Status: models.TenantStatusCurrent},
			{ID: "ten-3", Name: "Bright Coffee Co", Email: "ops@brightcoffee.example", Property: "Harbor Plaza", Unit: "G1",
				Rent: 5200, LeaseStart: day(-700), LeaseEnd: day(55), Balance: 0, Status: models.TenantStatusCurrent},
			{ID: "ten-4", Name: "Lena Fischer", Email: "lena@example.com", Property: "Riverside Lofts", Unit: "305",
				Rent: 1450, LeaseStart: day(-90), LeaseEnd: day(275), Balance: -1450, Status: models.TenantStatusCurrent},
			{ID: "ten-5", Name: "Northwind Logistics", Email: "fleet@northwind.example", Property: "Eastgate Depot", Unit: "B",
				Rent: 9000, LeaseStart: day(-365), LeaseEnd: day(80), Balance: 0, Status: models.TenantStatusCurrent},
			{ID: "ten-6", Name: "Sam Park", Email: "sam@example.com", Property: "Riverside Lofts", Unit: "112",
				Rent: 1300, LeaseStart: day(-800), LeaseEnd: day(-35), Balance: 0, Status: models.TenantStatusFormer},
		},
		WorkOrders: []models.WorkOrder{
			{ID: "wo-1", Issue: "Water heater leaking", Property: "Maple Court", Unit: "1A", Tenant: "Jane Roe",
				Priority: models.PriorityHigh, Status: models.WorkOrderOpen, DateSubmitted: day(-1), EstimatedCost: 900},
			{ID: "wo-2", Issue: "HVAC filter replacement", Property: "Harbor Plaza", Unit: "G1", Tenant: "Bright Coffee Co",
				Priority: models.PriorityLow, Status: models.WorkOrderInProgress, DateSubmitted: day(-6), AssignedTo: "CoolAir Services", EstimatedCost: 250},
			{ID: "wo-3", Issue: "Broken window latch", Property: "Riverside Lofts", Unit: "305", Tenant: "Lena Fischer",
				Priority: models.PriorityMedium, Status: models.WorkOrderCompleted, DateSubmitted: day(-10), DateCompleted: &completed, AssignedTo: "In-house", EstimatedCost: 120},
			{ID: "wo-4", Issue: "Loading dock door sensor", Property: "Eastgate Depot", Unit: "B", Tenant: "Northwind Logistics",
				Priority: models.PriorityHigh, Status: models.WorkOrderCancelled, DateSubmitted: day(-20), EstimatedCost: 600},
		},
		Transactions: []models.Transaction{
			{ID: "tx-1", Date: day(-2), Description: "Rent - Maple Court 1A", Type: models.TransactionIncome, Amount: 1200,
				Category: "Rent", Status: models.TransactionCompleted, Property: "Maple Court", Unit: "1A", Tenant: "Jane Roe"},
			{ID: "tx-2", Date: day(-2), Description: "Rent - Maple Court 2C", Type: models.TransactionIncome, Amount: 800,
				Category: "Rent", Status: models.TransactionCompleted, Property: "Maple Court", Unit: "2C", Tenant: "Omar Haddad"},
			{ID: "tx-3", Date: day(-1), Description: "Rent - Harbor Plaza G1", Type: models.TransactionIncome, Amount: 5200,
				Category: "Rent", Status: models.TransactionCompleted, Property: "Harbor Plaza", Unit: "G1", Tenant: "Bright Coffee Co"},
			{ID: "tx-4", Date: day(-1), Description: "Rent - Riverside Lofts 305", Type: models.TransactionIncome, Amount: 1450,
				Category: "Rent", Status: models.TransactionFailed, Property: "Riverside Lofts", Unit: "305", Tenant: "Lena Fischer"},
			{ID: "tx-5", Date: day(-4), Description: "Plumbing repair", Type: models.TransactionExpense, Amount: -650,
				Category: "Maintenance", Status: models.TransactionCompleted, Property: "Maple Court"},
			{ID: "tx-6", Date: day(-5), Description: "Electricity", Type: models.TransactionExpense, Amount: -1800,
				Category: "Utilities", Status: models.TransactionCompleted, Property: "Riverside Lofts"},
			{ID: "tx-7", Date: day(-7), Description: "Building insurance", Type: models.TransactionExpense, Amount: -2300,
				Category: "Insurance", Status: models.TransactionCompleted},
			{ID: "tx-8", Date: day(-3), Description: "Listing ads", Type: models.TransactionExpense, Amount: -300,
				Category: "Marketing", Status: models.TransactionPending},
		},
		Documents: []models.Document{
			{ID: "doc-1", Name: "Lease - Jane Roe", Category: models.DocumentLease, Property: "Maple Court", DateAdded: day(-340)},
			{ID: "doc-2", Name: "Insurance policy 2026", Category: models.DocumentFinancial, Property: models.AllProperties, DateAdded: day(-7)},
			{ID: "doc-3", Name: "Window repair invoice", Category: models.DocumentMaintenance, Property: "Riverside Lofts", DateAdded: day(-3)},
		},
		Applications: []models.Application{
			{ID: "app-1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555-0101",
				PropertyName: "Maple Court", DesiredUnit: "3B", DesiredMoveInDate: day(30), MonthlyIncome: 6500,
				Status: models.ApplicationApproved, SubmittedDate: day(-9)},
			{ID: "app-2", FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Phone: "555-0102",
				PropertyName: "Riverside Lofts", DesiredUnit: "210", DesiredMoveInDate: day(45), MonthlyIncome: 5200,
				Status: models.ApplicationScreening, SubmittedDate: day(-4)},
			{ID: "app-3", FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Phone: "555-0103",
				PropertyName: "Harbor Plaza", DesiredUnit: "G3", DesiredMoveInDate: day(60), MonthlyIncome: 3100,
				Status: models.ApplicationSubmitted, SubmittedDate: day(-1)},
			{ID: "app-4", FirstName: "Edsger", LastName: "Dijkstra", Email: "edsger@example.com", Phone: "555-0104",
				PropertyName: "Maple Court", DesiredUnit: "1C", DesiredMoveInDate: day(20), MonthlyIncome: 2400,
				Status: models.ApplicationRejected, SubmittedDate: day(-15), Notes: "Income below 3x rent"},
		},
	}
}
