package models

import (
	"time"
)

// PropertyType classifies a property
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeMixed       PropertyType = "mixed"
	PropertyTypeIndustrial  PropertyType = "industrial"
	PropertyTypeOther       PropertyType = "other"
)

// Property represents a managed building or complex
type Property struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	Type           PropertyType `json:"type"`
	Units          int          `json:"units"`
	Occupied       int          `json:"occupied"`
	MonthlyRevenue float64      `json:"monthlyRevenue"`
	PurchasePrice  float64      `json:"purchasePrice"`
}

// TenantStatus is the lifecycle state of a tenant
type TenantStatus string

const (
	TenantStatusCurrent TenantStatus = "Current"
	TenantStatusFormer  TenantStatus = "Former"
	TenantStatusPending TenantStatus = "Pending"
)

// Tenant represents a lease holder. Property holds the property name, not its id.
type Tenant struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone,omitempty"`
	Property   string       `json:"property"`
	Unit       string       `json:"unit"`
	Rent       float64      `json:"rent"`
	LeaseStart time.Time    `json:"leaseStart"`
	LeaseEnd   time.Time    `json:"leaseEnd"`
	Balance    float64      `json:"balance"` // Negative means the tenant owes money
	Status     TenantStatus `json:"status"`
}

// IsOverdue reports whether the tenant has an outstanding balance
func (t Tenant) IsOverdue() bool {
	return t.Balance < 0
}

// WorkOrderPriority is used for triage ordering
type WorkOrderPriority string

const (
	PriorityLow    WorkOrderPriority = "Low"
	PriorityMedium WorkOrderPriority = "Medium"
	PriorityHigh   WorkOrderPriority = "High"
)

// WorkOrderStatus is the lifecycle state of a work order
type WorkOrderStatus string

const (
	WorkOrderOpen       WorkOrderStatus = "Open"
	WorkOrderInProgress WorkOrderStatus = "In Progress"
	WorkOrderCompleted  WorkOrderStatus = "Completed"
	WorkOrderCancelled  WorkOrderStatus = "Cancelled"
)

// WorkOrder represents a maintenance request
type WorkOrder struct {
	ID            string            `json:"id"`
	Issue         string            `json:"issue"`
	Property      string            `json:"property"`
	Unit          string            `json:"unit"`
	Tenant        string            `json:"tenant"`
	Priority      WorkOrderPriority `json:"priority"`
	Status        WorkOrderStatus   `json:"status"`
	DateSubmitted time.Time         `json:"dateSubmitted"`
	DateCompleted *time.Time        `json:"dateCompleted,omitempty"`
	AssignedTo    string            `json:"assignedTo,omitempty"`
	EstimatedCost float64           `json:"estimatedCost"`
}

// TransactionType distinguishes income from expenses
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// TransactionStatus is the settlement state of a transaction
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is a single ledger entry. Amount is positive for income and negative for expenses.
type Transaction struct {
	ID          string            `json:"id"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Type        TransactionType   `json:"type"`
	Amount      float64           `json:"amount"`
	Category    string            `json:"category"`
	Status      TransactionStatus `json:"status"`
	Property    string            `json:"property,omitempty"`
	Unit        string            `json:"unit,omitempty"`
	Tenant      string            `json:"tenant,omitempty"`
}

// ApplicationStatus is a state of the rental application workflow
type ApplicationStatus string

const (
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationScreening   ApplicationStatus = "screening"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationConditional ApplicationStatus = "conditional"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// Application is a prospective tenant's rental application
type Application struct {
	ID                string            `json:"id"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	PropertyName      string            `json:"propertyName"`
	DesiredUnit       string            `json:"desiredUnit"`
	DesiredMoveInDate time.Time         `json:"desiredMoveInDate"`
	MonthlyIncome     float64           `json:"monthlyIncome"`
	Status            ApplicationStatus `json:"status"`
	SubmittedDate     time.Time         `json:"submittedDate"`
	TenantID          string            `json:"tenantId,omitempty"`
	Notes             string            `json:"notes,omitempty"`
}

// FullName returns "first last"
func (a Application) FullName() string {
	return a.FirstName + " " + a.LastName
}

// IsConverted reports whether the application already produced a tenant
func (a Application) IsConverted() bool {
	return a.TenantID != ""
}

// DocumentCategory groups stored documents
type DocumentCategory string

const (
	DocumentLease       DocumentCategory = "lease"
	DocumentMaintenance DocumentCategory = "maintenance"
	DocumentFinancial   DocumentCategory = "financial"
	DocumentLegal       DocumentCategory = "legal"
	DocumentGeneral     DocumentCategory = "general"
)

// AllProperties is the property value of documents not tied to a single property
const AllProperties = "All Properties"

// Document is an uploaded file and its extracted text
type Document struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    DocumentCategory `json:"category"`
	Property    string           `json:"property"`
	DateAdded   time.Time        `json:"dateAdded"`
	Content     string           `json:"content,omitempty"`
	PayloadRef  string           `json:"payloadRef,omitempty"`
	ContentType string           `json:"contentType,omitempty"`
	Size        int64            `json:"size,omitempty"`
}
