package models

import (
	"fmt"
	"strings"
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Validate checks the property invariants
func (p *Property) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("property name is required")
	}
	switch p.Type {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeMixed, PropertyTypeIndustrial, PropertyTypeOther:
	default:
		return invalid("unknown property type %q", p.Type)
	}
	if p.Units < 0 {
		return invalid("units must be >= 0")
	}
	if p.Occupied < 0 || p.Occupied > p.Units {
		return invalid("occupied must be between 0 and units (%d)", p.Units)
	}
	if p.MonthlyRevenue < 0 {
		return invalid("monthly revenue must be >= 0")
	}
	return nil
}

// Validate checks the tenant invariants
func (t *Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("tenant name is required")
	}
	if t.Rent < 0 {
		return invalid("rent must be >= 0")
	}
	switch t.Status {
	case TenantStatusCurrent, TenantStatusFormer, TenantStatusPending:
	default:
		return invalid("unknown tenant status %q", t.Status)
	}
	return nil
}

// Validate checks the work order invariants
func (w *WorkOrder) Validate() error {
	if strings.TrimSpace(w.Issue) == "" {
		return invalid("work order issue is required")
	}
	switch w.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return invalid("unknown priority %q", w.Priority)
	}
	switch w.Status {
	case WorkOrderOpen, WorkOrderInProgress, WorkOrderCompleted, WorkOrderCancelled:
	default:
		return invalid("unknown work order status %q", w.Status)
	}
	if w.EstimatedCost < 0 {
		return invalid("estimated cost must be >= 0")
	}
	return nil
}

// Validate checks the transaction invariants
func (t *Transaction) Validate() error {
	switch t.Type {
	case TransactionIncome:
		if t.Amount < 0 {
			return invalid("income amount must be positive")
		}
	case TransactionExpense:
		if t.Amount > 0 {
			return invalid("expense amount must be negative")
		}
	default:
		return invalid("unknown transaction type %q", t.Type)
	}
	switch t.Status {
	case TransactionCompleted, TransactionPending, TransactionFailed:
	default:
		return invalid("unknown transaction status %q", t.Status)
	}
	return nil
}

// Validate checks the application invariants
func (a *Application) Validate() error {
	if strings.TrimSpace(a.FirstName) == "" || strings.TrimSpace(a.LastName) == "" {
		return invalid("applicant first and last name are required")
	}
	if strings.TrimSpace(a.Email) == "" {
		return invalid("applicant email is required")
	}
	if a.MonthlyIncome < 0 {
		return invalid("monthly income must be >= 0")
	}
	switch a.Status {
	case ApplicationSubmitted, ApplicationScreening, ApplicationApproved, ApplicationRejected,
		ApplicationConditional, ApplicationWithdrawn:
	default:
		return invalid("unknown application status %q", a.Status)
	}
	return nil
}

// Validate checks the document invariants
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("document name is required")
	}
	switch d.Category {
	case DocumentLease, DocumentMaintenance, DocumentFinancial, DocumentLegal, DocumentGeneral:
	default:
		return invalid("unknown document category %q", d.Category)
	}
	return nil
}
