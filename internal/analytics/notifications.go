package analytics

import (
	"fmt"
	"time"

	"github.com/tesseract-hub/property-service/internal/models"
)

// MaxNotifications caps the derived notification list
const MaxNotifications = 5

// maxCompletedNotifications caps the success notifications before truncation
const maxCompletedNotifications = 2

// DeriveNotifications scans the snapshot for exception conditions. Items are generated
// in priority order (overdue rent, urgent work orders, recent completions) and the
// concatenated list is truncated to MaxNotifications. Completed work orders are taken
// in the order given; callers pass them most recent first.
func DeriveNotifications(tenants []models.Tenant, workOrders []models.WorkOrder, now time.Time) []models.Notification {
	var out []models.Notification

	for _, t := range tenants {
		if !t.IsOverdue() {
			continue
		}
		out = append(out, models.Notification{
			ID:      "overdue-" + t.ID,
			Message: fmt.Sprintf("%s has overdue rent of $%.2f", t.Name, -t.Balance),
			Type:    models.NotificationWarning,
			Time:    now,
		})
	}

	for _, wo := range workOrders {
		if wo.Status != models.WorkOrderOpen || wo.Priority != models.PriorityHigh {
			continue
		}
		out = append(out, models.Notification{
			ID:      "urgent-" + wo.ID,
			Message: fmt.Sprintf("Urgent work order at %s unit %s: %s", wo.Property, wo.Unit, wo.Issue),
			Type:    models.NotificationAlert,
			Time:    wo.DateSubmitted,
		})
	}

	completed := 0
	for _, wo := range workOrders {
		if completed == maxCompletedNotifications {
			break
		}
		if wo.Status != models.WorkOrderCompleted {
			continue
		}
		when := wo.DateSubmitted
		if wo.DateCompleted != nil {
			when = *wo.DateCompleted
		}
		out = append(out, models.Notification{
			ID:      "completed-" + wo.ID,
			Message: fmt.Sprintf("Work order completed at %s: %s", wo.Property, wo.Issue),
			Type:    models.NotificationSuccess,
			Time:    when,
		})
		completed++
	}

	if len(out) > MaxNotifications {
		out = out[:MaxNotifications]
	}
	if out == nil {
		out = []models.Notification{}
	}
	return out
}
