package analytics

import (
	"sort"
	"time"

	"github.com/tesseract-hub/property-service/internal/models"
)

// calendarDay maps the local date of t onto UTC midnight so day differences
// are not skewed by DST shifts.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(calendarDay(to).Sub(calendarDay(from)).Hours() / 24)
}

// ComputeLeaseExpirations lists current tenants whose lease ends within windowDays of now,
// soonest first. Leases that already ended are excluded.
func ComputeLeaseExpirations(tenants []models.Tenant, now time.Time, windowDays int) []models.LeaseExpiration {
	out := make([]models.LeaseExpiration, 0)
	if windowDays < 0 {
		return out
	}
	for _, t := range tenants {
		if t.Status != models.TenantStatusCurrent || t.LeaseEnd.IsZero() {
			continue
		}
		days := daysBetween(now, t.LeaseEnd.In(now.Location()))
		if days < 0 || days > windowDays {
			continue
		}
		out = append(out, models.LeaseExpiration{
			TenantID:      t.ID,
			TenantName:    t.Name,
			Property:      t.Property,
			Unit:          t.Unit,
			LeaseEnd:      t.LeaseEnd,
			DaysRemaining: days,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LeaseEnd.Before(out[j].LeaseEnd)
	})
	return out
}

// LeaseExpiryWindows counts expiring leases for the 30/60/90 day windows
func LeaseExpiryWindows(tenants []models.Tenant, now time.Time) models.LeaseExpiryWindows {
	var w models.LeaseExpiryWindows
	for _, exp := range ComputeLeaseExpirations(tenants, now, 90) {
		if exp.DaysRemaining <= 30 {
			w.Within30++
		}
		if exp.DaysRemaining <= 60 {
			w.Within60++
		}
		w.Within90++
	}
	return w
}
