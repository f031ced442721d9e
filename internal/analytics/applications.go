package analytics

import (
	"sort"
	"strings"

	"github.com/tesseract-hub/property-service/internal/models"
)

// StatusFilterAll disables status filtering
const StatusFilterAll = "all"

// Sort keys accepted by SortApplications
const (
	SortBySubmittedDate = "submittedDate"
	SortByName          = "name"
	SortByProperty      = "property"
)

// FilterApplications keeps applications matching the search term (case-insensitive substring of
// first name, last name, email or property name) and the status filter.
func FilterApplications(apps []models.Application, searchTerm, statusFilter string) []models.Application {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	out := make([]models.Application, 0, len(apps))
	for _, a := range apps {
		if term != "" && !matchesSearch(a, term) {
			continue
		}
		if statusFilter != "" && statusFilter != StatusFilterAll && string(a.Status) != statusFilter {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesSearch(a models.Application, term string) bool {
	for _, field := range []string{a.FirstName, a.LastName, a.Email, a.PropertyName} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// SortApplications returns a sorted copy. Unknown keys keep the input order.
func SortApplications(apps []models.Application, sortKey string) []models.Application {
	out := append([]models.Application{}, apps...)
	var less func(i, j int) bool
	switch sortKey {
	case SortBySubmittedDate:
		less = func(i, j int) bool { return out[i].SubmittedDate.After(out[j].SubmittedDate) }
	case SortByName:
		less = func(i, j int) bool { return out[i].FullName() < out[j].FullName() }
	case SortByProperty:
		less = func(i, j int) bool { return out[i].PropertyName < out[j].PropertyName }
	default:
		return out
	}
	sort.SliceStable(out, less)
	return out
}

// ComputeApplicationStats counts applications per status
func ComputeApplicationStats(apps []models.Application) models.ApplicationStats {
	stats := models.ApplicationStats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case models.ApplicationSubmitted:
			stats.Submitted++
		case models.ApplicationScreening:
			stats.Screening++
		case models.ApplicationApproved:
			stats.Approved++
		case models.ApplicationRejected:
			stats.Rejected++
		case models.ApplicationConditional:
			stats.Conditional++
		case models.ApplicationWithdrawn:
			stats.Withdrawn++
		}
		if a.IsConverted() {
			stats.Converted++
		}
	}
	return stats
}
