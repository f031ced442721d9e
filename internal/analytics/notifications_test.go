package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/property-service/internal/models"
)

var testNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func overdueTenants(n int) []models.Tenant {
	out := make([]models.Tenant, n)
	for i := range out {
		out[i] = models.Tenant{
			ID:      fmt.Sprintf("t%d", i+1),
			Name:    fmt.Sprintf("Tenant %d", i+1),
			Balance: -100,
			Status:  models.TenantStatusCurrent,
		}
	}
	return out
}

func TestDeriveNotifications_CapsOverdue(t *testing.T) {
	got := DeriveNotifications(overdueTenants(6), nil, testNow)

	require.Len(t, got, MaxNotifications)
	for _, n := range got {
		assert.Equal(t, models.NotificationWarning, n.Type)
	}
	assert.Equal(t, "overdue-t1", got[0].ID)
	assert.Equal(t, "overdue-t5", got[4].ID)
}

func TestDeriveNotifications_OverdueCrowdsOutOthers(t *testing.T) {
	completed := testNow.Add(-time.Hour)
	workOrders := []models.WorkOrder{
		{ID: "w1", Status: models.WorkOrderOpen, Priority: models.PriorityHigh, DateSubmitted: testNow},
		{ID: "w2", Status: models.WorkOrderCompleted, DateCompleted: &completed},
	}

	got := DeriveNotifications(overdueTenants(5), workOrders, testNow)

	require.Len(t, got, 5)
	for _, n := range got {
		assert.Equal(t, models.NotificationWarning, n.Type)
	}
}

func TestDeriveNotifications_Order(t *testing.T) {
	completed := testNow.Add(-2 * time.Hour)
	tenants := []models.Tenant{
		{ID: "t1", Name: "Jane", Balance: -50},
		{ID: "t2", Name: "Paid", Balance: 0},
	}
	workOrders := []models.WorkOrder{
		{ID: "c1", Status: models.WorkOrderCompleted, DateCompleted: &completed},
		{ID: "u1", Status: models.WorkOrderOpen, Priority: models.PriorityHigh, DateSubmitted: testNow.Add(-time.Hour)},
		{ID: "c2", Status: models.WorkOrderCompleted, DateSubmitted: testNow.Add(-3 * time.Hour)},
		{ID: "c3", Status: models.WorkOrderCompleted, DateSubmitted: testNow.Add(-4 * time.Hour)},
		{ID: "u2", Status: models.WorkOrderInProgress, Priority: models.PriorityHigh},
		{ID: "u3", Status: models.WorkOrderOpen, Priority: models.PriorityMedium},
	}

	got := DeriveNotifications(tenants, workOrders, testNow)

	require.Len(t, got, 4)
	assert.Equal(t, "overdue-t1", got[0].ID)
	assert.Equal(t, testNow, got[0].Time)
	assert.Equal(t, "urgent-u1", got[1].ID)
	assert.Equal(t, models.NotificationAlert, got[1].Type)
	assert.Equal(t, "completed-c1", got[2].ID)
	assert.Equal(t, completed, got[2].Time)
	assert.Equal(t, "completed-c2", got[3].ID)
	assert.Equal(t, models.NotificationSuccess, got[3].Type)
}

func TestDeriveNotifications_Empty(t *testing.T) {
	got := DeriveNotifications(nil, nil, testNow)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecentFirst(t *testing.T) {
	completed := testNow.Add(-time.Minute)
	workOrders := []models.WorkOrder{
		{ID: "old", DateSubmitted: testNow.Add(-48 * time.Hour)},
		{ID: "done", DateSubmitted: testNow.Add(-72 * time.Hour), DateCompleted: &completed},
		{ID: "new", DateSubmitted: testNow.Add(-time.Hour)},
	}

	got := RecentFirst(workOrders)

	assert.Equal(t, []string{"done", "new", "old"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "old", workOrders[0].ID)
}
