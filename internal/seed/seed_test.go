package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/property-service/internal/analytics"
	"github.com/tesseract-hub/property-service/internal/models"
)

func TestDemo_Valid(t *testing.T) {
	s := Demo(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	for i := range s.Properties {
		require.NoError(t, s.Properties[i].Validate())
	}
	for i := range s.Tenants {
		require.NoError(t, s.Tenants[i].Validate())
	}
	for i := range s.WorkOrders {
		require.NoError(t, s.WorkOrders[i].Validate())
	}
	for i := range s.Transactions {
		require.NoError(t, s.Transactions[i].Validate())
	}
	for i := range s.Documents {
		require.NoError(t, s.Documents[i].Validate())
	}
	for i := range s.Applications {
		require.NoError(t, s.Applications[i].Validate())
	}
}

func TestDemo_TenantsReferenceProperties(t *testing.T) {
	s := Demo(time.Now())
	names := map[string]bool{}
	for _, p := range s.Properties {
		names[p.Name] = true
	}
	for _, tenant := range s.Tenants {
		assert.True(t, names[tenant.Property], tenant.Property)
	}
}

func TestDemo_ProducesNotifications(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s := Demo(now)

	notes := analytics.DeriveNotifications(s.Tenants, analytics.RecentFirst(s.WorkOrders), now)
	require.NotEmpty(t, notes)

	var hasAlert bool
	for _, n := range notes {
		if n.Type == models.NotificationAlert {
			hasAlert = true
		}
	}
	assert.True(t, hasAlert)
}
