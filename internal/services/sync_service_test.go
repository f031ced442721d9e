package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/property-service/internal/clients"
	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/storage"
)

// blockingClient holds the first push until release is closed
type blockingClient struct {
	mu      sync.Mutex
	pushes  int
	entered chan struct{}
	release chan struct{}
}

func (c *blockingClient) PushSnapshot(ctx context.Context, _ *models.Snapshot) error {
	c.mu.Lock()
	c.pushes++
	first := c.pushes == 1
	c.mu.Unlock()
	if first {
		close(c.entered)
		<-c.release
	}
	return nil
}

func (c *blockingClient) FetchAggregate(ctx context.Context, name string) (json.RawMessage, error) {
	return json.RawMessage(`{"name":"` + name + `"}`), nil
}

func (c *blockingClient) BreakerState() string { return "closed" }

type failingClient struct{}

func (failingClient) PushSnapshot(context.Context, *models.Snapshot) error {
	return errors.New("connection refused")
}

func (failingClient) FetchAggregate(context.Context, string) (json.RawMessage, error) {
	return nil, errors.New("connection refused")
}

func (failingClient) BreakerState() string { return "closed" }

func remoteServer(t *testing.T, failAggregate string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/analytics/"+failAggregate {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"success":true,"data":{"path":"` + r.URL.Path + `"},"source":"remote"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSyncService_RemoteSuccess(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	server := remoteServer(t, "")
	client := clients.NewAnalyticsClient(config.RemoteConfig{BaseURL: server.URL, Timeout: time.Second, MaxFailures: 3, OpenInterval: time.Minute}, f.logger)
	svc := NewSyncService(f.repo, f.analytics, client, f.kv, f.logger)
	before := testutil.ToFloat64(syncRefreshTotal.WithLabelValues(outcomeRemote))

	result := svc.Refresh(context.Background())

	assert.Equal(t, models.SourceRemote, result.Source)
	assert.Equal(t, before+1, testutil.ToFloat64(syncRefreshTotal.WithLabelValues(outcomeRemote)))
	assert.Empty(t, result.Error)
	require.NotNil(t, result.Remote)
	assert.JSONEq(t, `{"path":"/analytics/correlations"}`, string(result.Remote.Correlations))
	assert.Zero(t, f.repo.Pending().Count())
	assert.Zero(t, result.Dashboard.PendingSync)

	_, ok, err := f.kv.Get(context.Background(), storage.RemoteCacheKey)
	require.NoError(t, err)
	assert.True(t, ok)

	status := svc.Status()
	assert.True(t, status.Enabled)
	assert.Equal(t, uint64(1), status.LastSequence)
	assert.Equal(t, "closed", status.BreakerState)
}

func TestSyncService_FailureFallsBackToLocal(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	before := f.analytics.GetDashboard(context.Background())

	server := remoteServer(t, "rankings")
	client := clients.NewAnalyticsClient(config.RemoteConfig{BaseURL: server.URL, Timeout: time.Second, MaxFailures: 3, OpenInterval: time.Minute}, f.logger)
	svc := NewSyncService(f.repo, f.analytics, client, f.kv, f.logger)

	result := svc.Refresh(context.Background())

	assert.Equal(t, models.SourceLocal, result.Source)
	assert.NotEmpty(t, result.Error)
	assert.Nil(t, result.Remote)
	assert.Equal(t, before.Occupancy, result.Dashboard.Occupancy)
	assert.Equal(t, before.Financial, result.Dashboard.Financial)
	assert.Equal(t, 3, f.repo.Pending().Count())

	_, ok, err := f.kv.Get(context.Background(), storage.RemoteCacheKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSyncService_NetworkErrorDoesNotRaise(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	svc := NewSyncService(f.repo, f.analytics, failingClient{}, f.kv, f.logger)

	result := svc.Refresh(context.Background())

	require.NotNil(t, result)
	assert.Equal(t, models.SourceLocal, result.Source)
	assert.Contains(t, result.Error, "connection refused")
	assert.Equal(t, 70, result.Dashboard.Occupancy.OccupancyRate)
}

func TestSyncService_Disabled(t *testing.T) {
	f := newFixture(t)
	svc := NewSyncService(f.repo, f.analytics, nil, f.kv, f.logger)

	result := svc.Refresh(context.Background())

	assert.Equal(t, models.SourceLocal, result.Source)
	assert.False(t, svc.Status().Enabled)
	assert.Equal(t, "disabled", svc.Status().BreakerState)
}

func TestSyncService_StaleResponseDiscarded(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	client := &blockingClient{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewSyncService(f.repo, f.analytics, client, f.kv, f.logger)

	slow := make(chan *models.SyncResult)
	go func() {
		slow <- svc.Refresh(context.Background())
	}()
	<-client.entered

	fast := svc.Refresh(context.Background())
	assert.Equal(t, uint64(2), fast.Sequence)
	assert.False(t, fast.Stale)

	close(client.release)
	first := <-slow

	assert.Equal(t, uint64(1), first.Sequence)
	assert.True(t, first.Stale)
	status := svc.Status()
	assert.Equal(t, uint64(2), status.LastSequence)
	assert.Same(t, fast, status.LastResult)
}

func TestSyncService_ImportSnapshot(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	svc := NewSyncService(f.repo, f.analytics, nil, f.kv, f.logger)

	err := svc.ImportSnapshot(context.Background(), &models.Snapshot{
		Properties: []models.Property{{ID: "p9", Name: "Harbor View", Type: models.PropertyTypeMixed, Units: 2, Occupied: 1}},
	})
	require.NoError(t, err)
	assert.Len(t, f.repo.ListProperties(), 1)
	assert.Empty(t, f.repo.ListTenants())

	err = svc.ImportSnapshot(context.Background(), &models.Snapshot{
		Properties: []models.Property{{Name: "Bad", Type: models.PropertyTypeMixed, Units: 1, Occupied: 2}},
	})
	assert.ErrorIs(t, err, models.ErrValidation)
}
