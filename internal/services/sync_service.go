package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tesseract-hub/property-service/internal/clients"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/repository"
	"github.com/tesseract-hub/property-service/internal/storage"
)

// errRemoteDisabled marks refreshes made without a configured remote backend
var errRemoteDisabled = errors.New("remote analytics disabled")

// SyncService pushes snapshots to the remote analytics backend and keeps the
// latest applied result. Every refresh takes a sequence number; a result older
// than the newest applied one is reported stale and never replaces it.
type SyncService struct {
	repo      *repository.EntityRepository
	analytics *AnalyticsService
	client    clients.AnalyticsClient
	kv        storage.KVStore
	logger    *logrus.Logger

	seq     atomic.Uint64
	mu      sync.Mutex
	applied uint64
	latest  *models.SyncResult
}

// NewSyncService creates a sync service. A nil client disables remote calls.
func NewSyncService(repo *repository.EntityRepository, analytics *AnalyticsService, client clients.AnalyticsClient, kv storage.KVStore, logger *logrus.Logger) *SyncService {
	return &SyncService{
		repo:      repo,
		analytics: analytics,
		client:    client,
		kv:        kv,
		logger:    logger,
	}
}

// Enabled reports whether a remote backend is configured
func (s *SyncService) Enabled() bool {
	return s.client != nil
}

// Refresh runs one sync attempt. It never fails: any remote problem yields a
// result sourced from locally computed metrics.
func (s *SyncService) Refresh(ctx context.Context) *models.SyncResult {
	start := time.Now()
	seq := s.seq.Add(1)

	snapshot, pending := s.repo.SnapshotWithPending()
	result := &models.SyncResult{
		Sequence:  seq,
		Source:    models.SourceLocal,
		Dashboard: s.analytics.BuildDashboard(snapshot, pending.Count()),
	}

	remote, err := s.fetchRemote(ctx, snapshot)
	if err != nil {
		result.Error = err.Error()
		if !errors.Is(err, errRemoteDisabled) {
			s.logger.WithError(err).WithField("sequence", seq).Warn("Remote sync failed, using local metrics")
		}
	} else {
		result.Source = models.SourceRemote
		result.Remote = remote
		s.repo.ClearPending(pending)
		result.Dashboard.PendingSync = s.repo.Pending().Count()
	}
	result.SyncedAt = time.Now()
	syncRefreshDuration.Observe(time.Since(start).Seconds())
	pendingSyncRecords.Set(float64(s.repo.Pending().Count()))

	if !s.apply(result) {
		syncRefreshTotal.WithLabelValues(outcomeStale).Inc()
		s.logger.WithField("sequence", seq).Warn("Discarding stale sync response")
		return result
	}
	outcome := outcomeLocal
	if result.Source == models.SourceRemote {
		outcome = outcomeRemote
	}
	syncRefreshTotal.WithLabelValues(outcome).Inc()
	if remote != nil {
		s.cacheRemote(ctx, remote)
	}

	s.logger.WithFields(logrus.Fields{
		"sequence": seq,
		"source":   result.Source,
		"duration": time.Since(start).String(),
	}).Info("Sync refresh completed")
	return result
}

// apply stores result unless a newer one has been applied already
func (s *SyncService) apply(result *models.SyncResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Sequence < s.applied {
		result.Stale = true
		return false
	}
	s.applied = result.Sequence
	s.latest = result
	return true
}

// fetchRemote pushes the snapshot and then fetches every aggregate in parallel
func (s *SyncService) fetchRemote(ctx context.Context, snapshot *models.Snapshot) (*models.RemoteAggregates, error) {
	if s.client == nil {
		return nil, errRemoteDisabled
	}
	if err := s.client.PushSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to push snapshot: %w", err)
	}

	payloads := make([]json.RawMessage, len(clients.Aggregates))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range clients.Aggregates {
		i, name := i, name
		g.Go(func() error {
			data, err := s.client.FetchAggregate(gctx, name)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", name, err)
			}
			payloads[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.RemoteAggregates{
		Dashboard:     payloads[0],
		PropertyTypes: payloads[1],
		Rankings:      payloads[2],
		Portfolio:     payloads[3],
		Correlations:  payloads[4],
		FetchedAt:     time.Now(),
	}, nil
}

func (s *SyncService) cacheRemote(ctx context.Context, remote *models.RemoteAggregates) {
	raw, err := json.Marshal(remote)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode remote aggregates")
		return
	}
	if err := s.kv.Set(ctx, storage.RemoteCacheKey, string(raw)); err != nil {
		s.logger.WithError(err).Warn("Failed to cache remote aggregates")
	}
}

// Status reports the latest applied result
func (s *SyncService) Status() models.SyncStatus {
	s.mu.Lock()
	status := models.SyncStatus{
		Enabled:      s.Enabled(),
		LastSequence: s.applied,
		LastResult:   s.latest,
	}
	s.mu.Unlock()

	status.PendingSync = s.repo.Pending().Count()
	status.BreakerState = "disabled"
	if s.client != nil {
		status.BreakerState = s.client.BreakerState()
	}
	return status
}

// ImportSnapshot replaces local state with a snapshot pushed by a client
func (s *SyncService) ImportSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if err := s.repo.ReplaceSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	pendingSyncRecords.Set(0)
	return nil
}
