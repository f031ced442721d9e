package scheduler

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/models"
)

// Refresher runs one remote analytics refresh
type Refresher interface {
	Refresh(ctx context.Context) *models.SyncResult
}

// SyncScheduler triggers remote refreshes on a cron schedule
type SyncScheduler struct {
	refresher Refresher
	config    config.SchedulerConfig
	timeout   time.Duration
	logger    *logrus.Logger
	cron      *cron.Cron
	mu        sync.Mutex
	running   bool
	onResult  func(*models.SyncResult)
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(refresher Refresher, cfg config.SchedulerConfig, logger *logrus.Logger) *SyncScheduler {
	return &SyncScheduler{
		refresher: refresher,
		config:    cfg,
		timeout:   time.Minute,
		logger:    logger,
	}
}

// OnResult registers a callback invoked after every scheduled refresh
func (s *SyncScheduler) OnResult(fn func(*models.SyncResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult = fn
}

// Start starts the scheduler. It is a no-op when scheduling is disabled.
func (s *SyncScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if !s.config.SyncEnabled {
		s.logger.Info("Scheduled analytics sync is disabled")
		return nil
	}

	s.cron = cron.New(cron.WithSeconds())

	schedule := normalizeSchedule(s.config.SyncSchedule)
	if _, err := s.cron.AddFunc(schedule, s.RunNow); err != nil {
		s.logger.WithError(err).Error("Failed to schedule sync job")
		return err
	}

	s.cron.Start()
	s.running = true

	s.logger.WithField("schedule", schedule).Info("Analytics sync scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.cron == nil {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("Analytics sync scheduler stopped")
}

// Running reports whether the cron loop is active
func (s *SyncScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunNow performs one refresh immediately
func (s *SyncScheduler) RunNow() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	result := s.refresher.Refresh(ctx)

	entry := s.logger.WithField("duration", time.Since(start))
	if result != nil {
		entry = entry.WithFields(logrus.Fields{
			"sequence": result.Sequence,
			"source":   result.Source,
			"stale":    result.Stale,
		})
	}
	entry.Info("Scheduled analytics sync completed")

	s.mu.Lock()
	fn := s.onResult
	s.mu.Unlock()
	if fn != nil && result != nil {
		fn(result)
	}
}

// normalizeSchedule converts 5-field cron expressions to the 6-field form expected with seconds enabled
func normalizeSchedule(schedule string) string {
	if schedule == "" {
		return "0 */15 * * * *"
	}
	if len(strings.Fields(schedule)) == 5 {
		return "0 " + schedule
	}
	return schedule
}
