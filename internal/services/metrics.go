package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	syncRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_service_sync_refresh_total",
			Help: "Total number of remote sync refreshes by outcome",
		},
		[]string{"outcome"},
	)

	syncRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "property_service_sync_refresh_duration_seconds",
			Help:    "Remote sync refresh duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	pendingSyncRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "property_service_pending_sync_records",
		Help: "Number of locally mutated records not yet confirmed by the remote service",
	})
)

// Sync outcomes
const (
	outcomeRemote = "remote"
	outcomeLocal  = "local"
	outcomeStale  = "stale"
)
