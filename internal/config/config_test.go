package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "GIN_MODE", "CORS_ALLOWED_ORIGINS", "STORAGE_DRIVER", "SQLITE_PATH",
	"REMOTE_ANALYTICS_ENABLED", "REMOTE_ANALYTICS_URL", "REMOTE_BREAKER_MAX_FAILURES",
	"NATS_URL", "DOCUMENT_STORAGE_PROVIDER", "SYNC_SCHEDULE", "SYNC_SCHEDULE_ENABLED",
	"ANALYTICS_GROWTH_RATE", "ANALYTICS_PER_UNIT_CHARGE", "ANALYTICS_LEASE_WINDOW_DAYS",
	"WS_PONG_WAIT", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every key; empty values fall back to defaults
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8092", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Environment)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.False(t, cfg.Remote.Enabled)
	assert.Equal(t, "http://localhost:5000/api", cfg.Remote.BaseURL)
	assert.Equal(t, uint32(3), cfg.Remote.MaxFailures)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "local", cfg.Documents.Provider)
	assert.False(t, cfg.Scheduler.SyncEnabled)
	assert.Equal(t, "*/15 * * * *", cfg.Scheduler.SyncSchedule)
	assert.Equal(t, 0.05, cfg.Analytics.GrowthRate)
	assert.Equal(t, 1200.0, cfg.Analytics.PerUnitCharge)
	assert.Equal(t, 90, cfg.Analytics.LeaseWindow)
	assert.Equal(t, 60*time.Second, cfg.WebSocket.PongWait)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8092", cfg.GetServerAddress())
	assert.True(t, cfg.IsSQLStorage())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REMOTE_ANALYTICS_ENABLED", "true")
	t.Setenv("REMOTE_ANALYTICS_URL", "http://analytics.test/api/")
	t.Setenv("ANALYTICS_GROWTH_RATE", "0.1")
	t.Setenv("WS_PONG_WAIT", "30s")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.GetServerAddress())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.False(t, cfg.IsSQLStorage())
	assert.True(t, cfg.Remote.Enabled)
	assert.Equal(t, "http://analytics.test/api", cfg.Remote.BaseURL)
	assert.Equal(t, 0.1, cfg.Analytics.GrowthRate)
	assert.Equal(t, 30*time.Second, cfg.WebSocket.PongWait)
}

func TestInitDB(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	cfg.Storage.Driver = "sqlite"
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "test.db")
	db, err := InitDB(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()

	cfg.Storage.Driver = "memory"
	_, err = InitDB(cfg)
	assert.Error(t, err)
}
