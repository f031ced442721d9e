package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Remote    RemoteConfig
	NATS      NATSConfig
	Documents DocumentsConfig
	Scheduler SchedulerConfig
	Analytics AnalyticsConfig
	WebSocket WebSocketConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Environment    string
	AllowedOrigins []string
}

// StorageConfig selects the key-value backend used by the entity store
type StorageConfig struct {
	Driver     string // memory, sqlite, postgres, redis
	SQLitePath string
	KeyPrefix  string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RemoteConfig configures the remote analytics service
type RemoteConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
	// Circuit breaker
	MaxFailures  uint32
	OpenInterval time.Duration
}

// NATSConfig holds NATS connection settings
type NATSConfig struct {
	URL           string
	ReconnectWait time.Duration
}

// DocumentsConfig configures raw document payload storage
type DocumentsConfig struct {
	Provider  string // local, s3
	LocalPath string
	Bucket    string

	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3ForcePathStyle  bool
}

// SchedulerConfig configures the scheduled remote refresh
type SchedulerConfig struct {
	SyncEnabled  bool
	SyncSchedule string
}

// AnalyticsConfig holds tunables of the derived metrics
type AnalyticsConfig struct {
	GrowthRate    float64
	PerUnitCharge float64
	LeaseWindow   int // days
}

// WebSocketConfig holds websocket client settings
type WebSocketConfig struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
}

// Load loads configuration from environment variables
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			Environment:    v.GetString("GIN_MODE"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
			SQLitePath: v.GetString("SQLITE_PATH"),
			KeyPrefix:  v.GetString("STORAGE_KEY_PREFIX"),
			DBHost:     v.GetString("DB_HOST"),
			DBPort:     v.GetInt("DB_PORT"),
			DBUser:     v.GetString("DB_USER"),
			DBPassword: v.GetString("DB_PASSWORD"),
			DBName:     v.GetString("DB_NAME"),
			DBSSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Remote: RemoteConfig{
			Enabled:      v.GetBool("REMOTE_ANALYTICS_ENABLED"),
			BaseURL:      strings.TrimRight(v.GetString("REMOTE_ANALYTICS_URL"), "/"),
			Timeout:      v.GetDuration("REMOTE_ANALYTICS_TIMEOUT"),
			MaxFailures:  v.GetUint32("REMOTE_BREAKER_MAX_FAILURES"),
			OpenInterval: v.GetDuration("REMOTE_BREAKER_OPEN_INTERVAL"),
		},
		NATS: NATSConfig{
			URL:           v.GetString("NATS_URL"),
			ReconnectWait: v.GetDuration("NATS_RECONNECT_WAIT"),
		},
		Documents: DocumentsConfig{
			Provider:          strings.ToLower(v.GetString("DOCUMENT_STORAGE_PROVIDER")),
			LocalPath:         v.GetString("DOCUMENT_STORAGE_PATH"),
			Bucket:            v.GetString("DOCUMENT_BUCKET"),
			S3Region:          v.GetString("AWS_REGION"),
			S3Endpoint:        v.GetString("S3_ENDPOINT"),
			S3AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			S3SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			S3ForcePathStyle:  v.GetBool("S3_FORCE_PATH_STYLE"),
		},
		Scheduler: SchedulerConfig{
			SyncEnabled:  v.GetBool("SYNC_SCHEDULE_ENABLED"),
			SyncSchedule: v.GetString("SYNC_SCHEDULE"),
		},
		Analytics: AnalyticsConfig{
			GrowthRate:    v.GetFloat64("ANALYTICS_GROWTH_RATE"),
			PerUnitCharge: v.GetFloat64("ANALYTICS_PER_UNIT_CHARGE"),
			LeaseWindow:   v.GetInt("ANALYTICS_LEASE_WINDOW_DAYS"),
		},
		WebSocket: WebSocketConfig{
			WriteWait:      v.GetDuration("WS_WRITE_WAIT"),
			PongWait:       v.GetDuration("WS_PONG_WAIT"),
			PingInterval:   v.GetDuration("WS_PING_INTERVAL"),
			MaxMessageSize: v.GetInt64("WS_MAX_MESSAGE_SIZE"),
		},

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("PORT", "8092")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// Storage
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "property-service.db")
	v.SetDefault("STORAGE_KEY_PREFIX", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "property_service")
	v.SetDefault("DB_SSLMODE", "disable")

	// Redis
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	// Remote analytics
	v.SetDefault("REMOTE_ANALYTICS_ENABLED", false)
	v.SetDefault("REMOTE_ANALYTICS_URL", "http://localhost:5000/api")
	v.SetDefault("REMOTE_ANALYTICS_TIMEOUT", 5*time.Second)
	v.SetDefault("REMOTE_BREAKER_MAX_FAILURES", 3)
	v.SetDefault("REMOTE_BREAKER_OPEN_INTERVAL", 30*time.Second)

	// NATS (empty URL disables publishing)
	v.SetDefault("NATS_URL", "")
	v.SetDefault("NATS_RECONNECT_WAIT", 2*time.Second)

	// Documents
	v.SetDefault("DOCUMENT_STORAGE_PROVIDER", "local")
	v.SetDefault("DOCUMENT_STORAGE_PATH", "./documents")
	v.SetDefault("DOCUMENT_BUCKET", "property-documents")
	v.SetDefault("AWS_REGION", "us-east-1")

	// Scheduler
	v.SetDefault("SYNC_SCHEDULE_ENABLED", false)
	v.SetDefault("SYNC_SCHEDULE", "*/15 * * * *")

	// Analytics
	v.SetDefault("ANALYTICS_GROWTH_RATE", 0.05)
	v.SetDefault("ANALYTICS_PER_UNIT_CHARGE", 1200.0)
	v.SetDefault("ANALYTICS_LEASE_WINDOW_DAYS", 90)

	// WebSocket
	v.SetDefault("WS_WRITE_WAIT", 10*time.Second)
	v.SetDefault("WS_PONG_WAIT", 60*time.Second)
	v.SetDefault("WS_PING_INTERVAL", 54*time.Second)
	v.SetDefault("WS_MAX_MESSAGE_SIZE", 4096)

	// Logging
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// InitDB opens the SQL database backing the key-value store
func InitDB(cfg *Config) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	if cfg.IsProduction() {
		logLevel = logger.Error
	} else {
		logLevel = logger.Warn
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	var dialector gorm.Dialector
	switch cfg.Storage.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Storage.DBHost, cfg.Storage.DBPort, cfg.Storage.DBUser, cfg.Storage.DBPassword,
			cfg.Storage.DBName, cfg.Storage.DBSSLMode)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(cfg.Storage.SQLitePath)
	default:
		return nil, fmt.Errorf("storage driver %q is not SQL backed", cfg.Storage.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "release"
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Server.Port
}

// IsSQLStorage reports whether the entity store lives in a gorm database
func (c *Config) IsSQLStorage() bool {
	return c.Storage.Driver == "postgres" || c.Storage.Driver == "sqlite"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
