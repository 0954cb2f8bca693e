package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/config"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/tracing"
)

// ServiceName identifies this service in logs, metrics and traces.
const ServiceName = "product-review-service"

// Config holds all configuration for the product review service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"SERVICE_VERSION" envDefault:"dev"`

	// HTTP server
	HTTPPort         int           `env:"HTTP_PORT" envDefault:"8080"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	CORSOrigins      []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"review"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"review_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"product_review"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Database pool
	DBMaxConns            int32         `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32         `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int           `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int           `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`
	DBQueryTimeout        time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
	RunMigrations         bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka
	KafkaBrokers         []string      `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaConsumerRetries int           `env:"KAFKA_CONSUMER_MAX_RETRIES" envDefault:"3"`
	KafkaRetryDelay      time.Duration `env:"KAFKA_CONSUMER_RETRY_DELAY" envDefault:"1s"`
	IdempotencyTTL       time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Review summaries. An empty URL disables them.
	SummaryServiceURL string        `env:"SUMMARY_SERVICE_URL" envDefault:""`
	SummaryTimeout    time.Duration `env:"SUMMARY_TIMEOUT" envDefault:"10s"`
	SummaryCacheTTL   time.Duration `env:"SUMMARY_CACHE_TTL" envDefault:"24h"`

	// Per-caller throttling of review writes
	WriteRateLimitRPS   float64 `env:"WRITE_RATE_LIMIT_RPS" envDefault:"2"`
	WriteRateLimitBurst int     `env:"WRITE_RATE_LIMIT_BURST" envDefault:"10"`

	// Cache-Control max-age for the category list
	CategoriesCacheMaxAge time.Duration `env:"CATEGORIES_CACHE_MAX_AGE" envDefault:"5m"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`

	// Slow query logging
	SlowQueryThresholdMs int `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load product review config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresUser == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.KafkaConsumerRetries < 0 {
		return fmt.Errorf("KAFKA_CONSUMER_MAX_RETRIES must be >= 0, got %d", c.KafkaConsumerRetries)
	}
	for name, d := range map[string]time.Duration{
		"DB_QUERY_TIMEOUT":  c.DBQueryTimeout,
		"SUMMARY_TIMEOUT":   c.SummaryTimeout,
		"SUMMARY_CACHE_TTL": c.SummaryCacheTTL,
		"IDEMPOTENCY_TTL":   c.IdempotencyTTL,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.WriteRateLimitRPS < 0 || c.WriteRateLimitBurst < 0 {
		return fmt.Errorf("write rate limits must be >= 0")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// SummariesEnabled reports whether a summary service is configured.
func (c *Config) SummariesEnabled() bool {
	return c.SummaryServiceURL != ""
}

// WriteRateLimitEnabled reports whether review writes are throttled.
func (c *Config) WriteRateLimitEnabled() bool {
	return c.WriteRateLimitRPS > 0 && c.WriteRateLimitBurst > 0
}

// Postgres returns the connection and pool settings.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// Redis returns the Redis connection settings.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:         c.RedisHost,
		Port:         c.RedisPort,
		Password:     c.RedisPassword,
		DB:           c.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		Enabled:        c.OTELEnabled,
		ServiceName:    ServiceName,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTELEndpoint,
		SampleRate:     c.OTELSampleRate,
	}
}

// SlowQueryThreshold is the query latency above which queries are logged.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryThresholdMs) * time.Millisecond
}
