package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/config"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/event"
	handler "github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/handler/http"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/repository/postgres"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/repository/redis"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/service"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/internal/summary"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/migrations"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/health"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/httpclient"
	pkgkafka "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/kafka"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/middleware"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/tracing"
)

// App wires together all dependencies and runs the product review service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	consumer       *pkgkafka.Consumer
	httpServer     *http.Server
	tracerShutdown tracing.ShutdownFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.Init(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	if err := database.RegisterPoolMetrics(registry, pool, config.ServiceName); err != nil {
		pool.Close()
		return nil, fmt.Errorf("register pool metrics: %w", err)
	}

	// Run database migrations.
	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations completed")
	}

	// Configure slow query logging.
	if cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(cfg.SlowQueryThreshold(), logger)
	}

	// Initialize Redis.
	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis", slog.String("addr", cfg.Redis().Addr()))

	// Initialize Kafka. The writer has no fixed topic, so events and
	// dead letters share it.
	kafkaMetrics := pkgkafka.NewMetrics(registry)
	writer := pkgkafka.NewWriter(pkgkafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	})
	producer := pkgkafka.NewProducer(writer, cfg.KafkaBrokers, kafkaMetrics, logger)
	dlq := pkgkafka.NewDLQProducer(writer, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	queryTimeout := postgres.WithQueryTimeout(cfg.DBQueryTimeout)
	productRepo := postgres.NewProductRepository(pool, queryTimeout)
	reviewRepo := postgres.NewReviewRepository(pool, queryTimeout)
	wishlistRepo := postgres.NewWishlistRepository(pool, queryTimeout)
	notificationRepo := postgres.NewNotificationRepository(pool, queryTimeout)

	var summarizer summary.Summarizer
	if cfg.SummariesEnabled() {
		httpCfg := httpclient.DefaultConfig()
		httpCfg.Timeout = cfg.SummaryTimeout
		breaker := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpCfg),
			httpclient.DefaultCircuitBreakerConfig("summary-service"),
			httpclient.NewBreakerMetrics(registry),
			logger,
		)
		summarizer = summary.NewCached(
			summary.NewClient(breaker, cfg.SummaryServiceURL, logger),
			redis.NewSummaryCache(redisClient, cfg.SummaryCacheTTL),
			logger,
		)
		logger.Info("review summaries enabled", slog.String("url", cfg.SummaryServiceURL))
	}

	eventProducer := event.NewProducer(producer, logger)
	catalogService := service.NewCatalogService(productRepo, productRepo, reviewRepo, summarizer, logger)
	aggregationService := service.NewAggregationService(productRepo, productRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, eventProducer, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	// Kafka event consumer.
	consumerCfg := event.ReviewCreatedConfig(cfg.KafkaBrokers, cfg.KafkaConsumerRetries, cfg.KafkaRetryDelay)
	consumer := event.NewConsumer(
		consumerCfg,
		pkgkafka.NewReader(consumerCfg),
		event.NewConsumerHandler(wishlistRepo, notificationService, logger),
		redis.NewEventStore(redisClient, consumerCfg.GroupID, cfg.IdempotencyTTL),
		dlq,
		kafkaMetrics,
		logger,
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", producer.Ping)

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSOrigins
	var writeLimiter *middleware.RateLimiter
	if cfg.WriteRateLimitEnabled() {
		writeLimiter = middleware.NewRateLimiter(cfg.WriteRateLimitRPS, cfg.WriteRateLimitBurst, logger)
	}
	router := handler.NewRouter(handler.Services{
		Catalog:       catalogService,
		Aggregation:   aggregationService,
		Reviews:       reviewService,
		Wishlist:      wishlistService,
		Notifications: notificationService,
	}, healthHandler, handler.RouterConfig{
		ServiceName:       config.ServiceName,
		Registry:          registry,
		CORS:              corsCfg,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
		CategoriesMaxAge:  cfg.CategoriesCacheMaxAge,
		WriteLimiter:      writeLimiter,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		consumer:       consumer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and the Kafka consumer, then blocks until the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := a.consumer.Run(consumerCtx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("kafka consumer error", slog.String("error", err.Error()))
		}
	}()

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-errCh:
	}

	stopConsumer()
	<-consumerDone

	return errors.Join(runErr, a.Shutdown())
}

// Shutdown gracefully stops all components in order: HTTP server, tracer,
// Kafka producer, Redis, PostgreSQL. The consumer closes its own reader when
// its context ends.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Flush spans after the HTTP drain so in-flight request spans are captured.
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
