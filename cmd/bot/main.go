package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locationbot/internal/config"
	"locationbot/internal/geocoding"
	"locationbot/internal/handler"
	"locationbot/internal/metrics"
	"locationbot/internal/middleware"
	"locationbot/internal/repository"
	"locationbot/internal/repository/postgres"
	redisrepo "locationbot/internal/repository/redis"
	"locationbot/internal/service"

	goredis "github.com/go-redis/redis/v7"
	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	envLocal = "local"

	maxRetries = 30
	retryDelay = 2 * time.Second
)

func main() {
	// Initialize logger
	logger, err := setupLogger(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Location Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("storage", cfg.StorageBackend),
		zap.String("state", cfg.StateBackend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to Redis when lists or states live there
	var redisClient *goredis.Client
	if cfg.UsesRedis() {
		redisClient, err = connectRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		logger.Info("Redis connection established")
	}

	// Initialize repositories
	var listRepo repository.ListRepository
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		listRepo = postgres.NewListRepo(db)
	default:
		listRepo = redisrepo.NewListRepo(redisClient, cfg.KeyPrefix)
	}

	var stateRepo repository.StateRepository
	if cfg.StateBackend == config.StateRedis {
		stateRepo = redisrepo.NewStateRepo(redisClient, cfg.KeyPrefix)
	} else {
		stateRepo = service.NewMemoryStateRepo()
	}

	// Initialize services
	placeService := service.NewPlaceService(listRepo, logger)
	stateTracker := service.NewStateTracker(stateRepo)

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	// Optional reverse geocoding
	opts := []handler.DispatcherOption{handler.WithListLimit(cfg.ListLimit)}
	geocoder, err := geocoding.NewReverseGeocoder(cfg.GoogleMapsKey, cfg.GeocodeLang, logger)
	if err != nil {
		logger.Fatal("Failed to create geocoder", zap.Error(err))
	}
	if geocoder != nil {
		opts = append(opts, handler.WithGeocoder(geocoder))
		logger.Info("Reverse geocoding enabled")
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(handler.NewSettings(cfg.BotToken, cfg.PollTimeout, func(err error, c tele.Context) {
		logger.Error("Bot error", zap.Error(err))
	}))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	if err := bot.SetCommands(handler.Commands()); err != nil {
		logger.Warn("Failed to set bot commands", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	bot.Use(middleware.Logging(logger, m))
	dispatcher := handler.NewDispatcher(
		placeService,
		stateTracker,
		handler.NewTelebotResponder(bot),
		m,
		logger,
		opts...,
	)
	h := handler.NewHandler(bot, dispatcher, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	if cfg.MetricsPort > 0 {
		go startMonitoringServer(ctx, logger, reg, listRepo, cfg.MetricsPort)
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
}

// setupLogger returns a development logger for local runs
func setupLogger(env string) (*zap.Logger, error) {
	if env == envLocal {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// connectRedis connects to Redis with retries
func connectRedis(ctx context.Context, url string, logger *zap.Logger) (*goredis.Client, error) {
	client, err := redisrepo.NewClient(url)
	if err != nil {
		return nil, err
	}

	for i := 0; i < maxRetries; i++ {
		if err = client.WithContext(ctx).Ping().Err(); err == nil {
			return client, nil
		}

		logger.Warn("Failed to ping redis",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, err)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// startMonitoringServer serves /healthz and /metrics until ctx is cancelled
func startMonitoringServer(
	ctx context.Context,
	logger *zap.Logger,
	reg *prometheus.Registry,
	storage pinger,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, "OK"
		if err := storage.Ping(r.Context()); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			status, body = http.StatusServiceUnavailable, "storage ping failed"
		}
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			logger.Error("Failed to write reply", zap.Error(err))
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("Starting monitoring server", zap.Int("port", port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Monitoring server failed", zap.Error(err))
	}
}
