package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"

	StateMemory = "memory"
	StateRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	Env            string
	BotToken       string
	StorageBackend string
	StateBackend   string
	RedisURL       string
	KeyPrefix      string
	ListLimit      int
	MetricsPort    int
	GoogleMapsKey  string
	GeocodeLang    string
	PollTimeout    time.Duration
	Database       DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	listLimit, err := strconv.Atoi(getEnv("LIST_LIMIT", "10"))
	if err != nil || listLimit <= 0 {
		return nil, fmt.Errorf("LIST_LIMIT must be a positive integer")
	}

	metricsPort, err := strconv.Atoi(getEnv("METRICS_PORT", "9090"))
	if err != nil || metricsPort < 0 {
		return nil, fmt.Errorf("METRICS_PORT must be a non-negative integer")
	}

	pollTimeout, err := time.ParseDuration(getEnv("POLL_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "production"),
		BotToken:       os.Getenv("BOT_TOKEN"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageRedis),
		StateBackend:   getEnv("STATE_BACKEND", StateMemory),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		KeyPrefix:      os.Getenv("KEY_PREFIX"),
		ListLimit:      listLimit,
		MetricsPort:    metricsPort,
		GoogleMapsKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		GeocodeLang:    getEnv("GEOCODE_LANGUAGE", "ru"),
		PollTimeout:    pollTimeout,
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "locationbot"),
			User:     getEnv("DB_USER", "locationbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	switch cfg.StorageBackend {
	case StorageRedis:
	case StoragePostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required for postgres storage")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.StateBackend != StateMemory && cfg.StateBackend != StateRedis {
		return nil, fmt.Errorf("unsupported STATE_BACKEND %q", cfg.StateBackend)
	}

	return cfg, nil
}

// UsesRedis reports whether any component needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.StorageBackend == StorageRedis || c.StateBackend == StateRedis
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
