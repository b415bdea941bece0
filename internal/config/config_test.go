package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// configVars lists every variable Load reads, cleared before each test
var configVars = []string{
	"APP_ENV", "BOT_TOKEN", "STORAGE_BACKEND", "STATE_BACKEND", "REDIS_URL", "KEY_PREFIX",
	"LIST_LIMIT", "METRICS_PORT", "GOOGLE_MAPS_API_KEY", "GEOCODE_LANGUAGE", "POLL_TIMEOUT",
	"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configVars {
		// t.Setenv restores the original value after the test
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_MissingBotToken(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, StorageRedis, cfg.StorageBackend)
	assert.Equal(t, StateMemory, cfg.StateBackend)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "", cfg.KeyPrefix)
	assert.Equal(t, 10, cfg.ListLimit)
	assert.Equal(t, 9090, cfg.MetricsPort)
	assert.Equal(t, "ru", cfg.GeocodeLang)
	assert.Equal(t, 10*time.Second, cfg.PollTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "locationbot", cfg.Database.Name)
	assert.Equal(t, "locationbot", cfg.Database.User)
	assert.True(t, cfg.UsesRedis())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_URL", "redis://cache:6380/2")
	t.Setenv("LIST_LIMIT", "5")
	t.Setenv("METRICS_PORT", "0")
	t.Setenv("POLL_TIMEOUT", "30s")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "redis://cache:6380/2", cfg.RedisURL)
	assert.Equal(t, 5, cfg.ListLimit)
	assert.Equal(t, 0, cfg.MetricsPort)
	assert.Equal(t, 30*time.Second, cfg.PollTimeout)
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		errContains string
	}{
		{
			name:        "postgres without password",
			env:         map[string]string{"STORAGE_BACKEND": "postgres"},
			errContains: "DB_PASSWORD",
		},
		{
			name:        "unknown storage backend",
			env:         map[string]string{"STORAGE_BACKEND": "mongo"},
			errContains: "STORAGE_BACKEND",
		},
		{
			name:        "unknown state backend",
			env:         map[string]string{"STATE_BACKEND": "etcd"},
			errContains: "STATE_BACKEND",
		},
		{
			name:        "list limit not a number",
			env:         map[string]string{"LIST_LIMIT": "ten"},
			errContains: "LIST_LIMIT",
		},
		{
			name:        "list limit zero",
			env:         map[string]string{"LIST_LIMIT": "0"},
			errContains: "LIST_LIMIT",
		},
		{
			name:        "metrics port not a number",
			env:         map[string]string{"METRICS_PORT": "http"},
			errContains: "METRICS_PORT",
		},
		{
			name:        "bad poll timeout",
			env:         map[string]string{"POLL_TIMEOUT": "soon"},
			errContains: "POLL_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOT_TOKEN", "test_token")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
