package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConnections)
	assert.Equal(t, 5, cfg.DBMaxIdleConnections)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.TokenDefaultTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenRefreshGracePeriod)
	assert.True(t, cfg.RateLimitTokenEnabled)
	assert.False(t, cfg.CORSEnabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "identity", cfg.MetricsNamespace)
	assert.Equal(t, 8081, cfg.MetricsPort)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOKEN_SIGNING_SECRET", "super-secret")
	t.Setenv("TOKEN_DEFAULT_TTL_SECONDS", "3600")
	t.Setenv("TOKEN_REFRESH_GRACE_PERIOD_HOURS", "24")
	t.Setenv("ADMIN_API_KEY", "admin-key")

	cfg := Load()

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "super-secret", cfg.TokenSigningSecret)
	assert.Equal(t, time.Hour, cfg.TokenDefaultTTL)
	assert.Equal(t, 24*time.Hour, cfg.TokenRefreshGracePeriod)
	assert.Equal(t, "admin-key", cfg.AdminAPIKey)
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}
