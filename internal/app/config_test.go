package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":5000", cfg.AppAddr)
	require.Equal(t, 24, cfg.JWTExpirationHours)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL())
	require.Zero(t, cfg.SessionIdleTimeout)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	require.Equal(t, 60, cfg.RateLimitPerMinute)
	require.Empty(t, cfg.RedisAddr)
	require.Empty(t, cfg.PGDSN)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30m")
	t.Setenv("CORS_ORIGINS", "https://app.example.com,https://admin.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, time.Hour, cfg.TokenTTL())
	require.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "0")

	_, err := LoadConfig()
	require.Error(t, err)
}
