package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("MONTHLY_COST_CACHE_TTL", "")

	cfg := New()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Cache.MonthlyCostTTL)
	assert.False(t, cfg.JWT.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutDuration)
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://gym.example.com, http://localhost:5173 ,")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_ACCESS_TTL", "2h")
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "3")

	cfg := New()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://gym.example.com", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.JWT.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
}

func TestNew_BadNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")
	t.Setenv("JWT_ACCESS_TTL", "сутки")

	cfg := New()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
}

func TestCORSConfig_Validate(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Error(t, New().CORS.Validate(), "Пустой список не должен открывать CORS для всех")

	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")
	assert.Error(t, New().CORS.Validate())

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://gym.example.com,*")
	assert.Error(t, New().CORS.Validate())

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://*.example.com")
	assert.Error(t, New().CORS.Validate())

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://gym.example.com")
	require.NoError(t, New().CORS.Validate())
}
