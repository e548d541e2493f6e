package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &AppConfig{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, c.SlogLevel())
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "HOST", "FRONTEND_PATH", "FRONTEND_BASE_DIR", "FRONTEND_DEV_URL",
		"PUBLIC_ENV_KEYS", "ENV_PLACEHOLDER", "CORS_ORIGINS", "RATE_LIMIT_RPM", "TRUST_PROXY",
		"METRICS_ENABLED", "LOG_LEVEL", "LOG_DIR", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "0.0.0.0:4000", cfg.Addr())
	assert.Equal(t, wd, cfg.BaseDir)
	assert.Equal(t, "__PUBLIC_ENV__", cfg.EnvPlaceholder)
	assert.Equal(t, []string{
		"VITE_API_PLACES_ENDPOINT",
		"VITE_API_BOOKINGS_ENDPOINT",
		"VITE_SUPABASE_URL",
		"VITE_SUPABASE_ANON_KEY",
	}, cfg.PublicEnvKeys)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.Zero(t, cfg.RateLimitRPM)
	assert.False(t, cfg.TrustProxy)
	assert.False(t, cfg.DevMode())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_PATH", "/srv/www")
	t.Setenv("FRONTEND_BASE_DIR", "/srv/app")
	t.Setenv("FRONTEND_DEV_URL", "http://localhost:5173")
	t.Setenv("PUBLIC_ENV_KEYS", "A,B")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/srv/www", cfg.FrontendPath)
	assert.Equal(t, "/srv/app", cfg.BaseDir)
	assert.Equal(t, []string{"A", "B"}, cfg.PublicEnvKeys)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.False(t, cfg.MetricsEnabled)
	assert.True(t, cfg.TrustProxy)
	assert.True(t, cfg.DevMode())
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = Load()
	assert.Error(t, err)
}
