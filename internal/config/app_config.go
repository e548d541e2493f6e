package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 4000.
	Port int `envconfig:"PORT" default:"4000"`

	// Host is the interface the server binds to.
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// FrontendPath overrides the location of the built frontend. It is probed
	// before the fixed fallback locations.
	FrontendPath string `envconfig:"FRONTEND_PATH"`

	// BaseDir anchors the fallback locations. Defaults to the working directory.
	BaseDir string `envconfig:"FRONTEND_BASE_DIR"`

	// DevURL, when set, makes the server proxy frontend requests to a running
	// Vite dev server (e.g. http://localhost:5173) instead of serving from disk.
	DevURL string `envconfig:"FRONTEND_DEV_URL"`

	// PublicEnvKeys is the whitelist of variables exposed to the browser.
	PublicEnvKeys []string `envconfig:"PUBLIC_ENV_KEYS" default:"VITE_API_PLACES_ENDPOINT,VITE_API_BOOKINGS_ENDPOINT,VITE_SUPABASE_URL,VITE_SUPABASE_ANON_KEY"`

	// EnvPlaceholder is the token in index.html replaced by the env payload.
	EnvPlaceholder string `envconfig:"ENV_PLACEHOLDER" default:"__PUBLIC_ENV__"`

	// CORSOrigins lists allowed origins. "*" allows all.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// RateLimitRPM limits requests per client IP per minute. 0 disables it.
	RateLimitRPM int `envconfig:"RATE_LIMIT_RPM" default:"0"`

	// TrustProxy takes client addresses from X-Forwarded-For / X-Real-IP.
	// Only enable behind a reverse proxy that sets them.
	TrustProxy bool `envconfig:"TRUST_PROXY" default:"false"`

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogDir, when set, sends logs to a rotating <LogDir>/system.log instead of stderr.
	LogDir string `envconfig:"LOG_DIR"`

	// OTLPEndpoint enables trace export when set.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads AppConfig from environment variables using envconfig.
// BaseDir defaults to the current working directory if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		c.BaseDir = wd
	}
	if c.Port <= 0 || c.Port > 65535 {
		return nil, fmt.Errorf("loading config: invalid PORT %d", c.Port)
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DevMode reports whether frontend requests go to a dev server.
func (c *AppConfig) DevMode() bool {
	return c.DevURL != ""
}
