package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type AppConfig struct {
	Port string

	BackendURL     string
	BackendTimeout time.Duration

	// Service account used by the traffic poller. The dashboard never stores
	// user passwords; interactive calls reuse the caller's own token.
	ServiceEmail    string
	ServicePassword string

	SessionSecret string
	SessionSecure bool

	TrafficRefresh time.Duration

	Redis      RedisConfig
	RateLimit  int
	TrustProxy bool

	LogLevel string
	LogFile  string

	CORSOrigins []string
}

type RedisConfig struct {
	IsConfigured bool
	Host         string
	Port         string
	Password     string
}

const DefaultSessionSecret = "change-this-session-secret-in-production"

// UsesDefaultSessionSecret reports whether SESSION_SECRET was left unset.
func (c *AppConfig) UsesDefaultSessionSecret() bool {
	return c.SessionSecret == DefaultSessionSecret
}

// Load reads .env (if present) and the process environment.
func Load() *AppConfig {
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:            getEnv("PORT", "8080"),
		BackendURL:      strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:3000"), "/"),
		BackendTimeout:  getDuration("BACKEND_TIMEOUT", 30*time.Second),
		ServiceEmail:    os.Getenv("SERVICE_EMAIL"),
		ServicePassword: os.Getenv("SERVICE_PASSWORD"),
		SessionSecret:   getEnv("SESSION_SECRET", DefaultSessionSecret),
		SessionSecure:   cast.ToBool(getEnv("SESSION_SECURE", "false")),
		TrafficRefresh:  getDuration("TRAFFIC_REFRESH", 5*time.Minute),
		RateLimit:       cast.ToInt(getEnv("RATE_LIMIT", "20")),
		TrustProxy:      cast.ToBool(getEnv("TRUST_PROXY", "false")),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFile:         os.Getenv("LOG_FILE"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis = RedisConfig{
			IsConfigured: true,
			Host:         host,
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     os.Getenv("REDIS_PASSWORD"),
		}
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("90s", "5m") or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs := cast.ToInt(raw); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
