package config // package config loads application configuration from environment variables

import (
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The service is meant to run on a booth
// laptop with zero setup, so every value has a working default; set the
// variables only to override.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	JWTSecret    string // secret used to sign session tokens
	AccessTTLMin int    // access token time-to-live in minutes
	BackupDir    string // directory for automatic and manual backup files
	ConsumerOn   bool   // run the winner-drawn audit consumer in-process
}

// Load reads configuration values from environment variables and
// returns a Config. Missing variables fall back to defaults.
func Load() Config {
	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8080"),
		JWTSecret:    getenv("JWT_SECRET", "targi-hasta-dev-secret"),
		AccessTTLMin: atoi(getenv("ACCESS_TOKEN_TTL_MIN", "720")),
		BackupDir:    getenv("BACKUP_DIR", "backups"),
		ConsumerOn:   getenv("WINNER_CONSUMER_ENABLED", "false") == "true",
	}
}

// RateLimitConfig defines the login throttling window. Disabled limits
// or a missing Redis connection turn the limiter into a pass-through.
type RateLimitConfig struct {
	Enabled     bool
	MaxAttempts int
	Window      time.Duration
	Prefix      string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig. Defaults allow 10 login attempts per minute per IP.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:     getenv("LOGIN_RATE_LIMIT_ENABLED", "true") == "true",
		MaxAttempts: atoi(getenv("LOGIN_RATE_LIMIT_ATTEMPTS", "10")),
		Window:      parseDur(getenv("LOGIN_RATE_LIMIT_WINDOW", "1m")),
		Prefix:      getenv("LOGIN_RATE_LIMIT_PREFIX", "loginrl"),
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Window < time.Second {
		cfg.Window = time.Second
	}
	return cfg
}

// Helper functions shared across config files.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
