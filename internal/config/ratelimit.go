package config

import (
	"os"
	"time"
)

// RateLimitConfig controls the fixed-window request limiter.  Capacity is the
// number of requests allowed per window.  The limiter keys on client IP plus
// route so that one noisy endpoint cannot starve the rest of the API.
type RateLimitConfig struct {
	Enabled  bool
	Capacity int
	Window   time.Duration
	Prefix   string
}

// LoadRateLimitConfig builds a RateLimitConfig from environment variables
// with conservative defaults.  Out-of-range values are clamped rather than
// rejected so a typo cannot disable protection entirely.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:  getenvDefault("RATE_LIMIT_ENABLED", "true") == "true",
		Capacity: envIntDefault("RATE_LIMIT_CAPACITY", 60),
		Window:   envDurDefault("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:   getenvDefault("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.Window < time.Second {
		cfg.Window = time.Second
	}
	return cfg
}

// envDurDefault reads a duration environment variable ("30s", "2m"), falling
// back to the default when unset or malformed.
func envDurDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
