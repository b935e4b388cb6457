package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.  When
// Enabled is false or no Redis client is available, caching is disabled.
// Methods lists the HTTP methods eligible for caching.  TTL is the lifetime
// of cache entries; it doubles as the staleness bound since catalog writes
// do not invalidate cached listings.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      getenvDefault("CACHE_ENABLED", "true") == "true",
		Methods:      parseMethods(getenvDefault("CACHE_METHODS", "GET")),
		TTL:          envDurDefault("CACHE_TTL", 30*time.Second),
		Prefix:       getenvDefault("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envIntDefault("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
