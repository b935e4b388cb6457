package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfig_Defaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Error("cache should default to enabled")
	}
	if !cfg.Methods["GET"] || cfg.Methods["POST"] {
		t.Errorf("default cached methods = %v, want GET only", cfg.Methods)
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("default TTL = %v, want 30s", cfg.TTL)
	}
}

func TestLoadCacheConfig_Env(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Errorf("methods = %v, want GET and HEAD", cfg.Methods)
	}
	if cfg.TTL != 2*time.Minute {
		t.Errorf("TTL = %v, want 2m", cfg.TTL)
	}
}

func TestLoadRateLimitConfig_Clamping(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-5")
	t.Setenv("RATE_LIMIT_WINDOW", "10ms")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("capacity = %d, want clamped to 1", cfg.Capacity)
	}
	if cfg.Window != time.Second {
		t.Errorf("window = %v, want clamped to 1s", cfg.Window)
	}
}

func TestLoadRedisConfig_AddrPrecedence(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	cfg := LoadRedisConfig()
	if cfg.Addr != "localhost:6379" {
		t.Errorf("default addr = %q, want localhost:6379", cfg.Addr)
	}

	t.Setenv("REDIS_ADDR", "shorthand:6390")
	cfg = LoadRedisConfig()
	if cfg.Addr != "shorthand:6390" {
		t.Errorf("addr = %q, want REDIS_ADDR value", cfg.Addr)
	}

	// Host/port pair wins over the shorthand when both are set.
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6391")
	cfg = LoadRedisConfig()
	if cfg.Addr != "cache.internal:6391" {
		t.Errorf("addr = %q, want cache.internal:6391", cfg.Addr)
	}
}

func TestLoadRedisConfig_TLSFlag(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1"} {
		t.Setenv("REDIS_TLS", v)
		if cfg := LoadRedisConfig(); !cfg.TLS {
			t.Errorf("REDIS_TLS=%q: TLS = false, want true", v)
		}
	}
	t.Setenv("REDIS_TLS", "off")
	if cfg := LoadRedisConfig(); cfg.TLS {
		t.Error("REDIS_TLS=off: TLS = true, want false")
	}
}

func TestEnvIntDefault(t *testing.T) {
	if got := envIntDefault("NOT_SET_ANYWHERE", 42); got != 42 {
		t.Errorf("envIntDefault() = %d, want default 42", got)
	}
	t.Setenv("SOME_INT", "7")
	if got := envIntDefault("SOME_INT", 42); got != 7 {
		t.Errorf("envIntDefault() = %d, want 7", got)
	}
}
