package config

import (
	"context"
	"crypto/tls"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig carries connection settings for the optional Redis instance
// backing the response cache and the rate limiter.  Redis is never required:
// when it is unreachable both middlewares degrade to pass-throughs.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

// LoadRedisConfig builds a RedisConfig from environment variables with the
// same defaulting style as the other Load* functions.  REDIS_HOST plus
// REDIS_PORT take precedence over the REDIS_ADDR shorthand; the fallback is
// a local instance.
func LoadRedisConfig() RedisConfig {
	addr := getenvDefault("REDIS_ADDR", "localhost:6379")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	tlsEnv := os.Getenv("REDIS_TLS")
	return RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       envIntDefault("REDIS_DB", 0),
		TLS:      strings.EqualFold(tlsEnv, "true") || tlsEnv == "1",
	}
}

// NewRedisClient connects using LoadRedisConfig and verifies the connection
// with a short ping.  The returned client is nil when Redis cannot be
// reached; callers treat nil as "run without caching and rate limiting".
func NewRedisClient() *redis.Client {
	cfg := LoadRedisConfig()

	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
