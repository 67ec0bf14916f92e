package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// ErrNotConfigured is returned by Initialize when no URL is set. Callers treat
// it as "use the in-memory fallback", not as a startup failure.
var ErrNotConfigured = errors.New("redis: REDIS_URL not configured")

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://host:port/db or rediss://... for TLS
	Password string // Overrides the password embedded in URL
}

// Client returns the shared Redis client, or nil when Redis is not
// configured or the initial ping failed.
func Client() *redis.Client {
	return client
}

// Initialize connects the shared client once. Later calls return the result
// of the first.
func Initialize(cfg Config) error {
	clientOnce.Do(func() {
		if cfg.URL == "" {
			clientErr = ErrNotConfigured
			return
		}

		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			clientErr = fmt.Errorf("redis: invalid URL: %w", err)
			return
		}
		if cfg.Password != "" {
			opts.Password = cfg.Password
		}
		if opts.TLSConfig != nil {
			opts.TLSConfig.MinVersion = tls.VersionTLS12
		}
		opts.DialTimeout = 5 * time.Second
		opts.ReadTimeout = 3 * time.Second
		opts.WriteTimeout = 3 * time.Second
		opts.PoolSize = 10
		opts.MinIdleConns = 2

		c := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			clientErr = fmt.Errorf("redis: connection failed: %w", err)
			return
		}
		client = c
	})

	return clientErr
}

// Close closes the Redis connection gracefully.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck returns nil if the shared client answers a ping.
func HealthCheck(ctx context.Context) error {
	if client == nil {
		return errors.New("redis: client not initialized")
	}
	return client.Ping(ctx).Err()
}
