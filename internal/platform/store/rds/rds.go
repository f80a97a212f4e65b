// Package rds provides a redis client tuned for low latency counter ops
package rds

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	Addr     string
	DB       int
	Password string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RDS is a redis client exposing the narrow counter surface the store seam needs
type RDS struct {
	client *redis.Client
}

// Open connects to redis and verifies connectivity with a single ping
// retries are disabled on purpose: callers fall back locally on error,
// so failing fast beats queueing behind a sick backend
func Open(ctx context.Context, cfg Config) (*RDS, error) {
	if cfg.Addr == "" {
		return nil, errors.New("rds: empty addr")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 500 * time.Millisecond
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		Password:     cfg.Password,
		MaxRetries:   -1,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RDS{client: client}, nil
}

// IncrWindow atomically increments key and arms ttl only when this
// increment created the key, so concurrent first requests agree on one
// deadline. Runs as a single MULTI/EXEC round trip.
func (r *RDS) IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, time.Duration, error) {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	pttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	remaining := pttl.Val()
	if remaining < 0 {
		// PTTL reports a negative duration for keys without expiry; treat
		// the full window as remaining rather than returning garbage
		remaining = ttl
	}
	return incr.Val(), remaining, nil
}

// GetWindow reads the count and remaining ttl without incrementing
func (r *RDS) GetWindow(ctx context.Context, key string) (int64, time.Duration, bool, error) {
	pipe := r.client.Pipeline()
	get := pipe.Get(ctx, key)
	pttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, 0, false, nil
		}
		return 0, 0, false, err
	}

	count, err := get.Int64()
	if err != nil {
		return 0, 0, false, err
	}
	remaining := pttl.Val()
	if remaining <= 0 {
		return 0, 0, false, nil
	}
	return count, remaining, true, nil
}

// Ping verifies connectivity
func (r *RDS) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (r *RDS) Close() error {
	return r.client.Close()
}
