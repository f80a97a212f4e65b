package store

import (
	"context"
	"time"

	"apiwarden/internal/platform/store"
	"apiwarden/internal/services/ratelimit/domain"
)

// Redis adapts the platform redis seam to the counter store port
// Window state lives server-side so every api replica sees the same counts
type Redis struct {
	rds store.Redis
	now func() time.Time
}

// NewRedis wraps the platform redis handle
// The handle's lifecycle belongs to the platform store, not this adapter
func NewRedis(rds store.Redis) *Redis {
	if rds == nil {
		panic("ratelimit.Redis requires a non nil redis handle")
	}
	return &Redis{rds: rds, now: time.Now}
}

// Increment implements domain.CounterStore
// The count and ttl come back from one atomic round trip, so ResetAt is
// consistent with the count even under concurrent increments
func (r *Redis) Increment(ctx context.Context, key string, window time.Duration) (domain.Window, error) {
	count, remaining, err := r.rds.IncrWindow(ctx, key, window)
	if err != nil {
		return domain.Window{}, err
	}
	return domain.Window{Count: count, ResetAt: r.now().Add(remaining)}, nil
}

// Get implements domain.CounterStore
func (r *Redis) Get(ctx context.Context, key string) (domain.Window, bool, error) {
	count, remaining, ok, err := r.rds.GetWindow(ctx, key)
	if err != nil || !ok {
		return domain.Window{}, false, err
	}
	return domain.Window{Count: count, ResetAt: r.now().Add(remaining)}, true, nil
}

// Ping implements domain.CounterStore
func (r *Redis) Ping(ctx context.Context) error { return r.rds.Ping(ctx) }
