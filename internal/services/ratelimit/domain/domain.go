// Package domain holds the rate limiting types and ports
package domain

import (
	"context"
	"time"
)

// Window is one counting window for a single (class, client) pair
type Window struct {
	Count   int64
	ResetAt time.Time
}

// Expired reports whether the window has passed at the given instant
func (w Window) Expired(now time.Time) bool { return !now.Before(w.ResetAt) }

// Result is the outcome of a single limiter check
type Result struct {
	Allowed   bool      `json:"allowed"`
	Limit     int64     `json:"limit"`
	Remaining int64     `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// CounterStore is the window counter seam
// Increment creates the window when absent or expired, otherwise bumps its count
// Get never increments; ok is false when no live window exists for the key
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (Window, error)
	Get(ctx context.Context, key string) (Window, bool, error)
	Ping(ctx context.Context) error
}

// Key builds the counter key for a class and client pair
func Key(class, clientKey string) string {
	return "rate_limit:" + class + ":" + clientKey
}
