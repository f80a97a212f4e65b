// Package service contains the rate limiting workflows
package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"apiwarden/internal/platform/logger"
	"apiwarden/internal/services/ratelimit/domain"
)

// DefaultRemoteTimeout bounds one redis round trip
// Must stay well under any handler deadline so fallback is never the slow path
const DefaultRemoteTimeout = 500 * time.Millisecond

// Service defines the limiter contract
type Service interface {
	Check(ctx context.Context, clientKey, class string) domain.Result
	Peek(ctx context.Context, clientKey, class string) domain.Result
	Healthy(ctx context.Context) bool
}

// Limiter implements Service over a remote store with a local fallback
// remote may be nil for single-node deployments; local never is
type Limiter struct {
	remote domain.CounterStore
	local  domain.CounterStore

	remoteTimeout time.Duration
	log           *logger.Logger
	met           *metrics
	now           func() time.Time
}

// Option tweaks limiter construction
type Option func(*Limiter)

// WithRemoteTimeout overrides the per-check remote store deadline
func WithRemoteTimeout(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.remoteTimeout = d
		}
	}
}

// WithRegisterer overrides where limiter metrics register
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(l *Limiter) { l.met = newMetrics(reg) }
}

// New constructs a limiter
func New(remote, local domain.CounterStore, opts ...Option) *Limiter {
	if local == nil {
		panic("ratelimit.Limiter requires a non nil local store")
	}
	l := &Limiter{
		remote:        remote,
		local:         local,
		remoteTimeout: DefaultRemoteTimeout,
		log:           logger.Named("ratelimit"),
		now:           time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	if l.met == nil {
		l.met = newMetrics(prometheus.DefaultRegisterer)
	}
	return l
}

// Check counts the request against its class quota and decides
// The Nth request of an N-request window is still allowed; the N+1th is not
// Store failures degrade to the local store and are never surfaced
func (l *Limiter) Check(ctx context.Context, clientKey, class string) domain.Result {
	start := l.now()
	pol := domain.PolicyFor(class)
	key := domain.Key(class, clientKey)

	w := l.increment(ctx, key, pol.Window)

	remaining := pol.MaxRequests - w.Count
	if remaining < 0 {
		remaining = 0
	}
	res := domain.Result{
		Allowed:   w.Count <= pol.MaxRequests,
		Limit:     pol.MaxRequests,
		Remaining: remaining,
		ResetAt:   w.ResetAt,
	}

	decision := "allow"
	if !res.Allowed {
		decision = "deny"
	}
	l.met.decisions.WithLabelValues(class, decision).Inc()
	l.met.duration.Observe(l.now().Sub(start).Seconds())
	return res
}

// Peek reports the current window without consuming a request
// A client with no live window gets the full quota and a zero ResetAt
func (l *Limiter) Peek(ctx context.Context, clientKey, class string) domain.Result {
	pol := domain.PolicyFor(class)
	key := domain.Key(class, clientKey)

	w, ok := l.get(ctx, key)
	if !ok {
		return domain.Result{Allowed: true, Limit: pol.MaxRequests, Remaining: pol.MaxRequests}
	}
	remaining := pol.MaxRequests - w.Count
	if remaining < 0 {
		remaining = 0
	}
	return domain.Result{
		Allowed:   w.Count < pol.MaxRequests,
		Limit:     pol.MaxRequests,
		Remaining: remaining,
		ResetAt:   w.ResetAt,
	}
}

// Healthy reports whether the remote store is answering
// A nil remote is healthy: the local store is the configured store
func (l *Limiter) Healthy(ctx context.Context) bool {
	if l.remote == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, l.remoteTimeout)
	defer cancel()
	return l.remote.Ping(ctx) == nil
}

func (l *Limiter) increment(ctx context.Context, key string, window time.Duration) domain.Window {
	if l.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, l.remoteTimeout)
		w, err := l.remote.Increment(rctx, key, window)
		cancel()
		if err == nil {
			return w
		}
		l.met.fallbacks.Inc()
		l.log.Warn().Err(err).Str("key", key).Msg("remote counter store failed, falling back to memory")
	}

	w, err := l.local.Increment(ctx, key, window)
	if err != nil {
		// the memory store cannot fail; if a future local store does, fail open
		l.log.Error().Err(err).Str("key", key).Msg("local counter store failed, allowing request")
		return domain.Window{Count: 1, ResetAt: l.now().Add(window)}
	}
	return w
}

func (l *Limiter) get(ctx context.Context, key string) (domain.Window, bool) {
	if l.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, l.remoteTimeout)
		w, ok, err := l.remote.Get(rctx, key)
		cancel()
		if err == nil {
			return w, ok
		}
		l.met.fallbacks.Inc()
		l.log.Warn().Err(err).Str("key", key).Msg("remote counter store failed, falling back to memory")
	}
	w, ok, err := l.local.Get(ctx, key)
	if err != nil {
		return domain.Window{}, false
	}
	return w, ok
}
