package module

import (
	"context"

	"apiwarden/internal/services/ratelimit/domain"
	rlsvc "apiwarden/internal/services/ratelimit/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Limiter exposes the limiter to sibling modules and the router
func (m *Module) Limiter() rlsvc.Service { return m.svc }

type adaptLimiterPort struct{ svc rlsvc.Service }

// Check counts a request against the class quota
func (a adaptLimiterPort) Check(ctx context.Context, clientKey, class string) domain.Result {
	return a.svc.Check(ctx, clientKey, class)
}

// Peek inspects a window without consuming a request
func (a adaptLimiterPort) Peek(ctx context.Context, clientKey, class string) domain.Result {
	return a.svc.Peek(ctx, clientKey, class)
}

// Healthy reports remote store reachability
func (a adaptLimiterPort) Healthy(ctx context.Context) bool {
	return a.svc.Healthy(ctx)
}
