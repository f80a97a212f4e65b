// Package module wires rate limiting into the API using modkit
package module

import (
	"net/http"

	modkit "apiwarden/internal/modkit"
	"apiwarden/internal/modkit/httpkit"
	str "apiwarden/internal/platform/strings"
	rlhttp "apiwarden/internal/services/ratelimit/http"
	rlsvc "apiwarden/internal/services/ratelimit/service"
	rlstore "apiwarden/internal/services/ratelimit/store"
)

// Module implements the ratelimit module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc rlsvc.Service
}

// New constructs the ratelimit module
// Redis is optional; without it every replica counts alone in memory
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ratelimit"), modkit.WithPrefix("/ratelimit")}, opts...)...)
	cfg := deps.Cfg.Prefix("RATELIMIT_")

	local := rlstore.NewMemory(cfg.MayDuration("SWEEP_INTERVAL", rlstore.DefaultSweepInterval))
	svcOpts := []rlsvc.Option{
		rlsvc.WithRemoteTimeout(cfg.MayDuration("REMOTE_TIMEOUT", rlsvc.DefaultRemoteTimeout)),
	}

	// backend=memory forces per-replica counting even when redis is up
	backend := cfg.MayEnum("BACKEND", "auto", "auto", "redis", "memory")
	var svc *rlsvc.Limiter
	if deps.RDS != nil && backend != "memory" {
		svc = rlsvc.New(rlstore.NewRedis(deps.RDS), local, svcOpts...)
	} else {
		svc = rlsvc.New(nil, local, svcOpts...)
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptLimiterPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		rlhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
