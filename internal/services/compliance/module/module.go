// Package module wires compliance monitoring into the API using modkit
package module

import (
	"net/http"

	modkit "apiwarden/internal/modkit"
	"apiwarden/internal/modkit/httpkit"
	str "apiwarden/internal/platform/strings"
	cphttp "apiwarden/internal/services/compliance/http"
	cprepo "apiwarden/internal/services/compliance/repo"
	cpsvc "apiwarden/internal/services/compliance/service"
	ctsvc "apiwarden/internal/services/contracts/service"
)

// Module implements the compliance module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *cpsvc.Svc
}

// New constructs the compliance module
// Postgres persists baselines and clickhouse receives the metric stream;
// both are optional and degrade to in-memory behavior
func New(deps modkit.Deps, validator ctsvc.Service, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("compliance"), modkit.WithPrefix("/compliance")}, opts...)...)
	cfg := deps.Cfg.Prefix("COMPLIANCE_")

	var monOpts []cpsvc.Option
	if deps.CH != nil {
		monOpts = append(monOpts, cpsvc.WithSink(cprepo.NewCHSink(deps.CH)))
	}
	monitor := cpsvc.NewMonitor(validator, monOpts...)
	monitor.SetEnabled(cfg.MayBool("ENABLED", true))
	svc := cpsvc.New(deps.PG, cprepo.NewPG(), monitor)
	if t := cfg.MayFloat64("DRIFT_THRESHOLD", 0); t > 0 {
		if err := svc.Drift.SetThreshold(t); err != nil {
			deps.Log.Warn().Err(err).Float64("threshold", t).Msg("ignoring configured drift threshold")
		}
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
	m.ports = svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		cphttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service exposes the compliance service to sibling modules
func (m *Module) Service() *cpsvc.Svc { return m.svc }

// Monitor exposes the monitor for transport instrumentation
func (m *Module) Monitor() *cpsvc.Monitor { return m.svc.Monitor }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

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
