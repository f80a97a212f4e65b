// Package module wires contract validation into the API using modkit
package module

import (
	"net/http"

	modkit "apiwarden/internal/modkit"
	"apiwarden/internal/modkit/httpkit"
	str "apiwarden/internal/platform/strings"
	cthttp "apiwarden/internal/services/contracts/http"
	ctsvc "apiwarden/internal/services/contracts/service"
)

// Module implements the contracts module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *ctsvc.Validator
}

// New constructs the contracts module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("contracts"), modkit.WithPrefix("/contracts")}, opts...)...)

	svc := ctsvc.New()

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
		cthttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Validator exposes the schema validator to sibling modules
func (m *Module) Validator() ctsvc.Service { return m.svc }

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
