// Package module mounts the meta endpoints, which report process health
// and build information for the warden API.
package module

import (
	"net/http"
	"time"

	modkit "apiwarden/internal/modkit"
	"apiwarden/internal/modkit/httpkit"
	str "apiwarden/internal/platform/strings"

	metahttp "apiwarden/internal/services/api/meta/http"
)

// Module wires the meta handlers into the API.
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// New builds the meta module; opts may override the default name and
// /meta prefix.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "apiwarden-api",
			StartedAt:   m.startedAt,
			PG:          deps.PG,
			CH:          deps.CH,
			RDS:         deps.RDS,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

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

func (m *Module) Name() string { return str.MustString(m.name, "meta") }

func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

func (m *Module) Ports() any { return nil }
