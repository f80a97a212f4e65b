// Package http serves the meta endpoints: health, readiness, version,
// and service identity.
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"apiwarden/internal/core/version"
	"apiwarden/internal/modkit/httpkit"
)

// Pinger is what a backend must expose to take part in readiness.
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps names the backends readiness probes, nil meaning disabled.
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	RDS         any
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes on the module router.
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// check outcomes for a single backend
const (
	statusOK      = "ok"
	statusFail    = "fail"
	statusSkipped = "skipped"
	statusUnknown = "unknown"
)

// HealthResponse is the liveness payload.
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"apiwarden-api"`
	Started string `json:"started"  example:"2026-08-29T09:00:00Z"`
	Now     string `json:"now"      example:"2026-08-29T09:05:00Z"`
}

// ReadyCheck is one backend's probe outcome.
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 10.0.0.4:5432: connect: connection refused"`
}

// ReadyResponse aggregates the backend probes.
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-08-29T09:05:00Z"`
}

// ServiceResponse reports identity and uptime.
type ServiceResponse struct {
	Name    string `json:"name"    example:"apiwarden-api"`
	Started string `json:"started" example:"2026-08-29T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func probe(ctx stdctx.Context, name string, backend any) ReadyCheck {
	switch b := backend.(type) {
	case nil:
		return ReadyCheck{Name: name, Status: statusSkipped}
	case Pinger:
		if err := b.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: statusFail, Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: statusOK}
	default:
		return ReadyCheck{Name: name, Status: statusUnknown}
	}
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(stdctx.Background(), 2*time.Second)
	defer cancel()

	checks := []ReadyCheck{
		probe(ctx, "pg", h.deps.PG),
		probe(ctx, "ch", h.deps.CH),
		probe(ctx, "rds", h.deps.RDS),
	}

	// disabled backends are skipped, not degraded
	overall := statusOK
	for _, c := range checks {
		switch c.Status {
		case statusOK, statusSkipped:
		case statusFail:
			overall = statusFail
		default:
			if overall == statusOK {
				overall = "degraded"
			}
		}
	}

	return ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}
