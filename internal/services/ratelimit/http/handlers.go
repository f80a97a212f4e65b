// Package http provides diagnostic http transport for rate limiting
package http

import (
	stdhttp "net/http"

	"apiwarden/internal/modkit/httpkit"
	"apiwarden/internal/services/ratelimit/domain"
	svc "apiwarden/internal/services/ratelimit/service"
)

// Register mounts rate limit diagnostics on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// static policy table
	httpkit.Get(r, "/policies", h.policies)

	// non-consuming window inspection
	httpkit.PostJSON[previewInput](r, "/preview", h.preview)
}

type handlers struct{ svc svc.Service }

type previewInput struct {
	ClientKey string `json:"client_key" validate:"required,min=1,max=200" example:"203.0.113.7"`
	Class     string `json:"class,omitempty" validate:"omitempty,min=1,max=64" example:"upload"`
}

// swagger:route GET /ratelimit/policies RateLimit ratelimitPolicies
// @Summary Rate limit policy table
// @Tags RateLimit
// @Produce json
// @Success 200 {object} map[string]domain.Policy "ok"
// @Router /ratelimit/policies [get]
func (h *handlers) policies(_ *stdhttp.Request) (any, error) {
	return domain.Policies(), nil
}

// swagger:route POST /ratelimit/preview RateLimit ratelimitPreview
// @Summary Inspect a client window without consuming a request
// @Tags RateLimit
// @Accept json
// @Produce json
// @Param payload body previewInput true "Client and class"
// @Success 200 {object} domain.Result "ok"
// @Router /ratelimit/preview [post]
func (h *handlers) preview(r *stdhttp.Request, in previewInput) (any, error) {
	class := in.Class
	if class == "" {
		class = domain.ClassDefault
	}
	return h.svc.Peek(r.Context(), in.ClientKey, class), nil
}
