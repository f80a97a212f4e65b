// Package http provides diagnostic http transport for contracts
package http

import (
	stdhttp "net/http"
	"sort"

	"apiwarden/internal/modkit/httpkit"
	"apiwarden/internal/services/contracts/domain"
	svc "apiwarden/internal/services/contracts/service"
)

// Register mounts contract diagnostics on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// registered schema names and the error code contract
	httpkit.Get(r, "/schemas", h.schemas)

	// dry-run validation of a captured body
	httpkit.PostJSON[validateInput](r, "/validate", h.validate)
}

type handlers struct{ svc svc.Service }

type validateInput struct {
	Method   string `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE" example:"POST"`
	Endpoint string `json:"endpoint" validate:"required,min=1,max=500" example:"/api/files/upload"`
	Status   int    `json:"status" validate:"required,min=100,max=599" example:"200"`
	Body     any    `json:"body"`
}

type schemasOut struct {
	Schemas    []string `json:"schemas"`
	ErrorCodes []string `json:"error_codes"`
}

// swagger:route GET /contracts/schemas Contracts contractsSchemas
// @Summary Registered contract schemas
// @Tags Contracts
// @Produce json
// @Success 200 {object} schemasOut "ok"
// @Router /contracts/schemas [get]
func (h *handlers) schemas(_ *stdhttp.Request) (any, error) {
	names := h.svc.SchemaNames()
	sort.Strings(names)
	return schemasOut{Schemas: names, ErrorCodes: domain.ErrorCodes()}, nil
}

// swagger:route POST /contracts/validate Contracts contractsValidate
// @Summary Validate a response body against its contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Param payload body validateInput true "Captured response"
// @Success 200 {object} domain.Outcome "ok"
// @Router /contracts/validate [post]
func (h *handlers) validate(_ *stdhttp.Request, in validateInput) (any, error) {
	if in.Status >= 200 && in.Status < 300 {
		name := h.svc.SchemaNameFor(in.Method, in.Endpoint)
		return h.svc.ValidateSuccess(name, in.Body), nil
	}
	return h.svc.ValidateError(in.Body), nil
}
