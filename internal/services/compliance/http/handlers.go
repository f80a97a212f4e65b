// Package http provides http transport for compliance monitoring
package http

import (
	stdhttp "net/http"
	"strconv"

	"apiwarden/internal/modkit/httpkit"
	perr "apiwarden/internal/platform/errors"
	"apiwarden/internal/services/compliance/domain"
	svc "apiwarden/internal/services/compliance/service"
)

// Register mounts compliance endpoints on the given router
func Register(r httpkit.Router, s *svc.Svc) {
	h := &handlers{svc: s}

	// live aggregation of the metric log
	httpkit.Get(r, "/report", h.report)

	// violations bucketed by severity
	httpkit.Get(r, "/violations", h.violations)

	// evaluation kill switch
	httpkit.PutJSON[enabledInput](r, "/enabled", h.setEnabled)

	// baseline snapshot and drift run
	httpkit.PostJSON[baselineInput](r, "/baseline", h.saveBaseline)
	httpkit.PostJSON[svc.DriftInput](r, "/drift", h.detectDrift)

	// persisted baselines, newest first
	httpkit.Get(r, "/reports", h.storedReports)
}

type handlers struct{ svc *svc.Svc }

type enabledInput struct {
	Enabled bool `json:"enabled" example:"false"`
}

type baselineInput struct {
	Label string `json:"label" validate:"required,min=1,max=200" example:"pre-release"`
}

// swagger:route GET /compliance/report Compliance complianceReport
// @Summary Current compliance report
// @Tags Compliance
// @Produce json
// @Success 200 {object} domain.Report "ok"
// @Router /compliance/report [get]
func (h *handlers) report(_ *stdhttp.Request) (any, error) {
	return h.svc.Monitor.Report(), nil
}

// swagger:route GET /compliance/violations Compliance complianceViolations
// @Summary Violations bucketed by severity
// @Tags Compliance
// @Produce json
// @Param severity query string false "restrict to one grade" Enums(low, medium, high, critical)
// @Success 200 {object} map[string][]domain.Violation "ok"
// @Router /compliance/violations [get]
func (h *handlers) violations(r *stdhttp.Request) (any, error) {
	buckets := h.svc.Monitor.ViolationsBySeverity()
	raw := r.URL.Query().Get("severity")
	if raw == "" {
		return buckets, nil
	}
	want := domain.Severity(raw)
	vs, ok := buckets[want]
	if !ok {
		return nil, perr.InvalidArgf("unknown severity %q", raw)
	}
	return map[domain.Severity][]domain.Violation{want: vs}, nil
}

// swagger:route PUT /compliance/enabled Compliance complianceSetEnabled
// @Summary Toggle contract evaluation
// @Tags Compliance
// @Accept json
// @Produce json
// @Param payload body enabledInput true "Switch"
// @Success 200 {object} enabledInput "ok"
// @Router /compliance/enabled [put]
func (h *handlers) setEnabled(_ *stdhttp.Request, in enabledInput) (any, error) {
	h.svc.Monitor.SetEnabled(in.Enabled)
	return enabledInput{Enabled: h.svc.Monitor.Enabled()}, nil
}

// swagger:route POST /compliance/baseline Compliance complianceBaseline
// @Summary Snapshot the current report as the drift baseline
// @Tags Compliance
// @Accept json
// @Produce json
// @Param payload body baselineInput true "Baseline label"
// @Success 201 {object} repo.StoredReport "created"
// @Router /compliance/baseline [post]
func (h *handlers) saveBaseline(r *stdhttp.Request, in baselineInput) (any, error) {
	sr, err := h.svc.SaveBaseline(r.Context(), in.Label)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(sr), nil
}

// swagger:route POST /compliance/drift Compliance complianceDrift
// @Summary Judge the live metric log against a baseline
// @Tags Compliance
// @Accept json
// @Produce json
// @Param payload body svc.DriftInput true "Baseline selection"
// @Success 200 {object} domain.DriftAnalysis "ok"
// @Router /compliance/drift [post]
func (h *handlers) detectDrift(r *stdhttp.Request, in svc.DriftInput) (any, error) {
	return h.svc.DetectDrift(r.Context(), in)
}

// swagger:route GET /compliance/reports Compliance complianceStoredReports
// @Summary Persisted baseline reports
// @Tags Compliance
// @Produce json
// @Success 200 {array} repo.StoredReport "ok"
// @Router /compliance/reports [get]
func (h *handlers) storedReports(r *stdhttp.Request) (any, error) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.InvalidArgf("bad limit %q", raw)
		}
		limit = n
	}
	return h.svc.StoredReports(r.Context(), limit)
}
