// Package service contains the compliance monitoring workflows
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"apiwarden/internal/platform/logger"
	ctdomain "apiwarden/internal/services/contracts/domain"
	ctsvc "apiwarden/internal/services/contracts/service"
	"apiwarden/internal/services/compliance/domain"
)

// Sink receives every recorded metric for durable analytics
// Sink failures are counted and dropped, never surfaced to callers
type Sink interface {
	Append(ctx context.Context, m domain.Metric) error
}

// Monitor validates observed responses and keeps the metric log
// The log is append-only and in-memory; Report snapshots it on demand
type Monitor struct {
	validator ctsvc.Service
	sink      Sink
	log       *logger.Logger
	met       *metrics

	enabled atomic.Bool
	mu      sync.Mutex
	metrics []domain.Metric

	now   func() time.Time
	newID func() string
}

// Option tweaks monitor construction
type Option func(*Monitor)

// WithSink attaches a durable metric sink
func WithSink(s Sink) Option {
	return func(m *Monitor) { m.sink = s }
}

// WithRegisterer overrides where monitor metrics register
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(m *Monitor) { m.met = newMetrics(reg) }
}

// NewMonitor constructs an enabled monitor
func NewMonitor(validator ctsvc.Service, opts ...Option) *Monitor {
	if validator == nil {
		panic("compliance.Monitor requires a non nil validator")
	}
	m := &Monitor{
		validator: validator,
		log:       logger.Named("compliance"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	m.enabled.Store(true)
	for _, o := range opts {
		o(m)
	}
	if m.met == nil {
		m.met = newMetrics(prometheus.DefaultRegisterer)
	}
	return m
}

// SetEnabled toggles contract evaluation
// A disabled monitor still logs traffic; it just stops judging it
func (m *Monitor) SetEnabled(on bool) { m.enabled.Store(on) }

// Enabled reports whether contract evaluation is on
func (m *Monitor) Enabled() bool { return m.enabled.Load() }

// Record validates one observed response and appends its metric
// A nil body means the response was not JSON; it is logged without judgment
func (m *Monitor) Record(ctx context.Context, method, endpoint string, status int, body any, rt time.Duration) domain.Metric {
	metric := domain.Metric{
		Endpoint:     endpoint,
		Method:       method,
		Status:       status,
		Success:      true,
		ResponseTime: rt,
		RecordedAt:   m.now(),
	}

	if m.enabled.Load() && body != nil {
		var out ctdomain.Outcome
		schema := ctdomain.ErrorSchema
		if status >= 200 && status < 300 {
			schema = m.validator.SchemaNameFor(method, endpoint)
			out = m.validator.ValidateSuccess(schema, body)
		} else {
			out = m.validator.ValidateError(body)
		}

		if !out.Valid() {
			metric.Success = false
			metric.Violation = m.violation(metric, schema, out)
		} else if len(out.Findings) > 0 {
			// additive extras: compliant, but worth a low grade paper trail
			metric.Violation = m.violation(metric, schema, out)
		}
	}

	m.append(ctx, metric)
	return metric
}

// RecordTransportFailure logs a request that never produced a response
func (m *Monitor) RecordTransportFailure(ctx context.Context, method, endpoint string, rt time.Duration) domain.Metric {
	metric := domain.Metric{
		Endpoint:     endpoint,
		Method:       method,
		Success:      false,
		ResponseTime: rt,
		RecordedAt:   m.now(),
	}
	m.append(ctx, metric)
	return metric
}

// Report aggregates the metric log into a point-in-time report
func (m *Monitor) Report() domain.Report {
	m.mu.Lock()
	snapshot := make([]domain.Metric, len(m.metrics))
	copy(snapshot, m.metrics)
	m.mu.Unlock()
	return domain.BuildReport(snapshot, m.now())
}

// ViolationsBySeverity buckets every logged violation by grade
// Every severity is present in the result, empty buckets included
func (m *Monitor) ViolationsBySeverity() map[domain.Severity][]domain.Violation {
	out := make(map[domain.Severity][]domain.Violation, 4)
	for _, s := range domain.Severities() {
		out[s] = []domain.Violation{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, metric := range m.metrics {
		if v := metric.Violation; v != nil {
			out[v.Severity] = append(out[v.Severity], *v)
		}
	}
	return out
}

// Len reports how many metrics the log holds
func (m *Monitor) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.metrics)
}

// Reset drops the metric log, usually after a baseline snapshot
func (m *Monitor) Reset() {
	m.mu.Lock()
	m.metrics = nil
	m.mu.Unlock()
}

func (m *Monitor) violation(metric domain.Metric, schema string, out ctdomain.Outcome) *domain.Violation {
	sev := domain.SeverityFor(metric.Endpoint, out)
	m.met.violations.WithLabelValues(string(sev)).Inc()
	return &domain.Violation{
		ID:         m.newID(),
		Endpoint:   metric.Endpoint,
		Method:     metric.Method,
		Schema:     schema,
		Status:     metric.Status,
		Severity:   sev,
		Impact:     domain.ImpactFor(sev),
		Details:    out.Messages(),
		DetectedAt: metric.RecordedAt,
	}
}

func (m *Monitor) append(ctx context.Context, metric domain.Metric) {
	m.mu.Lock()
	m.metrics = append(m.metrics, metric)
	m.mu.Unlock()

	m.met.recorded.WithLabelValues(metric.Method, outcomeLabel(metric)).Inc()

	if m.sink != nil {
		if err := m.sink.Append(ctx, metric); err != nil {
			m.met.sinkErrors.Inc()
			m.log.Warn().Err(err).Str("endpoint", metric.Endpoint).Msg("metric sink append failed")
		}
	}
}

func outcomeLabel(m domain.Metric) string {
	switch {
	case m.Status == 0:
		return "failure"
	case m.Violation != nil && !m.Success:
		return "violation"
	default:
		return "compliant"
	}
}
