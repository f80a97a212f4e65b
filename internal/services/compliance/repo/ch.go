package repo

import (
	"context"

	"apiwarden/internal/platform/store"
	"apiwarden/internal/services/compliance/domain"
)

// CHSink streams every recorded metric into clickhouse
// One row per metric; the table is append-only analytics, never read back
// on the request path
type CHSink struct {
	ch store.Clickhouse
}

// NewCHSink wraps the platform clickhouse handle
func NewCHSink(ch store.Clickhouse) *CHSink {
	if ch == nil {
		panic("compliance.CHSink requires a non nil clickhouse handle")
	}
	return &CHSink{ch: ch}
}

// Append implements service.Sink
func (s *CHSink) Append(ctx context.Context, m domain.Metric) error {
	severity := ""
	details := ""
	if m.Violation != nil {
		severity = string(m.Violation.Severity)
		if len(m.Violation.Details) > 0 {
			details = m.Violation.Details[0]
		}
	}
	row := []any{
		m.RecordedAt,
		m.Endpoint,
		m.Method,
		int32(m.Status),
		m.Success,
		m.ResponseTime.Milliseconds(),
		severity,
		details,
	}
	return s.ch.Insert(ctx, "compliance_metrics", [][]any{row})
}
