// Package repo provides persistence for compliance reports and metrics
package repo

import (
	"context"
	"encoding/json"
	"time"

	"apiwarden/internal/modkit/repokit"
	perr "apiwarden/internal/platform/errors"
	"apiwarden/internal/platform/store"
	"apiwarden/internal/services/compliance/domain"
)

// StoredReport is a persisted report with its storage identity
type StoredReport struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	GeneratedAt time.Time     `json:"generated_at"`
	Report      domain.Report `json:"report"`
}

// Storage defines the report repository
type Storage interface {
	SaveReport(ctx context.Context, id, label string, r domain.Report) error
	ReportByLabel(ctx context.Context, label string) (StoredReport, error)
	LatestReport(ctx context.Context) (StoredReport, error)
	ListReports(ctx context.Context, limit int) ([]StoredReport, error)
}

type pg struct{ q repokit.Queryer }

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] {
	return repokit.BindFunc[Storage](func(q repokit.Queryer) Storage { return &pg{q: q} })
}

// SaveReport implements Storage
// Labels are unique; saving an existing label replaces its report
func (s *pg) SaveReport(ctx context.Context, id, label string, r domain.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "marshal report")
	}
	const sql = `
insert into compliance_reports (id, label, generated_at, report)
values ($1, $2, $3, $4)
on conflict (label) do update
set id = excluded.id, generated_at = excluded.generated_at, report = excluded.report
`
	if _, err = s.q.Exec(ctx, sql, id, label, r.GeneratedAt, payload); err != nil {
		return perr.FromPostgresf(err, "save report %q", label)
	}
	return nil
}

// ReportByLabel implements Storage
func (s *pg) ReportByLabel(ctx context.Context, label string) (StoredReport, error) {
	const sql = `
select id, label, generated_at, report
from compliance_reports
where label = $1
`
	return store.One(ctx, s.q, scanStored, sql, label)
}

// LatestReport implements Storage
func (s *pg) LatestReport(ctx context.Context) (StoredReport, error) {
	const sql = `
select id, label, generated_at, report
from compliance_reports
order by generated_at desc
limit 1
`
	return store.One(ctx, s.q, scanStored, sql)
}

// ListReports implements Storage
func (s *pg) ListReports(ctx context.Context, limit int) ([]StoredReport, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const sql = `
select id, label, generated_at, report
from compliance_reports
order by generated_at desc
limit $1
`
	return store.Many(ctx, s.q, scanStored, sql, limit)
}

func scanStored(row repokit.Row) (StoredReport, error) {
	var (
		sr      StoredReport
		payload []byte
	)
	if err := row.Scan(&sr.ID, &sr.Label, &sr.GeneratedAt, &payload); err != nil {
		return StoredReport{}, err
	}
	if err := json.Unmarshal(payload, &sr.Report); err != nil {
		return StoredReport{}, perr.Wrap(err, perr.ErrorCodeJSON, "unmarshal report")
	}
	return sr, nil
}
