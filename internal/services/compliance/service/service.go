package service

import (
	"context"

	"github.com/google/uuid"

	"apiwarden/internal/modkit/repokit"
	"apiwarden/internal/services/compliance/domain"
	"apiwarden/internal/services/compliance/repo"
)

// Svc ties the monitor, the drift detector, and report persistence together
// Repo is nil when postgres is disabled; baselines then live in memory only
type Svc struct {
	Monitor *Monitor
	Drift   *Detector
	Repo    repo.Storage

	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
}

// New constructs the compliance service
// db may be nil; the monitor and detector work without persistence
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], monitor *Monitor) *Svc {
	if monitor == nil {
		panic("compliance.Svc requires a non nil monitor")
	}
	s := &Svc{
		Monitor: monitor,
		Drift:   NewDetector(),
		binder:  binder,
		db:      db,
	}
	if db != nil && binder != nil {
		s.Repo = repokit.MustBind(binder, db)
	}
	return s
}

// SaveBaseline snapshots the current report, pins it as the drift
// baseline, and persists it under label when storage is available
func (s *Svc) SaveBaseline(ctx context.Context, label string) (repo.StoredReport, error) {
	r := s.Monitor.Report()
	sr := repo.StoredReport{
		ID:          uuid.NewString(),
		Label:       label,
		GeneratedAt: r.GeneratedAt,
		Report:      r,
	}
	if s.Repo != nil {
		if err := s.Repo.SaveReport(ctx, sr.ID, label, r); err != nil {
			return repo.StoredReport{}, err
		}
	}
	s.Drift.SetBaseline(r)
	return sr, nil
}

// DriftInput selects the baseline and threshold for one drift run
type DriftInput struct {
	// BaselineLabel loads a stored report as baseline; empty keeps the
	// pinned one
	BaselineLabel string `json:"baseline_label,omitempty" validate:"omitempty,min=1,max=200" example:"pre-release"`

	// Threshold in percentage points; zero keeps the active threshold
	Threshold float64 `json:"threshold,omitempty" validate:"omitempty,gt=0,lte=100" example:"5"`
}

// DetectDrift judges the live metric log against a baseline
func (s *Svc) DetectDrift(ctx context.Context, in DriftInput) (domain.DriftAnalysis, error) {
	if in.BaselineLabel != "" {
		if s.Repo == nil {
			return domain.DriftAnalysis{}, domain.ErrNoBaseline
		}
		sr, err := s.Repo.ReportByLabel(ctx, in.BaselineLabel)
		if err != nil {
			return domain.DriftAnalysis{}, err
		}
		s.Drift.SetBaseline(sr.Report)
	}
	if in.Threshold > 0 {
		if err := s.Drift.SetThreshold(in.Threshold); err != nil {
			return domain.DriftAnalysis{}, err
		}
	}
	s.Drift.SetCurrent(s.Monitor.Report())
	return s.Drift.Detect()
}

// StoredReports lists persisted reports, newest first
func (s *Svc) StoredReports(ctx context.Context, limit int) ([]repo.StoredReport, error) {
	if s.Repo == nil {
		return []repo.StoredReport{}, nil
	}
	return s.Repo.ListReports(ctx, limit)
}
