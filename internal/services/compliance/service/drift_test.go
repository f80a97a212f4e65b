package service

import (
	"context"
	"testing"
	"time"

	perr "apiwarden/internal/platform/errors"
	"apiwarden/internal/services/compliance/domain"
	"apiwarden/internal/services/compliance/repo"
)

func report(rate float64) domain.Report {
	return domain.Report{
		GeneratedAt:    time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		ComplianceRate: rate,
	}
}

func TestDetect_RequiresBothReports(t *testing.T) {
	d := NewDetector()

	if _, err := d.Detect(); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing baseline error = %v", err)
	}

	d.SetBaseline(report(99))
	if _, err := d.Detect(); err != domain.ErrNoCurrent {
		t.Fatalf("missing current error = %v", err)
	}

	d.SetCurrent(report(98))
	if _, err := d.Detect(); err != nil {
		t.Fatalf("Detect with both reports: %v", err)
	}
}

func TestSetThreshold_RejectsNonPositive(t *testing.T) {
	d := NewDetector()
	if d.Threshold() != domain.DefaultDriftThreshold {
		t.Fatalf("default threshold = %v", d.Threshold())
	}
	if err := d.SetThreshold(0); err == nil {
		t.Fatalf("zero threshold accepted")
	}
	if err := d.SetThreshold(-3); err == nil {
		t.Fatalf("negative threshold accepted")
	}
	if err := d.SetThreshold(2.5); err != nil {
		t.Fatalf("valid threshold rejected: %v", err)
	}
	if d.Threshold() != 2.5 {
		t.Fatalf("threshold = %v", d.Threshold())
	}
}

type memStorage struct {
	byLabel map[string]repo.StoredReport
}

func (m *memStorage) SaveReport(_ context.Context, id, label string, r domain.Report) error {
	if m.byLabel == nil {
		m.byLabel = map[string]repo.StoredReport{}
	}
	m.byLabel[label] = repo.StoredReport{ID: id, Label: label, GeneratedAt: r.GeneratedAt, Report: r}
	return nil
}

func (m *memStorage) ReportByLabel(_ context.Context, label string) (repo.StoredReport, error) {
	sr, ok := m.byLabel[label]
	if !ok {
		return repo.StoredReport{}, perr.NotFoundf("report %q", label)
	}
	return sr, nil
}

func (m *memStorage) LatestReport(context.Context) (repo.StoredReport, error) {
	return repo.StoredReport{}, perr.NotFoundf("no reports")
}

func (m *memStorage) ListReports(context.Context, int) ([]repo.StoredReport, error) {
	out := make([]repo.StoredReport, 0, len(m.byLabel))
	for _, sr := range m.byLabel {
		out = append(out, sr)
	}
	return out, nil
}

func newTestSvc(t *testing.T, storage repo.Storage) *Svc {
	t.Helper()
	s := &Svc{
		Monitor: newTestMonitor(t),
		Drift:   NewDetector(),
		Repo:    storage,
	}
	return s
}

func TestSaveBaseline_PinsAndPersists(t *testing.T) {
	storage := &memStorage{}
	s := newTestSvc(t, storage)
	ctx := context.Background()

	s.Monitor.Record(ctx, "GET", "/api/health", 200, body(t, `{"status":"ok"}`), time.Millisecond)

	sr, err := s.SaveBaseline(ctx, "pre-release")
	if err != nil {
		t.Fatalf("SaveBaseline: %v", err)
	}
	if sr.ID == "" || sr.Label != "pre-release" {
		t.Fatalf("stored report = %+v", sr)
	}
	if _, ok := storage.byLabel["pre-release"]; !ok {
		t.Fatalf("baseline not persisted")
	}

	// detector was pinned: a clean current detects no drift
	d, err := s.DetectDrift(ctx, DriftInput{})
	if err != nil {
		t.Fatalf("DetectDrift: %v", err)
	}
	if d.Drifted {
		t.Fatalf("clean log drifted: %+v", d)
	}
}

func TestDetectDrift_LoadsLabeledBaseline(t *testing.T) {
	storage := &memStorage{}
	s := newTestSvc(t, storage)
	ctx := context.Background()

	if err := storage.SaveReport(ctx, "id1", "golden", report(100)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// current log: one violating request out of one
	s.Monitor.Record(ctx, "POST", "/api/files/upload", 200,
		body(t, `{"id":"bad","filename":"a","size":1,"status":"queued"}`), time.Millisecond)

	d, err := s.DetectDrift(ctx, DriftInput{BaselineLabel: "golden"})
	if err != nil {
		t.Fatalf("DetectDrift: %v", err)
	}
	if !d.Drifted {
		t.Fatalf("full regression not flagged: %+v", d)
	}
	if len(d.NewViolations) != 1 {
		t.Fatalf("NewViolations = %+v", d.NewViolations)
	}
}

func TestDetectDrift_NoStorageNoLabel(t *testing.T) {
	s := newTestSvc(t, nil)
	if _, err := s.DetectDrift(context.Background(), DriftInput{BaselineLabel: "x"}); err == nil {
		t.Fatalf("label lookup without storage succeeded")
	}
}
