package service

import (
	"sync"

	perr "apiwarden/internal/platform/errors"
	"apiwarden/internal/services/compliance/domain"
)

// Detector compares a current report against a pinned baseline
type Detector struct {
	mu        sync.Mutex
	baseline  *domain.Report
	current   *domain.Report
	threshold float64
}

// NewDetector constructs a detector with the default threshold
func NewDetector() *Detector {
	return &Detector{threshold: domain.DefaultDriftThreshold}
}

// SetBaseline pins the report current runs are judged against
func (d *Detector) SetBaseline(r domain.Report) {
	d.mu.Lock()
	d.baseline = &r
	d.mu.Unlock()
}

// SetCurrent sets the report to judge
func (d *Detector) SetCurrent(r domain.Report) {
	d.mu.Lock()
	d.current = &r
	d.mu.Unlock()
}

// SetThreshold overrides the drift threshold in percentage points
func (d *Detector) SetThreshold(t float64) error {
	if t <= 0 {
		return perr.InvalidArgf("drift threshold must be positive, got %v", t)
	}
	d.mu.Lock()
	d.threshold = t
	d.mu.Unlock()
	return nil
}

// Threshold returns the active threshold
func (d *Detector) Threshold() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.threshold
}

// Detect compares the current report to the baseline
// Both reports must be set first
func (d *Detector) Detect() (domain.DriftAnalysis, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.baseline == nil {
		return domain.DriftAnalysis{}, domain.ErrNoBaseline
	}
	if d.current == nil {
		return domain.DriftAnalysis{}, domain.ErrNoCurrent
	}
	return domain.ComputeDrift(*d.baseline, *d.current, d.threshold), nil
}
