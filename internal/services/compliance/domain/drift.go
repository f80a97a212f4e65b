package domain

import (
	"math"
	"sort"

	perr "apiwarden/internal/platform/errors"
)

// DefaultDriftThreshold is the compliance rate change, in percentage
// points, that flags drift between two reports
const DefaultDriftThreshold = 5.0

// Drift precondition sentinels
var (
	ErrNoBaseline = perr.New(perr.ErrorCodeInvalidArgument, "drift: baseline report not set")
	ErrNoCurrent  = perr.New(perr.ErrorCodeInvalidArgument, "drift: current report not set")
)

// EndpointChange compares one endpoint's compliance across two reports
// An endpoint absent from one report inherits the other side's rate, so
// appearing or disappearing is not drift by itself
type EndpointChange struct {
	Endpoint     string  `json:"endpoint"`
	BaselineRate float64 `json:"baseline_rate"`
	CurrentRate  float64 `json:"current_rate"`
	Delta        float64 `json:"delta"`
	Significant  bool    `json:"significant"`
}

// DriftAnalysis is the outcome of comparing a current report to a baseline
type DriftAnalysis struct {
	Threshold     float64          `json:"threshold"`
	BaselineRate  float64          `json:"baseline_rate"`
	CurrentRate   float64          `json:"current_rate"`
	RateDelta     float64          `json:"rate_delta"`
	Drifted       bool             `json:"drifted"`
	NewViolations []Violation      `json:"new_violations"`
	Endpoints     []EndpointChange `json:"endpoints"`
}

// ComputeDrift compares current against baseline with the given threshold
// Drift means the overall rate moved by more than threshold points in
// either direction, or any single endpoint's rate did
func ComputeDrift(baseline, current Report, threshold float64) DriftAnalysis {
	d := DriftAnalysis{
		Threshold:     threshold,
		BaselineRate:  baseline.ComplianceRate,
		CurrentRate:   current.ComplianceRate,
		RateDelta:     Round2(current.ComplianceRate - baseline.ComplianceRate),
		NewViolations: []Violation{},
		Endpoints:     []EndpointChange{},
	}

	seen := make(map[[2]string]struct{}, len(baseline.Violations))
	for _, v := range baseline.Violations {
		seen[[2]string{v.Method, v.Endpoint}] = struct{}{}
	}
	for _, v := range current.Violations {
		if _, ok := seen[[2]string{v.Method, v.Endpoint}]; !ok {
			d.NewViolations = append(d.NewViolations, v)
		}
	}

	baseRates := endpointRates(baseline)
	currRates := endpointRates(current)
	names := make([]string, 0, len(baseRates)+len(currRates))
	for name := range baseRates {
		names = append(names, name)
	}
	for name := range currRates {
		if _, ok := baseRates[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		base, inBase := baseRates[name]
		curr, inCurr := currRates[name]
		if !inBase {
			base = curr
		}
		if !inCurr {
			curr = base
		}
		delta := Round2(curr - base)
		ec := EndpointChange{
			Endpoint:     name,
			BaselineRate: base,
			CurrentRate:  curr,
			Delta:        delta,
			Significant:  math.Abs(delta) > threshold,
		}
		if ec.Significant {
			d.Drifted = true
		}
		d.Endpoints = append(d.Endpoints, ec)
	}

	if math.Abs(d.RateDelta) > threshold {
		d.Drifted = true
	}
	return d
}

func endpointRates(r Report) map[string]float64 {
	out := make(map[string]float64, len(r.Endpoints))
	for _, e := range r.Endpoints {
		out[e.Endpoint] = e.ComplianceRate
	}
	return out
}
