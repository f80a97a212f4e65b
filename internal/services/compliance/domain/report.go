package domain

import (
	"math"
	"sort"
	"time"
)

// Round2 rounds to two decimals, halves away from zero
// 66.665 becomes 66.67 and -11.665 becomes -11.67
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// BuildReport aggregates a metric log into a report
// Per-endpoint stats are keyed "METHOD path" so the same path hit with
// different verbs counts separately
func BuildReport(ms []Metric, at time.Time) Report {
	r := Report{
		GeneratedAt: at,
		Violations:  []Violation{},
		Endpoints:   []EndpointStat{},
		Summary:     make(map[Severity]int64, 4),
	}
	for _, s := range Severities() {
		r.Summary[s] = 0
	}

	type acc struct {
		requests   int64
		compliant  int64
		violations int64
		totalMs    float64
	}
	byEndpoint := make(map[string]*acc)
	var totalMs float64

	for _, m := range ms {
		r.TotalRequests++
		rtMs := float64(m.ResponseTime) / float64(time.Millisecond)
		totalMs += rtMs

		key := m.Method + " " + m.Endpoint
		a := byEndpoint[key]
		if a == nil {
			a = &acc{}
			byEndpoint[key] = a
		}
		a.requests++
		a.totalMs += rtMs

		if m.Success {
			r.CompliantRequests++
			a.compliant++
		}
		if m.Violation != nil {
			a.violations++
			r.Violations = append(r.Violations, *m.Violation)
			r.Summary[m.Violation.Severity]++
		}
	}

	r.ComplianceRate = ratePct(r.CompliantRequests, r.TotalRequests)
	if r.TotalRequests > 0 {
		r.AvgResponseTimeMs = Round2(totalMs / float64(r.TotalRequests))
	}

	names := make([]string, 0, len(byEndpoint))
	for name := range byEndpoint {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := byEndpoint[name]
		r.Endpoints = append(r.Endpoints, EndpointStat{
			Endpoint:          name,
			Requests:          a.requests,
			Compliant:         a.compliant,
			Violations:        a.violations,
			ComplianceRate:    ratePct(a.compliant, a.requests),
			AvgResponseTimeMs: Round2(a.totalMs / float64(a.requests)),
		})
	}
	return r
}

func ratePct(compliant, total int64) float64 {
	if total == 0 {
		return 0
	}
	return Round2(100 * float64(compliant) / float64(total))
}
