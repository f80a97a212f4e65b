package domain

import (
	"testing"
	"time"
)

func reportWith(rate float64, endpoints map[string]float64, violations ...Violation) Report {
	r := Report{
		GeneratedAt:    time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		ComplianceRate: rate,
		Violations:     violations,
	}
	for name, er := range endpoints {
		r.Endpoints = append(r.Endpoints, EndpointStat{Endpoint: name, ComplianceRate: er})
	}
	return r
}

func TestComputeDrift_RateChangeBeyondThreshold(t *testing.T) {
	d := ComputeDrift(reportWith(95, nil), reportWith(83.33, nil), DefaultDriftThreshold)
	if !d.Drifted {
		t.Fatalf("11.67 point drop with threshold 5 should drift")
	}
	if d.RateDelta != -11.67 {
		t.Fatalf("RateDelta = %v", d.RateDelta)
	}

	// the threshold is on the magnitude, a big jump up is drift too
	d = ComputeDrift(reportWith(80, nil), reportWith(99, nil), 5)
	if !d.Drifted {
		t.Fatalf("19 point rise with threshold 5 should drift")
	}

	// a change exactly at the threshold is not drift
	d = ComputeDrift(reportWith(95, nil), reportWith(90, nil), 5)
	if d.Drifted {
		t.Fatalf("change equal to threshold should not drift")
	}
}

func TestComputeDrift_StableReportsDoNotDrift(t *testing.T) {
	base := reportWith(92.5, map[string]float64{"/a": 95, "/b": 90})
	curr := reportWith(92.5, map[string]float64{"/a": 95, "/b": 90})

	d := ComputeDrift(base, curr, 5)
	if d.Drifted {
		t.Fatalf("identical reports flagged as drift")
	}
	if d.RateDelta != 0 {
		t.Fatalf("RateDelta = %v", d.RateDelta)
	}
}

func TestComputeDrift_NewViolationsByMethodAndEndpoint(t *testing.T) {
	old := Violation{ID: "1", Method: "GET", Endpoint: "/x", Severity: SeverityMedium}
	sameKeyNewID := Violation{ID: "2", Method: "GET", Endpoint: "/x", Severity: SeverityHigh}
	fresh := Violation{ID: "3", Method: "POST", Endpoint: "/x", Severity: SeverityHigh}

	d := ComputeDrift(
		reportWith(99, nil, old),
		reportWith(99, nil, sameKeyNewID, fresh),
		5,
	)
	if len(d.NewViolations) != 1 || d.NewViolations[0].ID != "3" {
		t.Fatalf("NewViolations = %+v", d.NewViolations)
	}
	// new violations are surfaced but do not flag drift while rates hold
	if d.Drifted {
		t.Fatalf("stable rates flagged as drift: %+v", d)
	}
}

func TestComputeDrift_EndpointUnion(t *testing.T) {
	base := reportWith(95, map[string]float64{"/a": 100, "/b": 90})
	curr := reportWith(94, map[string]float64{"/b": 70, "/c": 100})

	d := ComputeDrift(base, curr, 5)
	if len(d.Endpoints) != 3 {
		t.Fatalf("endpoints = %+v", d.Endpoints)
	}

	byName := map[string]EndpointChange{}
	for _, e := range d.Endpoints {
		byName[e.Endpoint] = e
	}

	// missing side inherits the other side's rate: no phantom drift
	if a := byName["/a"]; a.Delta != 0 || a.Significant {
		t.Fatalf("endpoint gone from current drifted: %+v", a)
	}
	if c := byName["/c"]; c.Delta != 0 || c.Significant {
		t.Fatalf("endpoint new in current drifted: %+v", c)
	}
	if b := byName["/b"]; b.Delta != -20 || !b.Significant {
		t.Fatalf("shifted endpoint missed: %+v", b)
	}

	// a single significant endpoint flags drift even when the overall
	// rate barely moved
	if d.RateDelta != -1 || !d.Drifted {
		t.Fatalf("endpoint shift should flag drift: %+v", d)
	}

	// union is sorted
	if d.Endpoints[0].Endpoint != "/a" || d.Endpoints[2].Endpoint != "/c" {
		t.Fatalf("endpoint order = %+v", d.Endpoints)
	}
}
