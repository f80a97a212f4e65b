// Package domain holds compliance monitoring types and report math
package domain

import "time"

// Severity grades a contract violation by client impact
type Severity string

// Severities, lowest to highest
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists the grades lowest first, for stable report ordering
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Violation is one observed contract deviation
type Violation struct {
	ID         string    `json:"id"`
	Endpoint   string    `json:"endpoint"`
	Method     string    `json:"method"`
	Schema     string    `json:"schema"`
	Status     int       `json:"status"`
	Severity   Severity  `json:"severity"`
	Impact     string    `json:"impact"`
	Details    []string  `json:"details"`
	DetectedAt time.Time `json:"detected_at"`
}

// Metric is one observed request outcome, violation attached when found
// Success tracks contract compliance, not http status: a well-formed 422
// error body is a compliant response
type Metric struct {
	Endpoint     string        `json:"endpoint"`
	Method       string        `json:"method"`
	Status       int           `json:"status"`
	Success      bool          `json:"success"`
	ResponseTime time.Duration `json:"response_time_ms" swaggertype:"integer"`
	RecordedAt   time.Time     `json:"recorded_at"`
	Violation    *Violation    `json:"violation,omitempty"`
}

// EndpointStat aggregates one endpoint's metrics inside a report
type EndpointStat struct {
	Endpoint          string  `json:"endpoint"`
	Requests          int64   `json:"requests"`
	Compliant         int64   `json:"compliant"`
	Violations        int64   `json:"violations"`
	ComplianceRate    float64 `json:"compliance_rate"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
}

// Report is a point-in-time aggregation of the metric log
type Report struct {
	GeneratedAt       time.Time          `json:"generated_at"`
	TotalRequests     int64              `json:"total_requests"`
	CompliantRequests int64              `json:"compliant_requests"`
	ComplianceRate    float64            `json:"compliance_rate"`
	AvgResponseTimeMs float64            `json:"avg_response_time_ms"`
	Violations        []Violation        `json:"violations"`
	Endpoints         []EndpointStat     `json:"endpoints"`
	Summary           map[Severity]int64 `json:"summary"`
}
