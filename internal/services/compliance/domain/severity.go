package domain

import (
	"strings"

	ctdomain "apiwarden/internal/services/contracts/domain"
)

// severityRule is one row of the grading table
// Rules are evaluated top-down; the first match wins
type severityRule struct {
	name     string
	applies  func(endpoint string, o ctdomain.Outcome) bool
	severity Severity
}

var severityRules = []severityRule{
	{
		name: "auth and session endpoints",
		applies: func(endpoint string, _ ctdomain.Outcome) bool {
			return isAuthEndpoint(endpoint)
		},
		severity: SeverityCritical,
	},
	{
		// scoped to success shapes; a mangled error body grades medium
		name: "malformed or mistyped success fields",
		applies: func(_ string, o ctdomain.Outcome) bool {
			if o.Schema == ctdomain.ErrorSchema {
				return false
			}
			return o.HasKind(ctdomain.FindingWrongType) ||
				o.HasKind(ctdomain.FindingBadFormat) ||
				o.HasKind(ctdomain.FindingNotObject)
		},
		severity: SeverityHigh,
	},
	{
		name: "additive fields only",
		applies: func(_ string, o ctdomain.Outcome) bool {
			return len(o.Findings) > 0 && len(o.Fatal()) == 0
		},
		severity: SeverityLow,
	},
}

// SeverityFor grades a validation outcome for an endpoint
// Anything the table does not claim is medium
func SeverityFor(endpoint string, o ctdomain.Outcome) Severity {
	for _, r := range severityRules {
		if r.applies(endpoint, o) {
			return r.severity
		}
	}
	return SeverityMedium
}

// ImpactFor renders the client-facing impact statement for a grade
func ImpactFor(s Severity) string {
	switch s {
	case SeverityCritical:
		return "authentication or session integrity at risk"
	case SeverityHigh:
		return "clients may fail to parse required fields"
	case SeverityLow:
		return "additive change, monitor for contract growth"
	default:
		return "response deviates from the published contract"
	}
}

func isAuthEndpoint(endpoint string) bool {
	e := strings.ToLower(endpoint)
	return strings.Contains(e, "/auth") || strings.Contains(e, "/session") || strings.Contains(e, "/login")
}
