package domain

// FindingKind classifies one contract deviation
type FindingKind string

// Finding kinds, ordered roughly by how much a client would care
const (
	FindingMissing   FindingKind = "missing_field"
	FindingWrongType FindingKind = "wrong_type"
	FindingBadFormat FindingKind = "bad_format"
	FindingBadEnum   FindingKind = "bad_enum"
	FindingExtra     FindingKind = "extra_field"
	FindingNotObject FindingKind = "not_object"
	FindingNoSchema  FindingKind = "unknown_schema"
)

// Finding is one deviation at one path
type Finding struct {
	Path   string      `json:"path"`
	Kind   FindingKind `json:"kind"`
	Detail string      `json:"detail"`
}

// Outcome is the result of validating one response body
// Validation never short-circuits, so Findings lists every deviation
// Strict mirrors the schema's Closed flag: extras become fatal
type Outcome struct {
	Schema   string    `json:"schema"`
	Strict   bool      `json:"strict,omitempty"`
	Findings []Finding `json:"findings,omitempty"`
}

// Valid reports whether the body honors the contract
// Extra fields alone do not invalidate an open schema
func (o Outcome) Valid() bool {
	if o.Strict {
		return len(o.Findings) == 0
	}
	for _, f := range o.Findings {
		if f.Kind != FindingExtra {
			return false
		}
	}
	return true
}

// Fatal returns the findings that invalidate the body
func (o Outcome) Fatal() []Finding {
	var out []Finding
	for _, f := range o.Findings {
		if f.Kind != FindingExtra {
			out = append(out, f)
		}
	}
	return out
}

// Extras returns the informational extra-field findings
func (o Outcome) Extras() []Finding {
	var out []Finding
	for _, f := range o.Findings {
		if f.Kind == FindingExtra {
			out = append(out, f)
		}
	}
	return out
}

// HasKind reports whether any finding has the given kind
func (o Outcome) HasKind(k FindingKind) bool {
	for _, f := range o.Findings {
		if f.Kind == k {
			return true
		}
	}
	return false
}

// Messages renders findings as human readable strings for reports
func (o Outcome) Messages() []string {
	out := make([]string, 0, len(o.Findings))
	for _, f := range o.Findings {
		out = append(out, f.Path+": "+f.Detail)
	}
	return out
}
