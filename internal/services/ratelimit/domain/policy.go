package domain

import (
	"encoding/json"
	"time"
)

// Endpoint classes with dedicated quotas; anything else falls through to default
const (
	ClassUpload  = "upload"
	ClassResults = "results"
	ClassAuth    = "auth"
	ClassDefault = "default"
)

// Policy fixes the quota for one endpoint class
type Policy struct {
	Window      time.Duration `json:"window_ms" swaggertype:"integer" example:"3600000"`
	MaxRequests int64         `json:"max_requests" example:"60"`
}

// MarshalJSON reports the window in milliseconds, not duration ticks
func (p Policy) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		WindowMs    int64 `json:"window_ms"`
		MaxRequests int64 `json:"max_requests"`
	}{WindowMs: p.Window.Milliseconds(), MaxRequests: p.MaxRequests})
}

// Quotas are deliberately static; changing them is a deploy, not a config flip
var policies = map[string]Policy{
	ClassUpload:  {Window: time.Hour, MaxRequests: 60},
	ClassResults: {Window: time.Hour, MaxRequests: 100},
	ClassAuth:    {Window: 15 * time.Minute, MaxRequests: 10},
	ClassDefault: {Window: time.Hour, MaxRequests: 120},
}

// PolicyFor resolves the policy for a class
// Unknown classes resolve to the default policy, never an error
func PolicyFor(class string) Policy {
	if p, ok := policies[class]; ok {
		return p
	}
	return policies[ClassDefault]
}

// Policies returns a copy of the policy table keyed by class
func Policies() map[string]Policy {
	out := make(map[string]Policy, len(policies))
	for c, p := range policies {
		out[c] = p
	}
	return out
}
