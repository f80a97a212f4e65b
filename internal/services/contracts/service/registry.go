// Package service contains contract schema lookup and response validation
package service

import (
	"strings"

	"github.com/google/uuid"

	"apiwarden/internal/services/contracts/domain"
)

// route binds a method and a path pattern to a schema name
// Pattern segments of "{id}" match any identifier-looking segment
type route struct {
	method  string
	pattern []string
	schema  string
}

// Built-in contracts for the upstream analysis API
// These mirror the published client-facing response shapes
func builtinSchemas() map[string]domain.ResponseSchema {
	return map[string]domain.ResponseSchema{
		"upload_receipt": {
			Name: "upload_receipt",
			Fields: domain.Schema{
				"id":          {Type: domain.TypeString, Required: true, Format: domain.FormatUUID},
				"filename":    {Type: domain.TypeString, Required: true},
				"size":        {Type: domain.TypeInteger, Required: true},
				"status":      {Type: domain.TypeString, Required: true, Enum: []string{"queued", "processing", "completed", "failed"}},
				"uploaded_at": {Type: domain.TypeString, Format: domain.FormatTimestamp},
			},
		},
		"analysis_results": {
			Name: "analysis_results",
			Fields: domain.Schema{
				"id":     {Type: domain.TypeString, Required: true, Format: domain.FormatUUID},
				"status": {Type: domain.TypeString, Required: true, Enum: []string{"queued", "processing", "completed", "failed"}},
				"results": {Type: domain.TypeArray, Items: &domain.FieldSpec{
					Type: domain.TypeObject,
					Fields: domain.Schema{
						"check":   {Type: domain.TypeString, Required: true},
						"passed":  {Type: domain.TypeBoolean, Required: true},
						"details": {Type: domain.TypeString},
					},
				}},
				"completed_at": {Type: domain.TypeString, Format: domain.FormatTimestamp},
			},
		},
		"session": {
			Name: "session",
			Fields: domain.Schema{
				"token":      {Type: domain.TypeString, Required: true},
				"expires_at": {Type: domain.TypeString, Required: true, Format: domain.FormatTimestamp},
				"user": {Type: domain.TypeObject, Required: true, Fields: domain.Schema{
					"id":    {Type: domain.TypeString, Required: true, Format: domain.FormatUUID},
					"email": {Type: domain.TypeString, Required: true},
				}},
			},
		},
		// health is closed: a drifting health endpoint is an early smoke signal
		"health": {
			Name:   "health",
			Closed: true,
			Fields: domain.Schema{
				"status":  {Type: domain.TypeString, Required: true, Enum: []string{"ok", "degraded"}},
				"version": {Type: domain.TypeString},
			},
		},
	}
}

func builtinRoutes() []route {
	return []route{
		{method: "POST", pattern: []string{"files", "upload"}, schema: "upload_receipt"},
		{method: "GET", pattern: []string{"files", "{id}", "results"}, schema: "analysis_results"},
		{method: "POST", pattern: []string{"auth", "session"}, schema: "session"},
		{method: "GET", pattern: []string{"health"}, schema: "health"},
	}
}

// SchemaNameFor resolves the schema for a method and request path
// Returns "" when the endpoint carries no contract
func (v *Validator) SchemaNameFor(method, endpoint string) string {
	segs := splitPath(endpoint)
	for _, rt := range v.routes {
		if rt.method != strings.ToUpper(method) {
			continue
		}
		if matchPattern(rt.pattern, segs) {
			return rt.schema
		}
	}
	return ""
}

// SchemaFor returns a registered schema by name
func (v *Validator) SchemaFor(name string) (domain.ResponseSchema, bool) {
	s, ok := v.schemas[name]
	return s, ok
}

// SchemaNames returns all registered schema names, unsorted
func (v *Validator) SchemaNames() []string {
	out := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		out = append(out, name)
	}
	return out
}

// Register adds or replaces a schema and optionally a route to it
// pattern is a slash path like "files/{id}/results"; empty means no route
func (v *Validator) Register(s domain.ResponseSchema, method, pattern string) {
	v.schemas[s.Name] = s
	if pattern != "" {
		v.routes = append(v.routes, route{
			method:  strings.ToUpper(method),
			pattern: splitPath(pattern),
			schema:  s.Name,
		})
	}
}

// splitPath normalizes a request path into match segments
// A leading api segment and version segments are routing noise, not contract
func splitPath(p string) []string {
	segs := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	for len(segs) > 0 && (segs[0] == "api" || isVersionSegment(segs[0])) {
		segs = segs[1:]
	}
	return segs
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func matchPattern(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}
	for i, p := range pattern {
		if p == "{id}" {
			if !isIdentifierSegment(segs[i]) {
				return false
			}
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}

// isIdentifierSegment accepts uuids and plain numeric ids
func isIdentifierSegment(s string) bool {
	if s == "" {
		return false
	}
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
