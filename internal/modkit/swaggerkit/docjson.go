//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"apiwarden/internal/platform/config"

	docs "apiwarden/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

// mutators is the in process registry for spec mutators
var mutators []SpecMutator

// docReader is a seam so tests can inject invalid JSON without patching swagger
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator for swagger JSON
// call this from module init so it is wired automatically
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON serves swagger JSON and lets modules adjust details
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := docReader()

		var doc map[string]any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			http.Error(w, "doc parse error", http.StatusInternalServerError)
			return
		}

		// OAS3 base url lives in servers, not BasePath
		normalizeOAS(doc, "/api/v1")

		cfg := config.New().Prefix("CORE_API_")
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := doc["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		ensureSchema(doc, "ErrorResponse", errorEnvelopeSchema())
		for status, resp := range defaultResponses() {
			injectDefaultResponse(doc, status, resp)
		}

		for _, m := range mutators {
			m(doc)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// normalizeOAS lifts swagger 2 docs to OAS3 and pins a servers array
// swagger http ui can't render 3.1 yet, so downconvert that too
func normalizeOAS(doc map[string]any, url string) {
	if _, hasSwagger := doc["swagger"]; hasSwagger {
		doc["openapi"] = "3.0.3"
		delete(doc, "swagger")
	}
	if v, ok := doc["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{
			map[string]any{"url": url},
		}
	}
}

// ensureSchema registers a component schema when no generated one exists
func ensureSchema(doc map[string]any, name string, schema map[string]any) {
	comps, ok := doc["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		doc["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas[name]; !ok {
		schemas[name] = schema
	}
}

// errorEnvelopeSchema mirrors the runtime error wire, kept minimal so it
// does not drift from what handlers actually send
func errorEnvelopeSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// defaultResponses are injected into every operation that doesn't already
// document the status itself
func defaultResponses() map[string]map[string]any {
	return map[string]map[string]any{
		"400": errorResponseBody("Bad Request", 400, 8, "label is required"),
		"429": errorResponseBody("Too Many Requests", 429, 3, "rate limit exceeded for mutation, try again after 2026-01-01T00:00:30Z"),
		"500": errorResponseBody("Internal Server Error", 500, 1, "panic recovered"),
	}
}

func errorResponseBody(desc string, status, code int, msg string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      desc,
					"code":        code,
					"error":       msg,
					"request_id":  "579f33bf50b1/abc-000001",
				},
			},
		},
	}
}

// injectDefaultResponse walks every operation and adds resp under status
// unless the operation already documents it
func injectDefaultResponse(doc map[string]any, status string, resp map[string]any) {
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[status]; !exists {
				responses[status] = resp
			}
		}
	}
}
