package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"apiwarden/internal/platform/net/http/bind"
	"apiwarden/internal/services/contracts/domain"
)

// Service is the validation surface the compliance monitor consumes
type Service interface {
	SchemaNameFor(method, endpoint string) string
	SchemaFor(name string) (domain.ResponseSchema, bool)
	SchemaNames() []string
	ValidateSuccess(schemaName string, body any) domain.Outcome
	ValidateError(body any) domain.Outcome
}

// Validator checks decoded response bodies against registered schemas
type Validator struct {
	schemas map[string]domain.ResponseSchema
	routes  []route
	v       *validator.Validate
}

// New constructs a validator preloaded with the built-in contracts
func New() *Validator {
	return &Validator{
		schemas: builtinSchemas(),
		routes:  builtinRoutes(),
		v:       bind.Init().Validator,
	}
}

// ValidateSuccess checks a 2xx body against the named schema
// An empty name means no contract covers the endpoint and stays clean;
// a non-empty name with no registered schema is itself a violation
func (s *Validator) ValidateSuccess(schemaName string, body any) domain.Outcome {
	if schemaName == "" {
		return domain.Outcome{}
	}
	sch, ok := s.schemas[schemaName]
	if !ok {
		return domain.Outcome{Schema: schemaName, Findings: []domain.Finding{{
			Path:   "$",
			Kind:   domain.FindingNoSchema,
			Detail: fmt.Sprintf("no schema registered under %q", schemaName),
		}}}
	}
	out := domain.Outcome{Schema: schemaName, Strict: sch.Closed}

	obj, ok := body.(map[string]any)
	if !ok {
		out.Findings = []domain.Finding{{
			Path:   "$",
			Kind:   domain.FindingNotObject,
			Detail: fmt.Sprintf("expected object, got %s", jsonTypeName(body)),
		}}
		return out
	}
	out.Findings = s.checkObject("$", obj, sch.Fields)
	return out
}

// ValidateError checks a non-2xx body against the error contract
// Required: error (non-empty string) and code (member of the closed code set)
func (s *Validator) ValidateError(body any) domain.Outcome {
	out := domain.Outcome{Schema: domain.ErrorSchema}

	obj, ok := body.(map[string]any)
	if !ok {
		out.Findings = []domain.Finding{{
			Path:   "$",
			Kind:   domain.FindingNotObject,
			Detail: fmt.Sprintf("expected object, got %s", jsonTypeName(body)),
		}}
		return out
	}

	var fs []domain.Finding

	if v, present := obj["error"]; !present || v == nil {
		fs = append(fs, domain.Finding{Path: "$.error", Kind: domain.FindingMissing, Detail: "required field is missing"})
	} else if msg, ok := v.(string); !ok {
		fs = append(fs, wrongType("$.error", domain.TypeString, v))
	} else if msg == "" {
		fs = append(fs, domain.Finding{Path: "$.error", Kind: domain.FindingBadFormat, Detail: "error message is empty"})
	}

	if v, present := obj["code"]; !present || v == nil {
		fs = append(fs, domain.Finding{Path: "$.code", Kind: domain.FindingMissing, Detail: "required field is missing"})
	} else if code, ok := v.(string); !ok {
		fs = append(fs, wrongType("$.code", domain.TypeString, v))
	} else if !domain.KnownErrorCode(code) {
		fs = append(fs, domain.Finding{
			Path:   "$.code",
			Kind:   domain.FindingBadEnum,
			Detail: fmt.Sprintf("unknown error code %q", code),
		})
	}

	if v, present := obj["details"]; present && v != nil {
		if _, ok := v.(map[string]any); !ok {
			fs = append(fs, wrongType("$.details", domain.TypeObject, v))
		}
	}
	if v, present := obj["timestamp"]; present && v != nil {
		if ts, ok := v.(string); !ok {
			fs = append(fs, wrongType("$.timestamp", domain.TypeString, v))
		} else if _, err := time.Parse(time.RFC3339, ts); err != nil {
			fs = append(fs, domain.Finding{Path: "$.timestamp", Kind: domain.FindingBadFormat, Detail: "not an RFC3339 timestamp"})
		}
	}

	known := map[string]struct{}{"error": {}, "code": {}, "details": {}, "timestamp": {}}
	fs = append(fs, extraFindings("$", obj, func(name string) bool {
		_, ok := known[name]
		return ok
	})...)

	out.Findings = fs
	return out
}

func (s *Validator) checkObject(path string, obj map[string]any, schema domain.Schema) []domain.Finding {
	var fs []domain.Finding

	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := schema[name]
		p := path + "." + name
		v, present := obj[name]
		if !present || v == nil {
			// json null and absence read the same to clients
			if spec.Required {
				fs = append(fs, domain.Finding{Path: p, Kind: domain.FindingMissing, Detail: "required field is missing"})
			}
			continue
		}
		fs = append(fs, s.checkValue(p, v, spec)...)
	}

	fs = append(fs, extraFindings(path, obj, func(name string) bool {
		_, ok := schema[name]
		return ok
	})...)
	return fs
}

func (s *Validator) checkValue(path string, v any, spec domain.FieldSpec) []domain.Finding {
	switch spec.Type {
	case domain.TypeString:
		str, ok := v.(string)
		if !ok {
			return []domain.Finding{wrongType(path, spec.Type, v)}
		}
		return s.checkString(path, str, spec)

	case domain.TypeNumber:
		if _, ok := v.(float64); !ok {
			return []domain.Finding{wrongType(path, spec.Type, v)}
		}

	case domain.TypeInteger:
		f, ok := v.(float64)
		if !ok {
			return []domain.Finding{wrongType(path, spec.Type, v)}
		}
		if f != math.Trunc(f) {
			return []domain.Finding{{Path: path, Kind: domain.FindingWrongType, Detail: "expected integer, got fractional number"}}
		}

	case domain.TypeBoolean:
		if _, ok := v.(bool); !ok {
			return []domain.Finding{wrongType(path, spec.Type, v)}
		}

	case domain.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return []domain.Finding{wrongType(path, spec.Type, v)}
		}
		return s.checkObject(path, obj, spec.Fields)

	case domain.TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return []domain.Finding{wrongType(path, spec.Type, v)}
		}
		if spec.Items == nil {
			return nil
		}
		var fs []domain.Finding
		for i, el := range arr {
			fs = append(fs, s.checkValue(fmt.Sprintf("%s[%d]", path, i), el, *spec.Items)...)
		}
		return fs
	}
	return nil
}

func (s *Validator) checkString(path, str string, spec domain.FieldSpec) []domain.Finding {
	var fs []domain.Finding

	switch spec.Format {
	case domain.FormatUUID:
		if err := s.v.Var(str, "uuid4"); err != nil {
			fs = append(fs, domain.Finding{Path: path, Kind: domain.FindingBadFormat, Detail: fmt.Sprintf("%q is not a uuid", str)})
		}
	case domain.FormatTimestamp:
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			fs = append(fs, domain.Finding{Path: path, Kind: domain.FindingBadFormat, Detail: fmt.Sprintf("%q is not an RFC3339 timestamp", str)})
		}
	}

	if len(spec.Enum) > 0 {
		if err := s.v.Var(str, "oneof="+strings.Join(spec.Enum, " ")); err != nil {
			fs = append(fs, domain.Finding{
				Path:   path,
				Kind:   domain.FindingBadEnum,
				Detail: fmt.Sprintf("%q not in [%s]", str, strings.Join(spec.Enum, " ")),
			})
		}
	}
	return fs
}

// extraFindings reports object members outside the contract in stable order
func extraFindings(path string, obj map[string]any, known func(string) bool) []domain.Finding {
	var extras []string
	for name := range obj {
		if !known(name) {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)

	fs := make([]domain.Finding, 0, len(extras))
	for _, name := range extras {
		fs = append(fs, domain.Finding{
			Path:   path + "." + name,
			Kind:   domain.FindingExtra,
			Detail: "field not in contract",
		})
	}
	return fs
}

func wrongType(path string, want domain.FieldType, got any) domain.Finding {
	return domain.Finding{
		Path:   path,
		Kind:   domain.FindingWrongType,
		Detail: fmt.Sprintf("expected %s, got %s", want, jsonTypeName(got)),
	}
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
