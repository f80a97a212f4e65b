// Package domain holds the contract schema model and validation outcomes
package domain

// FieldType names a JSON value type as seen after decoding
type FieldType string

// Field types cover the JSON surface; integer is number with no fraction
const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
)

// Format names a leaf format constraint applied after the type check
type Format string

// Leaf formats
const (
	FormatNone      Format = ""
	FormatUUID      Format = "uuid"
	FormatTimestamp Format = "timestamp"
)

// FieldSpec declares one expected field of a response body
// Fields describes members when Type is object; Items the element when array
type FieldSpec struct {
	Type     FieldType
	Required bool
	Format   Format
	Enum     []string
	Fields   Schema
	Items    *FieldSpec
}

// Schema maps field names to their specs
type Schema map[string]FieldSpec

// ResponseSchema is a named contract for one endpoint's success body
// Closed makes unexpected fields fatal instead of informational
type ResponseSchema struct {
	Name   string
	Fields Schema
	Closed bool
}
