// Package validation checks documents against JSON schemas.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema is a compiled JSON schema that can be reused across documents.
type Schema struct {
	schema *gojsonschema.Schema
}

// Compile parses a schema given either as raw JSON bytes or as a decoded Go value.
func Compile(schema interface{}) (*Schema, error) {
	var loader gojsonschema.JSONLoader
	switch s := schema.(type) {
	case []byte:
		loader = gojsonschema.NewBytesLoader(s)
	case string:
		loader = gojsonschema.NewStringLoader(s)
	default:
		loader = gojsonschema.NewGoLoader(s)
	}

	compiled, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: compiled}, nil
}

// MustCompile is Compile for schemas embedded at build time.
func MustCompile(schema interface{}) *Schema {
	s, err := Compile(schema)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateBytes validates a raw JSON document.
func (s *Schema) ValidateBytes(document []byte) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewBytesLoader(document))
}

// ValidateValue validates an already decoded document.
func (s *Schema) ValidateValue(document interface{}) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewGoLoader(document))
}

func (s *Schema) validate(document gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := s.schema.Validate(document)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// ValidateInput validates a decoded document against a schema given as a Go value.
func ValidateInput(input interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}, nil
	}
	s, err := Compile(schema)
	if err != nil {
		return nil, err
	}
	return s.ValidateValue(input)
}

// Summary joins the errors into a single line suitable for a job failure message.
func (r *ValidationResult) Summary() string {
	if r == nil || r.Valid {
		return ""
	}
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}
