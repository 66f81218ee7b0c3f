// Package schema declares the argument contract for every canvas
// operation the planner may emit, and validates proposed arguments
// before any mutation is dispatched.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Canvas extents and value bounds shared by every compiled schema.
const (
	MaxCoord      = 4096.0
	MaxDimension  = 4096.0
	MaxRotation   = 360.0
	MinFontSize   = 8.0
	MaxFontSize   = 512.0
	MaxGridSide   = 50
	MaxRowCount   = 100
	MaxBatchScale = 10.0
)

// Spec is the declarative contract for one operation: its name, a short
// description published to the planner, and the compiled JSON Schema its
// arguments must satisfy.
type Spec struct {
	Name     string
	Doc      string
	Raw      json.RawMessage
	compiled *jsonschema.Schema
}

// FieldError reports a schema violation scoped to the offending field.
type FieldError struct {
	Op      string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	field := e.Field
	if field == "" {
		field = "(arguments)"
	}
	return fmt.Sprintf("%s: field %q: %s", e.Op, field, e.Message)
}

func mustSpec(name, doc, schemaJSON string) *Spec {
	compiled, err := jsonschema.CompileString(name+".schema.json", schemaJSON)
	if err != nil {
		panic(fmt.Sprintf("schema: compile %s: %v", name, err))
	}
	return &Spec{
		Name:     name,
		Doc:      doc,
		Raw:      json.RawMessage(schemaJSON),
		compiled: compiled,
	}
}

// Validate checks raw arguments against the operation contract. The
// arguments must be a JSON object whose redundant "operation" field
// equals the spec name. Validation never mutates its input; validating
// the returned value again yields the identical result.
func (s *Spec) Validate(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &FieldError{Op: s.Name, Message: fmt.Sprintf("arguments are not valid JSON: %v", err)}
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, &FieldError{Op: s.Name, Message: "arguments must be a JSON object"}
	}
	if declared, _ := obj["operation"].(string); declared != s.Name {
		return nil, &FieldError{
			Op:      s.Name,
			Field:   "/operation",
			Message: fmt.Sprintf("declared operation %q does not match %q", declared, s.Name),
		}
	}
	if err := s.compiled.Validate(decoded); err != nil {
		return nil, fieldErrorFrom(s.Name, err)
	}
	return raw, nil
}

// fieldErrorFrom converts a jsonschema validation error into a
// field-scoped error, picking the most specific failing location.
func fieldErrorFrom(op string, err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &FieldError{Op: op, Message: err.Error()}
	}
	leaf := deepestCause(ve)
	return &FieldError{
		Op:      op,
		Field:   leaf.InstanceLocation,
		Message: leaf.Message,
	}
}

func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	best := ve
	var walk func(v *jsonschema.ValidationError)
	walk = func(v *jsonschema.ValidationError) {
		if len(v.InstanceLocation) > len(best.InstanceLocation) ||
			(len(v.InstanceLocation) == len(best.InstanceLocation) && len(v.Causes) == 0 && len(best.Causes) > 0) {
			best = v
		}
		for _, cause := range v.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return best
}

// StripOperation removes the redundant discriminator field from validated
// arguments before they are handed to a canvas action.
func StripOperation(raw json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("strip operation field: %w", err)
	}
	delete(fields, "operation")
	stripped, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("strip operation field: %w", err)
	}
	return stripped, nil
}
