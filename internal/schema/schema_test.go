package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func mustLookup(t *testing.T, name string) *Spec {
	t.Helper()
	spec, ok := Lookup(name)
	if !ok {
		t.Fatalf("operation %q not found", name)
	}
	return spec
}

func TestValidateAcceptsWellFormedArguments(t *testing.T) {
	cases := map[string]string{
		OpCreateRectangle: `{"operation":"create_rectangle","x":10,"y":20,"width":100,"height":50,"fill":"#ff0000"}`,
		OpCreateCircle:    `{"operation":"create_circle","centerX":200,"centerY":200,"radius":40}`,
		OpCreateText:      `{"operation":"create_text","x":10,"y":10,"text":"hello","fontSize":24}`,
		OpCreateLine:      `{"operation":"create_line","x1":0,"y1":0,"x2":100,"y2":100}`,
		OpMoveShape:       `{"operation":"move_shape","shapeId":"abc","x":5,"y":5}`,
		OpResizeShape:     `{"operation":"resize_shape","shapeId":"abc","width":10,"height":10}`,
		OpRotateShape:     `{"operation":"rotate_shape","shapeId":"abc","rotation":45}`,
		OpDeleteShape:     `{"operation":"delete_shape","shapeId":"abc"}`,
		OpClearCanvas:     `{"operation":"clear_canvas"}`,
		OpCreateGrid:      `{"operation":"create_grid","rows":3,"columns":3,"shape":"circle"}`,
		OpCreateRow:       `{"operation":"create_row","count":5}`,
		OpCreateCircleRow: `{"operation":"create_circle_row","count":4,"radius":20}`,
		OpCreateLoginForm: `{"operation":"create_login_form"}`,
		OpCreateNavbar:    `{"operation":"create_navbar","width":1200}`,
		OpCreateCard:      `{"operation":"create_card","title":"Welcome"}`,
		OpBatchTransform:  `{"operation":"batch_transform","shapeIds":["a","b"],"deltaX":10}`,
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			spec := mustLookup(t, name)
			if _, err := spec.Validate(json.RawMessage(args)); err != nil {
				t.Fatalf("Validate(%s) = %v, want nil", args, err)
			}
		})
	}
}

func TestValidateRejectsUnknownTopLevelField(t *testing.T) {
	spec := mustLookup(t, OpCreateRectangle)
	args := `{"operation":"create_rectangle","x":1,"y":1,"width":1,"height":1,"bogus":true}`
	if _, err := spec.Validate(json.RawMessage(args)); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestValidateRejectsOperationMismatch(t *testing.T) {
	spec := mustLookup(t, OpDeleteShape)
	args := `{"operation":"move_shape","shapeId":"abc"}`
	_, err := spec.Validate(json.RawMessage(args))
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fieldErr.Field != "/operation" {
		t.Fatalf("Field = %q, want /operation", fieldErr.Field)
	}
}

func TestValidateReportsOffendingFieldPath(t *testing.T) {
	spec := mustLookup(t, OpCreateRectangle)
	args := `{"operation":"create_rectangle","x":1,"y":1,"width":-5,"height":1}`
	_, err := spec.Validate(json.RawMessage(args))
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if !strings.Contains(fieldErr.Field, "width") {
		t.Fatalf("Field = %q, want it to name width", fieldErr.Field)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	spec := mustLookup(t, OpCreateCircle)
	args := json.RawMessage(`{"operation":"create_circle","centerX":50,"centerY":50,"radius":25}`)
	first, err := spec.Validate(args)
	if err != nil {
		t.Fatalf("first validation: %v", err)
	}
	second, err := spec.Validate(first)
	if err != nil {
		t.Fatalf("second validation: %v", err)
	}
	if string(first) != string(second) || string(first) != string(args) {
		t.Fatal("validation must return its input unchanged")
	}
}

func TestPartialUpdateAcceptsEverySingleField(t *testing.T) {
	spec := mustLookup(t, OpUpdateShape)
	fields := map[string]string{
		"x": "10", "y": "10", "width": "10", "height": "10",
		"x2": "10", "y2": "10",
		"fill": `"#00ff00"`, "stroke": `"blue"`, "strokeWidth": "3",
		"rotation": "90", "opacity": "0.5",
		"text": `"hi"`, "fontSize": "12",
	}
	for field, value := range fields {
		t.Run(field, func(t *testing.T) {
			args := fmt.Sprintf(`{"operation":"update_shape","shapeId":"abc","updates":{%q:%s}}`, field, value)
			if _, err := spec.Validate(json.RawMessage(args)); err != nil {
				t.Fatalf("single-field update %s rejected: %v", field, err)
			}
		})
	}
}

func TestPartialUpdateAcceptsEmptyAndNull(t *testing.T) {
	spec := mustLookup(t, OpUpdateShape)

	empty := `{"operation":"update_shape","shapeId":"abc","updates":{}}`
	if _, err := spec.Validate(json.RawMessage(empty)); err != nil {
		t.Fatalf("empty updates rejected: %v", err)
	}

	withNull := `{"operation":"update_shape","shapeId":"abc","updates":{"fill":null}}`
	if _, err := spec.Validate(json.RawMessage(withNull)); err != nil {
		t.Fatalf("explicit null rejected: %v", err)
	}
}

func TestPartialUpdateRejectsUnknownField(t *testing.T) {
	spec := mustLookup(t, OpUpdateShape)
	args := `{"operation":"update_shape","shapeId":"abc","updates":{"glow":true}}`
	if _, err := spec.Validate(json.RawMessage(args)); err == nil {
		t.Fatal("unknown update field must be rejected")
	}
}

func TestBatchMixedSubOperationsValidate(t *testing.T) {
	spec := mustLookup(t, OpBatchOperations)
	args := `{"operation":"batch_operations","operations":[
		{"type":"create","shape":{"shape":"rectangle","x":0,"y":0,"width":10,"height":10}},
		{"type":"update","shapeId":"abc","updates":{"fill":"#123456"}},
		{"type":"delete","shapeId":"def"}
	]}`
	if _, err := spec.Validate(json.RawMessage(args)); err != nil {
		t.Fatalf("mixed batch rejected: %v", err)
	}
}

func TestBatchDiscriminatorEnforced(t *testing.T) {
	spec := mustLookup(t, OpBatchOperations)
	// An update carrying a create-shaped payload must fail.
	args := `{"operation":"batch_operations","operations":[
		{"type":"update","shape":{"shape":"circle","centerX":5,"centerY":5,"radius":2}}
	]}`
	if _, err := spec.Validate(json.RawMessage(args)); err == nil {
		t.Fatal("update sub-operation with create payload must be rejected")
	}
}

func TestBatchTransformRequiresOneTransform(t *testing.T) {
	spec := mustLookup(t, OpBatchTransform)
	args := `{"operation":"batch_transform","shapeIds":["a"]}`
	if _, err := spec.Validate(json.RawMessage(args)); err == nil {
		t.Fatal("batch_transform with no transform field must be rejected")
	}
}

func TestStripOperation(t *testing.T) {
	stripped, err := StripOperation(json.RawMessage(`{"operation":"delete_shape","shapeId":"abc"}`))
	if err != nil {
		t.Fatalf("StripOperation: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(stripped, &fields); err != nil {
		t.Fatalf("decode stripped: %v", err)
	}
	if _, ok := fields["operation"]; ok {
		t.Fatal("operation field survived stripping")
	}
	if fields["shapeId"] != "abc" {
		t.Fatalf("shapeId = %v, want abc", fields["shapeId"])
	}
}

func TestAllCoversVocabulary(t *testing.T) {
	all := All()
	if len(all) != 19 {
		t.Fatalf("len(All()) = %d, want 19", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Fatalf("All() not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}
