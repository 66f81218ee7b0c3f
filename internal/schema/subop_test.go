package schema

import (
	"encoding/json"
	"testing"
)

func TestSubOperationDecodeVariants(t *testing.T) {
	var create SubOperation
	if err := json.Unmarshal([]byte(`{"type":"create","shape":{"shape":"rectangle","x":0,"y":0,"width":1,"height":1}}`), &create); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if create.Type != SubOpCreate || create.Create == nil {
		t.Fatalf("create variant not populated: %+v", create)
	}

	var update SubOperation
	if err := json.Unmarshal([]byte(`{"type":"update","shapeId":"abc","updates":{"fill":null}}`), &update); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if update.Type != SubOpUpdate || update.ShapeID != "abc" || update.Updates == nil {
		t.Fatalf("update variant not populated: %+v", update)
	}
	if !update.Updates.Fill.Set || update.Updates.Fill.Valid {
		t.Fatal("explicit null fill must be Set and not Valid")
	}

	var del SubOperation
	if err := json.Unmarshal([]byte(`{"type":"delete","shapeId":"def"}`), &del); err != nil {
		t.Fatalf("decode delete: %v", err)
	}
	if del.Type != SubOpDelete || del.ShapeID != "def" {
		t.Fatalf("delete variant not populated: %+v", del)
	}
}

func TestSubOperationRejectsMismatchedPayload(t *testing.T) {
	cases := []string{
		`{"type":"update","shape":{"shape":"circle","centerX":1,"centerY":1,"radius":1}}`,
		`{"type":"delete","updates":{"fill":"#fff"}}`,
		`{"type":"create","shapeId":"abc"}`,
		`{"type":"merge","shapeId":"abc"}`,
	}
	for _, raw := range cases {
		var sub SubOperation
		if err := json.Unmarshal([]byte(raw), &sub); err == nil {
			t.Fatalf("payload %s must be rejected", raw)
		}
	}
}
