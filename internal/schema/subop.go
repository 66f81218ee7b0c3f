package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sketchflow/sketchflow/internal/canvas"
)

// SubOpType discriminates batch sub-operation variants.
type SubOpType string

const (
	SubOpCreate SubOpType = "create"
	SubOpUpdate SubOpType = "update"
	SubOpDelete SubOpType = "delete"
)

// SubOperation is one create/update/delete unit inside a batch
// operation. Exactly the fields of the discriminated variant are
// populated: Create for "create", ShapeID+Updates for "update",
// ShapeID for "delete".
type SubOperation struct {
	Type    SubOpType
	Create  *ShapeDescriptor
	ShapeID string
	Updates *canvas.Patch
}

// UnmarshalJSON decodes the discriminated union, rejecting payloads
// whose fields do not match the declared variant.
func (s *SubOperation) UnmarshalJSON(data []byte) error {
	var head struct {
		Type SubOpType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	strict := func(dst any) error {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(dst)
	}

	switch head.Type {
	case SubOpCreate:
		var payload struct {
			Type  SubOpType        `json:"type"`
			Shape *ShapeDescriptor `json:"shape"`
		}
		if err := strict(&payload); err != nil {
			return fmt.Errorf("create sub-operation: %w", err)
		}
		if payload.Shape == nil {
			return fmt.Errorf("create sub-operation: shape descriptor is required")
		}
		*s = SubOperation{Type: SubOpCreate, Create: payload.Shape}
	case SubOpUpdate:
		var payload struct {
			Type    SubOpType     `json:"type"`
			ShapeID string        `json:"shapeId"`
			Updates *canvas.Patch `json:"updates"`
		}
		if err := strict(&payload); err != nil {
			return fmt.Errorf("update sub-operation: %w", err)
		}
		if payload.ShapeID == "" {
			return fmt.Errorf("update sub-operation: shapeId is required")
		}
		if payload.Updates == nil {
			return fmt.Errorf("update sub-operation: updates map is required")
		}
		*s = SubOperation{Type: SubOpUpdate, ShapeID: payload.ShapeID, Updates: payload.Updates}
	case SubOpDelete:
		var payload struct {
			Type    SubOpType `json:"type"`
			ShapeID string    `json:"shapeId"`
		}
		if err := strict(&payload); err != nil {
			return fmt.Errorf("delete sub-operation: %w", err)
		}
		if payload.ShapeID == "" {
			return fmt.Errorf("delete sub-operation: shapeId is required")
		}
		*s = SubOperation{Type: SubOpDelete, ShapeID: payload.ShapeID}
	default:
		return fmt.Errorf("unknown sub-operation type %q", head.Type)
	}
	return nil
}

// MarshalJSON renders the populated variant.
func (s SubOperation) MarshalJSON() ([]byte, error) {
	switch s.Type {
	case SubOpCreate:
		return json.Marshal(struct {
			Type  SubOpType        `json:"type"`
			Shape *ShapeDescriptor `json:"shape"`
		}{s.Type, s.Create})
	case SubOpUpdate:
		return json.Marshal(struct {
			Type    SubOpType     `json:"type"`
			ShapeID string        `json:"shapeId"`
			Updates *canvas.Patch `json:"updates"`
		}{s.Type, s.ShapeID, s.Updates})
	case SubOpDelete:
		return json.Marshal(struct {
			Type    SubOpType `json:"type"`
			ShapeID string    `json:"shapeId"`
		}{s.Type, s.ShapeID})
	default:
		return nil, fmt.Errorf("unknown sub-operation type %q", s.Type)
	}
}
