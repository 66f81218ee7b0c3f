package schema

import (
	"fmt"
	"sort"
)

// Operation names form the closed vocabulary exposed to the planner.
const (
	OpCreateRectangle    = "create_rectangle"
	OpCreateCircle       = "create_circle"
	OpCreateText         = "create_text"
	OpCreateLine         = "create_line"
	OpUpdateShape        = "update_shape"
	OpMoveShape          = "move_shape"
	OpResizeShape        = "resize_shape"
	OpRotateShape        = "rotate_shape"
	OpDeleteShape        = "delete_shape"
	OpBatchOperations    = "batch_operations"
	OpBatchTransform     = "batch_transform"
	OpClearCanvas        = "clear_canvas"
	OpCreateGrid         = "create_grid"
	OpCreateRow          = "create_row"
	OpCreateCircleRow    = "create_circle_row"
	OpCreateRandomShapes = "create_random_shapes"
	OpCreateLoginForm    = "create_login_form"
	OpCreateNavbar       = "create_navbar"
	OpCreateCard         = "create_card"
)

// Shared schema fragments. Every fragment is a complete JSON Schema value
// so it can be embedded directly into operation documents.
var (
	fragCoord    = fmt.Sprintf(`{"type":"number","minimum":0,"maximum":%g}`, MaxCoord)
	fragDelta    = fmt.Sprintf(`{"type":"number","minimum":%g,"maximum":%g}`, -MaxCoord, MaxCoord)
	fragSize     = fmt.Sprintf(`{"type":"number","exclusiveMinimum":0,"maximum":%g}`, MaxDimension)
	fragColor    = `{"type":"string","pattern":"^(#[0-9a-fA-F]{3}([0-9a-fA-F]{3})?|[a-zA-Z]+)$"}`
	fragRotation = fmt.Sprintf(`{"type":"number","minimum":0,"maximum":%g}`, MaxRotation)
	fragRelRot   = fmt.Sprintf(`{"type":"number","minimum":%g,"maximum":%g}`, -MaxRotation, MaxRotation)
	fragOpacity  = `{"type":"number","minimum":0,"maximum":1}`
	fragFontSize = fmt.Sprintf(`{"type":"number","minimum":%g,"maximum":%g}`, MinFontSize, MaxFontSize)
	fragShapeID  = `{"type":"string","minLength":1}`
	fragText     = `{"type":"string","minLength":1,"maxLength":2048}`
)

func nullable(frag string) string {
	return `{"anyOf":[{"type":"null"},` + frag + `]}`
}

// fragUpdates describes a partial update map: any subset of mutable
// fields, including the empty subset; explicit null clears a field.
var fragUpdates = fmt.Sprintf(`{
	"type": "object",
	"properties": {
		"x": %s, "y": %s,
		"width": %s, "height": %s,
		"x2": %s, "y2": %s,
		"fill": %s, "stroke": %s,
		"strokeWidth": %s,
		"rotation": %s, "opacity": %s,
		"text": %s, "fontSize": %s
	},
	"additionalProperties": false
}`,
	nullable(fragCoord), nullable(fragCoord),
	nullable(fragSize), nullable(fragSize),
	nullable(fragCoord), nullable(fragCoord),
	nullable(fragColor), nullable(fragColor),
	nullable(`{"type":"number","minimum":0,"maximum":64}`),
	nullable(fragRotation), nullable(fragOpacity),
	nullable(fragText), nullable(fragFontSize),
)

// fragDescriptor describes a full new-object descriptor, discriminated by
// the "shape" field. Each variant requires every field needed to store
// the object unambiguously.
var fragDescriptor = fmt.Sprintf(`{
	"oneOf": [
		{
			"type": "object",
			"properties": {
				"shape": {"const": "rectangle"},
				"x": %[1]s, "y": %[1]s,
				"width": %[2]s, "height": %[2]s,
				"fill": %[3]s, "stroke": %[3]s, "strokeWidth": %[4]s,
				"rotation": %[5]s, "opacity": %[6]s
			},
			"required": ["shape", "x", "y", "width", "height"],
			"additionalProperties": false
		},
		{
			"type": "object",
			"properties": {
				"shape": {"const": "circle"},
				"centerX": %[1]s, "centerY": %[1]s,
				"radius": %[7]s,
				"fill": %[3]s, "stroke": %[3]s, "strokeWidth": %[4]s,
				"opacity": %[6]s
			},
			"required": ["shape", "centerX", "centerY", "radius"],
			"additionalProperties": false
		},
		{
			"type": "object",
			"properties": {
				"shape": {"const": "text"},
				"x": %[1]s, "y": %[1]s,
				"text": %[8]s,
				"fontSize": %[9]s, "fill": %[3]s,
				"rotation": %[5]s, "opacity": %[6]s
			},
			"required": ["shape", "x", "y", "text"],
			"additionalProperties": false
		},
		{
			"type": "object",
			"properties": {
				"shape": {"const": "line"},
				"x1": %[1]s, "y1": %[1]s, "x2": %[1]s, "y2": %[1]s,
				"stroke": %[3]s, "strokeWidth": %[4]s, "opacity": %[6]s
			},
			"required": ["shape", "x1", "y1", "x2", "y2"],
			"additionalProperties": false
		}
	]
}`,
	fragCoord, fragSize, fragColor,
	`{"type":"number","minimum":0,"maximum":64}`,
	fragRotation, fragOpacity,
	fmt.Sprintf(`{"type":"number","exclusiveMinimum":0,"maximum":%g}`, MaxDimension/2),
	fragText, fragFontSize,
)

// opDoc assembles one operation document: discriminator plus operation
// fields, closed to unknown top-level fields.
func opDoc(name, properties, required string) string {
	req := fmt.Sprintf(`["operation"%s]`, required)
	return fmt.Sprintf(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"operation": {"const": %q}%s
		},
		"required": %s,
		"additionalProperties": false
	}`, name, properties, req)
}

func buildSpecs() map[string]*Spec {
	specs := []*Spec{
		mustSpec(OpCreateRectangle,
			"Create a rectangle at a top-left position with a width and height.",
			opDoc(OpCreateRectangle, fmt.Sprintf(`,
				"x": %[1]s, "y": %[1]s,
				"width": %[2]s, "height": %[2]s,
				"fill": %[3]s, "stroke": %[3]s,
				"strokeWidth": {"type":"number","minimum":0,"maximum":64},
				"rotation": %[4]s, "opacity": %[5]s`,
				fragCoord, fragSize, fragColor, fragRotation, fragOpacity),
				`, "x", "y", "width", "height"`)),

		mustSpec(OpCreateCircle,
			"Create a circle from a center point and radius.",
			opDoc(OpCreateCircle, fmt.Sprintf(`,
				"centerX": %[1]s, "centerY": %[1]s,
				"radius": {"type":"number","exclusiveMinimum":0,"maximum":%[2]g},
				"fill": %[3]s, "stroke": %[3]s,
				"strokeWidth": {"type":"number","minimum":0,"maximum":64},
				"opacity": %[4]s`,
				fragCoord, MaxDimension/2, fragColor, fragOpacity),
				`, "centerX", "centerY", "radius"`)),

		mustSpec(OpCreateText,
			"Create a text object; its bounding box is estimated from the content and font size.",
			opDoc(OpCreateText, fmt.Sprintf(`,
				"x": %[1]s, "y": %[1]s,
				"text": %[2]s,
				"fontSize": %[3]s, "fill": %[4]s,
				"rotation": %[5]s, "opacity": %[6]s`,
				fragCoord, fragText, fragFontSize, fragColor, fragRotation, fragOpacity),
				`, "x", "y", "text"`)),

		mustSpec(OpCreateLine,
			"Create a line between two endpoints.",
			opDoc(OpCreateLine, fmt.Sprintf(`,
				"x1": %[1]s, "y1": %[1]s, "x2": %[1]s, "y2": %[1]s,
				"stroke": %[2]s,
				"strokeWidth": {"type":"number","minimum":0,"maximum":64},
				"opacity": %[3]s`,
				fragCoord, fragColor, fragOpacity),
				`, "x1", "y1", "x2", "y2"`)),

		mustSpec(OpUpdateShape,
			"Apply a partial update to one shape. Absent fields are unchanged; explicit null clears a field.",
			opDoc(OpUpdateShape, fmt.Sprintf(`,
				"shapeId": %s,
				"updates": %s`, fragShapeID, fragUpdates),
				`, "shapeId", "updates"`)),

		mustSpec(OpMoveShape,
			"Move one shape to a new top-left position.",
			opDoc(OpMoveShape, fmt.Sprintf(`,
				"shapeId": %[1]s, "x": %[2]s, "y": %[2]s`, fragShapeID, fragCoord),
				`, "shapeId", "x", "y"`)),

		mustSpec(OpResizeShape,
			"Resize one shape to a new width and height.",
			opDoc(OpResizeShape, fmt.Sprintf(`,
				"shapeId": %[1]s, "width": %[2]s, "height": %[2]s`, fragShapeID, fragSize),
				`, "shapeId", "width", "height"`)),

		mustSpec(OpRotateShape,
			"Set one shape's absolute rotation in degrees.",
			opDoc(OpRotateShape, fmt.Sprintf(`,
				"shapeId": %s, "rotation": %s`, fragShapeID, fragRotation),
				`, "shapeId", "rotation"`)),

		mustSpec(OpDeleteShape,
			"Delete one shape by identifier.",
			opDoc(OpDeleteShape, fmt.Sprintf(`,
				"shapeId": %s`, fragShapeID),
				`, "shapeId"`)),

		mustSpec(OpBatchOperations,
			"Apply an ordered list of create/update/delete sub-operations.",
			opDoc(OpBatchOperations, fmt.Sprintf(`,
				"operations": {
					"type": "array",
					"minItems": 1,
					"items": {
						"oneOf": [
							{
								"type": "object",
								"properties": {
									"type": {"const": "create"},
									"shape": %s
								},
								"required": ["type", "shape"],
								"additionalProperties": false
							},
							{
								"type": "object",
								"properties": {
									"type": {"const": "update"},
									"shapeId": %s,
									"updates": %s
								},
								"required": ["type", "shapeId", "updates"],
								"additionalProperties": false
							},
							{
								"type": "object",
								"properties": {
									"type": {"const": "delete"},
									"shapeId": %s
								},
								"required": ["type", "shapeId"],
								"additionalProperties": false
							}
						]
					}
				}`, fragDescriptor, fragShapeID, fragUpdates, fragShapeID),
				`, "operations"`)),

		mustSpec(OpBatchTransform,
			"Apply a relative move, scale, or rotation to a set of shapes.",
			fmt.Sprintf(`{
				"$schema": "https://json-schema.org/draft/2020-12/schema",
				"type": "object",
				"properties": {
					"operation": {"const": %q},
					"shapeIds": {"type":"array","minItems":1,"items": %s},
					"deltaX": %s, "deltaY": %s,
					"scale": {"type":"number","exclusiveMinimum":0,"maximum":%g},
					"rotateBy": %s
				},
				"required": ["operation", "shapeIds"],
				"anyOf": [
					{"required": ["deltaX"]},
					{"required": ["deltaY"]},
					{"required": ["scale"]},
					{"required": ["rotateBy"]}
				],
				"additionalProperties": false
			}`, OpBatchTransform, fragShapeID, fragDelta, fragDelta, MaxBatchScale, fragRelRot)),

		mustSpec(OpClearCanvas,
			"Remove every object from the canvas.",
			opDoc(OpClearCanvas, ``, ``)),

		mustSpec(OpCreateGrid,
			"Create a rows-by-columns grid of identical shapes.",
			opDoc(OpCreateGrid, fmt.Sprintf(`,
				"rows": {"type":"integer","minimum":1,"maximum":%[1]d},
				"columns": {"type":"integer","minimum":1,"maximum":%[1]d},
				"cellSize": {"type":"number","exclusiveMinimum":0,"maximum":512},
				"spacing": {"type":"number","minimum":0,"maximum":256},
				"originX": %[2]s, "originY": %[2]s,
				"shape": {"enum":["rectangle","circle"]},
				"fill": %[3]s`,
				MaxGridSide, fragCoord, fragColor),
				`, "rows", "columns"`)),

		mustSpec(OpCreateRow,
			"Create a horizontal row of identical shapes.",
			opDoc(OpCreateRow, fmt.Sprintf(`,
				"count": {"type":"integer","minimum":1,"maximum":%d},
				"shape": {"enum":["rectangle","circle"]},
				"size": {"type":"number","exclusiveMinimum":0,"maximum":512},
				"spacing": {"type":"number","minimum":0,"maximum":256},
				"originX": %[2]s, "originY": %[2]s,
				"fill": %[3]s`,
				MaxRowCount, fragCoord, fragColor),
				`, "count"`)),

		mustSpec(OpCreateCircleRow,
			"Create a horizontal row of circles.",
			opDoc(OpCreateCircleRow, fmt.Sprintf(`,
				"count": {"type":"integer","minimum":1,"maximum":%d},
				"radius": {"type":"number","exclusiveMinimum":0,"maximum":256},
				"spacing": {"type":"number","minimum":0,"maximum":256},
				"originX": %[2]s, "originY": %[2]s,
				"fill": %[3]s`,
				MaxRowCount, fragCoord, fragColor),
				`, "count"`)),

		mustSpec(OpCreateRandomShapes,
			"Create one or more randomly placed and colored shapes.",
			opDoc(OpCreateRandomShapes, `,
				"count": {"type":"integer","minimum":1,"maximum":50}`, ``)),

		mustSpec(OpCreateLoginForm,
			"Create a login form template (panel, labels, inputs, button).",
			opDoc(OpCreateLoginForm, fmt.Sprintf(`,
				"originX": %[1]s, "originY": %[1]s`, fragCoord), ``)),

		mustSpec(OpCreateNavbar,
			"Create a navigation bar template across the top of the canvas.",
			opDoc(OpCreateNavbar, fmt.Sprintf(`,
				"width": %s, "originY": %s`, fragSize, fragCoord), ``)),

		mustSpec(OpCreateCard,
			"Create a card template (frame, image placeholder, title, body).",
			opDoc(OpCreateCard, fmt.Sprintf(`,
				"originX": %[1]s, "originY": %[1]s,
				"title": {"type":"string","maxLength":256}`, fragCoord), ``)),
	}

	byName := make(map[string]*Spec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}
	return byName
}

var specsByName = buildSpecs()

// Lookup returns the spec for an operation name.
func Lookup(name string) (*Spec, bool) {
	spec, ok := specsByName[name]
	return spec, ok
}

// All returns every operation spec sorted by name.
func All() []*Spec {
	all := make([]*Spec, 0, len(specsByName))
	for _, spec := range specsByName {
		all = append(all, spec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}
