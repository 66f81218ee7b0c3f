package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sketchflow/sketchflow/internal/canvas"
)

// Decode unmarshals validated, discriminator-stripped arguments into a
// typed argument struct. Unknown fields fail: the schema layer already
// rejects them, so a failure here indicates a contract drift bug.
func Decode[T any](raw json.RawMessage) (T, error) {
	var args T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&args); err != nil {
		return args, fmt.Errorf("decode arguments: %w", err)
	}
	return args, nil
}

type CreateRectangleArgs struct {
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Fill        *string  `json:"fill,omitempty"`
	Stroke      *string  `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Rotation    *float64 `json:"rotation,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
}

type CreateCircleArgs struct {
	CenterX     float64  `json:"centerX"`
	CenterY     float64  `json:"centerY"`
	Radius      float64  `json:"radius"`
	Fill        *string  `json:"fill,omitempty"`
	Stroke      *string  `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
}

type CreateTextArgs struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Text     string   `json:"text"`
	FontSize *float64 `json:"fontSize,omitempty"`
	Fill     *string  `json:"fill,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
}

type CreateLineArgs struct {
	X1          float64  `json:"x1"`
	Y1          float64  `json:"y1"`
	X2          float64  `json:"x2"`
	Y2          float64  `json:"y2"`
	Stroke      *string  `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
}

type UpdateShapeArgs struct {
	ShapeID string       `json:"shapeId"`
	Updates canvas.Patch `json:"updates"`
}

type MoveShapeArgs struct {
	ShapeID string  `json:"shapeId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type ResizeShapeArgs struct {
	ShapeID string  `json:"shapeId"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

type RotateShapeArgs struct {
	ShapeID  string  `json:"shapeId"`
	Rotation float64 `json:"rotation"`
}

type DeleteShapeArgs struct {
	ShapeID string `json:"shapeId"`
}

type BatchOperationsArgs struct {
	Operations []SubOperation `json:"operations"`
}

type BatchTransformArgs struct {
	ShapeIDs []string `json:"shapeIds"`
	DeltaX   *float64 `json:"deltaX,omitempty"`
	DeltaY   *float64 `json:"deltaY,omitempty"`
	Scale    *float64 `json:"scale,omitempty"`
	RotateBy *float64 `json:"rotateBy,omitempty"`
}

type ClearCanvasArgs struct{}

type CreateGridArgs struct {
	Rows     int      `json:"rows"`
	Columns  int      `json:"columns"`
	CellSize *float64 `json:"cellSize,omitempty"`
	Spacing  *float64 `json:"spacing,omitempty"`
	OriginX  *float64 `json:"originX,omitempty"`
	OriginY  *float64 `json:"originY,omitempty"`
	Shape    *string  `json:"shape,omitempty"`
	Fill     *string  `json:"fill,omitempty"`
}

type CreateRowArgs struct {
	Count   int      `json:"count"`
	Shape   *string  `json:"shape,omitempty"`
	Size    *float64 `json:"size,omitempty"`
	Spacing *float64 `json:"spacing,omitempty"`
	OriginX *float64 `json:"originX,omitempty"`
	OriginY *float64 `json:"originY,omitempty"`
	Fill    *string  `json:"fill,omitempty"`
}

type CreateCircleRowArgs struct {
	Count   int      `json:"count"`
	Radius  *float64 `json:"radius,omitempty"`
	Spacing *float64 `json:"spacing,omitempty"`
	OriginX *float64 `json:"originX,omitempty"`
	OriginY *float64 `json:"originY,omitempty"`
	Fill    *string  `json:"fill,omitempty"`
}

type CreateRandomShapesArgs struct {
	Count *int `json:"count,omitempty"`
}

type CreateLoginFormArgs struct {
	OriginX *float64 `json:"originX,omitempty"`
	OriginY *float64 `json:"originY,omitempty"`
}

type CreateNavbarArgs struct {
	Width   *float64 `json:"width,omitempty"`
	OriginY *float64 `json:"originY,omitempty"`
}

type CreateCardArgs struct {
	OriginX *float64 `json:"originX,omitempty"`
	OriginY *float64 `json:"originY,omitempty"`
	Title   *string  `json:"title,omitempty"`
}
