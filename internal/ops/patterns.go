package ops

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/schema"
)

// Layout defaults for the pattern generators. Values are chosen so the
// default invocation lands comfortably inside the canvas extents.
const (
	defaultCellSize   = 80.0
	defaultSpacing    = 16.0
	defaultOriginX    = 40.0
	defaultOriginY    = 40.0
	defaultRowSize    = 80.0
	defaultRowRadius  = 30.0
	defaultRowSpacing = 16.0
)

func floatOr(value *float64, fallback float64) float64 {
	if value != nil {
		return *value
	}
	return fallback
}

// createGrid lays out rows x columns shapes on a regular grid. Cells are
// square; circles are inscribed in their cell.
func (a *actions) createGrid(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateGridArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}

	cell := floatOr(args.CellSize, defaultCellSize)
	spacing := floatOr(args.Spacing, defaultSpacing)
	originX := floatOr(args.OriginX, defaultOriginX)
	originY := floatOr(args.OriginY, defaultOriginY)
	shape := canvas.ShapeRectangle
	if args.Shape != nil {
		shape = canvas.ShapeType(*args.Shape)
	}
	if shape != canvas.ShapeRectangle && shape != canvas.ShapeCircle {
		return plan.Result{}, fmt.Errorf("grid shape must be rectangle or circle, got %q", shape)
	}

	ids := make([]string, 0, args.Rows*args.Columns)
	for row := 0; row < args.Rows; row++ {
		for col := 0; col < args.Columns; col++ {
			x := originX + float64(col)*(cell+spacing)
			y := originY + float64(row)*(cell+spacing)

			var desc schema.ShapeDescriptor
			if shape == canvas.ShapeCircle {
				r := cell / 2
				cx, cy := x+r, y+r
				desc = schema.ShapeDescriptor{
					Shape:   string(canvas.ShapeCircle),
					CenterX: &cx,
					CenterY: &cy,
					Radius:  &r,
					Fill:    args.Fill,
				}
			} else {
				w, h := cell, cell
				desc = schema.ShapeDescriptor{
					Shape:  string(canvas.ShapeRectangle),
					X:      &x,
					Y:      &y,
					Width:  &w,
					Height: &h,
					Fill:   args.Fill,
				}
			}

			result, err := a.createOne(ctx, canvasID, &desc)
			if err != nil {
				return plan.Result{IDs: ids}, fmt.Errorf("grid cell (%d,%d): %w", row, col, err)
			}
			ids = append(ids, result.IDs...)
		}
	}
	return plan.Result{IDs: ids}, nil
}

// createRow lays out count shapes in a single horizontal row.
func (a *actions) createRow(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateRowArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}

	size := floatOr(args.Size, defaultRowSize)
	spacing := floatOr(args.Spacing, defaultRowSpacing)
	originX := floatOr(args.OriginX, defaultOriginX)
	originY := floatOr(args.OriginY, defaultOriginY)
	shape := canvas.ShapeRectangle
	if args.Shape != nil {
		shape = canvas.ShapeType(*args.Shape)
	}
	if shape != canvas.ShapeRectangle && shape != canvas.ShapeCircle {
		return plan.Result{}, fmt.Errorf("row shape must be rectangle or circle, got %q", shape)
	}

	ids := make([]string, 0, args.Count)
	for i := 0; i < args.Count; i++ {
		x := originX + float64(i)*(size+spacing)

		var desc schema.ShapeDescriptor
		if shape == canvas.ShapeCircle {
			r := size / 2
			cx, cy := x+r, originY+r
			desc = schema.ShapeDescriptor{
				Shape:   string(canvas.ShapeCircle),
				CenterX: &cx,
				CenterY: &cy,
				Radius:  &r,
				Fill:    args.Fill,
			}
		} else {
			w, h := size, size
			y := originY
			desc = schema.ShapeDescriptor{
				Shape:  string(canvas.ShapeRectangle),
				X:      &x,
				Y:      &y,
				Width:  &w,
				Height: &h,
				Fill:   args.Fill,
			}
		}

		result, err := a.createOne(ctx, canvasID, &desc)
		if err != nil {
			return plan.Result{IDs: ids}, fmt.Errorf("row item %d: %w", i+1, err)
		}
		ids = append(ids, result.IDs...)
	}
	return plan.Result{IDs: ids}, nil
}

// createCircleRow is the circle-only row shorthand: centers are spaced
// edge to edge plus spacing.
func (a *actions) createCircleRow(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateCircleRowArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}

	radius := floatOr(args.Radius, defaultRowRadius)
	spacing := floatOr(args.Spacing, defaultRowSpacing)
	originX := floatOr(args.OriginX, defaultOriginX)
	originY := floatOr(args.OriginY, defaultOriginY)

	ids := make([]string, 0, args.Count)
	for i := 0; i < args.Count; i++ {
		cx := originX + radius + float64(i)*(2*radius+spacing)
		cy := originY + radius
		desc := schema.ShapeDescriptor{
			Shape:   string(canvas.ShapeCircle),
			CenterX: &cx,
			CenterY: &cy,
			Radius:  &radius,
			Fill:    args.Fill,
		}
		result, err := a.createOne(ctx, canvasID, &desc)
		if err != nil {
			return plan.Result{IDs: ids}, fmt.Errorf("circle %d: %w", i+1, err)
		}
		ids = append(ids, result.IDs...)
	}
	return plan.Result{IDs: ids}, nil
}
