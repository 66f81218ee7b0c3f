package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/schema"
)

// actions holds the canvas service every operation mutates through.
type actions struct {
	svc    *canvas.Service
	logger *slog.Logger
}

func floatField(v float64) canvas.Field[float64] {
	return canvas.Field[float64]{Set: true, Valid: true, Value: v}
}

func (a *actions) createRectangle(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateRectangleArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	desc := schema.ShapeDescriptor{
		Shape:       string(canvas.ShapeRectangle),
		X:           &args.X,
		Y:           &args.Y,
		Width:       &args.Width,
		Height:      &args.Height,
		Fill:        args.Fill,
		Stroke:      args.Stroke,
		StrokeWidth: args.StrokeWidth,
		Rotation:    args.Rotation,
		Opacity:     args.Opacity,
	}
	return a.createOne(ctx, canvasID, &desc)
}

func (a *actions) createCircle(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateCircleArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	desc := schema.ShapeDescriptor{
		Shape:       string(canvas.ShapeCircle),
		CenterX:     &args.CenterX,
		CenterY:     &args.CenterY,
		Radius:      &args.Radius,
		Fill:        args.Fill,
		Stroke:      args.Stroke,
		StrokeWidth: args.StrokeWidth,
		Opacity:     args.Opacity,
	}
	return a.createOne(ctx, canvasID, &desc)
}

func (a *actions) createText(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateTextArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	desc := schema.ShapeDescriptor{
		Shape:    string(canvas.ShapeText),
		X:        &args.X,
		Y:        &args.Y,
		Text:     &args.Text,
		FontSize: args.FontSize,
		Fill:     args.Fill,
		Rotation: args.Rotation,
		Opacity:  args.Opacity,
	}
	return a.createOne(ctx, canvasID, &desc)
}

func (a *actions) createLine(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateLineArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	desc := schema.ShapeDescriptor{
		Shape:       string(canvas.ShapeLine),
		X1:          &args.X1,
		Y1:          &args.Y1,
		X2:          &args.X2,
		Y2:          &args.Y2,
		Stroke:      args.Stroke,
		StrokeWidth: args.StrokeWidth,
		Opacity:     args.Opacity,
	}
	return a.createOne(ctx, canvasID, &desc)
}

func (a *actions) createOne(ctx context.Context, canvasID string, desc *schema.ShapeDescriptor) (plan.Result, error) {
	obj, err := desc.Normalize(canvasID)
	if err != nil {
		return plan.Result{}, err
	}
	created, err := a.svc.Create(ctx, obj)
	if err != nil {
		return plan.Result{}, err
	}
	return plan.Result{IDs: []string{created.ID}}, nil
}

func (a *actions) updateShape(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.UpdateShapeArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	if _, err := a.svc.Patch(ctx, canvasID, args.ShapeID, args.Updates); err != nil {
		return plan.Result{}, err
	}
	return plan.Result{IDs: []string{args.ShapeID}}, nil
}

func (a *actions) moveShape(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.MoveShapeArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	patch := canvas.Patch{X: floatField(args.X), Y: floatField(args.Y)}
	if _, err := a.svc.Patch(ctx, canvasID, args.ShapeID, patch); err != nil {
		return plan.Result{}, err
	}
	return plan.Result{IDs: []string{args.ShapeID}}, nil
}

func (a *actions) resizeShape(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.ResizeShapeArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	patch := canvas.Patch{Width: floatField(args.Width), Height: floatField(args.Height)}
	if _, err := a.svc.Patch(ctx, canvasID, args.ShapeID, patch); err != nil {
		return plan.Result{}, err
	}
	return plan.Result{IDs: []string{args.ShapeID}}, nil
}

func (a *actions) rotateShape(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.RotateShapeArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	patch := canvas.Patch{Rotation: floatField(normalizeAngle(args.Rotation))}
	if _, err := a.svc.Patch(ctx, canvasID, args.ShapeID, patch); err != nil {
		return plan.Result{}, err
	}
	return plan.Result{IDs: []string{args.ShapeID}}, nil
}

func (a *actions) deleteShape(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.DeleteShapeArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	if err := a.svc.Delete(ctx, canvasID, args.ShapeID); err != nil {
		return plan.Result{}, err
	}
	return plan.Result{IDs: []string{args.ShapeID}}, nil
}

// batchOperations applies the sub-operations strictly in list order.
// Update and delete targets are checked upfront so a bad reference
// fails the batch before any mutation lands.
func (a *actions) batchOperations(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.BatchOperationsArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	for i, sub := range args.Operations {
		if sub.Type == schema.SubOpCreate {
			continue
		}
		if _, err := a.svc.Get(ctx, canvasID, sub.ShapeID); err != nil {
			return plan.Result{}, fmt.Errorf("sub-operation %d: %w", i+1, err)
		}
	}

	ids := make([]string, 0, len(args.Operations))
	for i, sub := range args.Operations {
		switch sub.Type {
		case schema.SubOpCreate:
			obj, err := sub.Create.Normalize(canvasID)
			if err != nil {
				return plan.Result{IDs: ids}, fmt.Errorf("sub-operation %d: %w", i+1, err)
			}
			created, err := a.svc.Create(ctx, obj)
			if err != nil {
				return plan.Result{IDs: ids}, fmt.Errorf("sub-operation %d: %w", i+1, err)
			}
			ids = append(ids, created.ID)
		case schema.SubOpUpdate:
			if _, err := a.svc.Patch(ctx, canvasID, sub.ShapeID, *sub.Updates); err != nil {
				return plan.Result{IDs: ids}, fmt.Errorf("sub-operation %d: %w", i+1, err)
			}
			ids = append(ids, sub.ShapeID)
		case schema.SubOpDelete:
			if err := a.svc.Delete(ctx, canvasID, sub.ShapeID); err != nil {
				return plan.Result{IDs: ids}, fmt.Errorf("sub-operation %d: %w", i+1, err)
			}
			ids = append(ids, sub.ShapeID)
		default:
			return plan.Result{IDs: ids}, fmt.Errorf("sub-operation %d: unknown type %q", i+1, sub.Type)
		}
	}
	return plan.Result{IDs: ids}, nil
}

// batchTransform applies the same relative move, scale, and rotation to
// every listed shape. All targets are verified before the first write.
func (a *actions) batchTransform(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.BatchTransformArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}

	objects := make([]*canvas.Object, 0, len(args.ShapeIDs))
	for _, id := range args.ShapeIDs {
		obj, err := a.svc.Get(ctx, canvasID, id)
		if err != nil {
			return plan.Result{}, err
		}
		objects = append(objects, obj)
	}

	ids := make([]string, 0, len(objects))
	for _, obj := range objects {
		var patch canvas.Patch
		if args.DeltaX != nil {
			patch.X = floatField(obj.X + *args.DeltaX)
			if obj.Type == canvas.ShapeLine {
				patch.X2 = floatField(obj.X2 + *args.DeltaX)
			}
		}
		if args.DeltaY != nil {
			patch.Y = floatField(obj.Y + *args.DeltaY)
			if obj.Type == canvas.ShapeLine {
				patch.Y2 = floatField(obj.Y2 + *args.DeltaY)
			}
		}
		if args.Scale != nil {
			patch.Width = floatField(obj.Width * *args.Scale)
			patch.Height = floatField(obj.Height * *args.Scale)
			if obj.Type == canvas.ShapeText {
				patch.FontSize = floatField(obj.FontSize * *args.Scale)
			}
			if obj.Type == canvas.ShapeLine {
				x := obj.X
				y := obj.Y
				if patch.X.Set {
					x = patch.X.Value
				}
				if patch.Y.Set {
					y = patch.Y.Value
				}
				patch.X2 = floatField(x + (obj.X2-obj.X)**args.Scale)
				patch.Y2 = floatField(y + (obj.Y2-obj.Y)**args.Scale)
			}
		}
		if args.RotateBy != nil {
			patch.Rotation = floatField(normalizeAngle(obj.Rotation + *args.RotateBy))
		}
		if _, err := a.svc.Patch(ctx, canvasID, obj.ID, patch); err != nil {
			return plan.Result{IDs: ids}, err
		}
		ids = append(ids, obj.ID)
	}
	return plan.Result{IDs: ids}, nil
}

func (a *actions) clearCanvas(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	if _, err := schema.Decode[schema.ClearCanvasArgs](raw); err != nil {
		return plan.Result{}, err
	}
	removed, err := a.svc.Clear(ctx, canvasID)
	if err != nil {
		return plan.Result{}, err
	}
	a.logger.Info("canvas cleared", "canvas_id", canvasID, "removed", removed)
	return plan.Result{}, nil
}

// normalizeAngle folds an angle into [0, 360).
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
