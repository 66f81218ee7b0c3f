package ops

import (
	"context"
	"encoding/json"
	"math/rand/v2"

	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/schema"
)

var randomPalette = []string{
	"#ef4444", "#f97316", "#eab308", "#22c55e",
	"#06b6d4", "#3b82f6", "#8b5cf6", "#ec4899",
}

const (
	randomMinSize = 20.0
	randomMaxSize = 160.0
	randomMargin  = 40.0
)

// createRandomShapes scatters count rectangles and circles with random
// geometry and palette colors. Positions are kept inside the canvas
// extents.
func (a *actions) createRandomShapes(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateRandomShapesArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	count := 1
	if args.Count != nil {
		count = *args.Count
	}

	span := schema.MaxCoord - 2*randomMargin - randomMaxSize
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		size := randomMinSize + rand.Float64()*(randomMaxSize-randomMinSize)
		x := randomMargin + rand.Float64()*span
		y := randomMargin + rand.Float64()*span
		fill := randomPalette[rand.IntN(len(randomPalette))]

		var desc schema.ShapeDescriptor
		if rand.IntN(2) == 0 {
			w, h := size, size
			desc = schema.ShapeDescriptor{
				Shape:  string(canvas.ShapeRectangle),
				X:      &x,
				Y:      &y,
				Width:  &w,
				Height: &h,
				Fill:   &fill,
			}
		} else {
			r := size / 2
			cx, cy := x+r, y+r
			desc = schema.ShapeDescriptor{
				Shape:   string(canvas.ShapeCircle),
				CenterX: &cx,
				CenterY: &cy,
				Radius:  &r,
				Fill:    &fill,
			}
		}

		result, err := a.createOne(ctx, canvasID, &desc)
		if err != nil {
			return plan.Result{IDs: ids}, err
		}
		ids = append(ids, result.IDs...)
	}
	return plan.Result{IDs: ids}, nil
}
