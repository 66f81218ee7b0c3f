package ops

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/schema"
)

// Template palette shared by the composite generators.
const (
	templatePanelFill  = "#ffffff"
	templatePanelEdge  = "#d1d5db"
	templateFieldFill  = "#f3f4f6"
	templateAccentFill = "#3b82f6"
	templateInkFill    = "#111827"
	templateMutedFill  = "#6b7280"
	templateLightFill  = "#f9fafb"
)

// createMany normalizes and inserts descriptors in order, returning the
// new identifiers. Used by the composite templates, which emit a fixed
// set of shapes per invocation.
func (a *actions) createMany(ctx context.Context, canvasID string, descs []schema.ShapeDescriptor) (plan.Result, error) {
	ids := make([]string, 0, len(descs))
	for i := range descs {
		result, err := a.createOne(ctx, canvasID, &descs[i])
		if err != nil {
			return plan.Result{IDs: ids}, fmt.Errorf("template shape %d: %w", i+1, err)
		}
		ids = append(ids, result.IDs...)
	}
	return plan.Result{IDs: ids}, nil
}

func rectDesc(x, y, w, h float64, fill string) schema.ShapeDescriptor {
	return schema.ShapeDescriptor{
		Shape: string(canvas.ShapeRectangle),
		X:     &x, Y: &y, Width: &w, Height: &h,
		Fill: &fill,
	}
}

func textDesc(x, y float64, text string, fontSize float64, fill string) schema.ShapeDescriptor {
	return schema.ShapeDescriptor{
		Shape: string(canvas.ShapeText),
		X:     &x, Y: &y,
		Text: &text, FontSize: &fontSize,
		Fill: &fill,
	}
}

// createLoginForm emits a panel with title, two labeled input fields,
// and a submit button. The first identifier is the panel.
func (a *actions) createLoginForm(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateLoginFormArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	ox := floatOr(args.OriginX, 100)
	oy := floatOr(args.OriginY, 100)

	panel := rectDesc(ox, oy, 320, 360, templatePanelFill)
	panel.Stroke = strPtr(templatePanelEdge)
	panel.StrokeWidth = fPtr(1)

	button := rectDesc(ox+24, oy+280, 272, 44, templateAccentFill)

	descs := []schema.ShapeDescriptor{
		panel,
		textDesc(ox+24, oy+28, "Sign in", 24, templateInkFill),
		textDesc(ox+24, oy+84, "Email", 13, templateMutedFill),
		rectDesc(ox+24, oy+108, 272, 40, templateFieldFill),
		textDesc(ox+24, oy+172, "Password", 13, templateMutedFill),
		rectDesc(ox+24, oy+196, 272, 40, templateFieldFill),
		button,
		textDesc(ox+122, oy+292, "Sign in", 15, templatePanelFill),
	}
	return a.createMany(ctx, canvasID, descs)
}

// createNavbar emits a full-width bar with a brand label and menu
// entries. The first identifier is the bar.
func (a *actions) createNavbar(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateNavbarArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	width := floatOr(args.Width, 1024)
	oy := floatOr(args.OriginY, 0)

	descs := []schema.ShapeDescriptor{
		rectDesc(0, oy, width, 56, templateInkFill),
		textDesc(24, oy+18, "SketchFlow", 18, templatePanelFill),
	}
	menu := []string{"Home", "Projects", "Docs", "About"}
	x := width - 24
	for i := len(menu) - 1; i >= 0; i-- {
		w, _ := schema.TextExtents(menu[i], 14)
		x -= w
		descs = append(descs, textDesc(x, oy+20, menu[i], 14, templateLightFill))
		x -= 32
	}
	return a.createMany(ctx, canvasID, descs)
}

// createCard emits a content card: frame, media placeholder, title, and
// body text. The first identifier is the frame.
func (a *actions) createCard(ctx context.Context, canvasID string, raw json.RawMessage) (plan.Result, error) {
	args, err := schema.Decode[schema.CreateCardArgs](raw)
	if err != nil {
		return plan.Result{}, err
	}
	ox := floatOr(args.OriginX, 100)
	oy := floatOr(args.OriginY, 100)
	title := "Card title"
	if args.Title != nil {
		title = *args.Title
	}

	frame := rectDesc(ox, oy, 280, 320, templatePanelFill)
	frame.Stroke = strPtr(templatePanelEdge)
	frame.StrokeWidth = fPtr(1)

	descs := []schema.ShapeDescriptor{
		frame,
		rectDesc(ox+16, oy+16, 248, 140, templateFieldFill),
		textDesc(ox+16, oy+172, title, 18, templateInkFill),
		textDesc(ox+16, oy+204, "Supporting description text", 13, templateMutedFill),
		textDesc(ox+16, oy+280, "Learn more", 14, templateAccentFill),
	}
	return a.createMany(ctx, canvasID, descs)
}

func strPtr(s string) *string  { return &s }
func fPtr(f float64) *float64  { return &f }
