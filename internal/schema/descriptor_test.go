package schema

import (
	"testing"

	"github.com/sketchflow/sketchflow/internal/canvas"
)

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }

func TestNormalizeCircleConvertsToTopLeft(t *testing.T) {
	desc := ShapeDescriptor{
		Shape:   "circle",
		CenterX: fp(100), CenterY: fp(80), Radius: fp(30),
	}
	obj, err := desc.Normalize("c1")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if obj.X != 70 || obj.Y != 50 {
		t.Fatalf("top-left = (%g, %g), want (70, 50)", obj.X, obj.Y)
	}
	if obj.Width != 60 || obj.Height != 60 {
		t.Fatalf("size = %gx%g, want 60x60", obj.Width, obj.Height)
	}
	if obj.Fill != DefaultFill {
		t.Fatalf("fill = %q, want default %q", obj.Fill, DefaultFill)
	}
	if obj.Opacity != 1 {
		t.Fatalf("opacity = %g, want 1", obj.Opacity)
	}
}

func TestNormalizeTextEstimatesBoundingBox(t *testing.T) {
	desc := ShapeDescriptor{
		Shape: "text",
		X:     fp(10), Y: fp(10),
		Text: sp("hello"), FontSize: fp(20),
	}
	obj, err := desc.Normalize("c1")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	wantW, wantH := TextExtents("hello", 20)
	if obj.Width != wantW || obj.Height != wantH {
		t.Fatalf("bbox = %gx%g, want %gx%g", obj.Width, obj.Height, wantW, wantH)
	}
	if obj.Fill != "#000000" {
		t.Fatalf("text fill = %q, want #000000", obj.Fill)
	}
}

func TestNormalizeTextDefaultsFontSize(t *testing.T) {
	desc := ShapeDescriptor{Shape: "text", X: fp(0), Y: fp(0), Text: sp("x")}
	obj, err := desc.Normalize("c1")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if obj.FontSize != DefaultFontSize {
		t.Fatalf("fontSize = %g, want %g", obj.FontSize, DefaultFontSize)
	}
}

func TestNormalizeLineKeepsEndpointsAndDerivesExtents(t *testing.T) {
	desc := ShapeDescriptor{
		Shape: "line",
		X1:    fp(100), Y1: fp(50), X2: fp(40), Y2: fp(90),
	}
	obj, err := desc.Normalize("c1")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if obj.X != 100 || obj.Y != 50 || obj.X2 != 40 || obj.Y2 != 90 {
		t.Fatalf("endpoints = (%g,%g)-(%g,%g)", obj.X, obj.Y, obj.X2, obj.Y2)
	}
	if obj.Width != 60 || obj.Height != 40 {
		t.Fatalf("extents = %gx%g, want 60x40", obj.Width, obj.Height)
	}
	if obj.Stroke != DefaultStroke || obj.StrokeWidth != DefaultStrokeWidth {
		t.Fatalf("stroke = %q/%g, want defaults", obj.Stroke, obj.StrokeWidth)
	}
}

func TestNormalizeRejectsUnknownShape(t *testing.T) {
	desc := ShapeDescriptor{Shape: "hexagon"}
	if _, err := desc.Normalize("c1"); err == nil {
		t.Fatal("unknown shape must be rejected")
	}
}

func TestNormalizeSetsCanvasAndType(t *testing.T) {
	desc := ShapeDescriptor{
		Shape: "rectangle",
		X:     fp(1), Y: fp(2), Width: fp(3), Height: fp(4),
		Fill: sp("#abcdef"), Rotation: fp(15), Opacity: fp(0.5),
	}
	obj, err := desc.Normalize("board-7")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if obj.CanvasID != "board-7" || obj.Type != canvas.ShapeRectangle {
		t.Fatalf("canvas/type = %q/%q", obj.CanvasID, obj.Type)
	}
	if obj.Fill != "#abcdef" || obj.Rotation != 15 || obj.Opacity != 0.5 {
		t.Fatalf("attributes not carried: %+v", obj)
	}
}
