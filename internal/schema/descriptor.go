package schema

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/sketchflow/sketchflow/internal/canvas"
)

// Default visual attributes applied when a descriptor omits them.
const (
	DefaultFill        = "#cccccc"
	DefaultStroke      = "#333333"
	DefaultStrokeWidth = 2.0
	DefaultFontSize    = 16.0
)

// Text bounding-box estimation factors. Storage works in top-left plus
// width/height, so text extents must be derived when the object is
// created, not later.
const (
	textWidthPerRune = 0.6
	textLineHeight   = 1.2
)

// ShapeDescriptor is a full new-object descriptor for a create
// sub-operation. Which fields are meaningful depends on the shape
// discriminator; the compiled schema enforces each variant's shape.
type ShapeDescriptor struct {
	Shape string `json:"shape"`

	// rectangle / text
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`

	// rectangle
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	// circle
	CenterX *float64 `json:"centerX,omitempty"`
	CenterY *float64 `json:"centerY,omitempty"`
	Radius  *float64 `json:"radius,omitempty"`

	// text
	Text     *string  `json:"text,omitempty"`
	FontSize *float64 `json:"fontSize,omitempty"`

	// line
	X1 *float64 `json:"x1,omitempty"`
	Y1 *float64 `json:"y1,omitempty"`
	X2 *float64 `json:"x2,omitempty"`
	Y2 *float64 `json:"y2,omitempty"`

	// common visual attributes
	Fill        *string  `json:"fill,omitempty"`
	Stroke      *string  `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Rotation    *float64 `json:"rotation,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
}

// TextExtents estimates the bounding box of a text object from its
// content and font size.
func TextExtents(text string, fontSize float64) (width, height float64) {
	runes := utf8.RuneCountInString(text)
	if runes == 0 {
		runes = 1
	}
	return math.Ceil(float64(runes) * fontSize * textWidthPerRune),
		math.Ceil(fontSize * textLineHeight)
}

// Normalize converts a validated descriptor into a storable canvas
// object: circles become top-left plus size, lines keep their endpoints
// and gain bounding-box extents, text gains an estimated bounding box.
func (d *ShapeDescriptor) Normalize(canvasID string) (*canvas.Object, error) {
	obj := &canvas.Object{
		CanvasID: canvasID,
		Opacity:  1,
	}
	if d.Opacity != nil {
		obj.Opacity = *d.Opacity
	}
	if d.Rotation != nil {
		obj.Rotation = *d.Rotation
	}
	if d.Stroke != nil {
		obj.Stroke = *d.Stroke
	}
	if d.StrokeWidth != nil {
		obj.StrokeWidth = *d.StrokeWidth
	}

	switch d.Shape {
	case string(canvas.ShapeRectangle):
		if d.X == nil || d.Y == nil || d.Width == nil || d.Height == nil {
			return nil, fmt.Errorf("rectangle descriptor missing geometry")
		}
		obj.Type = canvas.ShapeRectangle
		obj.X, obj.Y = *d.X, *d.Y
		obj.Width, obj.Height = *d.Width, *d.Height
		obj.Fill = stringOr(d.Fill, DefaultFill)

	case string(canvas.ShapeCircle):
		if d.CenterX == nil || d.CenterY == nil || d.Radius == nil {
			return nil, fmt.Errorf("circle descriptor missing geometry")
		}
		obj.Type = canvas.ShapeCircle
		r := *d.Radius
		obj.X, obj.Y = *d.CenterX-r, *d.CenterY-r
		obj.Width, obj.Height = 2*r, 2*r
		obj.Fill = stringOr(d.Fill, DefaultFill)

	case string(canvas.ShapeText):
		if d.X == nil || d.Y == nil || d.Text == nil {
			return nil, fmt.Errorf("text descriptor missing content")
		}
		obj.Type = canvas.ShapeText
		obj.X, obj.Y = *d.X, *d.Y
		obj.Text = *d.Text
		obj.FontSize = DefaultFontSize
		if d.FontSize != nil {
			obj.FontSize = *d.FontSize
		}
		obj.Width, obj.Height = TextExtents(obj.Text, obj.FontSize)
		obj.Fill = stringOr(d.Fill, "#000000")

	case string(canvas.ShapeLine):
		if d.X1 == nil || d.Y1 == nil || d.X2 == nil || d.Y2 == nil {
			return nil, fmt.Errorf("line descriptor missing endpoints")
		}
		obj.Type = canvas.ShapeLine
		obj.X, obj.Y = *d.X1, *d.Y1
		obj.X2, obj.Y2 = *d.X2, *d.Y2
		obj.Width = math.Abs(*d.X2 - *d.X1)
		obj.Height = math.Abs(*d.Y2 - *d.Y1)
		if obj.Stroke == "" {
			obj.Stroke = DefaultStroke
		}
		if d.StrokeWidth == nil {
			obj.StrokeWidth = DefaultStrokeWidth
		}

	default:
		return nil, fmt.Errorf("unknown shape %q", d.Shape)
	}
	return obj, nil
}

func stringOr(value *string, fallback string) string {
	if value != nil {
		return *value
	}
	return fallback
}
