package canvas

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("canvas: not found")
	ErrAlreadyExists = errors.New("canvas: already exists")
)

// ShapeType identifies the kind of canvas object.
type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeText      ShapeType = "text"
	ShapeLine      ShapeType = "line"
)

// KnownShapeTypes lists every shape type the store accepts.
var KnownShapeTypes = []ShapeType{ShapeRectangle, ShapeCircle, ShapeText, ShapeLine}

// Valid reports whether t is a known shape type.
func (t ShapeType) Valid() bool {
	for _, known := range KnownShapeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Object is a single shape on a canvas. Position is the top-left corner
// of the bounding box; lines additionally keep their second endpoint in
// X2/Y2 (the first endpoint is X/Y).
type Object struct {
	ID          string    `json:"id"`
	CanvasID    string    `json:"canvas_id"`
	Type        ShapeType `json:"type"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	X2          float64   `json:"x2,omitempty"`
	Y2          float64   `json:"y2,omitempty"`
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"stroke_width,omitempty"`
	Rotation    float64   `json:"rotation"`
	Opacity     float64   `json:"opacity"`
	Text        string    `json:"text,omitempty"`
	FontSize    float64   `json:"font_size,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}
