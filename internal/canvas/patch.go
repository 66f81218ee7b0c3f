package canvas

import "encoding/json"

// Field carries one partially-updated object attribute. Set distinguishes
// a field that appeared in the update payload from one that was absent;
// Valid distinguishes a concrete value from an explicit JSON null, which
// means "clear this attribute".
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON marks the field as present and decodes the value unless
// the payload is an explicit null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// MarshalJSON renders the field value, or null when it was explicitly cleared.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Patch is a partial update to a canvas object. Any subset of fields may
// be present, including none at all.
type Patch struct {
	X           Field[float64] `json:"x,omitzero"`
	Y           Field[float64] `json:"y,omitzero"`
	Width       Field[float64] `json:"width,omitzero"`
	Height      Field[float64] `json:"height,omitzero"`
	X2          Field[float64] `json:"x2,omitzero"`
	Y2          Field[float64] `json:"y2,omitzero"`
	Fill        Field[string]  `json:"fill,omitzero"`
	Stroke      Field[string]  `json:"stroke,omitzero"`
	StrokeWidth Field[float64] `json:"strokeWidth,omitzero"`
	Rotation    Field[float64] `json:"rotation,omitzero"`
	Opacity     Field[float64] `json:"opacity,omitzero"`
	Text        Field[string]  `json:"text,omitzero"`
	FontSize    Field[float64] `json:"fontSize,omitzero"`
}

// IsEmpty reports whether no field was present in the update payload.
// An empty patch is valid and applies no change.
func (p Patch) IsEmpty() bool {
	return !p.X.Set && !p.Y.Set && !p.Width.Set && !p.Height.Set &&
		!p.X2.Set && !p.Y2.Set && !p.Fill.Set && !p.Stroke.Set &&
		!p.StrokeWidth.Set && !p.Rotation.Set && !p.Opacity.Set &&
		!p.Text.Set && !p.FontSize.Set
}

// Apply writes every present field onto the object. Fields that were an
// explicit null reset to the zero value for the attribute.
func (p Patch) Apply(o *Object) {
	if o == nil {
		return
	}
	applyFloat := func(f Field[float64], dst *float64) {
		if f.Set {
			*dst = f.Value
		}
	}
	applyString := func(f Field[string], dst *string) {
		if f.Set {
			*dst = f.Value
		}
	}
	applyFloat(p.X, &o.X)
	applyFloat(p.Y, &o.Y)
	applyFloat(p.Width, &o.Width)
	applyFloat(p.Height, &o.Height)
	applyFloat(p.X2, &o.X2)
	applyFloat(p.Y2, &o.Y2)
	applyString(p.Fill, &o.Fill)
	applyString(p.Stroke, &o.Stroke)
	applyFloat(p.StrokeWidth, &o.StrokeWidth)
	applyFloat(p.Rotation, &o.Rotation)
	applyFloat(p.Opacity, &o.Opacity)
	applyString(p.Text, &o.Text)
	applyFloat(p.FontSize, &o.FontSize)
}
