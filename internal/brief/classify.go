package brief

import (
	"strings"

	"github.com/sketchflow/sketchflow/internal/canvas"
)

// Category predicates, applied in order against the lower-cased
// instruction; first match wins. Creation is checked before deletion so
// "add a red circle" never reads the deletion verbs out of context.

var creationVerbs = []string{"create", "add", "draw", "make", "generate", "build"}

var shapeNouns = []string{
	"rectangle", "rect", "square", "circle", "ellipse", "text", "label",
	"line", "shape", "grid", "row", "form", "navbar", "card", "button",
}

var clearPhrases = []string{
	"clear", "reset", "delete all", "remove all", "delete everything",
	"remove everything", "start fresh", "start over",
}

var deletionVerbs = []string{"delete", "remove", "erase"}

var moveVerbs = []string{"move", "position", "place", "align", "shift"}

var updateVerbs = []string{
	"change", "update", "modify", "resize", "rotate", "scale",
	"enlarge", "shrink", "recolor",
}

var relativeTransformVerbs = []string{"rotate", "scale", "enlarge", "shrink"}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func isCreation(text string) bool {
	return containsAny(text, creationVerbs) && containsAny(text, shapeNouns)
}

func isClearAll(text string) bool {
	return containsAny(text, clearPhrases)
}

func isDeletion(text string) bool {
	return containsAny(text, deletionVerbs)
}

func isMove(text string) bool {
	return containsAny(text, moveVerbs)
}

func isUpdate(text string) bool {
	return containsAny(text, updateVerbs)
}

func isHowMany(text string) bool {
	return strings.Contains(text, "how many") || strings.Contains(text, "count")
}

func targetsAll(text string) bool {
	return strings.Contains(text, "all") || strings.Contains(text, "every")
}

func isRelativeTransform(text string) bool {
	return containsAny(text, relativeTransformVerbs)
}

// implicatedProperty picks which property class an update instruction
// acts on, so the context carries only that value.
func implicatedProperty(text string) string {
	switch {
	case containsAny(text, []string{"color", "colour", "fill", "recolor"}) || extractColor(text) != "":
		return "color"
	case containsAny(text, []string{"resize", "size", "scale", "enlarge", "shrink", "bigger", "smaller", "wider", "taller", "width", "height"}):
		return "size"
	case containsAny(text, []string{"rotate", "rotation", "angle", "turn", "spin", "tilt"}):
		return "rotation"
	default:
		return "attributes"
	}
}

// namedColors maps the color words an instruction may use to the hex
// values objects are typically filled with. Matching accepts either the
// word itself or its hex form.
var namedColors = map[string]string{
	"red":    "#ff0000",
	"green":  "#00ff00",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
	"pink":   "#ffc0cb",
	"black":  "#000000",
	"white":  "#ffffff",
	"gray":   "#808080",
	"grey":   "#808080",
	"cyan":   "#00ffff",
}

func extractColor(text string) string {
	for name := range namedColors {
		if strings.Contains(text, name) {
			return name
		}
	}
	return ""
}

// typeAliases maps instruction nouns to stored shape types.
var typeAliases = map[string]canvas.ShapeType{
	"rectangle": canvas.ShapeRectangle,
	"rect":      canvas.ShapeRectangle,
	"square":    canvas.ShapeRectangle,
	"circle":    canvas.ShapeCircle,
	"ellipse":   canvas.ShapeCircle,
	"text":      canvas.ShapeText,
	"label":     canvas.ShapeText,
	"line":      canvas.ShapeLine,
}

func extractType(text string) (canvas.ShapeType, bool) {
	// Longest aliases first so "rectangle" wins over "rect".
	for _, alias := range []string{"rectangle", "ellipse", "square", "circle", "label", "rect", "text", "line"} {
		if strings.Contains(text, alias) {
			return typeAliases[alias], true
		}
	}
	return "", false
}

// filterByQualifier narrows the object set by any color or type word in
// the instruction. The returned label names the applied filter; an
// empty label means no qualifier was found and no filtering happened.
func filterByQualifier(text string, objects []*canvas.Object) ([]*canvas.Object, string) {
	if color := extractColor(text); color != "" {
		hex := namedColors[color]
		matched := make([]*canvas.Object, 0, len(objects))
		for _, obj := range objects {
			fill := strings.ToLower(obj.Fill)
			if fill == color || fill == hex {
				matched = append(matched, obj)
			}
		}
		return matched, color
	}
	if shapeType, ok := extractType(text); ok {
		matched := make([]*canvas.Object, 0, len(objects))
		for _, obj := range objects {
			if obj.Type == shapeType {
				matched = append(matched, obj)
			}
		}
		return matched, string(shapeType)
	}
	return objects, ""
}
