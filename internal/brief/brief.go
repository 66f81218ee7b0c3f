// Package brief condenses canvas state into the smallest textual
// description a planner needs for a given instruction. Planner cost
// scales with input size, so each intent category emits only the
// attributes that category can act on; anything unrecognized falls
// through to a bounded general summary.
package brief

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sketchflow/sketchflow/internal/canvas"
)

// Listing caps. Past the cap the remainder is summarized as a count.
const (
	maxMoveListed     = 20
	maxUpdateAll      = 15
	maxUpdateFiltered = 10
	maxDefaultSample  = 10

	// Above this size, a rotate/scale over "all" objects lists bare
	// identifiers with no property values.
	idsOnlyThreshold = 10
)

const header = "## Canvas state"

// Build classifies the instruction and produces the minimal context
// string for that intent. It is a pure function and never fails:
// unmatched instructions get the bounded default summary. withHeader
// prepends a section header for callers that stack context blocks.
func Build(instruction string, objects []*canvas.Object, withHeader bool) string {
	text := strings.ToLower(instruction)
	var body string

	switch {
	case isCreation(text):
		body = fmt.Sprintf("The canvas currently has %d objects.", len(objects))

	case isClearAll(text):
		body = fmt.Sprintf("Clearing will remove all %d objects.", len(objects))

	case isDeletion(text):
		body = deletionContext(text, objects)

	case isMove(text):
		body = moveContext(text, objects)

	case isUpdate(text):
		body = updateContext(text, objects)

	case isHowMany(text):
		body = countsByType(objects)

	default:
		body = defaultSummary(objects)
	}

	if withHeader {
		return header + "\n" + body
	}
	return body
}

func deletionContext(text string, objects []*canvas.Object) string {
	matched, label := filterByQualifier(text, objects)
	if label == "" {
		return fmt.Sprintf("Deletion targets: all %d objects. IDs: %s",
			len(objects), idList(objects, len(objects)))
	}
	if len(matched) == 0 {
		return fmt.Sprintf("No objects match %q. The canvas has %d objects.", label, len(objects))
	}
	lines := make([]string, 0, len(matched)+1)
	lines = append(lines, fmt.Sprintf("Objects matching %q (%d):", label, len(matched)))
	for _, obj := range matched {
		lines = append(lines, fmt.Sprintf("- %s (%s, fill %s)", obj.ID, obj.Type, obj.Fill))
	}
	return strings.Join(lines, "\n")
}

func moveContext(text string, objects []*canvas.Object) string {
	matched, label := filterByQualifier(text, objects)
	if label == "" {
		matched = objects
		label = "all objects"
	}
	listed := matched
	var overflow int
	if targetsAll(text) && len(listed) > maxMoveListed {
		overflow = len(listed) - maxMoveListed
		listed = listed[:maxMoveListed]
	}
	lines := make([]string, 0, len(listed)+2)
	lines = append(lines, fmt.Sprintf("Positions of %s (%d):", label, len(matched)))
	for _, obj := range listed {
		lines = append(lines, fmt.Sprintf("- %s at (%.0f, %.0f)", obj.ID, obj.X, obj.Y))
	}
	if overflow > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more", overflow))
	}
	return strings.Join(lines, "\n")
}

func updateContext(text string, objects []*canvas.Object) string {
	matched, label := filterByQualifier(text, objects)
	all := label == ""
	if all {
		matched = objects
		label = "all objects"
	}

	// A bulk rotate/scale only needs targets, not current values.
	if targetsAll(text) && isRelativeTransform(text) && len(matched) > idsOnlyThreshold {
		return fmt.Sprintf("Targets (%d): %s", len(matched), idList(matched, len(matched)))
	}

	limit := maxUpdateFiltered
	if all {
		limit = maxUpdateAll
	}
	listed := matched
	var overflow int
	if len(listed) > limit {
		overflow = len(listed) - limit
		listed = listed[:limit]
	}

	property := implicatedProperty(text)
	lines := make([]string, 0, len(listed)+2)
	lines = append(lines, fmt.Sprintf("Current %s of %s (%d):", property, label, len(matched)))
	for _, obj := range listed {
		lines = append(lines, "- "+obj.ID+" "+propertyValue(obj, property))
	}
	if overflow > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more", overflow))
	}
	return strings.Join(lines, "\n")
}

func countsByType(objects []*canvas.Object) string {
	counts := map[canvas.ShapeType]int{}
	for _, obj := range objects {
		counts[obj.Type]++
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", t, counts[canvas.ShapeType(t)]))
	}
	if len(parts) == 0 {
		return "The canvas is empty."
	}
	return fmt.Sprintf("Object counts by type: %s. Total: %d.", strings.Join(parts, ", "), len(objects))
}

func defaultSummary(objects []*canvas.Object) string {
	if len(objects) == 0 {
		return "The canvas is empty."
	}
	listed := objects
	var overflow int
	if len(listed) > maxDefaultSample {
		overflow = len(listed) - maxDefaultSample
		listed = listed[:maxDefaultSample]
	}
	lines := make([]string, 0, len(listed)+2)
	lines = append(lines, fmt.Sprintf("The canvas has %d objects:", len(objects)))
	for _, obj := range listed {
		line := fmt.Sprintf("- %s %s at (%.0f, %.0f) size %.0fx%.0f fill %s",
			obj.ID, obj.Type, obj.X, obj.Y, obj.Width, obj.Height, obj.Fill)
		if obj.Type == canvas.ShapeText {
			line += fmt.Sprintf(" text %q", obj.Text)
		}
		lines = append(lines, line)
	}
	if overflow > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more", overflow))
	}
	return strings.Join(lines, "\n")
}

func idList(objects []*canvas.Object, limit int) string {
	ids := make([]string, 0, limit)
	for i, obj := range objects {
		if i >= limit {
			break
		}
		ids = append(ids, obj.ID)
	}
	return strings.Join(ids, ", ")
}

func propertyValue(obj *canvas.Object, property string) string {
	switch property {
	case "color":
		return "fill " + obj.Fill
	case "size":
		return fmt.Sprintf("size %.0fx%.0f", obj.Width, obj.Height)
	case "rotation":
		return fmt.Sprintf("rotation %.0f", obj.Rotation)
	default:
		return fmt.Sprintf("(%s at %.0f,%.0f size %.0fx%.0f fill %s)",
			obj.Type, obj.X, obj.Y, obj.Width, obj.Height, obj.Fill)
	}
}
