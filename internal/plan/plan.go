// Package plan defines the executable plan model produced by the
// planner and the sequential executor that applies it to a canvas.
package plan

import "encoding/json"

// Plan is an ordered sequence of steps plus the planner's rationale.
// Execution order is fixed by list order; step ordinals are 1-based,
// strictly increasing display metadata.
type Plan struct {
	Reasoning string `json:"reasoning,omitempty"`
	Steps     []Step `json:"steps"`
}

// Step is one operation name plus its (possibly reference-bearing)
// arguments. Arguments redundantly self-declare the operation name in
// an "operation" field, checked during validation and stripped before
// dispatch.
type Step struct {
	Ordinal     int             `json:"step"`
	Operation   string          `json:"operation"`
	Arguments   json.RawMessage `json:"arguments"`
	Description string          `json:"description,omitempty"`
}

// Result is the outcome of one executed step: the identifiers of the
// canvas objects the step affected. Operations that touch no object
// (clear on an empty canvas) produce an empty list.
type Result struct {
	IDs []string `json:"ids"`
}

// PrimaryID returns the first affected identifier, which is what a
// step reference resolves to.
func (r Result) PrimaryID() (string, bool) {
	if len(r.IDs) == 0 {
		return "", false
	}
	return r.IDs[0], true
}

// Renumber rewrites step ordinals to 1-based positions. Planner output
// sometimes arrives with missing or inconsistent numbering; list order
// is authoritative.
func (p *Plan) Renumber() {
	for i := range p.Steps {
		p.Steps[i].Ordinal = i + 1
	}
}
