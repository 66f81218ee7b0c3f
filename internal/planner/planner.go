// Package planner turns a user instruction plus a minimized canvas
// context into an executable plan by calling a language model. The
// executor validates everything the planner proposes; this package only
// has to get a well-formed plan structure out of model text.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sketchflow/sketchflow/internal/plan"
)

// ErrEmptyPlan is returned when the model answers with no steps.
var ErrEmptyPlan = errors.New("planner: model returned an empty plan")

// Planner proposes a plan for an instruction. contextText is the
// minimized canvas description built for this instruction.
type Planner interface {
	Plan(ctx context.Context, instruction, contextText string) (*plan.Plan, error)
}

// ParsePlan extracts the plan JSON from raw model output. Models wrap
// answers in prose or code fences often enough that this scans for the
// outermost JSON object instead of requiring clean output. Step
// numbering is rewritten to list order.
func ParsePlan(text string) (*plan.Plan, error) {
	payload, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var p plan.Plan
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("planner: decode plan: %w", err)
	}
	if len(p.Steps) == 0 {
		return nil, ErrEmptyPlan
	}
	for i, step := range p.Steps {
		if step.Operation == "" {
			return nil, fmt.Errorf("planner: step %d has no operation", i+1)
		}
		if len(step.Arguments) == 0 {
			p.Steps[i].Arguments = json.RawMessage(`{}`)
		}
	}
	p.Renumber()
	return &p, nil
}

// extractJSON returns the outermost {...} block in the text, honoring
// strings so braces inside argument values do not unbalance the scan.
func extractJSON(text string) (json.RawMessage, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, errors.New("planner: no JSON object in model output")
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return json.RawMessage(text[start : i+1]), nil
			}
		}
	}
	return nil, errors.New("planner: unterminated JSON object in model output")
}
