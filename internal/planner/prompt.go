package planner

import (
	"fmt"
	"strings"

	"github.com/sketchflow/sketchflow/internal/schema"
)

// SystemPrompt publishes the operation vocabulary to the model: every
// operation name, its one-line description, and its argument schema,
// plus the plan envelope and the reference-token rule.
func SystemPrompt(specs []*schema.Spec) string {
	var b strings.Builder
	b.WriteString(`You translate canvas editing instructions into a JSON plan.

Respond with a single JSON object and nothing else:
{"reasoning": "<one sentence>", "steps": [{"step": 1, "operation": "<name>", "arguments": {...}, "description": "<short>"}]}

Rules:
- Use only the operations listed below; arguments must satisfy the schema exactly.
- Every step's arguments must include "operation" set to the step's operation name.
- To use an object created by an earlier step, set the field to the string "{{step_N}}" where N is that step's number. The token must be the entire field value.
- Steps run in order; a later step may reference any earlier step.
- Omit optional fields you do not need. Use null only to clear a field in an update.

Operations:
`)
	for _, spec := range specs {
		fmt.Fprintf(&b, "\n### %s\n%s\nSchema: %s\n", spec.Name, spec.Doc, spec.Raw)
	}
	return b.String()
}

// UserPrompt combines the instruction with its canvas context block.
func UserPrompt(instruction, contextText string) string {
	if contextText == "" {
		return instruction
	}
	return contextText + "\n\nInstruction: " + instruction
}
