package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/sketchflow/sketchflow/internal/schema"
)

func TestParsePlanCleanJSON(t *testing.T) {
	p, err := ParsePlan(`{"reasoning":"one circle","steps":[
		{"step":1,"operation":"create_circle","arguments":{"operation":"create_circle","centerX":50,"centerY":50,"radius":10}}
	]}`)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if len(p.Steps) != 1 || p.Steps[0].Operation != "create_circle" {
		t.Fatalf("plan = %+v", p)
	}
	if p.Reasoning != "one circle" {
		t.Fatalf("reasoning = %q", p.Reasoning)
	}
}

func TestParsePlanCodeFence(t *testing.T) {
	text := "Here is the plan:\n```json\n" +
		`{"steps":[{"step":1,"operation":"clear_canvas","arguments":{"operation":"clear_canvas"}}]}` +
		"\n```\nLet me know if you need changes."
	p, err := ParsePlan(text)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if len(p.Steps) != 1 || p.Steps[0].Operation != "clear_canvas" {
		t.Fatalf("plan = %+v", p)
	}
}

func TestParsePlanBracesInsideStrings(t *testing.T) {
	p, err := ParsePlan(`{"steps":[{"step":1,"operation":"create_text","arguments":{"operation":"create_text","x":1,"y":1,"text":"use {curly} braces }{"}}]}`)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if !strings.Contains(string(p.Steps[0].Arguments), "{curly}") {
		t.Fatalf("arguments = %s", p.Steps[0].Arguments)
	}
}

func TestParsePlanRenumbers(t *testing.T) {
	p, err := ParsePlan(`{"steps":[
		{"step":7,"operation":"create_rectangle","arguments":{"x":0}},
		{"step":2,"operation":"delete_shape","arguments":{"shapeId":"a"}}
	]}`)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if p.Steps[0].Ordinal != 1 || p.Steps[1].Ordinal != 2 {
		t.Fatalf("ordinals = %d, %d", p.Steps[0].Ordinal, p.Steps[1].Ordinal)
	}
}

func TestParsePlanDefaultsMissingArguments(t *testing.T) {
	p, err := ParsePlan(`{"steps":[{"step":1,"operation":"clear_canvas"}]}`)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if string(p.Steps[0].Arguments) != "{}" {
		t.Fatalf("arguments = %q", p.Steps[0].Arguments)
	}
}

func TestParsePlanRejectsEmptySteps(t *testing.T) {
	if _, err := ParsePlan(`{"steps":[]}`); !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("err = %v, want ErrEmptyPlan", err)
	}
}

func TestParsePlanRejectsMissingOperation(t *testing.T) {
	_, err := ParsePlan(`{"steps":[{"step":1,"arguments":{}}]}`)
	if err == nil || !strings.Contains(err.Error(), "no operation") {
		t.Fatalf("err = %v", err)
	}
}

func TestParsePlanRejectsNonJSON(t *testing.T) {
	if _, err := ParsePlan("I cannot do that."); err == nil {
		t.Fatal("prose without JSON must fail")
	}
	if _, err := ParsePlan(`{"steps": [`); err == nil {
		t.Fatal("unterminated JSON must fail")
	}
}

func TestSystemPromptListsEveryOperation(t *testing.T) {
	prompt := SystemPrompt(schema.All())
	for _, spec := range schema.All() {
		if !strings.Contains(prompt, "### "+spec.Name) {
			t.Fatalf("prompt missing operation %q", spec.Name)
		}
	}
	if !strings.Contains(prompt, "{{step_N}}") {
		t.Fatal("prompt must state the reference-token rule")
	}
}

func TestUserPrompt(t *testing.T) {
	got := UserPrompt("draw a circle", "## Canvas state\nThe canvas is empty.")
	if !strings.HasPrefix(got, "## Canvas state") || !strings.HasSuffix(got, "Instruction: draw a circle") {
		t.Fatalf("user prompt = %q", got)
	}
	if UserPrompt("hi", "") != "hi" {
		t.Fatal("empty context should pass the instruction through")
	}
}
