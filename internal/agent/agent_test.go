package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/ops"
	"github.com/sketchflow/sketchflow/internal/plan"
)

// scriptedPlanner returns a fixed plan and records what it was asked.
type scriptedPlanner struct {
	plan        *plan.Plan
	err         error
	instruction string
	contextText string
}

func (s *scriptedPlanner) Plan(_ context.Context, instruction, contextText string) (*plan.Plan, error) {
	s.instruction = instruction
	s.contextText = contextText
	return s.plan, s.err
}

func newTestAgent(t *testing.T, p *scriptedPlanner) (*Agent, *canvas.Service) {
	t.Helper()
	svc := canvas.NewService(nil, nil)
	registry, err := ops.NewRegistry(svc, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return New(svc, p, plan.NewExecutor(registry, nil), nil), svc
}

func steps(pairs ...[2]string) *plan.Plan {
	p := &plan.Plan{}
	for i, pair := range pairs {
		p.Steps = append(p.Steps, plan.Step{
			Ordinal:   i + 1,
			Operation: pair[0],
			Arguments: json.RawMessage(pair[1]),
		})
	}
	return p
}

func TestHandleRunsPlanAgainstCanvas(t *testing.T) {
	p := &scriptedPlanner{plan: steps(
		[2]string{"create_rectangle", `{"operation":"create_rectangle","x":0,"y":0,"width":10,"height":10}`},
		[2]string{"update_shape", `{"operation":"update_shape","shapeId":"{{step_1}}","updates":{"fill":"#123456"}}`},
	)}
	a, svc := newTestAgent(t, p)

	outcome, err := a.Handle(context.Background(), "c1", "make a box and color it")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(outcome.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(outcome.Results))
	}
	id, _ := outcome.Results[0].PrimaryID()
	obj, err := svc.Get(context.Background(), "c1", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if obj.Fill != "#123456" {
		t.Fatalf("fill = %q", obj.Fill)
	}
}

func TestHandleSendsMinimizedContext(t *testing.T) {
	p := &scriptedPlanner{plan: steps(
		[2]string{"clear_canvas", `{"operation":"clear_canvas"}`},
	)}
	a, svc := newTestAgent(t, p)
	for range 3 {
		if _, err := svc.Create(context.Background(), &canvas.Object{CanvasID: "c1", Type: canvas.ShapeCircle, Width: 2, Height: 2}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if _, err := a.Handle(context.Background(), "c1", "clear the canvas"); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if p.instruction != "clear the canvas" {
		t.Fatalf("planner saw instruction %q", p.instruction)
	}
	if !strings.Contains(p.contextText, "## Canvas state") {
		t.Fatalf("context missing header: %q", p.contextText)
	}
	if !strings.Contains(p.contextText, "remove all 3 objects") {
		t.Fatalf("context = %q", p.contextText)
	}
}

func TestHandleReturnsPartialOutcomeOnStepError(t *testing.T) {
	p := &scriptedPlanner{plan: steps(
		[2]string{"create_circle", `{"operation":"create_circle","centerX":10,"centerY":10,"radius":5}`},
		[2]string{"delete_shape", `{"operation":"delete_shape","shapeId":"ghost"}`},
	)}
	a, _ := newTestAgent(t, p)

	outcome, err := a.Handle(context.Background(), "c1", "do things")
	var stepErr *plan.StepError
	if !errors.As(err, &stepErr) || stepErr.Ordinal != 2 {
		t.Fatalf("err = %v, want step error at 2", err)
	}
	if outcome == nil || len(outcome.Results) != 1 {
		t.Fatalf("outcome = %+v, want the applied prefix", outcome)
	}
}

func TestHandleRejectsEmptyInstruction(t *testing.T) {
	a, _ := newTestAgent(t, &scriptedPlanner{})
	if _, err := a.Handle(context.Background(), "c1", ""); err == nil {
		t.Fatal("empty instruction must fail")
	}
}

func TestHandlePlannerFailure(t *testing.T) {
	p := &scriptedPlanner{err: errors.New("model unavailable")}
	a, _ := newTestAgent(t, p)
	if _, err := a.Handle(context.Background(), "c1", "anything"); err == nil || !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("err = %v", err)
	}
}
