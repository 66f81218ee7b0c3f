// Package agent runs the instruction pipeline: minimize canvas context,
// ask the planner for a plan, execute it against the canvas.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sketchflow/sketchflow/internal/brief"
	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/planner"
)

// Agent coordinates one instruction end to end.
type Agent struct {
	svc      *canvas.Service
	planner  planner.Planner
	executor *plan.Executor
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Outcome reports what an instruction did: the plan the model proposed,
// the per-step results, and the context string that was sent. On a step
// failure Results covers the prefix that applied.
type Outcome struct {
	Plan    *plan.Plan    `json:"plan"`
	Results []plan.Result `json:"results"`
	Context string        `json:"context"`
}

func New(svc *canvas.Service, p planner.Planner, executor *plan.Executor, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		svc:      svc,
		planner:  p,
		executor: executor,
		logger:   logger.With("component", "agent"),
		tracer:   otel.Tracer("sketchflow/agent"),
	}
}

// Handle runs one instruction against a canvas. A *plan.StepError is
// returned with the partial Outcome when execution aborts mid-plan.
func (a *Agent) Handle(ctx context.Context, canvasID, instruction string) (*Outcome, error) {
	if instruction == "" {
		return nil, errors.New("agent: instruction is empty")
	}
	ctx, span := a.tracer.Start(ctx, "agent.handle", trace.WithAttributes(
		attribute.String("canvas.id", canvasID),
	))
	defer span.End()

	objects, err := a.svc.List(ctx, canvasID)
	if err != nil {
		return nil, fmt.Errorf("agent: list canvas: %w", err)
	}
	contextText := brief.Build(instruction, objects, true)

	proposed, err := a.planner.Plan(ctx, instruction, contextText)
	if err != nil {
		return nil, fmt.Errorf("agent: plan: %w", err)
	}
	a.logger.Info("plan proposed",
		"canvas_id", canvasID,
		"steps", len(proposed.Steps),
		"reasoning", proposed.Reasoning,
	)

	outcome := &Outcome{Plan: proposed, Context: contextText}
	results, err := a.executor.Execute(ctx, proposed, canvasID)
	outcome.Results = results
	if err != nil {
		return outcome, err
	}
	return outcome, nil
}
