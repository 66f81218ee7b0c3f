package plan

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sketchflow/sketchflow/internal/schema"
)

// Operation is one executable entry resolved from the registry.
type Operation interface {
	// Validate checks raw arguments against the operation contract and
	// returns them unchanged on success.
	Validate(raw json.RawMessage) (json.RawMessage, error)

	// Invoke performs the canvas mutation with discriminator-stripped
	// arguments and returns the affected object identifiers.
	Invoke(ctx context.Context, canvasID string, args json.RawMessage) (Result, error)
}

// Invoker resolves operation names. The registry implements it; tests
// substitute fakes so the executor is exercised in isolation.
type Invoker interface {
	Lookup(name string) (Operation, bool)
}

// Executor walks a plan's steps strictly in list order: resolve
// references, validate, dispatch, record. Later steps may consume
// earlier results, so steps are never parallelized. The first failure
// aborts the plan; already-applied mutations stay applied (undo belongs
// to the history subsystem, not here).
type Executor struct {
	invoker Invoker
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// NewExecutor creates a plan executor over the given operation set.
func NewExecutor(invoker Invoker, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		invoker: invoker,
		logger:  logger.With("component", "executor"),
		tracer:  otel.Tracer("sketchflow/plan"),
	}
}

func (e *Executor) SetMetrics(metrics *Metrics) {
	if e == nil {
		return
	}
	e.metrics = metrics
}

// Execute runs every step of the plan against the canvas and returns
// the per-step results. On failure the returned error is a *StepError
// and the results of the steps that completed are returned alongside
// it.
func (e *Executor) Execute(ctx context.Context, p *Plan, canvasID string) ([]Result, error) {
	ctx, span := e.tracer.Start(ctx, "plan.execute", trace.WithAttributes(
		attribute.String("canvas.id", canvasID),
		attribute.Int("plan.steps", len(p.Steps)),
	))
	defer span.End()

	if e.metrics != nil {
		e.metrics.RecordPlan()
	}

	results := make([]Result, 0, len(p.Steps))
	for i, step := range p.Steps {
		ordinal := step.Ordinal
		if ordinal <= 0 {
			ordinal = i + 1
		}
		result, err := e.executeStep(ctx, step, ordinal, canvasID, results)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if e.metrics != nil {
				e.metrics.RecordPlanFailure()
			}
			e.logger.Error("plan aborted",
				"canvas_id", canvasID,
				"step", ordinal,
				"operation", step.Operation,
				"error", err,
			)
			return results, err
		}
		results = append(results, result)
	}

	e.logger.Info("plan executed",
		"canvas_id", canvasID,
		"steps", len(p.Steps),
	)
	return results, nil
}

func (e *Executor) executeStep(ctx context.Context, step Step, ordinal int, canvasID string, prior []Result) (Result, error) {
	ctx, span := e.tracer.Start(ctx, "plan.step", trace.WithAttributes(
		attribute.Int("step.ordinal", ordinal),
		attribute.String("step.operation", step.Operation),
	))
	defer span.End()

	start := time.Now()
	fail := func(kind ErrorKind, err error) (Result, error) {
		if e.metrics != nil {
			e.metrics.RecordStepFailure(kind)
		}
		return Result{}, &StepError{Ordinal: ordinal, Op: step.Operation, Kind: kind, Err: err}
	}

	resolved, err := ResolveArguments(step.Arguments, prior)
	if err != nil {
		return fail(ErrUnresolvedReference, err)
	}

	op, ok := e.invoker.Lookup(step.Operation)
	if !ok {
		return fail(ErrUnknownOperation, errUnknownOp(step.Operation))
	}

	validated, err := op.Validate(resolved)
	if err != nil {
		return fail(ErrSchemaViolation, err)
	}

	// The discriminator served its purpose during validation; the
	// action receives only real arguments.
	args, err := schema.StripOperation(validated)
	if err != nil {
		return fail(ErrSchemaViolation, err)
	}

	result, err := op.Invoke(ctx, canvasID, args)
	if err != nil {
		return fail(ErrActionFailure, err)
	}

	if e.metrics != nil {
		e.metrics.RecordStep(step.Operation, time.Since(start))
	}
	e.logger.Debug("step applied",
		"canvas_id", canvasID,
		"step", ordinal,
		"operation", step.Operation,
		"affected", len(result.IDs),
	)
	return result, nil
}

type unknownOpError string

func errUnknownOp(name string) error { return unknownOpError(name) }

func (e unknownOpError) Error() string {
	return "operation " + string(e) + " is not registered"
}
