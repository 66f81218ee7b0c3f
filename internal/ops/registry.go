// Package ops binds every operation name to its argument contract and
// the canvas action that performs the effect.
package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/plan"
	"github.com/sketchflow/sketchflow/internal/schema"
)

// ActionFunc performs one operation's canvas mutation. Arguments arrive
// validated and with the discriminator already stripped.
type ActionFunc func(ctx context.Context, canvasID string, args json.RawMessage) (plan.Result, error)

type entry struct {
	spec   *schema.Spec
	action ActionFunc
}

func (e *entry) Validate(raw json.RawMessage) (json.RawMessage, error) {
	return e.spec.Validate(raw)
}

func (e *entry) Invoke(ctx context.Context, canvasID string, args json.RawMessage) (plan.Result, error) {
	return e.action(ctx, canvasID, args)
}

// Registry is the static operation table: built once at startup,
// immutable afterwards, and passed by reference to the executor.
type Registry struct {
	entries map[string]*entry
	specs   []*schema.Spec
}

// NewRegistry builds the registry over a canvas service. Every
// operation in the schema vocabulary must have an action; a missing
// binding is a programmer error caught at startup.
func NewRegistry(svc *canvas.Service, logger *slog.Logger) (*Registry, error) {
	if svc == nil {
		return nil, fmt.Errorf("ops: canvas service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	a := &actions{svc: svc, logger: logger.With("component", "ops")}

	bindings := map[string]ActionFunc{
		schema.OpCreateRectangle:    a.createRectangle,
		schema.OpCreateCircle:       a.createCircle,
		schema.OpCreateText:         a.createText,
		schema.OpCreateLine:         a.createLine,
		schema.OpUpdateShape:        a.updateShape,
		schema.OpMoveShape:          a.moveShape,
		schema.OpResizeShape:        a.resizeShape,
		schema.OpRotateShape:        a.rotateShape,
		schema.OpDeleteShape:        a.deleteShape,
		schema.OpBatchOperations:    a.batchOperations,
		schema.OpBatchTransform:     a.batchTransform,
		schema.OpClearCanvas:        a.clearCanvas,
		schema.OpCreateGrid:         a.createGrid,
		schema.OpCreateRow:          a.createRow,
		schema.OpCreateCircleRow:    a.createCircleRow,
		schema.OpCreateRandomShapes: a.createRandomShapes,
		schema.OpCreateLoginForm:    a.createLoginForm,
		schema.OpCreateNavbar:       a.createNavbar,
		schema.OpCreateCard:         a.createCard,
	}

	specs := schema.All()
	entries := make(map[string]*entry, len(specs))
	for _, spec := range specs {
		action, ok := bindings[spec.Name]
		if !ok {
			return nil, fmt.Errorf("ops: no action bound for operation %q", spec.Name)
		}
		entries[spec.Name] = &entry{spec: spec, action: action}
	}
	return &Registry{entries: entries, specs: specs}, nil
}

// Lookup returns the operation for a name, or false when the name is
// outside the vocabulary.
func (r *Registry) Lookup(name string) (plan.Operation, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e, true
}

// Specs returns every operation contract, sorted by name, for
// publication to the planner.
func (r *Registry) Specs() []*schema.Spec {
	return r.specs
}
