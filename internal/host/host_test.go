package host

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sketchflow/sketchflow/internal/agent"
	"github.com/sketchflow/sketchflow/internal/canvas"
	"github.com/sketchflow/sketchflow/internal/config"
	"github.com/sketchflow/sketchflow/internal/ops"
	"github.com/sketchflow/sketchflow/internal/plan"
)

type stubPlanner struct {
	plan *plan.Plan
	err  error
}

func (s *stubPlanner) Plan(context.Context, string, string) (*plan.Plan, error) {
	return s.plan, s.err
}

func newTestServer(t *testing.T, p *stubPlanner) (*Server, *canvas.Service) {
	t.Helper()
	svc := canvas.NewService(nil, nil)
	registry, err := ops.NewRegistry(svc, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	a := agent.New(svc, p, plan.NewExecutor(registry, nil), nil)
	cfg := config.HostConfig{Addr: ":0", DefaultCanvas: "default"}
	return NewServer(a, svc, cfg, nil), svc
}

func postInstruction(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/instruction", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestInstructionSuccess(t *testing.T) {
	p := &stubPlanner{plan: &plan.Plan{Steps: []plan.Step{{
		Ordinal:   1,
		Operation: "create_rectangle",
		Arguments: json.RawMessage(`{"operation":"create_rectangle","x":1,"y":2,"width":10,"height":20}`),
	}}}}
	srv, svc := newTestServer(t, p)

	rec := postInstruction(t, srv, `{"canvasId":"c1","instruction":"draw a box"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	var outcome agent.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if len(outcome.Results) != 1 || len(outcome.Results[0].IDs) != 1 {
		t.Fatalf("outcome = %+v", outcome)
	}
	if _, err := svc.Get(context.Background(), "c1", outcome.Results[0].IDs[0]); err != nil {
		t.Fatalf("created object not in store: %v", err)
	}
}

func TestInstructionStepErrorReturns422(t *testing.T) {
	p := &stubPlanner{plan: &plan.Plan{Steps: []plan.Step{
		{Ordinal: 1, Operation: "create_circle",
			Arguments: json.RawMessage(`{"operation":"create_circle","centerX":5,"centerY":5,"radius":2}`)},
		{Ordinal: 2, Operation: "delete_shape",
			Arguments: json.RawMessage(`{"operation":"delete_shape","shapeId":"ghost"}`)},
	}}}
	srv, _ := newTestServer(t, p)

	rec := postInstruction(t, srv, `{"instruction":"do two things"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	var resp struct {
		Error   string        `json:"error"`
		Step    int           `json:"step"`
		Kind    string        `json:"kind"`
		Results []plan.Result `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Step != 2 || resp.Kind != string(plan.ErrActionFailure) {
		t.Fatalf("resp = %+v", resp)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %+v, want the applied prefix", resp.Results)
	}
}

func TestInstructionBadRequests(t *testing.T) {
	srv, _ := newTestServer(t, &stubPlanner{})

	if rec := postInstruction(t, srv, `{not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid JSON status = %d", rec.Code)
	}
	if rec := postInstruction(t, srv, `{"canvasId":"c1"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing instruction status = %d", rec.Code)
	}
}

func TestInstructionPlannerFailureReturns502(t *testing.T) {
	p := &stubPlanner{err: context.DeadlineExceeded}
	srv, _ := newTestServer(t, p)
	rec := postInstruction(t, srv, `{"instruction":"anything"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestObjectsEndpoint(t *testing.T) {
	srv, svc := newTestServer(t, &stubPlanner{})
	for range 2 {
		if _, err := svc.Create(context.Background(), &canvas.Object{CanvasID: "c9", Type: canvas.ShapeCircle, Width: 4, Height: 4}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/objects?canvas=c9", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		CanvasID string           `json:"canvasId"`
		Objects  []*canvas.Object `json:"objects"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CanvasID != "c9" || len(resp.Objects) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestObjectsDefaultsCanvas(t *testing.T) {
	srv, svc := newTestServer(t, &stubPlanner{})
	if _, err := svc.Create(context.Background(), &canvas.Object{CanvasID: "default", Type: canvas.ShapeText}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/objects", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	var resp struct {
		CanvasID string `json:"canvasId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CanvasID != "default" {
		t.Fatalf("canvasId = %q", resp.CanvasID)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubPlanner{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("health = %d %s", rec.Code, rec.Body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubPlanner{})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
}
