package host

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sketchflow/sketchflow/internal/plan"
)

type instructionRequest struct {
	CanvasID    string `json:"canvasId,omitempty"`
	Instruction string `json:"instruction"`
}

type errorResponse struct {
	Error string `json:"error"`
	Step  int    `json:"step,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) handleInstruction(w http.ResponseWriter, r *http.Request) {
	var req instructionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if req.Instruction == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "instruction is required"})
		return
	}
	canvasID := s.canvasID(req.CanvasID)

	outcome, err := s.agent.Handle(r.Context(), canvasID, req.Instruction)
	if err != nil {
		var stepErr *plan.StepError
		if errors.As(err, &stepErr) {
			s.logger.Warn("instruction aborted",
				"canvas_id", canvasID,
				"step", stepErr.Ordinal,
				"kind", stepErr.Kind,
			)
			writeJSON(w, http.StatusUnprocessableEntity, struct {
				errorResponse
				Results []plan.Result `json:"results"`
			}{
				errorResponse{Error: stepErr.Error(), Step: stepErr.Ordinal, Kind: string(stepErr.Kind)},
				outcome.Results,
			})
			return
		}
		s.logger.Error("instruction failed", "canvas_id", canvasID, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	canvasID := s.canvasID(r.URL.Query().Get("canvas"))
	objects, err := s.svc.List(r.Context(), canvasID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"canvasId": canvasID,
		"objects":  objects,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
