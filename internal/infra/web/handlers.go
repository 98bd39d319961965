package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"codegen-agent-gateway/internal/infra/logging"
	"codegen-agent-gateway/internal/infra/metrics"
	"codegen-agent-gateway/internal/usecase"
)

type runAgentRequest struct {
	Prompt string `json:"prompt"`
}

// runAgentResponse is the wire shape for every handled outcome. Status is
// always set; at most one of Result and Error is.
type runAgentResponse struct {
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	TaskID string `json:"task_id,omitempty"`
}

func toResponse(res *usecase.RunResult) runAgentResponse {
	return runAgentResponse{
		Status: res.Status,
		Result: res.Result,
		Error:  res.Error,
		TaskID: res.TaskID,
	}
}

// runAgentHandler drives one full run: decode, submit, poll, map. Timeouts
// and failed tasks are still 200s; only transport-level trouble with the
// agent service becomes a 500.
func (s *Server) runAgentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logging.With(ctx, s.log)

	var req runAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "prompt must not be empty")
		return
	}

	l.Info().Str("prompt", logging.Redact(req.Prompt, s.dev)).Msg("received agent run request")

	start := time.Now()
	res, err := s.runUC.Run(ctx, req.Prompt)
	if err != nil {
		l.Error().Err(err).Msg("agent run error")
		metrics.ObserveAgentRun("error", time.Since(start).Milliseconds())
		writeDetail(w, http.StatusInternalServerError, "An internal error occurred: "+err.Error())
		return
	}
	metrics.ObserveAgentRun(string(res.Outcome), time.Since(start).Milliseconds())
	writeJSON(w, http.StatusOK, toResponse(res))
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rootHandler answers the bare path for humans poking the service. The route
// does not appear in the served API document.
func (s *Server) rootHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Codegen SDK Wrapper API is running."})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail emits the {"detail": ...} error shape used across the API.
func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
