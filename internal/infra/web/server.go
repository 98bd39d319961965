package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"codegen-agent-gateway/internal/usecase"
)

// Server exposes the public gateway surface: the run endpoint plus the
// health, root, API-document and metrics side doors.
type Server struct {
	runUC  usecase.AgentRunUseCase
	apiKey string
	dev    bool
	log    *zerolog.Logger
}

func NewServer(runUC usecase.AgentRunUseCase, apiKey string, dev bool, logger *zerolog.Logger) *Server {
	return &Server{runUC: runUC, apiKey: apiKey, dev: dev, log: logger}
}

// Routes builds the router with the shared middleware stack. Only /run-agent
// sits behind the bearer gate.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))

	r.Get("/", s.rootHandler)
	r.Get("/health", s.healthHandler)
	r.Get("/openapi.json", s.openapiHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.With(s.bearerAuth).Post("/run-agent", s.runAgentHandler)

	return r
}
