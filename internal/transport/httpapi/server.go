// Package httpapi exposes the analysis pipeline and the worker task
// schema as an HTTP command surface.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"

	"finance-swarm/internal/application/port/input"
	"finance-swarm/internal/application/port/output"
	"finance-swarm/internal/application/run"
	"finance-swarm/internal/application/service"
	"finance-swarm/internal/domain/entity"
)

type Server struct {
	pipeline input.AnalysisPipeline
	registry *service.WorkerRegistry
	thoughts output.ThoughtStore
	logger   output.LoggerPort
	router   chi.Router
}

func NewServer(pipeline input.AnalysisPipeline, registry *service.WorkerRegistry, thoughts output.ThoughtStore, logger output.LoggerPort) *Server {
	s := &Server{
		pipeline: pipeline,
		registry: registry,
		thoughts: thoughts,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(httplog.NewLogger("finance-swarm", httplog.Options{
		JSON:    true,
		Concise: true,
	})))

	r.Get("/health", s.handleHealth)
	r.Post("/v1/analyses", s.handleRunAnalysis)
	r.Post("/v1/workers/{worker}/tasks", s.handleWorkerTask)
	r.Get("/v1/runs/{runID}/thoughts/{worker}", s.handleReadThoughts)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type analysisRequest struct {
	Topic string `json:"topic"`
}

func (s *Server) handleRunAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("request must carry a topic"))
		return
	}

	report, err := s.pipeline.Run(r.Context(), req.Topic)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type taskRequest struct {
	Topic string      `json:"topic"`
	Task  entity.Task `json:"task"`
}

type taskResponse struct {
	RunID  string         `json:"run_id"`
	Result *entity.Result `json:"result"`
}

// handleWorkerTask executes a single task on one named worker with a
// fresh run context, exposing the internal task schema externally.
func (s *Server) handleWorkerTask(w http.ResponseWriter, r *http.Request) {
	name := entity.WorkerName(chi.URLParam(r, "worker"))
	worker, ok := s.registry.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("unknown worker "+name.String()))
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Topic == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("request must carry a topic and a task"))
		return
	}

	rc := run.NewContext(req.Topic, s.thoughts)
	result, err := worker.ExecuteTask(r.Context(), req.Task, rc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse{RunID: rc.RunID(), Result: result})
}

func (s *Server) handleReadThoughts(w http.ResponseWriter, r *http.Request) {
	worker := entity.WorkerName(chi.URLParam(r, "worker"))
	runID := chi.URLParam(r, "runID")

	chain, err := s.thoughts.Read(worker, runID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chain)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)

	var (
		invalidTask   *entity.InvalidTaskError
		unknownAction *entity.UnknownActionError
		provider      *entity.ProviderError
		persistence   *entity.PersistenceError
	)
	switch {
	case errors.As(err, &invalidTask), errors.As(err, &unknownAction):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.As(err, &provider):
		writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
	case errors.As(err, &persistence):
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
