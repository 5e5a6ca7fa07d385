// Package server exposes the generation pipeline over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davinci-studio/imagine/client"
	"github.com/davinci-studio/imagine/internal/history"
	"github.com/davinci-studio/imagine/internal/metrics"
	"github.com/davinci-studio/imagine/models"
)

// maxBatchSize bounds one batch request; the studio UI never asks for more.
const maxBatchSize = 10

// Server wires the orchestration client, history store and metrics behind
// the HTTP boundary.
type Server struct {
	client  *client.Client
	history *history.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New creates a Server. history and metrics may be nil to disable those
// surfaces.
func New(c *client.Client, hist *history.Store, m *metrics.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{client: c, history: hist, metrics: m, logger: logger}
}

// Routes builds the request handler: the mux wrapped in panic recovery, so
// an unexpected handler failure surfaces as a 500 instead of a dropped
// connection.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /generate/batch", s.handleGenerateBatch)
	mux.HandleFunc("GET /models", s.handleModels)
	mux.HandleFunc("GET /models/available", s.handleAvailableModels)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /generations", s.handleGenerations)
	mux.HandleFunc("GET /generations/{id}", s.handleGenerationByID)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return s.recoverPanics(mux)
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				writeJSON(w, http.StatusInternalServerError,
					models.NewFailure("", "", models.ErrCodeInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	var in client.GenerateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest,
			models.NewFailure("", "", models.ErrCodeInvalidRequest, "invalid JSON body: "+err.Error()))
		return
	}

	start := time.Now()
	resp := s.client.Generate(r.Context(), in)
	s.record(in.Prompt, resp, time.Since(start))

	s.logger.Info("generation completed",
		zap.String("request_id", requestID),
		zap.String("provider", resp.Provider),
		zap.String("model", resp.Model),
		zap.Bool("success", resp.Success),
		zap.Duration("elapsed", time.Since(start)),
	)

	writeJSON(w, statusFor(resp), resp)
}

func (s *Server) handleGenerateBatch(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	var body struct {
		Requests []client.GenerateInput `json:"requests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest,
			models.NewFailure("", "", models.ErrCodeInvalidRequest, "invalid JSON body: "+err.Error()))
		return
	}
	if len(body.Requests) == 0 || len(body.Requests) > maxBatchSize {
		writeJSON(w, http.StatusBadRequest,
			models.NewFailure("", "", models.ErrCodeInvalidRequest, "requests must contain between 1 and 10 entries"))
		return
	}

	start := time.Now()
	results := s.client.GenerateBatch(r.Context(), body.Requests)
	for i, resp := range results {
		s.record(body.Requests[i].Prompt, resp, 0)
	}

	s.logger.Info("batch completed",
		zap.String("request_id", requestID),
		zap.Int("count", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"providers": s.client.Registry().ProvidersInfo(),
	})
}

func (s *Server) handleAvailableModels(w http.ResponseWriter, r *http.Request) {
	available := s.client.Registry().AvailableModels()
	if available == nil {
		available = []models.AvailableModel{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": available})
}

type providerHealth struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	providers := s.client.Registry().Providers()
	statuses := make([]providerHealth, 0, len(providers))
	for _, p := range providers {
		status := providerHealth{ID: p.ID(), Available: true}
		if err := p.Availability(); err != nil {
			status.Available = false
			status.Error = err.Error()
		}
		statuses = append(statuses, status)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": statuses,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleGenerations(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history disabled"})
		return
	}
	records := s.history.List()
	if records == nil {
		records = []history.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": records})
}

func (s *Server) handleGenerationByID(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "history disabled"})
		return
	}
	rec, ok := s.history.Get(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "generation not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// record feeds a completed attempt into history and metrics.
func (s *Server) record(prompt string, resp *models.GenerationResponse, elapsed time.Duration) {
	if s.history != nil {
		s.history.Add(prompt, resp)
	}
	if s.metrics != nil {
		outcome := "success"
		if !resp.Success {
			outcome = string(resp.ErrorCode)
		}
		s.metrics.ObserveGeneration(resp.Provider, outcome, elapsed)
	}
}

// statusFor maps the failure taxonomy onto HTTP statuses: caller mistakes are
// 400, an unconfigured provider is 503, and any completed adapter attempt,
// success or vendor failure, is 200.
func statusFor(resp *models.GenerationResponse) int {
	if resp.Success {
		return http.StatusOK
	}
	switch resp.ErrorCode {
	case models.ErrCodeInvalidRequest, models.ErrCodeModelNotFound:
		return http.StatusBadRequest
	case models.ErrCodeProviderUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
