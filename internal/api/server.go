// Package api exposes the evaluation engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fraud-eval-lab/internal/domain"
	"fraud-eval-lab/internal/evaluation"
	"fraud-eval-lab/internal/observability"
	"fraud-eval-lab/internal/reporting"
	"fraud-eval-lab/internal/storage"
)

// Server holds the HTTP handlers for the evaluation API.
type Server struct {
	evaluator *evaluation.Evaluator
	store     storage.ReportStore
	trends    *reporting.Generator // nil when no history sink configured
	logger    *log.Logger

	mu             sync.Mutex
	startedAt      time.Time
	evaluationRuns int
	lastEvaluation time.Time
}

// NewServer creates an API server.
func NewServer(evaluator *evaluation.Evaluator, store storage.ReportStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		evaluator: evaluator,
		store:     store,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// WithTrends adds the trend endpoint backed by a metric history store.
func (s *Server) WithTrends(trends *reporting.Generator) *Server {
	s.trends = trends
	return s
}

// Routes returns the HTTP mux with all endpoints registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/fraud/evaluate", s.handleEvaluate)
	mux.HandleFunc("/api/v1/fraud/latest-report", s.handleLatestReport)
	mux.HandleFunc("/api/v1/fraud/reports", s.handleListReports)
	mux.HandleFunc("/api/v1/fraud/reports/", s.handleGetReport)
	mux.HandleFunc("/api/v1/fraud/trend", s.handleTrend)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/status", s.handleStatus)

	return mux
}

// evaluateRequest is the POST /evaluate body. The synthetic_data and
// model_output aliases are accepted for compatibility with older agents.
type evaluateRequest struct {
	GroundTruth []domain.GroundTruthRecord `json:"ground_truth"`
	Predictions []domain.PredictionRecord  `json:"predictions"`

	SyntheticData []domain.GroundTruthRecord `json:"synthetic_data"`
	ModelOutput   []domain.PredictionRecord  `json:"model_output"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleEvaluate runs one evaluation over the posted batch.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	groundTruth := req.GroundTruth
	if groundTruth == nil {
		groundTruth = req.SyntheticData
	}
	predictions := req.Predictions
	if predictions == nil {
		predictions = req.ModelOutput
	}

	start := time.Now()
	stored, err := s.evaluator.Evaluate(r.Context(), groundTruth, predictions)
	if err != nil {
		if errors.Is(err, evaluation.ErrLengthMismatch) {
			observability.RecordEvaluation("rejected", time.Since(start).Seconds(), 0)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Printf("Evaluation failed: %v", err)
		observability.RecordEvaluation("error", time.Since(start).Seconds(), 0)
		writeError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}

	observability.RecordEvaluation("ok", time.Since(start).Seconds(), stored.Metadata.TotalSamples)
	observability.RecordEvaluationScores(stored.Metrics.F1Score, stored.Metrics.AUCROC, stored.Metadata.Timestamp.Unix())

	s.mu.Lock()
	s.evaluationRuns++
	s.lastEvaluation = time.Now()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stored)
}

// handleLatestReport returns the most recently written report.
func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	report, err := s.evaluator.Latest(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no evaluation report available")
			return
		}
		s.logger.Printf("Latest report lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "report lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleListReports returns all report identifiers in write order.
func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ids, err := s.store.ListIDs(r.Context())
	if err != nil {
		s.logger.Printf("Report listing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "report listing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"report_ids": ids})
}

// handleGetReport returns one report by identifier.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reportID := r.URL.Path[len("/api/v1/fraud/reports/"):]
	if reportID == "" {
		writeError(w, http.StatusBadRequest, "report id required")
		return
	}

	report, err := s.store.GetByID(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found: "+reportID)
			return
		}
		s.logger.Printf("Report lookup failed for %s: %v", reportID, err)
		writeError(w, http.StatusInternalServerError, "report lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleTrend returns a trend summary of recent runs.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.trends == nil {
		writeError(w, http.StatusNotFound, "trend analytics not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	summary, err := s.trends.Trend(r.Context(), limit)
	if err != nil {
		s.logger.Printf("Trend query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "trend query failed")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status         string    `json:"status"`
	Uptime         string    `json:"uptime"`
	EvaluationRuns int       `json:"evaluation_runs"`
	LastEvaluation time.Time `json:"last_evaluation,omitempty"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StatusResponse{
		Status:         "running",
		Uptime:         time.Since(s.startedAt).String(),
		EvaluationRuns: s.evaluationRuns,
		LastEvaluation: s.lastEvaluation,
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
