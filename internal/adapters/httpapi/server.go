package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mikey/phish-analyzer/internal/core"
	"go.uber.org/zap"
)

// Server exposes the analyzer over HTTP. It is a thin boundary: request
// validation and JSON (de)serialization happen here, never inside the
// engine.
type Server struct {
	service    *core.AnalyzerService
	logger     *zap.Logger
	listenAddr string
	router     chi.Router
	httpServer *http.Server
}

// NewServer creates a new HTTP API server
func NewServer(service *core.AnalyzerService, logger *zap.Logger, listenAddr string) *Server {
	s := &Server{
		service:    service,
		logger:     logger,
		listenAddr: listenAddr,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/api/analyze", s.optionsHandler("POST"))

	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/health", s.handleHealth)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAnalyze accepts email metadata and runs the analysis. Missing or
// empty body is rejected here; the engine only ever sees well-formed input.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req core.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "body is required and must not be empty")
		return
	}

	resp := s.service.Analyze(r.Context(), &req)

	s.logger.Info("Analysis served",
		zap.String("risk", string(resp.OverallRisk)),
		zap.Int("score", resp.Score),
		zap.Int("findings", len(resp.Findings)))

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ProcessEmail analyzes one email directly, bypassing HTTP. Mainly used in
// tests and by callers embedding the server.
func (s *Server) ProcessEmail(ctx context.Context, req *core.AnalysisRequest) (*core.AnalysisResponse, error) {
	return s.service.Analyze(ctx, req), nil
}

// Start begins serving in the background
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("HTTP API starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
