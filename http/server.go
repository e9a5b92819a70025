// Package http exposes patent extraction and the patent archive over HTTP
// using chi.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/patview"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes is the default upload limit for XML documents.
const DefaultMaxBodyBytes = 32 << 20

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	extractor patview.Extractor
	records   patview.RecordService
	log       *slog.Logger

	maxBodyBytes int64
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes sets the largest accepted request body.
// Defaults to DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithRecords enables the /api/patents archive endpoints.
func WithRecords(records patview.RecordService) Option {
	return func(s *Server) {
		s.records = records
	}
}

// NewServer creates and configures the HTTP server.
func NewServer(extractor patview.Extractor, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		extractor:    extractor,
		log:          log,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/api/extract", s.handleExtract)

	if s.records != nil {
		r.Route("/api/patents", func(r chi.Router) {
			r.Get("/", s.handleListRecords)
			r.Post("/", s.handleCreateRecord)
			r.Get("/{id}", s.handleGetRecord)
			r.Delete("/{id}", s.handleDeleteRecord)
		})
	}

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// RequestLogger logs incoming requests.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError maps application error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := patview.ErrorCode(err), patview.ErrorMessage(err)

	status := http.StatusInternalServerError
	switch code {
	case patview.EINVALID:
		status = http.StatusBadRequest
	case patview.ENOTFOUND:
		status = http.StatusNotFound
	case patview.ECONFLICT:
		status = http.StatusConflict
	case patview.EMALFORMED:
		status = http.StatusUnprocessableEntity
	default:
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
	}

	jsonError(w, msg, status)
}
