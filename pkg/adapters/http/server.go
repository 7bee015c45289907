package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/frozen"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

// Server exposes freezing and renaming sessions as a JSON API.
type Server struct {
	Sessions *session.Manager

	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics records request metrics and serves gatherer on GET /metrics.
func WithMetrics(metrics *observability.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = metrics
		s.gatherer = gatherer
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler serving sessions from manager.
func NewHandler(manager *session.Manager, opts ...Option) http.Handler {
	server := &Server{
		Sessions: manager,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(server.observe)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/freeze", server.Freeze)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", server.ListSessions)
		r.Post("/", server.OpenSession)
		r.Get("/{id}", server.GetSession)
		r.Delete("/{id}", server.CloseSession)
		r.Post("/{id}/rename", server.Rename)
	})
	if server.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// observe records status and latency per route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.ObserveRequest(route, strconv.Itoa(status), time.Since(start))
	})
}

// FreezeResponse is returned by POST /freeze.
type FreezeResponse struct {
	Kind  string `json:"kind"`
	Hash  string `json:"hash"`
	Value any    `json:"value"`
}

// Freeze handles the POST /freeze request.
func (s *Server) Freeze(w http.ResponseWriter, r *http.Request) {
	value, err := decodeValue(w, r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Freeze: Invalid request body", "error", err)
		return
	}

	out, err := frozen.TryFreeze(value)
	if err != nil {
		s.fail(w, "Freeze", err)
		return
	}
	h, err := frozen.Hash(out)
	if err != nil {
		s.fail(w, "Freeze", err)
		return
	}

	writeJSON(w, s.logger, http.StatusOK, FreezeResponse{
		Kind:  frozen.Classify(value).String(),
		Hash:  fmt.Sprintf("%016x", h),
		Value: out,
	})
}

// OpenSessionRequest is the body of POST /sessions. An empty ID is generated.
type OpenSessionRequest struct {
	ID string `json:"id"`
}

// SessionResponse describes a session and its assignments in first-seen order.
type SessionResponse struct {
	ID          string               `json:"id"`
	Assignments []AssignmentResponse `json:"assignments,omitempty"`
}

type AssignmentResponse struct {
	Key any `json:"key"`
	ID  int `json:"id"`
}

// OpenSession handles the POST /sessions request.
func (s *Server) OpenSession(w http.ResponseWriter, r *http.Request) {
	var body OpenSessionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("OpenSession: Invalid request body", "error", err)
		return
	}

	id, _, err := s.Sessions.Open(body.ID)
	if err != nil {
		s.fail(w, "OpenSession", err)
		return
	}
	writeJSON(w, s.logger, http.StatusCreated, SessionResponse{ID: id})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string][]string{"sessions": s.Sessions.List()})
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.Sessions.Get(id)
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}

	resp := SessionResponse{ID: id}
	for _, a := range sess.Assignments() {
		resp.Assignments = append(resp.Assignments, AssignmentResponse{Key: a.Key, ID: a.ID})
	}
	writeJSON(w, s.logger, http.StatusOK, resp)
}

// CloseSession handles the DELETE /sessions/{id} request.
func (s *Server) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Close(chi.URLParam(r, "id")); err != nil {
		s.fail(w, "CloseSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameRequest is the body of POST /sessions/{id}/rename.
type RenameRequest struct {
	IDs []any `json:"ids"`
}

// RenameResponse holds one integer per requested identifier, in order.
type RenameResponse struct {
	IDs []int `json:"ids"`
}

// Rename handles the POST /sessions/{id}/rename request.
// Composite identifiers (arrays, objects) are frozen before renaming.
func (s *Server) Rename(w http.ResponseWriter, r *http.Request) {
	var body RenameRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Rename: Invalid request body", "error", err)
		return
	}
	if body.IDs == nil {
		http.Error(w, `Invalid request body: "ids" must be an array`, http.StatusBadRequest)
		return
	}

	keys := make([]any, len(body.IDs))
	for i, v := range body.IDs {
		key, err := frozen.TryFreeze(normalizeNumbers(v))
		if err != nil {
			s.fail(w, "Rename", err)
			return
		}
		keys[i] = key
	}

	ids, err := s.Sessions.Rename(chi.URLParam(r, "id"), keys...)
	if err != nil {
		s.fail(w, "Rename", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, RenameResponse{IDs: ids})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": strings.TrimSpace(automata.Version),
	})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrSessionExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, frozen.ErrUnhashable):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

// decodeValue reads one JSON value, turning integral numbers into int so that
// they freeze as scalars. Other numbers become float64.
func decodeValue(w http.ResponseWriter, r *http.Request) (any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(x.String()); err == nil {
			return n
		}
		f, _ := x.Float64()
		return f
	case []any:
		for i := range x {
			x[i] = normalizeNumbers(x[i])
		}
	case map[string]any:
		for k := range x {
			x[k] = normalizeNumbers(x[k])
		}
	}
	return v
}
