// Package httpapi exposes the operational HTTP surface: health,
// metrics, and a read-only admin view. The conversational gateway is
// an external collaborator and is not served here.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayassist/concierge/internal/booking"
	"github.com/stayassist/concierge/internal/config"
	"github.com/stayassist/concierge/internal/observability"
	"github.com/stayassist/concierge/internal/session"
)

type Server struct {
	cfg      config.Config
	sessions *session.Manager
	store    booking.Store
	metrics  *observability.Metrics
}

func New(cfg config.Config, sessions *session.Manager, store booking.Store, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		store:    store,
		metrics:  metrics,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Get("/v1/ops/sessions", s.handleSessionStats)
	r.Get("/v1/ops/bookings", s.handleListBookings)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Readiness covers the booking store: a wedged backend should pull
	// the instance out of rotation before guests hit it.
	if _, err := s.store.List(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (s *Server) handleSessionStats(w http.ResponseWriter, _ *http.Request) {
	count := s.sessions.ActiveCount()
	s.metrics.SetActiveSessions(count)
	respondJSON(w, http.StatusOK, map[string]any{
		"active_sessions": count,
	})
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if recs == nil {
		recs = []booking.Record{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(recs),
		"bookings": recs,
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
