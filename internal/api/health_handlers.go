package api

import (
	"net/http"

	"github.com/vytor/profilesvc/internal/logger"
)

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type readyResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Profiles int    `json:"profiles"`
}

// handleHealth is the liveness probe; it always answers 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: ServiceName})
}

// handleReady answers 503 while the store cannot serve requests.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if s.Store != nil {
		if err := s.Store.Ping(ctx); err != nil {
			log.Warn("readiness check failed - store: %v", err)
			writeError(w, http.StatusServiceUnavailable, "Store unavailable")
			return
		}
	}

	n, err := s.ProfileService.CountProfiles(ctx)
	if err != nil {
		log.Warn("readiness check failed - count: %v", err)
		writeError(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}

	writeJSON(w, http.StatusOK, readyResponse{Status: "ready", Service: ServiceName, Profiles: n})
}
