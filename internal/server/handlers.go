package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	// Try in-memory cache first
	data := s.cache.Get()

	// Cold start: load from DB
	if data == nil {
		slog.Info("cache miss, loading from database")
		var err error
		data, err = s.store.LatestSnapshot(r.Context())
		if err != nil {
			slog.Error("failed to load snapshot from DB", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if data == nil {
			writeError(w, http.StatusNotFound, "no data available")
			return
		}
		// Populate cache for next request
		s.cache.Set(data, snapshotTime(data))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60, s-maxage=300")
	w.Write(data)
}

// snapshotTime reads last_updated back out of a stored snapshot.
func snapshotTime(data []byte) time.Time {
	var snap struct {
		LastUpdated string `json:"last_updated"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, snap.LastUpdated)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":     "ok",
		"api_status": s.status.Status(),
	}
	if updatedAt := s.cache.UpdatedAt(); !updatedAt.IsZero() {
		resp["last_update"] = updatedAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	writeJSON(w, http.StatusOK, statusMessage{Status: s.status.Status()})
}

func (s *Server) handleCleanings(w http.ResponseWriter, r *http.Request) {
	id, ok := vesselID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vessel id")
		return
	}
	cleanings, err := s.store.Cleanings(r.Context(), id)
	if err != nil {
		slog.Error("failed to load cleanings", "vessel_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if cleanings == nil {
		cleanings = []model.ScheduledCleaning{}
	}
	writeJSON(w, http.StatusOK, cleanings)
}

// respond writes v, or nothing at all when the caller went away before the
// backend answered.
func respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, v)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		slog.Debug("request abandoned", "path", r.URL.Path, "error", err)
	default:
		slog.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
