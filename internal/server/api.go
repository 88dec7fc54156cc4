package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/backyonatan-alt/hullwatch/backend/internal/fetcher"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

const maxHistoryDays = 365

// Santos port, where the sea conditions widget points when no position is given.
const (
	defaultLatitude  = -23.5505
	defaultLongitude = -46.6333
)

const maxFleetVessels = 100

// vesselID reads the {id} path segment. chi matches on the raw path, so an
// encoded "%2E%2E" arrives here still escaped.
func vesselID(r *http.Request) (string, bool) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		return "", false
	}
	id = strings.TrimSpace(id)
	switch id {
	case "", ".", "..":
		return "", false
	}
	return id, true
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func validDate(s string) bool {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	v, err := s.backend.Dashboard(r.Context())
	respond(w, r, v, err)
}

func (s *Server) handleFleetOverview(w http.ResponseWriter, r *http.Request) {
	v, err := s.backend.FleetOverview(r.Context())
	respond(w, r, v, err)
}

func (s *Server) handleFleetHistory(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", s.cfg.HistoryDays)
	if err != nil || days == 0 || days > maxHistoryDays {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("days must be between 1 and %d", maxHistoryDays))
		return
	}
	v, err := s.backend.PerformanceHistory(r.Context(), days)
	respond(w, r, v, err)
}

func (s *Server) handleShips(w http.ResponseWriter, r *http.Request) {
	v, err := s.backend.Ships(r.Context())
	respond(w, r, v, err)
}

func (s *Server) handleBiofoulingReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := model.ReportQuery{
		ShipName:  q.Get("ship_name"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		BioClass:  q.Get("bio_class"),
	}
	if q.Has("min_bio_index") {
		v, err := queryFloat(r, "min_bio_index", 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		query.MinBioIndex = &v
	}
	var err error
	if query.Limit, err = queryInt(r, "limit", 0); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if query.Offset, err = queryInt(r, "offset", 0); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := s.backend.BiofoulingReport(r.Context(), query)
	respond(w, r, v, err)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req model.PredictionRequestV1
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ShipName) == "" || req.Speed <= 0 || req.DurationDays <= 0 {
		writeError(w, http.StatusBadRequest, "ship_name, speed and duration_days are required")
		return
	}
	v, err := s.backend.Predict(r.Context(), req)
	respond(w, r, v, err)
}

func (s *Server) handlePredictScenario(w http.ResponseWriter, r *http.Request) {
	var req model.ScenarioRequestV0
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ShipID) == "" || req.Days <= 0 {
		writeError(w, http.StatusBadRequest, "ship_id and days are required")
		return
	}
	v, err := s.backend.PredictScenario(r.Context(), req)
	respond(w, r, v, err)
}

func (s *Server) handleIntegrationsHealth(w http.ResponseWriter, r *http.Request) {
	v, err := s.backend.IntegrationsHealth(r.Context())
	if err == nil && v == nil {
		v = model.IntegrationsHealth{"configured": false}
	}
	respond(w, r, v, err)
}

func (s *Server) handleOceanEnvironment(w http.ResponseWriter, r *http.Request) {
	v, err := s.backend.OceanEnvironment(r.Context())
	if err == nil && v == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respond(w, r, v, err)
}

func (s *Server) handleSeaConditions(w http.ResponseWriter, r *http.Request) {
	lat, err := queryFloat(r, "latitude", defaultLatitude)
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, "latitude must be between -90 and 90")
		return
	}
	lon, err := queryFloat(r, "longitude", defaultLongitude)
	if err != nil || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "longitude must be between -180 and 180")
		return
	}
	v, err := s.backend.SeaConditions(r.Context(), lat, lon)
	respond(w, r, v, err)
}

func (s *Server) handleFuelPrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v, err := s.backend.FuelPrice(r.Context(), q.Get("port"), q.Get("fuel_type"))
	respond(w, r, v, err)
}

func (s *Server) handleCleaningRecommendation(w http.ResponseWriter, r *http.Request) {
	id, ok := vesselID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vessel id")
		return
	}
	if !r.URL.Query().Has("bio_index") {
		writeError(w, http.StatusBadRequest, "bio_index is required")
		return
	}
	index, err := queryFloat(r, "bio_index", 0)
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "bio_index must be a non-negative number")
		return
	}
	v, err := s.backend.CleaningRecommendation(r.Context(), id, index)
	respond(w, r, v, err)
}

// handleScheduleCleaning forwards a booking to the backend. Failures surface
// to the caller as 502; nothing is recorded unless the backend accepted it.
func (s *Server) handleScheduleCleaning(w http.ResponseWriter, r *http.Request) {
	id, ok := vesselID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vessel id")
		return
	}
	var req model.ScheduleCleaningRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validDate(req.ProposedDate) {
		writeError(w, http.StatusBadRequest, "proposed_date must be YYYY-MM-DD or RFC 3339")
		return
	}

	res, err := s.backend.ScheduleCleaning(r.Context(), id, req)
	if err != nil {
		if r.Context().Err() != nil {
			slog.Debug("schedule cleaning abandoned", "vessel_id", id)
			return
		}
		slog.Error("schedule cleaning failed", "vessel_id", id, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "normal"
	}
	rec := model.ScheduledCleaning{
		VesselID:     id,
		ProposedDate: req.ProposedDate,
		Priority:     priority,
		Reference:    res.Reference,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	// The backend has booked it, so record it even if the caller is gone.
	if err := s.store.SaveCleaning(context.WithoutCancel(r.Context()), rec); err != nil {
		// The booking stands on the backend side; only the local log is missing.
		slog.Error("failed to record scheduled cleaning", "vessel_id", id, "error", err)
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleEnhancedPrediction(w http.ResponseWriter, r *http.Request) {
	var req model.EnhancedPredictionRequestV1
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.VesselID = strings.TrimSpace(req.VesselID)
	if req.VesselID == "" || req.Speed <= 0 {
		writeError(w, http.StatusBadRequest, "vessel_id and speed are required")
		return
	}
	if req.DaysSinceCleaning < 0 {
		writeError(w, http.StatusBadRequest, "days_since_cleaning must not be negative")
		return
	}
	v, err := s.backend.EnhancedPrediction(r.Context(), req)
	respond(w, r, v, err)
}

func (s *Server) handleVesselPosition(w http.ResponseWriter, r *http.Request) {
	id, ok := vesselID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid vessel id")
		return
	}
	v, err := s.backend.VesselPosition(r.Context(), id)
	if err == nil && v == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respond(w, r, v, err)
}

// handleFleetOptimization has no local fallback; a backend failure is a 502.
func (s *Server) handleFleetOptimization(w http.ResponseWriter, r *http.Request) {
	var req model.FleetOptimizationRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.VesselIDs) == 0 || len(req.VesselIDs) > maxFleetVessels {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("vessel_ids must list between 1 and %d vessels", maxFleetVessels))
		return
	}

	v, err := s.backend.FleetOptimization(r.Context(), req.VesselIDs)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, v)
	case r.Context().Err() != nil:
		slog.Debug("fleet optimization abandoned")
	case errors.Is(err, fetcher.ErrInvalidVessel):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("fleet optimization failed", "vessels", len(req.VesselIDs), "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
