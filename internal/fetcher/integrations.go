package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/backyonatan-alt/hullwatch/backend/internal/adapter"
	"github.com/backyonatan-alt/hullwatch/backend/internal/fallback"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

// IntegrationsHealth reports which optional integrations the backend offers.
// When the backend has no integrations endpoint but its root health check
// answers, a minimal report saying so is returned. nil means nothing is
// known.
func (f *Fetcher) IntegrationsHealth(ctx context.Context) (model.IntegrationsHealth, error) {
	res := fetch[model.IntegrationsHealth](ctx, f, request{
		resource: "integrations_health",
		method:   http.MethodGet,
		path:     "/integrations/health",
		optional: true,
	})
	res = adapt(res, "integrations health", func(h model.IntegrationsHealth) (model.IntegrationsHealth, bool) {
		return h, h != nil
	})
	f.record("integrations_health", res.Kind, res.Err, res.Elapsed)

	switch {
	case res.Kind == Success:
		return res.Value, nil
	case res.Kind == Canceled:
		return nil, res.Err
	case res.Kind != NotConfigured || res.StatusCode != http.StatusNotFound || f.healthURL == "":
		return nil, nil
	}

	root := fetch[map[string]any](ctx, f, request{
		resource: "api_health",
		method:   http.MethodGet,
		rawURL:   f.healthURL,
	})
	f.record("api_health", root.Kind, root.Err, root.Elapsed)
	switch root.Kind {
	case Success:
		apiStatus, _ := root.Value["status"].(string)
		if apiStatus == "" {
			apiStatus = "ok"
		}
		return model.IntegrationsHealth{
			"api":          map[string]any{"available": true, "status": apiStatus},
			"integrations": map[string]any{"configured": false},
		}, nil
	case Canceled:
		return nil, root.Err
	default:
		return nil, nil
	}
}

var oceanEnvPaths = []string{"/integrations/ocean/env", "/operational/ocean/env"}

// OceanEnvironment tries each ocean endpoint in turn. When none answers but
// the report statistics do, typical values flagged as estimated are
// returned. nil means the data is unavailable.
func (f *Fetcher) OceanEnvironment(ctx context.Context) (*model.OceanEnvironment, error) {
	for _, p := range oceanEnvPaths {
		res := fetch[model.OceanEnvironment](ctx, f, request{
			resource: "ocean_environment",
			method:   http.MethodGet,
			path:     p,
			optional: true,
		})
		f.record("ocean_environment", res.Kind, res.Err, res.Elapsed)
		switch res.Kind {
		case Success:
			env := res.Value
			return &env, nil
		case Canceled:
			return nil, res.Err
		}
	}

	stats := fetch[map[string]any](ctx, f, request{
		resource: "report_statistics",
		method:   http.MethodGet,
		path:     "/reports/statistics",
		optional: true,
	})
	f.record("report_statistics", stats.Kind, stats.Err, stats.Elapsed)
	switch stats.Kind {
	case Success:
		return fallback.OceanEnvironment(f.now()), nil
	case Canceled:
		return nil, stats.Err
	default:
		return nil, nil
	}
}

// SeaConditions returns weather at a position, or default conditions.
func (f *Fetcher) SeaConditions(ctx context.Context, lat, lon float64) (model.SeaConditions, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))

	res := fetch[model.SeaConditionsV1](ctx, f, request{
		resource: "sea_conditions",
		method:   http.MethodGet,
		path:     "/integrations/weather",
		query:    q,
		optional: true,
	})
	conditions := adapt(res, "sea conditions", func(v model.SeaConditionsV1) (model.SeaConditions, bool) {
		return adapter.SeaConditions(v, lat, lon)
	})
	return settle(f, "sea_conditions", conditions, func() model.SeaConditions {
		return fallback.SeaConditions(lat, lon)
	})
}

// FuelPrice returns the bunker price at port. Empty arguments take the
// default port and fuel type.
func (f *Fetcher) FuelPrice(ctx context.Context, port, fuelType string) (model.FuelPrice, error) {
	def := fallback.FuelPrice(port, fuelType, f.now())
	q := url.Values{}
	if port != "" {
		q.Set("port", port)
	}
	if fuelType != "" {
		q.Set("fuel_type", fuelType)
	}

	res := fetch[model.FuelPriceV1](ctx, f, request{
		resource: "fuel_price",
		method:   http.MethodGet,
		path:     "/integrations/fuel-prices",
		query:    q,
		optional: true,
	})
	price := adapt(res, "fuel price", func(v model.FuelPriceV1) (model.FuelPrice, bool) {
		return adapter.FuelPrice(v, def)
	})
	return settle(f, "fuel_price", price, func() model.FuelPrice { return def })
}

// checkVesselID rejects ids that would not survive as a single path segment:
// "." and ".." are resolved away when the URL is joined.
func checkVesselID(id string) error {
	switch strings.TrimSpace(id) {
	case "", ".", "..":
		return fmt.Errorf("%q: %w", id, ErrInvalidVessel)
	}
	return nil
}

func vesselPath(vesselID, action string) string {
	return "/integrations/vessels/" + url.PathEscape(vesselID) + "/" + action
}

// CleaningRecommendation asks the backend for a hull cleaning recommendation.
// When the backend has none, one is computed locally from index and, when
// available, the ship's own summary.
func (f *Fetcher) CleaningRecommendation(ctx context.Context, vesselID string, index float64) (model.CleaningRecommendation, error) {
	if err := checkVesselID(vesselID); err != nil {
		slog.Warn("cleaning recommendation computed locally", "error", err)
		return fallback.CleaningRecommendation(vesselID, index, nil, f.now()), nil
	}
	res := fetch[model.CleaningRecommendation](ctx, f, request{
		resource: "cleaning_recommendation",
		method:   http.MethodGet,
		path:     vesselPath(vesselID, "cleaning-recommendation"),
		optional: true,
	})
	res = adapt(res, "cleaning recommendation", func(r model.CleaningRecommendation) (model.CleaningRecommendation, bool) {
		if r.VesselID == "" {
			r.VesselID = vesselID
		}
		return r, r.CleaningUrgency != ""
	})
	f.record("cleaning_recommendation", res.Kind, res.Err, res.Elapsed)
	switch res.Kind {
	case Success:
		return res.Value, nil
	case Canceled:
		return model.CleaningRecommendation{}, res.Err
	}

	detail := fetch[model.ShipDetailV1](ctx, f, request{
		resource: "ship_summary",
		method:   http.MethodGet,
		path:     "/ships/" + url.PathEscape(vesselID) + "/summary",
		optional: true,
	})
	detail = adapt(detail, "ship summary", func(d model.ShipDetailV1) (model.ShipDetailV1, bool) {
		return d, d.ShipName != ""
	})
	f.record("ship_summary", detail.Kind, detail.Err, detail.Elapsed)

	var d *model.ShipDetailV1
	switch detail.Kind {
	case Success:
		d = &detail.Value
	case Canceled:
		return model.CleaningRecommendation{}, detail.Err
	}
	return fallback.CleaningRecommendation(vesselID, index, d, f.now()), nil
}

// ScheduleCleaning books a hull cleaning. It never falls back: any failure
// is returned so the caller knows nothing was booked. Errors wrap
// ErrTransport, ErrShape or an *APIError.
func (f *Fetcher) ScheduleCleaning(ctx context.Context, vesselID string, req model.ScheduleCleaningRequest) (model.ScheduleCleaningResult, error) {
	if err := checkVesselID(vesselID); err != nil {
		return model.ScheduleCleaningResult{}, fmt.Errorf("schedule cleaning: %w", err)
	}
	if req.Priority == "" {
		req.Priority = "normal"
	}

	header := http.Header{}
	header.Set("Idempotency-Key", uuid.NewString())
	res := fetch[model.ScheduleCleaningResult](ctx, f, request{
		resource: "schedule_cleaning",
		method:   http.MethodPost,
		path:     vesselPath(vesselID, "schedule-cleaning"),
		body:     req,
		header:   header,
		write:    true,
	})
	f.record("schedule_cleaning", res.Kind, res.Err, res.Elapsed)
	if res.Kind != Success {
		return model.ScheduleCleaningResult{}, fmt.Errorf("schedule cleaning for %s: %w", vesselID, res.Err)
	}
	return res.Value, nil
}

// VesselPosition returns the last known position of the vessel with the given
// IMO number. nil means the backend has none.
func (f *Fetcher) VesselPosition(ctx context.Context, imo string) (*model.VesselPosition, error) {
	if err := checkVesselID(imo); err != nil {
		slog.Warn("vessel position not requested", "error", err)
		return nil, nil
	}
	res := fetch[model.VesselPosition](ctx, f, request{
		resource: "vessel_position",
		method:   http.MethodGet,
		path:     vesselPath(imo, "position"),
		optional: true,
	})
	res = adapt(res, "vessel position", func(p model.VesselPosition) (model.VesselPosition, bool) {
		return adapter.VesselPosition(p, imo)
	})
	f.record("vessel_position", res.Kind, res.Err, res.Elapsed)
	switch res.Kind {
	case Success:
		pos := res.Value
		return &pos, nil
	case Canceled:
		return nil, res.Err
	default:
		return nil, nil
	}
}

// FleetOptimization asks the backend to plan cleanings and routes across the
// given vessels. There is no local stand-in for the plan, so any failure is
// returned.
func (f *Fetcher) FleetOptimization(ctx context.Context, vesselIDs []string) (model.FleetOptimization, error) {
	if len(vesselIDs) == 0 {
		return nil, fmt.Errorf("fleet optimization: %w", ErrInvalidVessel)
	}
	for _, id := range vesselIDs {
		if err := checkVesselID(id); err != nil {
			return nil, fmt.Errorf("fleet optimization: %w", err)
		}
	}

	res := fetch[model.FleetOptimization](ctx, f, request{
		resource: "fleet_optimization",
		method:   http.MethodPost,
		path:     "/integrations/fleet/optimization",
		body:     model.FleetOptimizationRequest{VesselIDs: vesselIDs},
	})
	res = adapt(res, "fleet optimization", func(v model.FleetOptimization) (model.FleetOptimization, bool) {
		return v, v != nil
	})
	f.record("fleet_optimization", res.Kind, res.Err, res.Elapsed)
	if res.Kind != Success {
		return nil, fmt.Errorf("fleet optimization: %w", res.Err)
	}
	return res.Value, nil
}
