package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backyonatan-alt/hullwatch/backend/internal/fallback"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/status"
)

func TestIntegrationsHealthPassesThrough(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"weather": map[string]any{"configured": true}})
	})
	f, pub := newTestFetcher(t, mux)

	got, err := f.IntegrationsHealth(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "weather")
	assert.Equal(t, status.Connected, pub.Status())
}

func TestIntegrationsHealthChecksRootHealthOn404(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/health", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	f, pub := newTestFetcher(t, mux)

	got, err := f.IntegrationsHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"available": true, "status": "healthy"}, got["api"])
	assert.Equal(t, map[string]any{"configured": false}, got["integrations"])
	assert.Equal(t, status.Connected, pub.Status())
}

func TestIntegrationsHealthNotConfigured(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	f, pub := newTestFetcher(t, mux, WithRecorder(rec))

	got, err := f.IntegrationsHealth(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, status.Connected, pub.Status())
	assert.Equal(t, []string{"not_configured"}, rec.outcomes["integrations_health"])
	assert.Empty(t, rec.outcomes["api_health"])
}

func TestOceanEnvironmentTriesOperationalPath(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/ocean/env", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /api/v1/operational/ocean/env", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.OceanEnvironment{Temperature: 24.5, Salinity: 35.2, Zone: "subtropical"})
	})
	f, _ := newTestFetcher(t, mux)

	got, err := f.OceanEnvironment(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "subtropical", got.Zone)
	assert.False(t, got.Estimated)
}

func TestOceanEnvironmentEstimatesFromStatistics(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/reports/statistics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"total_events": 1200})
	})
	f, _ := newTestFetcher(t, mux)

	got, err := f.OceanEnvironment(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Estimated)
	assert.Equal(t, "tropical", got.Zone)
}

func TestOceanEnvironmentUnavailable(t *testing.T) {
	t.Parallel()

	f, pub := newTestFetcher(t, http.NotFoundHandler(), WithHTTPClient(failingClient{}))

	got, err := f.OceanEnvironment(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, status.Disconnected, pub.Status())
}

func TestSeaConditions(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/weather", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-23.5505", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-46.6333", r.URL.Query().Get("longitude"))
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"sea_state": 4, "wave_height": 1.8, "wind_speed": 22},
		})
	})
	f, _ := newTestFetcher(t, mux)

	got, err := f.SeaConditions(context.Background(), -23.5505, -46.6333)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.SeaState)
	assert.Equal(t, 1.8, got.WaveHeight)
	assert.Equal(t, 22.0, got.WindSpeed)
	assert.Equal(t, 180.0, got.WindDirection)
}

func TestSeaConditionsDefaultsWhenNotConfigured(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/weather", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	f, pub := newTestFetcher(t, mux)

	got, err := f.SeaConditions(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, fallback.SeaConditions(1, 2), got)
	assert.Equal(t, status.Connected, pub.Status())
}

func TestFuelPrice(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/fuel-prices", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Rotterdam", r.URL.Query().Get("port"))
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"port":   "Rotterdam (NLRTM)",
			"data":   map[string]any{"fuel_type": "VLSFO", "price": 612.5},
		})
	})
	f, _ := newTestFetcher(t, mux)

	got, err := f.FuelPrice(context.Background(), "Rotterdam", "")
	require.NoError(t, err)
	assert.Equal(t, "Rotterdam (NLRTM)", got.Port)
	assert.Equal(t, 612.5, got.PriceUSDPerTon)
	assert.Equal(t, "USD", got.Currency)
}

func TestFuelPriceDefaultsOnUnexpectedShape(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/fuel-prices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "error"})
	})
	f, _ := newTestFetcher(t, mux)

	got, err := f.FuelPrice(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, fallback.FuelPrice("", "", fixedNow), got)
}

func TestCleaningRecommendationFromBackend(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/vessels/{id}/cleaning-recommendation", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, model.CleaningRecommendation{
			BiofoulingIndex:  7.1,
			CleaningUrgency:  model.LevelHigh,
			EstimatedSavings: 48000,
		})
	})
	f, _ := newTestFetcher(t, mux)

	got, err := f.CleaningRecommendation(context.Background(), "coral-voyager", 6)
	require.NoError(t, err)
	assert.Equal(t, "coral-voyager", got.VesselID)
	assert.Equal(t, 48000.0, got.EstimatedSavings)
}

func TestCleaningRecommendationHeuristicUsesShipSummary(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/vessels/{id}/cleaning-recommendation", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("GET /api/v1/ships/{name}/summary", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "coral-voyager", r.PathValue("name"))
		writeJSON(w, http.StatusOK, map[string]any{
			"ship_name":                 "coral-voyager",
			"max_bio_index":             8.4,
			"total_additional_cost_usd": 52000,
			"last_cleaning_date":        "2025-01-09",
		})
	})
	f, pub := newTestFetcher(t, mux)

	got, err := f.CleaningRecommendation(context.Background(), "coral-voyager", 6.2)
	require.NoError(t, err)
	assert.Equal(t, model.LevelCritical, got.CleaningUrgency)
	assert.Equal(t, 8.4, got.BiofoulingIndex)
	assert.Equal(t, 52000.0, got.EstimatedSavings)
	require.NotNil(t, got.DaysSinceCleaning)
	assert.Equal(t, 60, *got.DaysSinceCleaning)
	assert.Equal(t, status.Connected, pub.Status())
}

func TestCleaningRecommendationHeuristicOffline(t *testing.T) {
	t.Parallel()

	f, pub := newTestFetcher(t, http.NotFoundHandler(), WithHTTPClient(failingClient{}))

	got, err := f.CleaningRecommendation(context.Background(), "coral-voyager", 4.5)
	require.NoError(t, err)
	assert.Equal(t, fallback.CleaningRecommendation("coral-voyager", 4.5, nil, fixedNow), got)
	assert.Equal(t, model.LevelMedium, got.CleaningUrgency)
	assert.Equal(t, status.Disconnected, pub.Status())
}

func TestEnhancedPrediction(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/integrations/predictions/enhanced", func(w http.ResponseWriter, r *http.Request) {
		var req model.EnhancedPredictionRequestV1
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "coral-voyager", req.VesselID)
		assert.Equal(t, "Santos (BRSSZ)", req.Port)
		writeJSON(w, http.StatusOK, map[string]any{
			"predicted_consumption": 42.5,
			"biofouling_index":      6.2,
			"fuel_cost_usd":         21250,
			"co2_emissions_tons":    132.4,
			"enriched_data":         map[string]any{"sea_state": 3},
			"data_sources":          []string{"open-meteo", "bunker-index"},
		})
	})
	f, pub := newTestFetcher(t, mux)

	got, err := f.EnhancedPrediction(context.Background(), model.EnhancedPredictionRequestV1{
		VesselID: "coral-voyager", Speed: 12, Displacement: 52000, Draft: 11.5, DaysSinceCleaning: 40, Port: "Santos (BRSSZ)",
	})
	require.NoError(t, err)
	assert.Equal(t, "coral-voyager", got.ShipID)
	assert.Equal(t, 42.5, got.FuelConsumption)
	assert.InDelta(t, 62.0, got.BiofoulingRisk, 1e-9)
	assert.Equal(t, model.LevelHigh, got.Level)
	assert.Equal(t, "2025-03-24", got.MaintenanceDate)
	assert.Equal(t, 21250.0, got.FuelCostUSD)
	assert.Equal(t, []string{"open-meteo", "bunker-index"}, got.DataSources)
	require.Len(t, got.ChartData, 1)
	assert.Equal(t, "2025-03-10", got.ChartData[0].Date)
	assert.InDelta(t, 38.0, got.ChartData[0].Value, 1e-9)
	assert.Equal(t, status.Connected, pub.Status())
}

func TestEnhancedPredictionFallsBack(t *testing.T) {
	t.Parallel()

	f, pub := newTestFetcher(t, http.NotFoundHandler())
	req := model.EnhancedPredictionRequestV1{VesselID: "coral-voyager", Speed: 12, DaysSinceCleaning: 40}

	got, err := f.EnhancedPrediction(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, fallback.Prediction(model.PredictionRequestV1{
		ShipName: "coral-voyager", Speed: 12, DurationDays: 30, DaysSinceCleaning: 40,
	}, fixedNow), got)
	assert.Equal(t, status.Connected, pub.Status())
}

func TestVesselPosition(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/vessels/{imo}/position", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "9321483", r.PathValue("imo"))
		writeJSON(w, http.StatusOK, map[string]any{
			"latitude":    -23.98,
			"longitude":   -46.30,
			"speed":       11.2,
			"status":      "under way",
			"last_update": "2025-03-10T11:40:00Z",
		})
	})
	f, pub := newTestFetcher(t, mux)

	got, err := f.VesselPosition(context.Background(), "9321483")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "9321483", got.IMO)
	assert.Equal(t, -23.98, got.Latitude)
	require.NotNil(t, got.Speed)
	assert.Equal(t, 11.2, *got.Speed)
	assert.Nil(t, got.Heading)
	assert.Equal(t, status.Connected, pub.Status())
}

func TestVesselPositionUnavailable(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/integrations/vessels/9321483/position", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("GET /api/v1/integrations/vessels/9074729/position", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"imo": "9074729", "latitude": 123.4, "longitude": 10})
	})
	f, pub := newTestFetcher(t, mux)

	got, err := f.VesselPosition(context.Background(), "9321483")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, status.Connected, pub.Status())

	got, err = f.VesselPosition(context.Background(), "9074729")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, status.Disconnected, pub.Status())
}

func TestFleetOptimization(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/integrations/fleet/optimization", func(w http.ResponseWriter, r *http.Request) {
		var req model.FleetOptimizationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"coral-voyager", "nordic-spirit"}, req.VesselIDs)
		writeJSON(w, http.StatusOK, map[string]any{"total_savings_usd": 81000, "plan": []any{}})
	})
	f, _ := newTestFetcher(t, mux)

	got, err := f.FleetOptimization(context.Background(), []string{"coral-voyager", "nordic-spirit"})
	require.NoError(t, err)
	assert.Equal(t, 81000.0, got["total_savings_usd"])
}

func TestFleetOptimizationPropagatesFailures(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/integrations/fleet/optimization", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "optimizer crashed"})
	})
	f, pub := newTestFetcher(t, mux)

	got, err := f.FleetOptimization(context.Background(), []string{"coral-voyager"})
	assert.Nil(t, got)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "optimizer crashed", apiErr.Message)
	assert.Equal(t, status.Disconnected, pub.Status())

	_, err = f.FleetOptimization(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidVessel)
	_, err = f.FleetOptimization(context.Background(), []string{"coral-voyager", ".."})
	assert.ErrorIs(t, err, ErrInvalidVessel)
}
