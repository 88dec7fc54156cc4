package fallback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestDashboardCoversRenderingBranches(t *testing.T) {
	d := Dashboard()
	assert.Equal(t, 42.0, d.FleetAvgRisk)
	require.Len(t, d.CriticalShips, 2)
	assert.Equal(t, model.LevelCritical, d.CriticalShips[0].Level)
	assert.Equal(t, model.LevelHigh, d.CriticalShips[1].Level)
	assert.Greater(t, d.CriticalShips[0].Risk, d.CriticalShips[1].Risk)
	assert.NotZero(t, d.TotalSavingsUSD)
}

func TestDashboardReturnsCopies(t *testing.T) {
	d := Dashboard()
	d.CriticalShips[0].Name = "mutated"
	assert.Equal(t, "Atlantic Pioneer", Dashboard().CriticalShips[0].Name)
}

func TestFleetOverviewHistory(t *testing.T) {
	o := FleetOverview(fixedNow, 30)
	require.Len(t, o.PerformanceHistory, 30)
	assert.Equal(t, "2025-03-10", o.PerformanceHistory[29].Date)
	assert.Equal(t, "2025-02-09", o.PerformanceHistory[0].Date)
	for _, p := range o.PerformanceHistory {
		assert.Equal(t, model.SeriesHistorical, p.Type)
	}
	assert.Equal(t, o.PerformanceHistory, FleetOverview(fixedNow, 30).PerformanceHistory)

	var zeroCost bool
	for _, k := range o.KPIs {
		if k.ID == "additional-cost" && k.Value == "0.0" {
			zeroCost = true
		}
	}
	assert.True(t, zeroCost)
}

func TestShipsHasTwoEntries(t *testing.T) {
	assert.Len(t, Ships(), 2)
}

func TestPredictionDegradation(t *testing.T) {
	p := Prediction(model.PredictionRequestV1{ShipName: "Atlantic Pioneer", Speed: 12, DurationDays: 10}, fixedNow)
	assert.Equal(t, 2400.0, p.FuelConsumption)
	assert.Equal(t, 25.0, p.BiofoulingRisk)
	assert.Equal(t, model.LevelLow, p.Level)
	require.Len(t, p.ChartData, 10)
	assert.Equal(t, "2025-03-11", p.ChartData[0].Date)
	assert.Equal(t, "2025-04-09", p.MaintenanceDate)

	s := Scenario(model.ScenarioRequestV0{ShipID: "2", Speed: 10, Days: 100}, fixedNow)
	assert.Equal(t, 100.0, s.BiofoulingRisk)
	assert.Equal(t, model.LevelCritical, s.Level)
}

func TestCleaningRecommendationHeuristic(t *testing.T) {
	rec := CleaningRecommendation("Coral Voyager", 6.5, nil, fixedNow)
	assert.Equal(t, model.LevelHigh, rec.CleaningUrgency)
	assert.Equal(t, 32500.0, rec.EstimatedSavings)
	assert.Equal(t, "2025-04-09T12:00:00Z", rec.NextAvailableSlot)
	assert.Nil(t, rec.DaysSinceCleaning)

	detail := &model.ShipDetailV1{
		ShipSummaryV1:          model.ShipSummaryV1{ShipName: "Coral Voyager", MaxBioIndex: 8.3},
		TotalAdditionalCostUSD: 41000,
		LastCleaningDate:       "2025-01-09",
	}
	rec = CleaningRecommendation("Coral Voyager", 6.5, detail, fixedNow)
	assert.Equal(t, model.LevelCritical, rec.CleaningUrgency)
	assert.Equal(t, 8.3, rec.BiofoulingIndex)
	assert.Equal(t, 41000.0, rec.EstimatedSavings)
	require.NotNil(t, rec.DaysSinceCleaning)
	assert.Equal(t, 60, *rec.DaysSinceCleaning)
}

func TestFuelPriceDefaults(t *testing.T) {
	p := FuelPrice("", "", fixedNow)
	assert.Equal(t, DefaultFuelPort, p.Port)
	assert.Equal(t, DefaultFuelType, p.FuelType)
	assert.Equal(t, 500.0, p.PriceUSDPerTon)
}
