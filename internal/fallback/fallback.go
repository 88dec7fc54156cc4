// Package fallback holds the static data served when the backend cannot be
// used. Every value has the same shape as its live counterpart, and every
// function returns a fresh copy so callers may modify the result.
package fallback

import (
	"math"
	"time"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/risk"
)

const dateLayout = "2006-01-02"

var mockDashboard = model.DashboardData{
	FleetAvgRisk: 42,
	CriticalShips: []model.CriticalShip{
		{Name: "Atlantic Pioneer", Risk: 78, Level: model.LevelCritical, BioIndex: 7.8, ExcessPercent: 18.5},
		{Name: "Coral Voyager", Risk: 64, Level: model.LevelHigh, BioIndex: 6.4, ExcessPercent: 11.2},
	},
	TotalExtraFuelTons: 1250,
	TotalSavingsUSD:    187500,
	TotalShips:         45,
	RiskLevel:          model.LevelMedium,
}

var mockKPIs = []model.KPI{
	{ID: "efficiency", Title: "Average efficiency", Value: "87.5", Unit: "%", Trend: model.TrendUp, TrendValue: "+2.1%", Status: model.KPISuccess},
	{ID: "biofouling-risk", Title: "Biofouling risk", Value: string(model.LevelLow), Trend: model.TrendNeutral, TrendValue: "stable", Status: model.KPIInfo},
	{ID: "additional-fuel", Title: "Additional fuel", Value: "1250", Unit: "t", Trend: model.TrendDown, TrendValue: "-5.4%", Status: model.KPIWarning},
	{ID: "additional-cost", Title: "Additional cost", Value: "0.0", Unit: "k USD", Trend: model.TrendNeutral, TrendValue: "0 events", Status: model.KPISuccess},
	{ID: "critical-ships", Title: "Ships needing attention", Value: "2", Trend: model.TrendUp, TrendValue: "+1", Status: model.KPIWarning},
}

// historyPattern is cycled to build the fallback efficiency series.
var historyPattern = []float64{86.2, 87.1, 85.4, 88.0, 89.3, 87.6, 86.9, 88.4, 90.1, 89.2}

var mockShips = []model.Ship{
	{ID: "1", Name: "Atlantic Pioneer", IMO: "9387421", Class: "Suezmax", Type: "Tanker"},
	{ID: "2", Name: "Coral Voyager", IMO: "9412358", Class: "Panamax", Type: "Bulk carrier"},
}

const (
	defaultSeaState      = 3
	defaultWaveHeight    = 1.2
	defaultWindSpeed     = 15.0
	defaultWindDirection = 180
	defaultTemperature   = 26.0

	DefaultFuelPort     = "Santos (BRSSZ)"
	DefaultFuelType     = "VLSFO"
	defaultFuelPriceUSD = 500.0

	// Rough savings per index point when no cost data is available.
	savingsPerIndexPoint = 5000
	nextSlotDays         = 30
)

var cleaningActions = map[model.Level]string{
	model.LevelCritical: "Immediate cleaning recommended. Fouling is critical and driving excess fuel burn.",
	model.LevelHigh:     "Schedule a cleaning soon. Fouling is high and hurting efficiency.",
	model.LevelMedium:   "Monitor closely and consider a preventive cleaning in the coming months.",
	model.LevelLow:      "Fouling is within normal range. Keep monitoring.",
}

func Dashboard() model.DashboardData {
	d := mockDashboard
	d.CriticalShips = append([]model.CriticalShip(nil), mockDashboard.CriticalShips...)
	return d
}

// FleetOverview returns the static overview with a history of the given
// length ending at now.
func FleetOverview(now time.Time, days int) model.FleetOverview {
	return model.FleetOverview{
		TotalShips:         45,
		ActiveShips:        42,
		AverageEfficiency:  87.5,
		KPIs:               append([]model.KPI(nil), mockKPIs...),
		PerformanceHistory: History(now, days),
		CriticalShips:      append([]model.CriticalShip(nil), mockDashboard.CriticalShips...),
	}
}

// History returns a deterministic daily series of the given length ending at now.
func History(now time.Time, days int) []model.TimeSeriesPoint {
	if days < 0 {
		days = 0
	}
	out := make([]model.TimeSeriesPoint, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, model.TimeSeriesPoint{
			Date:  now.AddDate(0, 0, i-days+1).Format(dateLayout),
			Value: historyPattern[i%len(historyPattern)],
			Type:  model.SeriesHistorical,
		})
	}
	return out
}

func Ships() []model.Ship {
	return append([]model.Ship(nil), mockShips...)
}

// BiofoulingReport returns a small report over the two mock ships.
func BiofoulingReport(now time.Time) model.BiofoulingReportV1 {
	records := []model.BiofoulingRecordV1{
		{ShipName: "Atlantic Pioneer", EventDate: now.AddDate(0, 0, -2).Format(dateLayout), BioIndex: 7.8, BioClass: "heavy", ExcessRatio: 1.185, AdditionalFuelTons: 42.5, AdditionalCostUSD: 21250},
		{ShipName: "Coral Voyager", EventDate: now.AddDate(0, 0, -1).Format(dateLayout), BioIndex: 6.4, BioClass: "moderate", ExcessRatio: 1.112, AdditionalFuelTons: 18.0, AdditionalCostUSD: 9000},
	}
	return model.BiofoulingReportV1{Total: len(records), Limit: len(records), Records: records}
}

// Prediction mirrors a simple degradation model: consumption scales with
// speed and duration, risk grows 1.5 points per day.
func Prediction(req model.PredictionRequestV1, now time.Time) model.PredictionInsight {
	days := int(math.Ceil(req.DurationDays))
	return prediction(req.ShipName, req.Speed, days, now)
}

func Scenario(req model.ScenarioRequestV0, now time.Time) model.PredictionInsight {
	return prediction(req.ShipID, req.Speed, req.Days, now)
}

func prediction(shipID string, speed float64, days int, now time.Time) model.PredictionInsight {
	if days < 0 {
		days = 0
	}
	riskPercent := math.Min(100, 10+float64(days)*1.5)
	chart := make([]model.TimeSeriesPoint, 0, days)
	for i := 0; i < days; i++ {
		chart = append(chart, model.TimeSeriesPoint{
			Date:  now.AddDate(0, 0, i+1).Format(dateLayout),
			Value: 85 - 0.25*float64(i+1),
			Type:  model.SeriesPrediction,
		})
	}
	return model.PredictionInsight{
		ShipID:          shipID,
		FuelConsumption: speed * 20 * float64(days),
		BiofoulingRisk:  riskPercent,
		Level:           risk.FleetLevel(riskPercent / 10),
		MaintenanceDate: now.AddDate(0, 0, nextSlotDays).Format(dateLayout),
		ChartData:       chart,
	}
}

func SeaConditions(lat, lon float64) model.SeaConditions {
	return model.SeaConditions{
		Latitude:      lat,
		Longitude:     lon,
		SeaState:      defaultSeaState,
		WaveHeight:    defaultWaveHeight,
		WindSpeed:     defaultWindSpeed,
		WindDirection: defaultWindDirection,
		Temperature:   defaultTemperature,
	}
}

func FuelPrice(port, fuelType string, now time.Time) model.FuelPrice {
	if port == "" {
		port = DefaultFuelPort
	}
	if fuelType == "" {
		fuelType = DefaultFuelType
	}
	return model.FuelPrice{
		Port:           port,
		FuelType:       fuelType,
		PriceUSDPerTon: defaultFuelPriceUSD,
		Currency:       "USD",
		LastUpdated:    now.UTC().Format(time.RFC3339),
	}
}

// OceanEnvironment returns typical tropical surface values, flagged as
// estimated.
func OceanEnvironment(now time.Time) *model.OceanEnvironment {
	return &model.OceanEnvironment{
		Temperature:  defaultTemperature,
		Salinity:     35.0,
		Density:      1025.0,
		Chlorophyll:  1.5,
		WaveHeight:   defaultWaveHeight,
		CurrentSpeed: 0.6,
		Zone:         "tropical",
		UpdatedAt:    now.UTC().Format(time.RFC3339),
		Estimated:    true,
	}
}
