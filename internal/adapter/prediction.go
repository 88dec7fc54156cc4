package adapter

import (
	"math"
	"time"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/risk"
)

// Days until the next hull cleaning, per cleaning urgency.
var maintenanceLeadDays = map[model.Level]int{
	model.LevelCritical: 0,
	model.LevelHigh:     14,
	model.LevelMedium:   30,
	model.LevelLow:      90,
}

// Prediction adapts a POST /predictions/ response. The voyage starts at the
// response timestamp, or now when the backend sends none.
func Prediction(resp model.PredictionResponseV1, durationDays float64, now time.Time) (model.PredictionInsight, bool) {
	if resp.PredictedConsumption <= 0 {
		return model.PredictionInsight{}, false
	}
	start := now
	if t, err := time.Parse(time.RFC3339, resp.Timestamp); err == nil {
		start = t
	}
	voyageEnd := start.AddDate(0, 0, int(math.Ceil(durationDays)))

	return model.PredictionInsight{
		ShipID:              resp.ShipName,
		FuelConsumption:     resp.PredictedConsumption,
		BaselineConsumption: resp.BaselineConsumption,
		BiofoulingRisk:      risk.Percent(resp.BioIndex),
		Level:               risk.FleetLevel(resp.BioIndex),
		AdditionalCostUSD:   resp.AdditionalCostUSD,
		AdditionalCO2Tons:   resp.AdditionalCO2Tons,
		MaintenanceDate:     start.AddDate(0, 0, maintenanceLeadDays[risk.Urgency(resp.BioIndex)]).Format(dateLayout),
		ChartData: []model.TimeSeriesPoint{{
			Date:  voyageEnd.Format(dateLayout),
			Value: risk.Efficiency(resp.BioIndex),
			Type:  model.SeriesPrediction,
		}},
	}, true
}

// Scenario adapts the legacy POST /predictions/scenario response, whose risk
// is already on the 0-100 scale.
func Scenario(shipID string, resp model.ScenarioResponseV0) (model.PredictionInsight, bool) {
	if resp.FuelConsumption <= 0 && len(resp.Series) == 0 {
		return model.PredictionInsight{}, false
	}
	chart := make([]model.TimeSeriesPoint, 0, len(resp.Series))
	for _, p := range resp.Series {
		day, ok := calendarDate(p.Date)
		if !ok {
			continue
		}
		chart = append(chart, model.TimeSeriesPoint{Date: day, Value: p.Value, Type: model.SeriesPrediction})
	}
	maintenance, _ := calendarDate(resp.MaintenanceDate)

	return model.PredictionInsight{
		ShipID:          shipID,
		FuelConsumption: resp.FuelConsumption,
		BiofoulingRisk:  resp.BiofoulingRisk,
		Level:           risk.FleetLevel(resp.BiofoulingRisk / 10),
		MaintenanceDate: maintenance,
		ChartData:       chart,
	}, true
}

// EnhancedPrediction adapts the integrations prediction, which has no voyage
// length: its single chart point is the efficiency expected today.
func EnhancedPrediction(resp model.EnhancedPredictionResponseV1, vesselID string, now time.Time) (model.PredictionInsight, bool) {
	if resp.PredictedConsumption <= 0 {
		return model.PredictionInsight{}, false
	}
	return model.PredictionInsight{
		ShipID:           vesselID,
		FuelConsumption:  resp.PredictedConsumption,
		BiofoulingRisk:   risk.Percent(resp.BiofoulingIndex),
		Level:            risk.FleetLevel(resp.BiofoulingIndex),
		MaintenanceDate:  now.AddDate(0, 0, maintenanceLeadDays[risk.Urgency(resp.BiofoulingIndex)]).Format(dateLayout),
		FuelCostUSD:      resp.FuelCostUSD,
		CO2EmissionsTons: resp.CO2EmissionsTons,
		DataSources:      resp.DataSources,
		ChartData: []model.TimeSeriesPoint{{
			Date:  now.Format(dateLayout),
			Value: risk.Efficiency(resp.BiofoulingIndex),
			Type:  model.SeriesPrediction,
		}},
	}, true
}
