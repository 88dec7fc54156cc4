package fetcher

import (
	"context"
	"net/http"

	"github.com/backyonatan-alt/hullwatch/backend/internal/adapter"
	"github.com/backyonatan-alt/hullwatch/backend/internal/fallback"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

// Predict asks the backend model for a voyage prediction. Predictions do not
// change backend state, so failures degrade like any read.
func (f *Fetcher) Predict(ctx context.Context, req model.PredictionRequestV1) (model.PredictionInsight, error) {
	now := f.now()
	res := fetch[model.PredictionResponseV1](ctx, f, request{
		resource: "prediction",
		method:   http.MethodPost,
		path:     "/predictions/",
		body:     req,
	})
	insight := adapt(res, "prediction", func(r model.PredictionResponseV1) (model.PredictionInsight, bool) {
		if r.ShipName == "" {
			r.ShipName = req.ShipName
		}
		return adapter.Prediction(r, req.DurationDays, now)
	})
	return settle(f, "prediction", insight, func() model.PredictionInsight {
		return fallback.Prediction(req, now)
	})
}

// PredictScenario calls the legacy scenario endpoint.
func (f *Fetcher) PredictScenario(ctx context.Context, req model.ScenarioRequestV0) (model.PredictionInsight, error) {
	now := f.now()
	res := fetch[model.ScenarioResponseV0](ctx, f, request{
		resource: "prediction_scenario",
		method:   http.MethodPost,
		path:     "/predictions/scenario",
		body:     req,
	})
	insight := adapt(res, "scenario prediction", func(r model.ScenarioResponseV0) (model.PredictionInsight, bool) {
		return adapter.Scenario(req.ShipID, r)
	})
	return settle(f, "prediction_scenario", insight, func() model.PredictionInsight {
		return fallback.Scenario(req, now)
	})
}

// The enhanced prediction carries no voyage length; its fallback assumes a
// month at sea.
const enhancedHorizonDays = 30

// EnhancedPrediction runs the prediction the backend enriches with weather
// and port data. Failures degrade to the local model like Predict.
func (f *Fetcher) EnhancedPrediction(ctx context.Context, req model.EnhancedPredictionRequestV1) (model.PredictionInsight, error) {
	now := f.now()
	res := fetch[model.EnhancedPredictionResponseV1](ctx, f, request{
		resource: "enhanced_prediction",
		method:   http.MethodPost,
		path:     "/integrations/predictions/enhanced",
		body:     req,
		optional: true,
	})
	insight := adapt(res, "enhanced prediction", func(r model.EnhancedPredictionResponseV1) (model.PredictionInsight, bool) {
		return adapter.EnhancedPrediction(r, req.VesselID, now)
	})
	return settle(f, "enhanced_prediction", insight, func() model.PredictionInsight {
		return fallback.Prediction(model.PredictionRequestV1{
			ShipName:          req.VesselID,
			Speed:             req.Speed,
			DurationDays:      enhancedHorizonDays,
			DaysSinceCleaning: req.DaysSinceCleaning,
		}, now)
	})
}
