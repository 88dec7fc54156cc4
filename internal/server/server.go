package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/backyonatan-alt/hullwatch/backend/internal/cache"
	"github.com/backyonatan-alt/hullwatch/backend/internal/config"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/status"
	"github.com/backyonatan-alt/hullwatch/backend/internal/store"
)

// Backend is the set of fetch orchestrators the HTTP surface exposes.
type Backend interface {
	Dashboard(ctx context.Context) (model.DashboardData, error)
	FleetOverview(ctx context.Context) (model.FleetOverview, error)
	PerformanceHistory(ctx context.Context, days int) ([]model.TimeSeriesPoint, error)
	Ships(ctx context.Context) ([]model.Ship, error)
	BiofoulingReport(ctx context.Context, q model.ReportQuery) (model.BiofoulingReportV1, error)
	Predict(ctx context.Context, req model.PredictionRequestV1) (model.PredictionInsight, error)
	PredictScenario(ctx context.Context, req model.ScenarioRequestV0) (model.PredictionInsight, error)
	IntegrationsHealth(ctx context.Context) (model.IntegrationsHealth, error)
	OceanEnvironment(ctx context.Context) (*model.OceanEnvironment, error)
	SeaConditions(ctx context.Context, lat, lon float64) (model.SeaConditions, error)
	FuelPrice(ctx context.Context, port, fuelType string) (model.FuelPrice, error)
	CleaningRecommendation(ctx context.Context, vesselID string, index float64) (model.CleaningRecommendation, error)
	ScheduleCleaning(ctx context.Context, vesselID string, req model.ScheduleCleaningRequest) (model.ScheduleCleaningResult, error)
	EnhancedPrediction(ctx context.Context, req model.EnhancedPredictionRequestV1) (model.PredictionInsight, error)
	VesselPosition(ctx context.Context, imo string) (*model.VesselPosition, error)
	FleetOptimization(ctx context.Context, vesselIDs []string) (model.FleetOptimization, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg      *config.Config
	cache    *cache.Cache
	store    store.Store
	backend  Backend
	status   *status.Publisher
	metrics  http.Handler
	upgrader websocket.Upgrader

	quit     chan struct{}
	quitOnce sync.Once
}

func New(cfg *config.Config, cache *cache.Cache, store store.Store, backend Backend, pub *status.Publisher, metrics http.Handler) *Server {
	s := &Server{
		cfg:     cfg,
		cache:   cache,
		store:   store,
		backend: backend,
		status:  pub,
		metrics: metrics,
		quit:    make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.isAllowedOrigin(origin)
		},
	}
	return s
}

// Router returns the HTTP handler with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return s.isAllowedOrigin(origin)
		},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/data", s.handleData)
		r.Get("/status", s.handleStatus)
		r.Get("/status/ws", s.handleStatusStream)

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/fleet/overview", s.handleFleetOverview)
		r.Get("/fleet/history", s.handleFleetHistory)
		r.Get("/ships", s.handleShips)
		r.Get("/reports/biofouling", s.handleBiofoulingReport)
		r.Post("/predictions", s.handlePredict)
		r.Post("/predictions/scenario", s.handlePredictScenario)
		r.Post("/predictions/enhanced", s.handleEnhancedPrediction)
		r.Post("/fleet/optimization", s.handleFleetOptimization)

		r.Get("/integrations/health", s.handleIntegrationsHealth)
		r.Get("/integrations/ocean", s.handleOceanEnvironment)
		r.Get("/integrations/sea-conditions", s.handleSeaConditions)
		r.Get("/integrations/fuel-prices", s.handleFuelPrice)

		r.Get("/vessels/{id}/cleaning-recommendation", s.handleCleaningRecommendation)
		r.Post("/vessels/{id}/schedule-cleaning", s.handleScheduleCleaning)
		r.Get("/vessels/{id}/cleanings", s.handleCleanings)
		r.Get("/vessels/{id}/position", s.handleVesselPosition)
	})
	return r
}

// Close ends open status streams. Hijacked websocket connections are not
// covered by http.Server.Shutdown.
func (s *Server) Close() {
	s.quitOnce.Do(func() { close(s.quit) })
}
