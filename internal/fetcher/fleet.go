package fetcher

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/backyonatan-alt/hullwatch/backend/internal/adapter"
	"github.com/backyonatan-alt/hullwatch/backend/internal/fallback"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

const fleetSummaryPath = "/ships/fleet/summary"

func (f *Fetcher) fleetSummary(ctx context.Context, resource string) Result[model.FleetSummaryV1] {
	return fetch[model.FleetSummaryV1](ctx, f, request{
		resource: resource,
		method:   http.MethodGet,
		path:     fleetSummaryPath,
	})
}

// Dashboard returns the dashboard highlights, or the mock dashboard when the
// backend is unreachable or sends a summary without ships.
func (f *Fetcher) Dashboard(ctx context.Context) (model.DashboardData, error) {
	res := adapt(f.fleetSummary(ctx, "dashboard"), "dashboard", adapter.Dashboard)
	return settle(f, "dashboard", res, fallback.Dashboard)
}

// FleetOverview fetches the fleet summary and the derived history at the
// same time. A failed history does not discard a good summary; it is
// replaced by the fallback series on its own.
func (f *Fetcher) FleetOverview(ctx context.Context) (model.FleetOverview, error) {
	var (
		summary Result[model.FleetSummaryV1]
		history []model.TimeSeriesPoint
		histErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary = f.fleetSummary(gctx, "fleet_overview")
		return nil // never fail the group
	})
	g.Go(func() error {
		history, histErr = f.PerformanceHistory(gctx, f.historyDays)
		return nil
	})
	_ = g.Wait()

	if histErr != nil {
		f.record("fleet_overview", Canceled, histErr, summary.Elapsed)
		return model.FleetOverview{}, histErr
	}

	res := adapt(summary, "fleet overview", func(s model.FleetSummaryV1) (model.FleetOverview, bool) {
		return adapter.FleetOverview(s, history)
	})
	return settle(f, "fleet_overview", res, func() model.FleetOverview {
		return fallback.FleetOverview(f.now(), f.historyDays)
	})
}
