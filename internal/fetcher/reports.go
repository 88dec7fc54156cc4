package fetcher

import (
	"context"
	"net/http"

	"github.com/backyonatan-alt/hullwatch/backend/internal/adapter"
	"github.com/backyonatan-alt/hullwatch/backend/internal/fallback"
	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

const (
	biofoulingReportPath = "/reports/biofouling"

	// Upper bound on events pulled to rebuild the history.
	historyRecordLimit = 1000
)

func validReport(r model.BiofoulingReportV1) (model.BiofoulingReportV1, bool) {
	// An empty list is a valid answer; a missing one is not.
	return r, r.Records != nil
}

func (f *Fetcher) biofoulingReport(ctx context.Context, resource string, q model.ReportQuery) Result[model.BiofoulingReportV1] {
	res := fetch[model.BiofoulingReportV1](ctx, f, request{
		resource: resource,
		method:   http.MethodGet,
		path:     biofoulingReportPath,
		query:    q.Values(),
	})
	return adapt(res, resource, validReport)
}

// BiofoulingReport returns raw biofouling events matching q.
func (f *Fetcher) BiofoulingReport(ctx context.Context, q model.ReportQuery) (model.BiofoulingReportV1, error) {
	res := f.biofoulingReport(ctx, "biofouling_report", q)
	return settle(f, "biofouling_report", res, func() model.BiofoulingReportV1 {
		return fallback.BiofoulingReport(f.now())
	})
}

// PerformanceHistory rebuilds a daily efficiency series for the last days
// days from raw events, since the backend has no history endpoint. A report
// with no events yields an empty series, not the fallback.
func (f *Fetcher) PerformanceHistory(ctx context.Context, days int) ([]model.TimeSeriesPoint, error) {
	if days <= 0 {
		days = f.historyDays
	}
	now := f.now()
	start, end := adapter.HistoryWindow(now, days)

	res := f.biofoulingReport(ctx, "performance_history", model.ReportQuery{
		StartDate: start,
		EndDate:   end,
		Limit:     historyRecordLimit,
	})
	series := adapt(res, "performance history", func(r model.BiofoulingReportV1) ([]model.TimeSeriesPoint, bool) {
		return adapter.PerformanceHistory(r.Records), true
	})
	return settle(f, "performance_history", series, func() []model.TimeSeriesPoint {
		return fallback.History(now, days)
	})
}
