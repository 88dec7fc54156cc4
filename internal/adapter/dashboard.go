// Package adapter turns raw backend payloads into the UI models. Every
// function is pure and reports failure with ok == false instead of an error;
// callers treat that exactly like a failed request.
package adapter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/risk"
)

const (
	DashboardCriticalShips = 4
	OverviewCriticalShips  = 5
)

// Dashboard adapts the fleet summary into the dashboard highlights. A summary
// without ships is rejected.
func Dashboard(s model.FleetSummaryV1) (model.DashboardData, bool) {
	if len(s.Ships) == 0 {
		return model.DashboardData{}, false
	}
	total := s.TotalShips
	if total == 0 {
		total = len(s.Ships)
	}
	return model.DashboardData{
		FleetAvgRisk:       risk.Round(risk.Percent(s.AvgBioIndex), 1),
		CriticalShips:      risk.CriticalShips(s.Ships, DashboardCriticalShips),
		TotalExtraFuelTons: int(math.Round(s.TotalAdditionalFuel)),
		TotalSavingsUSD:    s.TotalAdditionalCostUSD,
		TotalShips:         total,
		RiskLevel:          risk.FleetLevel(s.AvgBioIndex),
	}, true
}

// FleetOverview adapts the fleet summary plus a derived history into the
// overview page model.
func FleetOverview(s model.FleetSummaryV1, history []model.TimeSeriesPoint) (model.FleetOverview, bool) {
	if len(s.Ships) == 0 {
		return model.FleetOverview{}, false
	}
	if history == nil {
		history = []model.TimeSeriesPoint{}
	}

	total := s.TotalShips
	if total == 0 {
		total = len(s.Ships)
	}
	active := 0
	for _, ship := range s.Ships {
		if ship.TotalEvents > 0 {
			active++
		}
	}

	critical := risk.CriticalShips(s.Ships, OverviewCriticalShips)
	criticalCount := len(risk.CriticalShips(s.Ships, -1))
	efficiency := risk.Round(risk.Efficiency(s.AvgBioIndex), 1)
	level := risk.FleetLevel(s.AvgBioIndex)
	trend, trendValue := efficiencyTrend(history)

	kpis := []model.KPI{
		{
			ID:         "efficiency",
			Title:      "Average efficiency",
			Value:      strconv.FormatFloat(efficiency, 'f', 1, 64),
			Unit:       "%",
			Trend:      trend,
			TrendValue: trendValue,
			Status:     efficiencyStatus(efficiency),
		},
		{
			ID:         "biofouling-risk",
			Title:      "Biofouling risk",
			Value:      string(level),
			Trend:      model.TrendNeutral,
			TrendValue: fmt.Sprintf("%.0f%%", risk.Percent(s.AvgBioIndex)),
			Status:     levelStatus(level),
		},
		{
			ID:         "additional-fuel",
			Title:      "Additional fuel",
			Value:      strconv.Itoa(int(math.Round(s.TotalAdditionalFuel))),
			Unit:       "t",
			Trend:      model.TrendNeutral,
			TrendValue: fmt.Sprintf("%.0f t CO2", s.TotalAdditionalCO2),
			Status:     amountStatus(s.TotalAdditionalFuel),
		},
		{
			ID:         "additional-cost",
			Title:      "Additional cost",
			Value:      strconv.FormatFloat(s.TotalAdditionalCostUSD/1000, 'f', 1, 64),
			Unit:       "k USD",
			Trend:      model.TrendNeutral,
			TrendValue: fmt.Sprintf("%d events", s.TotalEvents),
			Status:     amountStatus(s.TotalAdditionalCostUSD),
		},
		{
			ID:         "critical-ships",
			Title:      "Ships needing attention",
			Value:      strconv.Itoa(criticalCount),
			Trend:      model.TrendNeutral,
			TrendValue: fmt.Sprintf("of %d", total),
			Status:     countStatus(criticalCount),
		},
	}

	return model.FleetOverview{
		TotalShips:         total,
		ActiveShips:        active,
		AverageEfficiency:  efficiency,
		KPIs:               kpis,
		PerformanceHistory: history,
		CriticalShips:      critical,
	}, true
}

func efficiencyTrend(history []model.TimeSeriesPoint) (model.Trend, string) {
	if len(history) < 2 {
		return model.TrendNeutral, "stable"
	}
	delta := risk.Round(history[len(history)-1].Value-history[0].Value, 1)
	switch {
	case delta > 0:
		return model.TrendUp, fmt.Sprintf("+%.1f%%", delta)
	case delta < 0:
		return model.TrendDown, fmt.Sprintf("%.1f%%", delta)
	default:
		return model.TrendNeutral, "stable"
	}
}

func efficiencyStatus(efficiency float64) model.KPIStatus {
	switch {
	case efficiency >= 70:
		return model.KPISuccess
	case efficiency >= 50:
		return model.KPIWarning
	default:
		return model.KPIError
	}
}

func levelStatus(level model.Level) model.KPIStatus {
	switch level {
	case model.LevelCritical:
		return model.KPIError
	case model.LevelHigh:
		return model.KPIWarning
	default:
		return model.KPIInfo
	}
}

func amountStatus(v float64) model.KPIStatus {
	if v > 0 {
		return model.KPIWarning
	}
	return model.KPISuccess
}

func countStatus(n int) model.KPIStatus {
	if n > 0 {
		return model.KPIWarning
	}
	return model.KPISuccess
}
