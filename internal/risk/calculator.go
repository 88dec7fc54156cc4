package risk

import (
	"math"
	"sort"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
)

// Thresholds on the backend's 0-10 biofouling index.
const (
	criticalAbove = 7.0
	highAbove     = 5.0
	mediumAbove   = 3.0
)

// Percent rescales a 0-10 index to the UI's 0-100 risk. Out-of-range input is
// passed through unclamped.
func Percent(index float64) float64 {
	return index * 10
}

// Efficiency is the hydrodynamic efficiency implied by an index.
func Efficiency(index float64) float64 {
	return 100 - index*10
}

// IsCritical reports whether a ship belongs on a critical-ships list at all.
func IsCritical(index float64) bool {
	return index > highAbove
}

// Severity classifies a ship already known to be critical.
func Severity(index float64) model.Level {
	if index > criticalAbove {
		return model.LevelCritical
	}
	return model.LevelHigh
}

// FleetLevel labels a fleet-wide average index.
func FleetLevel(index float64) model.Level {
	switch {
	case index > criticalAbove:
		return model.LevelCritical
	case index > highAbove:
		return model.LevelHigh
	case index > mediumAbove:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

// Urgency maps an index to a cleaning urgency. The boundaries are inclusive,
// unlike Severity.
func Urgency(index float64) model.Level {
	switch {
	case index >= 8:
		return model.LevelCritical
	case index >= 6:
		return model.LevelHigh
	case index >= 4:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

// CriticalShips picks ships above the alert threshold, highest risk first,
// keeping at most max entries.
func CriticalShips(ships []model.ShipSummaryV1, max int) []model.CriticalShip {
	out := make([]model.CriticalShip, 0, len(ships))
	for _, s := range ships {
		if !IsCritical(s.AvgBioIndex) {
			continue
		}
		out = append(out, model.CriticalShip{
			Name:          s.ShipName,
			Risk:          Percent(s.AvgBioIndex),
			Level:         Severity(s.AvgBioIndex),
			BioIndex:      s.AvgBioIndex,
			ExcessPercent: Round(excessPercent(s.AvgExcessRatio), 1),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Risk > out[j].Risk
	})
	if max >= 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// excessPercent converts an actual/baseline ratio into extra consumption.
func excessPercent(ratio float64) float64 {
	if ratio <= 0 {
		return 0
	}
	return (ratio - 1) * 100
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
