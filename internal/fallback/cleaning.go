package fallback

import (
	"time"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/risk"
)

// CleaningRecommendation computes a recommendation locally. detail is the
// ship's summary when the backend could provide one; its max index wins over
// the caller's index when higher, and its recorded cost replaces the rough
// per-point savings estimate.
func CleaningRecommendation(vesselID string, index float64, detail *model.ShipDetailV1, now time.Time) model.CleaningRecommendation {
	savings := index * savingsPerIndexPoint
	var lastCleaning string
	var daysSince *int

	if detail != nil {
		if detail.MaxBioIndex > index {
			index = detail.MaxBioIndex
		}
		savings = detail.TotalAdditionalCostUSD
		if detail.LastCleaningDate != "" {
			lastCleaning = detail.LastCleaningDate
			if t, err := time.Parse(time.RFC3339, detail.LastCleaningDate); err == nil {
				d := int(now.Sub(t).Hours() / 24)
				daysSince = &d
			} else if t, err := time.Parse(dateLayout, detail.LastCleaningDate); err == nil {
				d := int(now.Sub(t).Hours() / 24)
				daysSince = &d
			}
		} else if detail.DaysSinceCleaning != nil {
			d := *detail.DaysSinceCleaning
			daysSince = &d
		}
	}

	urgency := risk.Urgency(index)
	return model.CleaningRecommendation{
		VesselID:          vesselID,
		BiofoulingIndex:   index,
		CleaningUrgency:   urgency,
		RecommendedAction: cleaningActions[urgency],
		EstimatedSavings:  savings,
		NextAvailableSlot: now.AddDate(0, 0, nextSlotDays).UTC().Format(time.RFC3339),
		LastCleaningDate:  lastCleaning,
		DaysSinceCleaning: daysSince,
	}
}
