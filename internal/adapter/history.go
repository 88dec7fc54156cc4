package adapter

import (
	"sort"
	"strings"
	"time"

	"github.com/backyonatan-alt/hullwatch/backend/internal/model"
	"github.com/backyonatan-alt/hullwatch/backend/internal/risk"
)

const dateLayout = "2006-01-02"

var eventDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// PerformanceHistory rebuilds a historical efficiency series from raw
// biofouling events: one point per calendar date, valued at the mean of
// 100 - index*10 over that date's events, oldest first. Events whose date
// cannot be parsed are dropped.
func PerformanceHistory(records []model.BiofoulingRecordV1) []model.TimeSeriesPoint {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		day, ok := calendarDate(r.EventDate)
		if !ok {
			continue
		}
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.sum += risk.Efficiency(r.BioIndex)
		b.count++
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]model.TimeSeriesPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		out = append(out, model.TimeSeriesPoint{
			Date:  day,
			Value: b.sum / float64(b.count),
			Type:  model.SeriesHistorical,
		})
	}
	return out
}

// calendarDate normalizes an event timestamp to YYYY-MM-DD. Timestamps with
// a zone keep their own calendar date.
func calendarDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout), true
		}
	}
	return "", false
}

// JoinSeries concatenates a historical and a predicted segment. When both
// are present the last historical point is repeated at the head of the
// prediction so the two chart lines meet.
func JoinSeries(historical, predicted []model.TimeSeriesPoint) []model.TimeSeriesPoint {
	out := make([]model.TimeSeriesPoint, 0, len(historical)+len(predicted)+1)
	out = append(out, historical...)
	if len(historical) > 0 && len(predicted) > 0 {
		boundary := historical[len(historical)-1]
		if predicted[0].Date != boundary.Date {
			boundary.Type = model.SeriesPrediction
			out = append(out, boundary)
		}
	}
	return append(out, predicted...)
}

// HistoryWindow returns the first and last date of a history of the given
// length ending at now. Both ends are inclusive, so days dates are covered.
func HistoryWindow(now time.Time, days int) (start, end string) {
	if days < 1 {
		days = 1
	}
	return now.AddDate(0, 0, -(days - 1)).Format(dateLayout), now.Format(dateLayout)
}
