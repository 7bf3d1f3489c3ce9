package domain

import (
	"math"
	"time"
)

// HistoricalConfidence is the fixed score for past-date analysis: the answer
// is an observed frequency, not a prediction.
const HistoricalConfidence = 95.0

// fullConfidenceDays is the series length treated as full data-volume
// confidence: ten years of daily records.
const fullConfidenceDays = 3650

// Confidence scores forecast reliability in [10,95] from data volume, data
// recency, and forecast horizon. An empty series scores 0.
func Confidence(series ObservationSeries, target time.Time) float64 {
	if series.Empty() {
		return 0
	}

	now := clock.Now()

	dataAmount := math.Min(100, float64(series.Len())/fullConfidenceDays*100)

	daysSinceLatest := wholeDays(now.Sub(series.LatestDate()))
	recency := math.Max(0, 100-daysSinceLatest*2)

	var futurePenalty float64
	if target.After(now) {
		futurePenalty = math.Min(30, wholeDays(target.Sub(now))*2)
	}

	total := dataAmount*0.4 + recency*0.6 - futurePenalty
	return math.Max(10, math.Min(95, total))
}

// wholeDays truncates a duration to whole days, matching calendar-day
// difference semantics for the forward direction used here.
func wholeDays(d time.Duration) float64 {
	return float64(int(d.Hours() / 24))
}
