package domain

import "time"

const (
	// forecastMonths is the length of the projected series: the target month
	// plus the following five.
	forecastMonths = 6

	// recentTrendDays is the trailing window treated as the "recent trend",
	// measured back from the latest observation.
	recentTrendDays = 90

	// Blend weights between same-month history and the recent trend.
	historyWeight = 0.6
	recentWeight  = 0.4
)

// Fallback projection values emitted for months with no historical data.
const (
	fallbackProjectedTemp = 25.0
	fallbackProjectedRain = 5.0
	fallbackProjectedWind = 5.0
)

// Forecast estimates extremity probabilities for a future date and builds the
// 6-month projected series. The probabilities are all zero unless the target
// is strictly after now, the series is non-empty, and same-month history
// exists; the projected series is always 6 points, falling back to fixed
// values where history is missing.
func Forecast(series ObservationSeries, target time.Time, thresholds ThresholdSet, lat float64) (ProbabilitySet, []TrendPoint) {
	points := projectedSeries(series, target, lat)

	if !target.After(clock.Now()) || series.Empty() {
		return ProbabilitySet{}, points
	}

	sameMonth := recordsInMonth(series.Records(), target.Month())
	if len(sameMonth) == 0 {
		return ProbabilitySet{}, points
	}

	histHot := exceedPercent(sameMonth, func(r ObservationRecord) bool { return r.Temperature > thresholds.Hot })
	histCold := exceedPercent(sameMonth, func(r ObservationRecord) bool { return r.Temperature < thresholds.Cold })
	histWet := exceedPercent(sameMonth, func(r ObservationRecord) bool { return r.Precipitation > thresholds.Wet })
	histWindy := exceedPercent(sameMonth, func(r ObservationRecord) bool { return r.WindSpeed > thresholds.Windy })

	hot, wet, windy := histHot, histWet, histWindy
	recent := recentTrend(series)
	if len(recent) > 0 {
		recentHot := exceedPercent(recent, func(r ObservationRecord) bool { return r.Temperature > thresholds.Hot })
		recentWet := exceedPercent(recent, func(r ObservationRecord) bool { return r.Precipitation > thresholds.Wet })
		recentWindy := exceedPercent(recent, func(r ObservationRecord) bool { return r.WindSpeed > thresholds.Windy })

		hot = histHot*historyWeight + recentHot*recentWeight
		wet = histWet*historyWeight + recentWet*recentWeight
		windy = histWindy*historyWeight + recentWindy*recentWeight
	}

	// Recent-past data carries no useful cold-extreme signal; cold stays on
	// the same-month historical rate and skips seasonal adjustment.
	cold := histCold

	adj := SeasonalFactors(target.Month(), lat)
	hot *= adj.Heat
	wet *= adj.Rain
	windy *= adj.Wind

	var uncomfortable float64
	if series.HasHumidity() {
		uncomfortable = exceedPercent(sameMonth, isUncomfortable)
	} else {
		uncomfortable = hot*0.5 + wet*0.3 + windy*0.2
	}

	return ProbabilitySet{
		VeryHot:       clampPercent(hot),
		VeryCold:      clampPercent(cold),
		VeryWet:       clampPercent(wet),
		VeryWindy:     clampPercent(windy),
		Uncomfortable: clampPercent(uncomfortable),
	}, points
}

// recordsInMonth returns all records whose calendar month matches, across all
// years.
func recordsInMonth(records []ObservationRecord, month time.Month) []ObservationRecord {
	var out []ObservationRecord
	for _, r := range records {
		if r.Date.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// recentTrend returns records from the trailing 90 days, measured strictly
// after latest-90d so the window matches the original rolling selection.
func recentTrend(series ObservationSeries) []ObservationRecord {
	if series.Empty() {
		return nil
	}
	cutoff := series.LatestDate().AddDate(0, 0, -recentTrendDays)
	var out []ObservationRecord
	for _, r := range series.Records() {
		if r.Date.After(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// projectedSeries builds the 6-point illustrative series. Each point anchors
// at the target's month start advanced by 30*i days. The 30-day step is
// deliberate: it drifts past true calendar months when offsets straddle month
// boundaries, and downstream charts are calibrated to that stepping.
func projectedSeries(series ObservationSeries, target time.Time, lat float64) []TrendPoint {
	points := make([]TrendPoint, 0, forecastMonths)
	monthStart := time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < forecastMonths; i++ {
		anchor := monthStart.AddDate(0, 0, 30*i)
		label := anchor.Format("2006-01")

		monthData := recordsInMonth(series.Records(), anchor.Month())
		if len(monthData) == 0 {
			points = append(points, TrendPoint{
				Month: label,
				Hot:   fallbackProjectedTemp,
				Cold:  fallbackProjectedTemp,
				Wet:   fallbackProjectedRain,
				Windy: fallbackProjectedWind,
			})
			continue
		}

		var temp, rain, wind float64
		for _, r := range monthData {
			temp += r.Temperature
			rain += r.Precipitation
			wind += r.WindSpeed
		}
		n := float64(len(monthData))

		adj := SeasonalFactors(anchor.Month(), lat)
		points = append(points, TrendPoint{
			Month: label,
			Hot:   round1(temp / n * adj.Heat),
			Cold:  round1(temp / n * adj.Heat),
			Wet:   round1(rain / n * adj.Rain),
			Windy: round1(wind / n * adj.Wind),
		})
	}
	return points
}
