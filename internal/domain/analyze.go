package domain

import (
	"math"
	"sort"
	"time"
)

// Discomfort is "hot and humid": temperature above 30°C with relative
// humidity above 70%. Used for both historical and forecast paths.
const (
	discomfortTemp     = 30.0
	discomfortHumidity = 70.0
)

// historicalTrendMonths is how many trailing monthly buckets the historical
// trend exposes.
const historicalTrendMonths = 12

// Analyze computes empirical extremity frequencies over the whole series plus
// a smoothed monthly trend of the most recent 12 months. An empty series
// yields an all-zero ProbabilitySet and a nil trend.
func Analyze(series ObservationSeries, thresholds ThresholdSet) (ProbabilitySet, []TrendPoint) {
	if series.Empty() {
		return ProbabilitySet{}, nil
	}

	records := series.Records()
	hot := exceedPercent(records, func(r ObservationRecord) bool { return r.Temperature > thresholds.Hot })
	cold := exceedPercent(records, func(r ObservationRecord) bool { return r.Temperature < thresholds.Cold })
	wet := exceedPercent(records, func(r ObservationRecord) bool { return r.Precipitation > thresholds.Wet })
	windy := exceedPercent(records, func(r ObservationRecord) bool { return r.WindSpeed > thresholds.Windy })

	var uncomfortable float64
	if series.HasHumidity() {
		uncomfortable = exceedPercent(records, isUncomfortable)
	} else {
		// No humidity column: estimate from heat alone.
		uncomfortable = hot * 0.8
	}

	probs := ProbabilitySet{
		VeryHot:       clampPercent(hot),
		VeryCold:      clampPercent(cold),
		VeryWet:       clampPercent(wet),
		VeryWindy:     clampPercent(windy),
		Uncomfortable: clampPercent(uncomfortable),
	}

	return probs, historicalTrend(records)
}

func isUncomfortable(r ObservationRecord) bool {
	return r.Temperature > discomfortTemp && r.Humidity > discomfortHumidity
}

// exceedPercent returns the percentage of records matching the predicate.
func exceedPercent(records []ObservationRecord, match func(ObservationRecord) bool) float64 {
	if len(records) == 0 {
		return 0
	}
	count := 0
	for _, r := range records {
		if match(r) {
			count++
		}
	}
	return float64(count) / float64(len(records)) * 100
}

// clampPercent clamps to [0,100] and rounds to one decimal, in that order.
func clampPercent(v float64) float64 {
	return round1(math.Min(100, math.Max(0, v)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// monthlyMean is one calendar-month bucket of averaged observations.
type monthlyMean struct {
	month time.Time // first of the month, UTC
	temp  float64
	rain  float64
	wind  float64
}

// historicalTrend buckets records into year-month means, smooths them with a
// trailing 3-bucket moving average (window shrinks at the start), and returns
// the most recent 12 buckets ascending. Fewer than 3 buckets skip smoothing.
func historicalTrend(records []ObservationRecord) []TrendPoint {
	means := monthlyMeans(records)

	if len(means) >= 3 {
		means = smoothTrailing3(means)
	}

	if len(means) > historicalTrendMonths {
		means = means[len(means)-historicalTrendMonths:]
	}

	points := make([]TrendPoint, 0, len(means))
	for _, m := range means {
		temp := round1(m.temp)
		points = append(points, TrendPoint{
			Month: m.month.Format("2006-01"),
			Hot:   temp,
			Cold:  temp,
			Wet:   round1(m.rain),
			Windy: round1(m.wind),
		})
	}
	return points
}

// monthlyMeans averages records per distinct year-month, ascending.
func monthlyMeans(records []ObservationRecord) []monthlyMean {
	type accumulator struct {
		temp, rain, wind float64
		n                int
	}
	buckets := make(map[time.Time]*accumulator)
	for _, r := range records {
		key := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		acc, ok := buckets[key]
		if !ok {
			acc = &accumulator{}
			buckets[key] = acc
		}
		acc.temp += r.Temperature
		acc.rain += r.Precipitation
		acc.wind += r.WindSpeed
		acc.n++
	}

	months := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	means := make([]monthlyMean, 0, len(months))
	for _, m := range months {
		acc := buckets[m]
		n := float64(acc.n)
		means = append(means, monthlyMean{
			month: m,
			temp:  acc.temp / n,
			rain:  acc.rain / n,
			wind:  acc.wind / n,
		})
	}
	return means
}

// smoothTrailing3 replaces each bucket with the mean of itself and up to two
// preceding buckets.
func smoothTrailing3(means []monthlyMean) []monthlyMean {
	smoothed := make([]monthlyMean, len(means))
	for i := range means {
		lo := i - 2
		if lo < 0 {
			lo = 0
		}
		var temp, rain, wind float64
		for j := lo; j <= i; j++ {
			temp += means[j].temp
			rain += means[j].rain
			wind += means[j].wind
		}
		n := float64(i - lo + 1)
		smoothed[i] = monthlyMean{
			month: means[i].month,
			temp:  temp / n,
			rain:  rain / n,
			wind:  wind / n,
		}
	}
	return smoothed
}
