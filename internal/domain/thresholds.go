package domain

// ThresholdSet holds the per-region cutoffs above or below which a day counts
// as extreme for each weather category.
type ThresholdSet struct {
	Hot   float64 // °C, a day above this is "very hot"
	Cold  float64 // °C, a day below this is "very cold"
	Wet   float64 // mm/day, a day above this is "very wet"
	Windy float64 // m/s, a day above this is "very windy"
}

// SelectThresholds maps a coordinate to its regional extremity thresholds.
// Four mutually exclusive geographic rules are checked in priority order;
// the first match wins:
//   - coastal low-lying band (Karachi area): lower heat cutoff due to humidity
//   - northern mountain band: much colder, less rain, windier
//   - mid-latitude plains band (Lahore, Islamabad): standard cutoffs
//   - everywhere else: the global default
func SelectThresholds(lat, lon float64) ThresholdSet {
	switch {
	case lat >= 24.0 && lat <= 25.5 && lon >= 66.0 && lon <= 68.0:
		return ThresholdSet{Hot: 38, Cold: 10, Wet: 15, Windy: 8}
	case lat >= 34.0 && lat <= 37.0 && lon >= 70.0 && lon <= 77.0:
		return ThresholdSet{Hot: 32, Cold: -5, Wet: 8, Windy: 12}
	case lat >= 30.0 && lat <= 34.0:
		return ThresholdSet{Hot: 40, Cold: 0, Wet: 12, Windy: 10}
	default:
		return ThresholdSet{Hot: 35, Cold: 5, Wet: 10, Windy: 8}
	}
}
