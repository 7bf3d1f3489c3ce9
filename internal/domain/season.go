package domain

import "time"

// SeasonalAdjustment holds multiplicative factors applied to heat, rain, and
// wind probabilities. Unity factors mean no adjustment.
type SeasonalAdjustment struct {
	Heat float64
	Rain float64
	Wind float64
}

// SeasonalFactors returns the adjustment factors for a calendar month at the
// given latitude. Southern-hemisphere latitudes always get unity factors.
//
// The northern-hemisphere rules are applied in sequence with last write wins:
// July and August first take the summer heat factor (1.3) and then have it
// overwritten by the monsoon rule's 0.9. The overlap is kept as-is; the rule
// set is calibrated against it.
func SeasonalFactors(month time.Month, lat float64) SeasonalAdjustment {
	adj := SeasonalAdjustment{Heat: 1.0, Rain: 1.0, Wind: 1.0}
	if lat < 0 {
		return adj
	}

	switch month {
	case time.June, time.July, time.August: // summer
		adj.Heat = 1.3
		adj.Rain = 1.1
	}
	switch month {
	case time.December, time.January, time.February: // winter
		adj.Heat = 0.7
		adj.Wind = 1.2
	}
	switch month {
	case time.July, time.August, time.September: // monsoon
		adj.Rain = 1.5
		adj.Heat = 0.9
	}

	return adj
}
