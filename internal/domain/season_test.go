package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeasonalFactors_NorthernHemisphere(t *testing.T) {
	tests := []struct {
		month    time.Month
		expected SeasonalAdjustment
	}{
		{time.January, SeasonalAdjustment{Heat: 0.7, Rain: 1.0, Wind: 1.2}},
		{time.February, SeasonalAdjustment{Heat: 0.7, Rain: 1.0, Wind: 1.2}},
		{time.March, SeasonalAdjustment{Heat: 1.0, Rain: 1.0, Wind: 1.0}},
		{time.April, SeasonalAdjustment{Heat: 1.0, Rain: 1.0, Wind: 1.0}},
		{time.May, SeasonalAdjustment{Heat: 1.0, Rain: 1.0, Wind: 1.0}},
		{time.June, SeasonalAdjustment{Heat: 1.3, Rain: 1.1, Wind: 1.0}},
		// July and August take the summer factors first, then the monsoon
		// rule overwrites heat and rain.
		{time.July, SeasonalAdjustment{Heat: 0.9, Rain: 1.5, Wind: 1.0}},
		{time.August, SeasonalAdjustment{Heat: 0.9, Rain: 1.5, Wind: 1.0}},
		{time.September, SeasonalAdjustment{Heat: 0.9, Rain: 1.5, Wind: 1.0}},
		{time.October, SeasonalAdjustment{Heat: 1.0, Rain: 1.0, Wind: 1.0}},
		{time.November, SeasonalAdjustment{Heat: 1.0, Rain: 1.0, Wind: 1.0}},
		{time.December, SeasonalAdjustment{Heat: 0.7, Rain: 1.0, Wind: 1.2}},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, SeasonalFactors(tt.month, 31.5))
		})
	}
}

func TestSeasonalFactors_SouthernHemisphereAlwaysUnity(t *testing.T) {
	unity := SeasonalAdjustment{Heat: 1.0, Rain: 1.0, Wind: 1.0}
	for m := time.January; m <= time.December; m++ {
		assert.Equal(t, unity, SeasonalFactors(m, -33.87), "month %s", m)
	}
}

func TestSeasonalFactors_EquatorCountsAsNorthern(t *testing.T) {
	assert.Equal(t, SeasonalAdjustment{Heat: 1.3, Rain: 1.1, Wind: 1.0}, SeasonalFactors(time.June, 0))
}
