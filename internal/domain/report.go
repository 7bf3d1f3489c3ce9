package domain

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ProbabilitySet holds the percentage likelihood of each extreme condition.
// Every field is clamped to [0,100] and rounded to one decimal.
type ProbabilitySet struct {
	VeryHot       float64 `json:"very_hot"`
	VeryCold      float64 `json:"very_cold"`
	VeryWet       float64 `json:"very_wet"`
	VeryWindy     float64 `json:"very_windy"`
	Uncomfortable float64 `json:"uncomfortable"`
}

// TrendPoint is one month in a displayed time series: smoothed observed
// values for historical trends, seasonally adjusted projections for
// forecasts. Cold mirrors Hot; both expose the same smoothed temperature and
// the chart layer decides how to render them.
type TrendPoint struct {
	Month string  `json:"date"` // "YYYY-MM"
	Hot   float64 `json:"hot"`
	Cold  float64 `json:"cold"`
	Wet   float64 `json:"wet"`
	Windy float64 `json:"windy"`
}

// CheckRequest is the caller's question: which place, which date. Coordinates,
// when present and parseable, override the city name.
type CheckRequest struct {
	City        string `json:"city"`
	Date        string `json:"date"`        // "YYYY-MM-DD", defaults to today
	Coordinates string `json:"coordinates"` // "lat,lon", optional
}

// Report is the assembled answer for one request.
type Report struct {
	LocationName  string         `json:"location_name"`
	Date          string         `json:"date"`
	Probabilities ProbabilitySet `json:"probabilities"`
	TimeSeries    []TrendPoint   `json:"time_series"`
	Coordinates   [2]float64     `json:"coordinates"` // [lat, lon]
	Confidence    float64        `json:"confidence"`
}
