// Package domain computes extreme-weather odds from long-range daily
// observation history.
//
// # Data Source
//
// Daily observations come from the NASA POWER temporal daily point API
// (https://power.larc.nasa.gov/api/temporal/daily/point). The payload nests
// one map per requested parameter under properties.parameter, each keyed by
// a "YYYYMMDD" date string:
//
//	T2M         temperature at 2 meters, °C
//	PRECTOTCORR corrected total precipitation, mm/day
//	WS2M        wind speed at 2 meters, m/s
//	RH2M        relative humidity at 2 meters, % (not always available)
//
// [BuildSeries] flattens this into an [ObservationSeries]: one record per
// temperature date key, sorted ascending. Humidity is tracked per series, not
// per record; a payload either carries RH2M for its whole range or not at all.
//
// # Analysis Model
//
// Extremity is judged against region-specific thresholds ([SelectThresholds]),
// derived from fixed geographic bands tuned for the Pakistan region the
// original deployment served (coastal Karachi band, northern mountains,
// mid-latitude plains, plus a global default).
//
// For past dates, [Analyze] reports the empirical frequency of days exceeding
// each threshold plus a 3-month-smoothed monthly trend. For future dates,
// [Forecast] blends the same-calendar-month historical rate with the trailing
// 90-day rate (60/40), applies hemisphere-aware seasonal factors, and projects
// an illustrative 6-point monthly series. [Confidence] scores the result from
// data volume, recency, and forecast horizon.
//
// Every function here is pure and total: missing or degenerate data yields
// zero-valued results, never an error. "Now" is read from a swappable
// clockwork clock so tests can freeze time.
package domain
