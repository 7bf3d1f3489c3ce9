package domain

import (
	"sort"
	"time"
)

// NASA POWER parameter names.
const (
	ParamTemperature   = "T2M"
	ParamPrecipitation = "PRECTOTCORR"
	ParamWindSpeed     = "WS2M"
	ParamHumidity      = "RH2M"
)

// dateKeyLayout is the POWER API date key format, e.g. "20240426".
const dateKeyLayout = "20060102"

// RawObservationPayload mirrors the POWER daily point response: one value map
// per parameter, each keyed by a "YYYYMMDD" date string. A payload missing the
// temperature map is the documented degraded shape returned when the upstream
// fetch fails.
type RawObservationPayload struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// ObservationRecord is one day of observed weather.
type ObservationRecord struct {
	Date          time.Time
	Temperature   float64 // °C
	Precipitation float64 // mm/day
	WindSpeed     float64 // m/s
	Humidity      float64 // %, meaningful only when the series carries humidity
}

// ObservationSeries is a date-ascending sequence of daily records, built once
// per request and read-only afterwards.
type ObservationSeries struct {
	records     []ObservationRecord
	hasHumidity bool
}

// BuildSeries normalizes a raw payload into an ObservationSeries. A payload
// without temperature data yields an empty series rather than an error.
//
// Records are keyed off the temperature map: one record per parseable date
// key, looked up by the same key in the other parameter maps. A date absent
// from a secondary map contributes zero for that column, so misaligned
// payloads degrade to zeros instead of pairing values with wrong dates.
func BuildSeries(payload RawObservationPayload) ObservationSeries {
	params := payload.Properties.Parameter
	temps := params[ParamTemperature]
	if len(temps) == 0 {
		return ObservationSeries{}
	}

	rain := params[ParamPrecipitation]
	wind := params[ParamWindSpeed]
	humidity, hasHumidity := params[ParamHumidity]

	records := make([]ObservationRecord, 0, len(temps))
	for key, temp := range temps {
		date, err := time.Parse(dateKeyLayout, key)
		if err != nil {
			continue
		}
		rec := ObservationRecord{
			Date:          date,
			Temperature:   temp,
			Precipitation: rain[key],
			WindSpeed:     wind[key],
		}
		if hasHumidity {
			rec.Humidity = humidity[key]
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return ObservationSeries{records: records, hasHumidity: hasHumidity}
}

// Len returns the number of daily records.
func (s ObservationSeries) Len() int { return len(s.records) }

// Empty reports whether the series holds no records.
func (s ObservationSeries) Empty() bool { return len(s.records) == 0 }

// HasHumidity reports whether the source payload carried a humidity column.
func (s ObservationSeries) HasHumidity() bool { return s.hasHumidity }

// Records returns the underlying records in ascending date order. Callers
// must treat the slice as read-only.
func (s ObservationSeries) Records() []ObservationRecord { return s.records }

// LatestDate returns the most recent observation date, or the zero time for
// an empty series.
func (s ObservationSeries) LatestDate() time.Time {
	if len(s.records) == 0 {
		return time.Time{}
	}
	return s.records[len(s.records)-1].Date
}
