package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeries(t *testing.T) {
	t.Run("normalizes a POWER payload", func(t *testing.T) {
		raw := []byte(`{
			"properties": {
				"parameter": {
					"T2M":         {"20240102": 28.5, "20240101": 27.0},
					"PRECTOTCORR": {"20240102": 3.2, "20240101": 0.0},
					"WS2M":        {"20240102": 4.1, "20240101": 5.6}
				}
			}
		}`)

		var payload RawObservationPayload
		require.NoError(t, json.Unmarshal(raw, &payload))

		series := BuildSeries(payload)
		require.Equal(t, 2, series.Len())
		assert.False(t, series.HasHumidity())

		records := series.Records()
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
		assert.Equal(t, 27.0, records[0].Temperature)
		assert.Equal(t, 0.0, records[0].Precipitation)
		assert.Equal(t, 5.6, records[0].WindSpeed)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), records[1].Date)
		assert.Equal(t, 3.2, records[1].Precipitation)
	})

	t.Run("missing temperature yields empty series", func(t *testing.T) {
		var payload RawObservationPayload
		payload.Properties.Parameter = map[string]map[string]float64{
			ParamPrecipitation: {"20240101": 5.0},
		}

		series := BuildSeries(payload)
		assert.True(t, series.Empty())
		assert.Zero(t, series.Len())
		assert.True(t, series.LatestDate().IsZero())
	})

	t.Run("zero-value payload yields empty series", func(t *testing.T) {
		series := BuildSeries(RawObservationPayload{})
		assert.True(t, series.Empty())
	})

	t.Run("humidity column is picked up when present", func(t *testing.T) {
		day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
		series := newPayloadBuilder().
			add(day, 33, 0, 2).
			addHumidity(day, 80).
			series()

		require.Equal(t, 1, series.Len())
		assert.True(t, series.HasHumidity())
		assert.Equal(t, 80.0, series.Records()[0].Humidity)
	})

	t.Run("date absent from a secondary column contributes zero", func(t *testing.T) {
		var payload RawObservationPayload
		payload.Properties.Parameter = map[string]map[string]float64{
			ParamTemperature:   {"20240101": 30.0, "20240102": 31.0},
			ParamPrecipitation: {"20240101": 12.0},
			ParamWindSpeed:     {},
		}

		series := BuildSeries(payload)
		require.Equal(t, 2, series.Len())
		assert.Equal(t, 12.0, series.Records()[0].Precipitation)
		assert.Equal(t, 0.0, series.Records()[1].Precipitation)
		assert.Equal(t, 0.0, series.Records()[0].WindSpeed)
	})

	t.Run("unparsable date keys are skipped", func(t *testing.T) {
		var payload RawObservationPayload
		payload.Properties.Parameter = map[string]map[string]float64{
			ParamTemperature: {"20240101": 30.0, "not-a-date": 99.0},
		}

		series := BuildSeries(payload)
		assert.Equal(t, 1, series.Len())
	})

	t.Run("records come out sorted regardless of key order", func(t *testing.T) {
		start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
		series := dailySeries(start, 90, 20, 1, 3)

		records := series.Records()
		require.Equal(t, 90, len(records))
		for i := 1; i < len(records); i++ {
			assert.True(t, records[i-1].Date.Before(records[i].Date))
		}
		assert.Equal(t, start.AddDate(0, 0, 89), series.LatestDate())
	})
}
