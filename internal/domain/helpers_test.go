package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// freezeClock pins the domain clock to a fixed instant for the duration of
// the test.
func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

// payloadBuilder assembles a RawObservationPayload day by day.
type payloadBuilder struct {
	payload RawObservationPayload
}

func newPayloadBuilder() *payloadBuilder {
	b := &payloadBuilder{}
	b.payload.Properties.Parameter = map[string]map[string]float64{
		ParamTemperature:   {},
		ParamPrecipitation: {},
		ParamWindSpeed:     {},
	}
	return b
}

func (b *payloadBuilder) add(date time.Time, temp, rain, wind float64) *payloadBuilder {
	key := date.Format("20060102")
	b.payload.Properties.Parameter[ParamTemperature][key] = temp
	b.payload.Properties.Parameter[ParamPrecipitation][key] = rain
	b.payload.Properties.Parameter[ParamWindSpeed][key] = wind
	return b
}

func (b *payloadBuilder) addHumidity(date time.Time, humidity float64) *payloadBuilder {
	if b.payload.Properties.Parameter[ParamHumidity] == nil {
		b.payload.Properties.Parameter[ParamHumidity] = map[string]float64{}
	}
	b.payload.Properties.Parameter[ParamHumidity][date.Format("20060102")] = humidity
	return b
}

// addDays adds n consecutive identical days starting at start.
func (b *payloadBuilder) addDays(start time.Time, n int, temp, rain, wind float64) *payloadBuilder {
	for i := 0; i < n; i++ {
		b.add(start.AddDate(0, 0, i), temp, rain, wind)
	}
	return b
}

func (b *payloadBuilder) series() ObservationSeries {
	return BuildSeries(b.payload)
}

// dailySeries builds n consecutive identical days starting at start.
func dailySeries(start time.Time, n int, temp, rain, wind float64) ObservationSeries {
	return newPayloadBuilder().addDays(start, n, temp, rain, wind).series()
}
