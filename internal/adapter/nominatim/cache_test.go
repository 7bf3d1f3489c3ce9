package nominatim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-odds-service/internal/domain"
	"github.com/couchcryptid/weather-odds-service/internal/observability"
)

type mockGeocoder struct {
	forwardResult domain.Coordinate
	forwardErr    error
	reverseResult string
	reverseErr    error
	forwardCalls  int
	reverseCalls  int
}

func (m *mockGeocoder) Forward(_ context.Context, _ string) (domain.Coordinate, error) {
	m.forwardCalls++
	return m.forwardResult, m.forwardErr
}

func (m *mockGeocoder) Reverse(_ context.Context, _, _ float64) (string, error) {
	m.reverseCalls++
	return m.reverseResult, m.reverseErr
}

func TestCachedGeocoder_ForwardCachesSuccesses(t *testing.T) {
	inner := &mockGeocoder{forwardResult: domain.Coordinate{Lat: 24.86, Lon: 67.00}}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	for i := 0; i < 3; i++ {
		coord, err := cached.Forward(context.Background(), "karachi")
		require.NoError(t, err)
		assert.Equal(t, 24.86, coord.Lat)
	}

	assert.Equal(t, 1, inner.forwardCalls)
}

func TestCachedGeocoder_ForwardDoesNotCacheErrors(t *testing.T) {
	inner := &mockGeocoder{forwardErr: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	for i := 0; i < 2; i++ {
		_, err := cached.Forward(context.Background(), "karachi")
		require.Error(t, err)
	}

	assert.Equal(t, 2, inner.forwardCalls)
}

func TestCachedGeocoder_ReverseCachesByCoordinate(t *testing.T) {
	inner := &mockGeocoder{reverseResult: "Karachi, Sindh"}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	name, err := cached.Reverse(context.Background(), 24.8607, 67.0011)
	require.NoError(t, err)
	assert.Equal(t, "Karachi, Sindh", name)

	_, err = cached.Reverse(context.Background(), 24.8607, 67.0011)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.reverseCalls)

	// A different coordinate misses.
	_, err = cached.Reverse(context.Background(), 31.55, 74.34)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.reverseCalls)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", cacheValue{name: "A"})
	cache.put("b", cacheValue{name: "B"})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", cacheValue{name: "C"})

	_, ok = cache.get("b")
	assert.False(t, ok)
	_, ok = cache.get("a")
	assert.True(t, ok)
	_, ok = cache.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateExistingKey(t *testing.T) {
	cache := newLRUCache(2)

	cache.put("a", cacheValue{name: "old"})
	cache.put("a", cacheValue{name: "new"})

	v, ok := cache.get("a")
	require.True(t, ok)
	assert.Equal(t, "new", v.name)
}
