package nominatim

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/weather-odds-service/internal/domain"
	"github.com/couchcryptid/weather-odds-service/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache. Cities repeat
// heavily across requests and Nominatim is rate limited to 1 req/s, so cache
// hits are what keep request latency acceptable.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lruCache
	metrics *observability.Metrics
}

// cacheValue holds either a forward result (coordinate) or a reverse result
// (display name), depending on the key prefix.
type cacheValue struct {
	coord domain.Coordinate
	name  string
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedGeocoder) Forward(ctx context.Context, name string) (domain.Coordinate, error) {
	key := "fwd:" + name
	if v, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("forward", "hit").Inc()
		return v.coord, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("forward", "miss").Inc()

	coord, err := c.inner.Forward(ctx, name)
	if err != nil {
		return coord, err
	}
	c.cache.put(key, cacheValue{coord: coord})
	return coord, nil
}

func (c *CachedGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	key := fmt.Sprintf("rev:%.6f,%.6f", lat, lon)
	if v, ok := c.cache.get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("reverse", "hit").Inc()
		return v.name, nil
	}
	c.metrics.GeocodeCache.WithLabelValues("reverse", "miss").Inc()

	name, err := c.inner.Reverse(ctx, lat, lon)
	if err != nil {
		return name, err
	}
	// Only successful lookups are cached, so transient failures can be retried.
	c.cache.put(key, cacheValue{name: name})
	return name, nil
}

// lruCache is a simple thread-safe LRU cache for geocoding results.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cacheValue
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cacheValue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cacheValue{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cacheValue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
