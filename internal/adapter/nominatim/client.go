// Package nominatim implements domain.Geocoder against the OpenStreetMap
// Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/weather-odds-service/internal/domain"
	"github.com/couchcryptid/weather-odds-service/internal/observability"
)

// ErrNoResult indicates the API answered successfully but found nothing for
// the query.
var ErrNoResult = errors.New("nominatim: no result")

// Client implements domain.Geocoder using the Nominatim search and reverse
// endpoints. All requests pass through a shared rate limiter; the Nominatim
// usage policy caps anonymous clients at one request per second.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Nominatim geocoding client.
func NewClient(baseURL, userAgent string, timeout time.Duration, rps float64, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		metrics:    metrics,
		logger:     logger,
	}
}

// Forward converts a place name to a coordinate using the first search hit.
func (c *Client) Forward(ctx context.Context, name string) (domain.Coordinate, error) {
	params := url.Values{
		"q":      {name},
		"format": {"json"},
		"limit":  {"1"},
	}

	body, err := c.doRequest(ctx, c.baseURL+"/search?"+params.Encode(), "forward")
	if err != nil {
		return domain.Coordinate{}, err
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("forward", "error").Inc()
		return domain.Coordinate{}, fmt.Errorf("decode search response: %w", err)
	}
	if len(results) == 0 {
		c.metrics.GeocodeRequests.WithLabelValues("forward", "empty").Inc()
		return domain.Coordinate{}, ErrNoResult
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		c.metrics.GeocodeRequests.WithLabelValues("forward", "error").Inc()
		return domain.Coordinate{}, fmt.Errorf("parse coordinates %q,%q", results[0].Lat, results[0].Lon)
	}

	c.metrics.GeocodeRequests.WithLabelValues("forward", "success").Inc()
	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}

// Reverse converts a coordinate to a display name, preferring "city, region"
// when both are present.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format":         {"json"},
		"zoom":           {"10"},
		"addressdetails": {"1"},
	}

	body, err := c.doRequest(ctx, c.baseURL+"/reverse?"+params.Encode(), "reverse")
	if err != nil {
		return "", err
	}

	var result reverseResult
	if err := json.Unmarshal(body, &result); err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("reverse", "error").Inc()
		return "", fmt.Errorf("decode reverse response: %w", err)
	}

	name := result.Address.displayName()
	if name == "" {
		c.metrics.GeocodeRequests.WithLabelValues("reverse", "empty").Inc()
		return "", ErrNoResult
	}

	c.metrics.GeocodeRequests.WithLabelValues("reverse", "success").Inc()
	return name, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL, method string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("%s geocode request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.GeocodeRequests.WithLabelValues(method, "error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, body)
	}

	return io.ReadAll(resp.Body)
}

// Nominatim API response types.

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseResult struct {
	Address address `json:"address"`
}

type address struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
	County  string `json:"county"`
}

// displayName composes "city, region" from whichever address parts exist.
func (a address) displayName() string {
	city := a.City
	if city == "" {
		city = a.Town
	}
	if city == "" {
		city = a.Village
	}
	region := a.State
	if region == "" {
		region = a.County
	}

	switch {
	case city != "" && region != "":
		return city + ", " + region
	case city != "":
		return city
	default:
		return region
	}
}
