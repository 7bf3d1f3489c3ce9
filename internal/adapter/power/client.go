// Package power fetches daily observation history from the NASA POWER
// temporal daily point API.
package power

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-odds-service/internal/domain"
	"github.com/couchcryptid/weather-odds-service/internal/observability"
)

// requestedParameters is the comma-joined POWER parameter list: temperature,
// corrected precipitation, wind speed, relative humidity.
const requestedParameters = domain.ParamTemperature + "," +
	domain.ParamPrecipitation + "," +
	domain.ParamWindSpeed + "," +
	domain.ParamHumidity

// Client fetches raw observation payloads for a coordinate and date range.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a POWER API client. The timeout bounds the whole fetch;
// a decade of daily data is a large response and slow to assemble upstream.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Fetch retrieves the daily observation payload for [start, end] at the given
// coordinate. Errors are reported to the caller, which substitutes an empty
// payload; this client does not degrade silently itself.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, start, end time.Time) (domain.RawObservationPayload, error) {
	params := url.Values{
		"parameters": {requestedParameters},
		"community":  {"AG"},
		"latitude":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":  {strconv.FormatFloat(lon, 'f', -1, 64)},
		"start":      {start.Format("20060102")},
		"end":        {end.Format("20060102")},
		"format":     {"JSON"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.RawObservationPayload{}, fmt.Errorf("create request: %w", err)
	}

	fetchStart := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObservationFetchSeconds.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		c.metrics.ObservationFetches.WithLabelValues("error").Inc()
		return domain.RawObservationPayload{}, fmt.Errorf("observation fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ObservationFetches.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return domain.RawObservationPayload{}, fmt.Errorf("POWER API error: status %d: %s", resp.StatusCode, body)
	}

	var payload domain.RawObservationPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.ObservationFetches.WithLabelValues("error").Inc()
		return domain.RawObservationPayload{}, fmt.Errorf("decode observation payload: %w", err)
	}

	c.metrics.ObservationFetches.WithLabelValues("success").Inc()
	return payload, nil
}
