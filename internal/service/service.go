// Package service orchestrates one odds request: resolve the location, fetch
// the historical window, run the analysis engine, and assemble the report.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/couchcryptid/weather-odds-service/internal/domain"
	"github.com/couchcryptid/weather-odds-service/internal/observability"
)

// Fallback coordinate used when geocoding fails entirely (central Karachi,
// matching the default city).
const (
	fallbackLat = 24.8607
	fallbackLon = 67.0011
)

// ObservationSource fetches raw daily observation history for a coordinate
// and date range.
type ObservationSource interface {
	Fetch(ctx context.Context, lat, lon float64, start, end time.Time) (domain.RawObservationPayload, error)
}

// ReportPublisher archives completed reports for downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Service answers extreme-weather odds requests. Every collaborator failure
// degrades to a documented fallback; Check always returns a well-formed
// report.
type Service struct {
	geocoder     domain.Geocoder
	source       ObservationSource
	publisher    ReportPublisher // nil when archiving is disabled
	logger       *slog.Logger
	metrics      *observability.Metrics
	historyYears int
	defaultCity  string
}

// New creates a Service. Pass a nil publisher to disable report archiving.
func New(geocoder domain.Geocoder, source ObservationSource, publisher ReportPublisher, logger *slog.Logger, metrics *observability.Metrics, historyYears int, defaultCity string) *Service {
	return &Service{
		geocoder:     geocoder,
		source:       source,
		publisher:    publisher,
		logger:       logger,
		metrics:      metrics,
		historyYears: historyYears,
		defaultCity:  defaultCity,
	}
}

// CheckReadiness reports whether the service can serve traffic. The service
// holds no cross-request state, so it is ready as soon as it is wired.
func (s *Service) CheckReadiness(_ context.Context) error {
	return nil
}

// Check processes one odds request end to end.
func (s *Service) Check(ctx context.Context, req domain.CheckRequest) domain.Report {
	start := time.Now()
	now := domain.Now()

	city := strings.ToLower(strings.TrimSpace(req.City))
	if city == "" {
		city = strings.ToLower(s.defaultCity)
	}

	target, dateStr := s.resolveDate(req.Date, now)
	lat, lon, locationName := s.resolveLocation(ctx, req.Coordinates, city)

	series := s.fetchSeries(ctx, lat, lon, target, now)
	thresholds := domain.SelectThresholds(lat, lon)

	var (
		probs      domain.ProbabilitySet
		timeSeries []domain.TrendPoint
		confidence float64
		path       string
	)
	if target.After(now) {
		probs, timeSeries = domain.Forecast(series, target, thresholds, lat)
		confidence = domain.Confidence(series, target)
		path = "forecast"
	} else {
		probs, timeSeries = domain.Analyze(series, thresholds)
		confidence = domain.HistoricalConfidence
		path = "historical"
	}

	report := domain.Report{
		LocationName:  locationName,
		Date:          dateStr,
		Probabilities: probs,
		TimeSeries:    timeSeries,
		Coordinates:   [2]float64{lat, lon},
		Confidence:    math.Round(confidence*10) / 10,
	}

	s.publish(ctx, report)

	s.metrics.RequestsTotal.WithLabelValues(path).Inc()
	s.metrics.RequestDuration.Observe(time.Since(start).Seconds())

	return report
}

// resolveDate parses the requested date, falling back to today on any parse
// failure. Returns the target and its normalized "YYYY-MM-DD" string.
func (s *Service) resolveDate(raw string, now time.Time) (time.Time, string) {
	target, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		if raw != "" {
			s.logger.Warn("unparsable request date, using today", "date", raw)
		}
		target = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return target, target.Format("2006-01-02")
}

// resolveLocation turns the request's coordinates-or-city into a coordinate
// pair and display name. Explicit parseable coordinates win; otherwise the
// city is geocoded, with the Karachi fallback when that fails too.
func (s *Service) resolveLocation(ctx context.Context, coordinates, city string) (float64, float64, string) {
	if coordinates != "" {
		if lat, lon, err := parseLatLon(coordinates); err == nil {
			return lat, lon, s.resolveName(ctx, lat, lon)
		}
		s.logger.Warn("malformed coordinates, geocoding city instead", "coordinates", coordinates, "city", city)
	}

	lat, lon := s.resolveCity(ctx, city)
	return lat, lon, titleCase(city)
}

func (s *Service) resolveCity(ctx context.Context, city string) (float64, float64) {
	coord, err := s.geocoder.Forward(ctx, city)
	if err != nil {
		s.logger.Warn("forward geocoding failed, using fallback coordinate", "city", city, "error", err)
		return fallbackLat, fallbackLon
	}
	return coord.Lat, coord.Lon
}

func (s *Service) resolveName(ctx context.Context, lat, lon float64) string {
	name, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("reverse geocoding failed, using coordinate label", "lat", lat, "lon", lon, "error", err)
		return fmt.Sprintf("%.2f, %.2f", lat, lon)
	}
	return name
}

// fetchSeries retrieves and normalizes the historical window: the last
// historyYears years up to today, ending at the target when the target is in
// the past. A failed fetch degrades to an empty series.
func (s *Service) fetchSeries(ctx context.Context, lat, lon float64, target, now time.Time) domain.ObservationSeries {
	windowStart := now.AddDate(0, 0, -365*s.historyYears)
	windowEnd := target
	if windowEnd.After(now) {
		windowEnd = now
	}

	payload, err := s.source.Fetch(ctx, lat, lon, windowStart, windowEnd)
	if err != nil {
		s.logger.Warn("observation fetch failed, proceeding with empty series",
			"lat", lat, "lon", lon, "error", err)
		payload = domain.RawObservationPayload{}
	}

	return domain.BuildSeries(payload)
}

func (s *Service) publish(ctx context.Context, report domain.Report) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, report); err != nil {
		s.logger.Warn("report publish failed", "location", report.LocationName, "error", err)
		return
	}
	s.metrics.ReportsPublished.Inc()
}

// parseLatLon splits a "lat,lon" string into its parts.
func parseLatLon(raw string) (float64, float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected lat,lon, got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude: %w", err)
	}
	return lat, lon, nil
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
