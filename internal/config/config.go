package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Geocoder (OSM Nominatim) configuration.
	GeocoderBaseURL   string
	GeocoderTimeout   time.Duration
	GeocoderCacheSize int
	GeocoderRateLimit float64 // requests per second
	GeocoderUserAgent string

	// Observation source (NASA POWER) configuration.
	PowerBaseURL string
	PowerTimeout time.Duration

	// Analysis window and request defaults.
	HistoryYears int
	DefaultCity  string

	// Optional report archive publisher.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaReportTopic string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geocoderTimeout, err := parseDuration("GEOCODER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	powerTimeout, err := parseDuration("POWER_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		GeocoderBaseURL:   envOrDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout:   geocoderTimeout,
		GeocoderCacheSize: parsePositiveInt("GEOCODER_CACHE_SIZE", 1000),
		GeocoderRateLimit: parseRateLimit(),
		GeocoderUserAgent: envOrDefault("GEOCODER_USER_AGENT", "weather-odds-service/1.0"),

		PowerBaseURL: envOrDefault("POWER_BASE_URL", "https://power.larc.nasa.gov/api/temporal/daily/point"),
		PowerTimeout: powerTimeout,

		HistoryYears: parsePositiveInt("HISTORY_YEARS", 10),
		DefaultCity:  envOrDefault("DEFAULT_CITY", "Karachi"),

		KafkaEnabled:     os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic: envOrDefault("KAFKA_REPORT_TOPIC", "weather-odds-reports"),
	}

	if cfg.GeocoderBaseURL == "" {
		return nil, errors.New("GEOCODER_BASE_URL is required")
	}
	if cfg.PowerBaseURL == "" {
		return nil, errors.New("POWER_BASE_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_REPORT_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// parseRateLimit returns the geocoder request rate in requests per second.
// The default of 1 matches the Nominatim usage policy's absolute maximum.
func parseRateLimit() float64 {
	if s := os.Getenv("GEOCODER_RATE_LIMIT"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			return v
		}
	}
	return 1
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
