package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-odds-service/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/weather-odds-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-odds-service/internal/adapter/nominatim"
	"github.com/couchcryptid/weather-odds-service/internal/adapter/power"
	"github.com/couchcryptid/weather-odds-service/internal/config"
	"github.com/couchcryptid/weather-odds-service/internal/domain"
	"github.com/couchcryptid/weather-odds-service/internal/observability"
	"github.com/couchcryptid/weather-odds-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := nominatim.NewClient(
		cfg.GeocoderBaseURL,
		cfg.GeocoderUserAgent,
		cfg.GeocoderTimeout,
		cfg.GeocoderRateLimit,
		metrics,
		logger,
	)
	var geocoder domain.Geocoder = nominatim.NewCachedGeocoder(client, cfg.GeocoderCacheSize, metrics)

	source := power.NewClient(cfg.PowerBaseURL, cfg.PowerTimeout, metrics, logger)

	// Report archiving is feature-flagged via KAFKA_ENABLED.
	var publisher service.ReportPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("report archiving enabled", "topic", cfg.KafkaReportTopic)
	} else {
		logger.Info("report archiving disabled")
	}

	svc := service.New(geocoder, source, publisher, logger, metrics, cfg.HistoryYears, cfg.DefaultCity)

	srv := httpapi.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
