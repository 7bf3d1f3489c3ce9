// Package kafka archives completed reports to a Kafka topic for downstream
// consumers (dashboards, long-term storage).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/weather-odds-service/internal/config"
	"github.com/couchcryptid/weather-odds-service/internal/domain"
)

// Publisher produces report messages to the archive topic.
// It implements service.ReportPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured report topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaReportTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes one report and writes it to the archive topic.
func (p *Publisher) Publish(ctx context.Context, report domain.Report) error {
	msg, err := serializeToMessage(report)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a report into a Kafka message. The key groups
// messages for the same location and date onto the same partition.
func serializeToMessage(report domain.Report) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.LocationName + "|" + report.Date),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "target_date", Value: []byte(report.Date)},
			{Key: "generated_at", Value: []byte(domain.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}
