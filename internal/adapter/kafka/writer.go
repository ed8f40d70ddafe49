// Package kafka publishes pipeline run results to the notification sink
// topic: one message per alert, followed by a run-summary message.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/RSangDev/weather-analytics-dashboard/internal/config"
	"github.com/RSangDev/weather-analytics-dashboard/internal/domain"
	"github.com/RSangDev/weather-analytics-dashboard/internal/pipeline"
)

// Writer produces alert and run-summary messages to a Kafka topic.
// It implements pipeline.Notifier.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured alert topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// NotifyRun publishes every alert of the run plus a trailing summary message
// in a single WriteMessages call, so a run's notifications land atomically
// from the producer's point of view.
func (w *Writer) NotifyRun(ctx context.Context, run *pipeline.RunResult) error {
	msgs := make([]kafkago.Message, 0, len(run.Alerts)+1)
	for _, alert := range run.Alerts {
		msg, err := serializeAlert(run.ID(), alert)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	summaryMsg, err := serializeSummary(run)
	if err != nil {
		return err
	}
	msgs = append(msgs, summaryMsg)

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish run %s: %w", run.ID(), err)
	}
	w.logger.Info("run published", "run_id", run.ID(), "alerts", len(run.Alerts))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeAlert marshals one alert into a Kafka message keyed by city, with
// type and criticality headers so consumers can filter without deserializing.
func serializeAlert(runID string, alert domain.Alert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(alert.City),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte("alert")},
			{Key: "alert_type", Value: []byte(alert.Type)},
			{Key: "critical", Value: []byte(strconv.FormatBool(alert.Type.Critical()))},
			{Key: "run_id", Value: []byte(runID)},
		},
	}, nil
}

// serializeSummary marshals the run's cross-city summary, keyed by run ID.
func serializeSummary(run *pipeline.RunResult) (kafkago.Message, error) {
	payload := struct {
		RunID       string         `json:"run_id"`
		CompletedAt time.Time      `json:"completed_at"`
		Summary     domain.Summary `json:"summary"`
		AlertCount  int            `json:"alert_count"`
	}{
		RunID:       run.ID(),
		CompletedAt: run.CompletedAt,
		Summary:     run.Summary,
		AlertCount:  len(run.Alerts),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize run summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(run.ID()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte("run_summary")},
			{Key: "run_id", Value: []byte(run.ID())},
		},
	}, nil
}
