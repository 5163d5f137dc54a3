// Package audit records registration outcomes on a Kafka topic for offline
// review. Optional capability: without brokers the no-op publisher is wired.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ustwan/tzr-host-api-sub001/internal/platform/kafka/producer"
)

// Record is one audited registration outcome.
type Record struct {
	Event      string    `json:"event"`
	Outcome    string    `json:"outcome"`
	Login      string    `json:"login"`
	TelegramID int64     `json:"telegram_id"`
	RequestID  string    `json:"request_id,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	DeviceOS   string    `json:"device_os,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher emits audit records. Implementations must never block the
// registration pipeline; delivery is best-effort.
type Publisher interface {
	Emit(ctx context.Context, rec Record)
}

// Noop discards records.
type Noop struct{}

// Emit does nothing.
func (Noop) Emit(context.Context, Record) {}

// Kafka publishes records asynchronously through the shared producer.
type Kafka struct {
	producer *producer.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafka constructs a Kafka-backed audit publisher.
func NewKafka(p *producer.Producer, topic string, logger *slog.Logger) *Kafka {
	return &Kafka{producer: p, topic: topic, logger: logger}
}

// Emit serializes and fires the record. Errors are logged and dropped.
func (k *Kafka) Emit(ctx context.Context, rec Record) {
	if rec.At.IsZero() {
		rec.At = time.Now().UTC()
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		k.logger.ErrorContext(ctx, "encode audit record", "error", err)
		return
	}
	err = k.producer.ProduceAsync(&producer.Message{
		Topic: k.topic,
		Key:   []byte(rec.Login),
		Value: payload,
	})
	if err != nil {
		k.logger.ErrorContext(ctx, "emit audit record", "error", err)
	}
}
