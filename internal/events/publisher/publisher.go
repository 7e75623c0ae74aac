// Package publisher delivers outbox events to indexers.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"bicns/internal/events"
)

// Envelope is the wire form of one event.
type Envelope struct {
	ID         uuid.UUID   `json:"id"`
	Seq        int64       `json:"seq"`
	Type       string      `json:"type"`
	Node       common.Hash `json:"node"`
	Payload    any         `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewEnvelope(e events.Event) Envelope {
	return Envelope{
		ID:         e.ID,
		Seq:        e.Seq,
		Type:       string(e.Type),
		Node:       e.Node,
		Payload:    e.Payload,
		OccurredAt: e.OccurredAt.UTC(),
	}
}

// Log writes each event to the structured log. It stands in for Kafka when no
// brokers are configured.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (p *Log) Publish(ctx context.Context, batch []events.Event) error {
	for _, e := range batch {
		payload, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", e.ID, err)
		}
		p.logger.InfoContext(ctx, "event published",
			"log_type", "event",
			"event_id", e.ID.String(),
			"seq", e.Seq,
			"type", string(e.Type),
			"node", e.Node.Hex(),
			"payload", string(payload),
		)
	}
	return nil
}

// Producer is satisfied by *kgo.Client.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Kafka produces one record per event keyed by node, so events of one node
// stay in order within a partition.
type Kafka struct {
	producer Producer
	topic    string
}

func NewKafka(producer Producer, topic string) *Kafka {
	return &Kafka{producer: producer, topic: topic}
}

func (p *Kafka) Publish(ctx context.Context, batch []events.Event) error {
	if len(batch) == 0 {
		return nil
	}
	records := make([]*kgo.Record, 0, len(batch))
	for _, e := range batch {
		value, err := json.Marshal(NewEnvelope(e))
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", e.ID, err)
		}
		records = append(records, &kgo.Record{
			Topic: p.topic,
			Key:   []byte(e.Node.Hex()),
			Value: value,
			Headers: []kgo.RecordHeader{
				{Key: "event_type", Value: []byte(e.Type)},
				{Key: "event_id", Value: []byte(e.ID.String())},
			},
			Timestamp: e.OccurredAt,
		})
	}
	if err := p.producer.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("produce events: %w", err)
	}
	return nil
}
