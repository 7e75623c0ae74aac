// Package kafka connects the event publisher to a Kafka-compatible cluster.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"bicns/internal/platform/config"
)

const (
	DefaultPartitions  = 3
	DefaultReplication = 1
)

// Client is a producer bound to one topic.
type Client struct {
	*kgo.Client
	topic string
}

// New returns nil, nil when no brokers are configured.
func New(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RecordDeliveryTimeout(30 * time.Second),
	}
	if logger != nil {
		opts = append(opts, kgo.WithLogger(kgoLogger{logger: logger}))
	}
	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}
	return &Client{Client: client, topic: cfg.Topic}, nil
}

func (c *Client) Topic() string {
	return c.topic
}

// EnsureTopic creates the topic if it does not exist yet.
func (c *Client) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(c.Client)
	resp, err := adm.CreateTopic(ctx, partitions, replication, nil, c.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", c.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", c.topic, resp.Err)
	}
	return nil
}

// Health pings the cluster.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx)
}

type kgoLogger struct {
	logger *slog.Logger
}

func (l kgoLogger) Level() kgo.LogLevel {
	return kgo.LogLevelWarn
}

func (l kgoLogger) Log(level kgo.LogLevel, msg string, keyvals ...any) {
	args := append([]any{"component", "kafka"}, keyvals...)
	switch level {
	case kgo.LogLevelError:
		l.logger.Error(msg, args...)
	case kgo.LogLevelWarn:
		l.logger.Warn(msg, args...)
	case kgo.LogLevelInfo:
		l.logger.Info(msg, args...)
	default:
		l.logger.Debug(msg, args...)
	}
}
