package kafka

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"bicns/internal/platform/config"
)

func TestNewWithoutBrokers(t *testing.T) {
	client, err := New(context.Background(), config.KafkaConfig{Topic: "bicns.events"}, nil)
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestKgoLogger(t *testing.T) {
	var buf bytes.Buffer
	l := kgoLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	assert.Equal(t, kgo.LogLevelWarn, l.Level())
	l.Log(kgo.LogLevelError, "produce failed", "broker", "localhost:9092")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "component=kafka")
	assert.Contains(t, buf.String(), "broker=localhost:9092")
}
