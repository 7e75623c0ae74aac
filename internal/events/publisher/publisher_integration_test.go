//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"bicns/internal/platform/config"
	"bicns/internal/platform/kafka"
	"bicns/pkg/testutil/containers"
)

func TestKafkaPublishToBroker(t *testing.T) {
	ctx := context.Background()
	rp := containers.GetManager().GetRedpanda(t)
	topic := "bicns.publisher-test"

	client, err := kafka.New(ctx, config.KafkaConfig{Brokers: []string{rp.Broker}, Topic: topic}, nil)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	require.NoError(t, client.EnsureTopic(ctx, 1, 1))

	batch := sampleEvents()
	require.NoError(t, NewKafka(client, topic).Publish(ctx, batch))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	pollCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	var got []Envelope
	for len(got) < len(batch) {
		fetches := consumer.PollFetches(pollCtx)
		require.NoError(t, pollCtx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			var env Envelope
			require.NoError(t, json.Unmarshal(r.Value, &env))
			got = append(got, env)
		})
	}
	require.Len(t, got, 2)
	assert.Equal(t, batch[0].ID, got[0].ID)
	assert.Equal(t, int64(2), got[1].Seq)
}
