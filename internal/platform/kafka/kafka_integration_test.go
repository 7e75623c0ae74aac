//go:build integration

package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bicns/internal/platform/config"
	"bicns/pkg/testutil/containers"
)

func TestEnsureTopicIsIdempotent(t *testing.T) {
	ctx := context.Background()
	rp := containers.GetManager().GetRedpanda(t)

	client, err := New(ctx, config.KafkaConfig{Brokers: []string{rp.Broker}, Topic: "bicns.topic-test"}, nil)
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(client.Close)

	require.NoError(t, client.EnsureTopic(ctx, 1, 1))
	require.NoError(t, client.EnsureTopic(ctx, 1, 1))
	require.NoError(t, client.Health(ctx))
}
