package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bicns/internal/events"
	"bicns/internal/platform/memtx"
	"bicns/pkg/domain"
)

func TestInMemoryOutbox(t *testing.T) {
	ctx := context.Background()
	runner := memtx.New()
	s := NewInMemory(runner)
	node := domain.Namehash("alice.bic")

	require.NoError(t, runner.RunInTx(ctx, func(ctx context.Context) error {
		for _, typ := range []events.Type{events.TypeNewOwner, events.TypeNewResolver, events.TypeNewTTL} {
			if err := s.Append(ctx, events.New(ctx, typ, node, struct{}{})); err != nil {
				return err
			}
		}
		return nil
	}))

	t.Run("pending returns events in append order", func(t *testing.T) {
		pending, err := s.Pending(ctx, 2)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, events.TypeNewOwner, pending[0].Type)
		assert.Equal(t, int64(1), pending[0].Seq)
		assert.Equal(t, int64(2), pending[1].Seq)
	})

	t.Run("aborted append leaves no event and no gap", func(t *testing.T) {
		boom := errors.New("boom")
		err := runner.RunInTx(ctx, func(ctx context.Context) error {
			require.NoError(t, s.Append(ctx, events.New(ctx, events.TypeTransfer, node, struct{}{})))
			return boom
		})
		require.ErrorIs(t, err, boom)

		all, err := s.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		require.NoError(t, s.Append(ctx, events.New(ctx, events.TypeTransfer, node, struct{}{})))
		all, err = s.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), all[3].Seq)
	})

	t.Run("published events leave the pending set", func(t *testing.T) {
		pending, err := s.Pending(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 4)

		require.NoError(t, s.MarkPublished(ctx, []uuid.UUID{pending[0].ID, pending[1].ID}, time.Now()))
		pending, err = s.Pending(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, events.TypeNewTTL, pending[0].Type)

		all, err := s.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})
}
