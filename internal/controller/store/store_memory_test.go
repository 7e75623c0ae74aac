package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bicns/internal/controller/models"
	"bicns/internal/platform/memtx"
	"bicns/pkg/domain"
	"bicns/pkg/platform/sentinel"
)

func TestInMemoryCommitments(t *testing.T) {
	ctx := context.Background()
	runner := memtx.New()
	s := NewInMemory(runner)
	hash := domain.Keccak256([]byte("commitment"))

	_, err := s.Commitment(ctx, hash)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, s.PutCommitment(ctx, models.Commitment{Hash: hash, Timestamp: 42}))
	got, err := s.Commitment(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.Timestamp)

	t.Run("delete rolls back with the transaction", func(t *testing.T) {
		boom := errors.New("boom")
		err := runner.RunInTx(ctx, func(ctx context.Context) error {
			require.NoError(t, s.DeleteCommitment(ctx, hash))
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := s.Commitment(ctx, hash)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), got.Timestamp)
	})

	require.NoError(t, s.DeleteCommitment(ctx, hash))
	_, err = s.Commitment(ctx, hash)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
