package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/controller/models"
	"bicns/internal/platform/memtx"
	"bicns/pkg/platform/sentinel"
)

// InMemory keeps pending commitments keyed by hash.
type InMemory struct {
	tx          *memtx.Runner
	commitments map[common.Hash]uint64
}

func NewInMemory(tx *memtx.Runner) *InMemory {
	return &InMemory{
		tx:          tx,
		commitments: make(map[common.Hash]uint64),
	}
}

func (s *InMemory) Commitment(ctx context.Context, hash common.Hash) (*models.Commitment, error) {
	var (
		ts uint64
		ok bool
	)
	if err := s.tx.Read(ctx, func() error {
		ts, ok = s.commitments[hash]
		return nil
	}); err != nil {
		return nil, err
	}
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &models.Commitment{Hash: hash, Timestamp: ts}, nil
}

func (s *InMemory) PutCommitment(ctx context.Context, c models.Commitment) error {
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		memtx.Put(j, s.commitments, c.Hash, c.Timestamp)
		return nil
	})
}

// DeleteCommitment is a no-op for unknown hashes.
func (s *InMemory) DeleteCommitment(ctx context.Context, hash common.Hash) error {
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		memtx.Delete(j, s.commitments, hash)
		return nil
	})
}
