package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/platform/memtx"
	"bicns/internal/resolver/models"
)

type InMemory struct {
	tx      *memtx.Runner
	records map[common.Hash]*models.Records
}

func NewInMemory(tx *memtx.Runner) *InMemory {
	return &InMemory{tx: tx, records: make(map[common.Hash]*models.Records)}
}

// Records returns a copy; unknown nodes read as an empty set.
func (s *InMemory) Records(ctx context.Context, node common.Hash) (*models.Records, error) {
	var out *models.Records
	err := s.tx.Read(ctx, func() error {
		out = s.records[node].Clone()
		return nil
	})
	return out, err
}

func (s *InMemory) PutRecords(ctx context.Context, node common.Hash, records *models.Records) error {
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		if records.Empty() {
			memtx.Delete(j, s.records, node)
			return nil
		}
		memtx.Put(j, s.records, node, records.Clone())
		return nil
	})
}
