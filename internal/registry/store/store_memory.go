package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/approvals"
	"bicns/internal/platform/memtx"
	"bicns/internal/registry/models"
)

// InMemory holds registry records in a map journaled by the shared runner.
type InMemory struct {
	*approvals.InMemory
	tx      *memtx.Runner
	records map[common.Hash]models.Record
}

func NewInMemory(tx *memtx.Runner) *InMemory {
	return &InMemory{
		InMemory: approvals.NewInMemory(tx, approvals.ScopeRegistry),
		tx:       tx,
		records:  make(map[common.Hash]models.Record),
	}
}

// Record returns the zero record for unknown nodes.
func (s *InMemory) Record(ctx context.Context, node common.Hash) (models.Record, error) {
	var rec models.Record
	err := s.tx.Read(ctx, func() error {
		rec = s.records[node]
		return nil
	})
	return rec, err
}

func (s *InMemory) PutRecord(ctx context.Context, node common.Hash, rec models.Record) error {
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		memtx.Put(j, s.records, node, rec)
		return nil
	})
}
