package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/approvals"
	"bicns/internal/platform/memtx"
	"bicns/internal/registrar/models"
	"bicns/pkg/platform/sentinel"
)

// InMemory holds label leases keyed by label hash.
type InMemory struct {
	*approvals.InMemory
	tx     *memtx.Runner
	labels map[common.Hash]models.Label
}

func NewInMemory(tx *memtx.Runner) *InMemory {
	return &InMemory{
		InMemory: approvals.NewInMemory(tx, approvals.ScopeRegistrar),
		tx:       tx,
		labels:   make(map[common.Hash]models.Label),
	}
}

// Label returns sentinel.ErrNotFound for labels that were never registered.
func (s *InMemory) Label(ctx context.Context, hash common.Hash) (*models.Label, error) {
	var (
		label models.Label
		ok    bool
	)
	if err := s.tx.Read(ctx, func() error {
		label, ok = s.labels[hash]
		return nil
	}); err != nil {
		return nil, err
	}
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &label, nil
}

func (s *InMemory) PutLabel(ctx context.Context, label *models.Label) error {
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		memtx.Put(j, s.labels, label.Hash, *label)
		return nil
	})
}
