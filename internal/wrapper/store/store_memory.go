package store

import (
	"bytes"
	"context"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/approvals"
	"bicns/internal/platform/memtx"
	"bicns/internal/wrapper/models"
	"bicns/pkg/platform/sentinel"
)

// InMemory holds wrapped-name tokens keyed by node. Unwrapped residue stays in
// the map with a zero owner.
type InMemory struct {
	*approvals.InMemory
	tx    *memtx.Runner
	names map[common.Hash]models.WrappedName
}

func NewInMemory(tx *memtx.Runner) *InMemory {
	return &InMemory{
		InMemory: approvals.NewInMemory(tx, approvals.ScopeWrapper),
		tx:       tx,
		names:    make(map[common.Hash]models.WrappedName),
	}
}

// Wrapped returns sentinel.ErrNotFound for nodes that were never wrapped.
func (s *InMemory) Wrapped(ctx context.Context, node common.Hash) (*models.WrappedName, error) {
	var (
		w  models.WrappedName
		ok bool
	)
	if err := s.tx.Read(ctx, func() error {
		w, ok = s.names[node]
		return nil
	}); err != nil {
		return nil, err
	}
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	w.Name = bytes.Clone(w.Name)
	return &w, nil
}

func (s *InMemory) PutWrapped(ctx context.Context, w *models.WrappedName) error {
	stored := *w
	stored.Name = bytes.Clone(w.Name)
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		memtx.Put(j, s.names, w.Node, stored)
		return nil
	})
}
