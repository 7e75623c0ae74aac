package approvals

import (
	"context"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/platform/memtx"
)

// InMemory keeps approvals in maps journaled by a shared memtx.Runner.
type InMemory struct {
	tx          *memtx.Runner
	scope       Scope
	operators   map[operatorKey]struct{}
	controllers map[controllerKey]struct{}
}

func NewInMemory(tx *memtx.Runner, scope Scope) *InMemory {
	return &InMemory{
		tx:          tx,
		scope:       scope,
		operators:   make(map[operatorKey]struct{}),
		controllers: make(map[controllerKey]struct{}),
	}
}

func (s *InMemory) IsOperator(ctx context.Context, owner, operator common.Address) (bool, error) {
	var ok bool
	err := s.tx.Read(ctx, func() error {
		_, ok = s.operators[operatorKey{s.scope, owner, operator}]
		return nil
	})
	return ok, err
}

func (s *InMemory) SetOperator(ctx context.Context, owner, operator common.Address, approved bool) error {
	key := operatorKey{s.scope, owner, operator}
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		if approved {
			memtx.Put(j, s.operators, key, struct{}{})
		} else {
			memtx.Delete(j, s.operators, key)
		}
		return nil
	})
}

func (s *InMemory) IsController(ctx context.Context, address common.Address) (bool, error) {
	var ok bool
	err := s.tx.Read(ctx, func() error {
		_, ok = s.controllers[controllerKey{s.scope, address}]
		return nil
	})
	return ok, err
}

func (s *InMemory) SetController(ctx context.Context, address common.Address, enabled bool) error {
	key := controllerKey{s.scope, address}
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		if enabled {
			memtx.Put(j, s.controllers, key, struct{}{})
		} else {
			memtx.Delete(j, s.controllers, key)
		}
		return nil
	})
}

// Controllers lists the allowlist in address order.
func (s *InMemory) Controllers(ctx context.Context) ([]common.Address, error) {
	var out []common.Address
	err := s.tx.Read(ctx, func() error {
		for k := range s.controllers {
			if k.scope == s.scope {
				out = append(out, k.address)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out, err
}
