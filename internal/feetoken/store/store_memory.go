package store

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/platform/memtx"
)

type allowanceKey struct {
	owner   common.Address
	spender common.Address
}

// InMemory is the token ledger. Absent entries read as zero.
type InMemory struct {
	tx         *memtx.Runner
	balances   map[common.Address]*big.Int
	allowances map[allowanceKey]*big.Int
}

func NewInMemory(tx *memtx.Runner) *InMemory {
	return &InMemory{
		tx:         tx,
		balances:   make(map[common.Address]*big.Int),
		allowances: make(map[allowanceKey]*big.Int),
	}
}

func (s *InMemory) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	out := new(big.Int)
	err := s.tx.Read(ctx, func() error {
		if b, ok := s.balances[addr]; ok {
			out.Set(b)
		}
		return nil
	})
	return out, err
}

func (s *InMemory) SetBalance(ctx context.Context, addr common.Address, amount *big.Int) error {
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		memtx.Put(j, s.balances, addr, new(big.Int).Set(amount))
		return nil
	})
}

func (s *InMemory) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	out := new(big.Int)
	err := s.tx.Read(ctx, func() error {
		if a, ok := s.allowances[allowanceKey{owner: owner, spender: spender}]; ok {
			out.Set(a)
		}
		return nil
	})
	return out, err
}

func (s *InMemory) SetAllowance(ctx context.Context, owner, spender common.Address, amount *big.Int) error {
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		key := allowanceKey{owner: owner, spender: spender}
		if amount.Sign() == 0 {
			memtx.Delete(j, s.allowances, key)
			return nil
		}
		memtx.Put(j, s.allowances, key, new(big.Int).Set(amount))
		return nil
	})
}
