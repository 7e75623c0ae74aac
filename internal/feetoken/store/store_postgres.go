package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/platform/postgres"
)

// PostgresStore keeps the ledger in token_balances and token_allowances.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	var v postgres.BigInt
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT balance FROM token_balances WHERE address = $1
	`, addr.Bytes()).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query balance: %w", err)
	}
	return v.Int, nil
}

func (s *PostgresStore) SetBalance(ctx context.Context, addr common.Address, amount *big.Int) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO token_balances (address, balance) VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET balance = EXCLUDED.balance
	`, addr.Bytes(), postgres.BigInt{Int: amount})
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

func (s *PostgresStore) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	var v postgres.BigInt
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT amount FROM token_allowances WHERE owner = $1 AND spender = $2
	`, owner.Bytes(), spender.Bytes()).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("query allowance: %w", err)
	}
	return v.Int, nil
}

func (s *PostgresStore) SetAllowance(ctx context.Context, owner, spender common.Address, amount *big.Int) error {
	conn := postgres.Conn(ctx, s.db)
	if amount.Sign() == 0 {
		if _, err := conn.ExecContext(ctx, `
			DELETE FROM token_allowances WHERE owner = $1 AND spender = $2
		`, owner.Bytes(), spender.Bytes()); err != nil {
			return fmt.Errorf("delete allowance: %w", err)
		}
		return nil
	}
	_, err := conn.ExecContext(ctx, `
		INSERT INTO token_allowances (owner, spender, amount) VALUES ($1, $2, $3)
		ON CONFLICT (owner, spender) DO UPDATE SET amount = EXCLUDED.amount
	`, owner.Bytes(), spender.Bytes(), postgres.BigInt{Int: amount})
	if err != nil {
		return fmt.Errorf("upsert allowance: %w", err)
	}
	return nil
}
