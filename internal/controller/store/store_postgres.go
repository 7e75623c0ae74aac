package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/controller/models"
	"bicns/internal/platform/postgres"
	"bicns/pkg/platform/sentinel"
)

// PostgresStore persists commitments in the commitments table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Commitment(ctx context.Context, hash common.Hash) (*models.Commitment, error) {
	var ts postgres.Uint64
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT committed_at FROM commitments WHERE hash = $1
	`, hash.Bytes()).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query commitment: %w", err)
	}
	return &models.Commitment{Hash: hash, Timestamp: uint64(ts)}, nil
}

func (s *PostgresStore) PutCommitment(ctx context.Context, c models.Commitment) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO commitments (hash, committed_at) VALUES ($1, $2)
		ON CONFLICT (hash) DO UPDATE SET committed_at = EXCLUDED.committed_at
	`, c.Hash.Bytes(), postgres.Uint64(c.Timestamp))
	if err != nil {
		return fmt.Errorf("upsert commitment: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCommitment(ctx context.Context, hash common.Hash) error {
	if _, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM commitments WHERE hash = $1`, hash.Bytes()); err != nil {
		return fmt.Errorf("delete commitment: %w", err)
	}
	return nil
}
