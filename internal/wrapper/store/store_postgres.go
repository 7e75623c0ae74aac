package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/approvals"
	"bicns/internal/platform/postgres"
	"bicns/internal/wrapper/models"
	"bicns/pkg/platform/sentinel"
)

// PostgresStore persists tokens in wrapped_names.
type PostgresStore struct {
	*approvals.PostgresStore
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		PostgresStore: approvals.NewPostgres(db, approvals.ScopeWrapper),
		db:            db,
	}
}

func (s *PostgresStore) Wrapped(ctx context.Context, node common.Hash) (*models.WrappedName, error) {
	var (
		name, owner []byte
		fuses       int64
		expiry      postgres.Uint64
	)
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT name, owner, fuses, expiry FROM wrapped_names WHERE node = $1
	`, node.Bytes()).Scan(&name, &owner, &fuses, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query wrapped name: %w", err)
	}
	return &models.WrappedName{
		Node:   node,
		Name:   name,
		Owner:  common.BytesToAddress(owner),
		Fuses:  models.Fuses(fuses),
		Expiry: uint64(expiry),
	}, nil
}

func (s *PostgresStore) PutWrapped(ctx context.Context, w *models.WrappedName) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO wrapped_names (node, name, owner, fuses, expiry)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (node) DO UPDATE
		SET name = EXCLUDED.name, owner = EXCLUDED.owner, fuses = EXCLUDED.fuses, expiry = EXCLUDED.expiry
	`, w.Node.Bytes(), w.Name, w.Owner.Bytes(), int64(w.Fuses), postgres.Uint64(w.Expiry))
	if err != nil {
		return fmt.Errorf("upsert wrapped name: %w", err)
	}
	return nil
}
