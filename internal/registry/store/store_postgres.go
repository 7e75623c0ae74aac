package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/approvals"
	"bicns/internal/platform/postgres"
	"bicns/internal/registry/models"
)

// PostgresStore persists registry records in registry_records.
type PostgresStore struct {
	*approvals.PostgresStore
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		PostgresStore: approvals.NewPostgres(db, approvals.ScopeRegistry),
		db:            db,
	}
}

func (s *PostgresStore) Record(ctx context.Context, node common.Hash) (models.Record, error) {
	var (
		owner, resolver []byte
		ttl             postgres.Uint64
	)
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT owner, resolver, ttl FROM registry_records WHERE node = $1
	`, node.Bytes()).Scan(&owner, &resolver, &ttl)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, nil
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("query registry record: %w", err)
	}
	return models.Record{
		Owner:    common.BytesToAddress(owner),
		Resolver: common.BytesToAddress(resolver),
		TTL:      uint64(ttl),
	}, nil
}

func (s *PostgresStore) PutRecord(ctx context.Context, node common.Hash, rec models.Record) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO registry_records (node, owner, resolver, ttl)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (node) DO UPDATE
		SET owner = EXCLUDED.owner, resolver = EXCLUDED.resolver, ttl = EXCLUDED.ttl
	`, node.Bytes(), rec.Owner.Bytes(), rec.Resolver.Bytes(), postgres.Uint64(rec.TTL))
	if err != nil {
		return fmt.Errorf("upsert registry record: %w", err)
	}
	return nil
}
