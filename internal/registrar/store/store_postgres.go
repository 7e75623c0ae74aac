package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/approvals"
	"bicns/internal/platform/postgres"
	"bicns/internal/registrar/models"
	"bicns/pkg/platform/sentinel"
)

// PostgresStore persists leases in registrar_labels.
type PostgresStore struct {
	*approvals.PostgresStore
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		PostgresStore: approvals.NewPostgres(db, approvals.ScopeRegistrar),
		db:            db,
	}
}

func (s *PostgresStore) Label(ctx context.Context, hash common.Hash) (*models.Label, error) {
	var (
		owner, approved []byte
		expiry          postgres.Uint64
	)
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT owner, approved, expiry FROM registrar_labels WHERE label_hash = $1
	`, hash.Bytes()).Scan(&owner, &approved, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query label: %w", err)
	}
	return &models.Label{
		Hash:     hash,
		Owner:    common.BytesToAddress(owner),
		Approved: common.BytesToAddress(approved),
		Expiry:   uint64(expiry),
	}, nil
}

func (s *PostgresStore) PutLabel(ctx context.Context, label *models.Label) error {
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO registrar_labels (label_hash, owner, approved, expiry)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (label_hash) DO UPDATE
		SET owner = EXCLUDED.owner, approved = EXCLUDED.approved, expiry = EXCLUDED.expiry
	`, label.Hash.Bytes(), label.Owner.Bytes(), label.Approved.Bytes(), postgres.Uint64(label.Expiry))
	if err != nil {
		return fmt.Errorf("upsert label: %w", err)
	}
	return nil
}
