package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/platform/postgres"
	"bicns/internal/resolver/models"
)

// PostgresStore keeps each node's record set as one JSONB document.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Records(ctx context.Context, node common.Hash) (*models.Records, error) {
	var raw []byte
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT records FROM resolver_records WHERE node = $1
	`, node.Bytes()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Records{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	var out models.Records
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return &out, nil
}

func (s *PostgresStore) PutRecords(ctx context.Context, node common.Hash, records *models.Records) error {
	conn := postgres.Conn(ctx, s.db)
	if records.Empty() {
		if _, err := conn.ExecContext(ctx, `DELETE FROM resolver_records WHERE node = $1`, node.Bytes()); err != nil {
			return fmt.Errorf("delete records: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	_, err = conn.ExecContext(ctx, `
		INSERT INTO resolver_records (node, records) VALUES ($1, $2)
		ON CONFLICT (node) DO UPDATE SET records = EXCLUDED.records
	`, node.Bytes(), raw)
	if err != nil {
		return fmt.Errorf("upsert records: %w", err)
	}
	return nil
}
