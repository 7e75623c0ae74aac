package approvals

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/platform/postgres"
)

// PostgresStore persists approvals in the operators and controllers tables.
type PostgresStore struct {
	db    *sql.DB
	scope Scope
}

func NewPostgres(db *sql.DB, scope Scope) *PostgresStore {
	return &PostgresStore{db: db, scope: scope}
}

func (s *PostgresStore) IsOperator(ctx context.Context, owner, operator common.Address) (bool, error) {
	var exists bool
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM operators WHERE scope = $1 AND owner = $2 AND operator = $3)
	`, string(s.scope), owner.Bytes(), operator.Bytes()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query operator: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) SetOperator(ctx context.Context, owner, operator common.Address, approved bool) error {
	var err error
	if approved {
		_, err = postgres.Conn(ctx, s.db).ExecContext(ctx, `
			INSERT INTO operators (scope, owner, operator) VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, string(s.scope), owner.Bytes(), operator.Bytes())
	} else {
		_, err = postgres.Conn(ctx, s.db).ExecContext(ctx, `
			DELETE FROM operators WHERE scope = $1 AND owner = $2 AND operator = $3
		`, string(s.scope), owner.Bytes(), operator.Bytes())
	}
	if err != nil {
		return fmt.Errorf("set operator: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsController(ctx context.Context, address common.Address) (bool, error) {
	var exists bool
	err := postgres.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM controllers WHERE scope = $1 AND address = $2)
	`, string(s.scope), address.Bytes()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query controller: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) SetController(ctx context.Context, address common.Address, enabled bool) error {
	var err error
	if enabled {
		_, err = postgres.Conn(ctx, s.db).ExecContext(ctx, `
			INSERT INTO controllers (scope, address) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, string(s.scope), address.Bytes())
	} else {
		_, err = postgres.Conn(ctx, s.db).ExecContext(ctx, `
			DELETE FROM controllers WHERE scope = $1 AND address = $2
		`, string(s.scope), address.Bytes())
	}
	if err != nil {
		return fmt.Errorf("set controller: %w", err)
	}
	return nil
}

func (s *PostgresStore) Controllers(ctx context.Context) ([]common.Address, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT address FROM controllers WHERE scope = $1 ORDER BY address
	`, string(s.scope))
	if err != nil {
		return nil, fmt.Errorf("query controllers: %w", err)
	}
	defer rows.Close()

	var out []common.Address
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan controller: %w", err)
		}
		out = append(out, common.BytesToAddress(raw))
	}
	return out, rows.Err()
}
