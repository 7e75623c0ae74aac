package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"bicns/internal/events"
	"bicns/internal/platform/postgres"
)

// PostgresStore is the transactional outbox table. Payloads are stored as JSON
// and read back as json.RawMessage.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	_, err = postgres.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO outbox (id, event_type, node, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ID, string(event.Type), event.Node.Bytes(), payload, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Pending(ctx context.Context, limit int) ([]events.Event, error) {
	rows, err := postgres.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT seq, id, event_type, node, payload, occurred_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var out []events.Event
	for rows.Next() {
		var (
			e       events.Event
			typ     string
			node    []byte
			payload []byte
		)
		if err := rows.Scan(&e.Seq, &e.ID, &typ, &node, &payload, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		e.Type = events.Type(typ)
		e.Node = common.BytesToHash(node)
		e.Payload = json.RawMessage(payload)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	_, err := postgres.Conn(ctx, s.db).ExecContext(ctx, `
		UPDATE outbox SET published_at = $1 WHERE id = ANY($2::uuid[])
	`, at, pq.Array(raw))
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
