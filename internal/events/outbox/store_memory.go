// Package outbox stores events until the worker has published them.
package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bicns/internal/events"
	"bicns/internal/platform/memtx"
)

type entry struct {
	event     events.Event
	published bool
}

// InMemory is an outbox journaled by the shared runner, so an aborted
// transaction drops its events.
type InMemory struct {
	tx      *memtx.Runner
	entries []*entry
	seq     int64
}

func NewInMemory(tx *memtx.Runner) *InMemory {
	return &InMemory{tx: tx}
}

func (s *InMemory) Append(ctx context.Context, event events.Event) error {
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		prev := s.seq
		memtx.Do(j, func() { s.seq = prev })
		s.seq++
		event.Seq = s.seq
		memtx.Append(j, &s.entries, &entry{event: event})
		return nil
	})
}

// Pending returns up to limit unpublished events in append order.
func (s *InMemory) Pending(ctx context.Context, limit int) ([]events.Event, error) {
	var out []events.Event
	err := s.tx.Read(ctx, func() error {
		for _, e := range s.entries {
			if e.published {
				continue
			}
			out = append(out, e.event)
			if len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (s *InMemory) MarkPublished(ctx context.Context, ids []uuid.UUID, _ time.Time) error {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return s.tx.Write(ctx, func(j *memtx.Journal) error {
		for _, e := range s.entries {
			if _, ok := want[e.event.ID]; ok && !e.published {
				memtx.Do(j, func() { e.published = false })
				e.published = true
			}
		}
		return nil
	})
}

// All returns every event ever appended, published or not.
func (s *InMemory) All(ctx context.Context) ([]events.Event, error) {
	var out []events.Event
	err := s.tx.Read(ctx, func() error {
		out = make([]events.Event, 0, len(s.entries))
		for _, e := range s.entries {
			out = append(out, e.event)
		}
		return nil
	})
	return out, err
}
