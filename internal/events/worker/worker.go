// Package worker drains the outbox: it publishes unpublished events in
// sequence order and marks them published once delivery succeeds.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bicns/internal/events"
	"bicns/internal/platform/metrics"
)

type Outbox interface {
	Pending(ctx context.Context, limit int) ([]events.Event, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, batch []events.Event) error
}

const (
	DefaultPollInterval = time.Second
	DefaultBatchSize    = 100
)

type Worker struct {
	outbox    Outbox
	publisher Publisher
	interval  time.Duration
	batchSize int
	breaker   *breaker
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

// WithBreaker pauses publishing for cooldown after threshold consecutive failures.
func WithBreaker(threshold int, cooldown time.Duration) Option {
	return func(w *Worker) {
		w.breaker = newBreaker(threshold, cooldown)
	}
}

func New(outbox Outbox, publisher Publisher, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		publisher: publisher,
		interval:  DefaultPollInterval,
		batchSize: DefaultBatchSize,
		breaker:   newBreaker(0, 0),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is cancelled, then makes one final drain attempt.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			_, _ = w.Drain(drainCtx)
			cancel()
			return nil
		case <-ticker.C:
			if _, err := w.Drain(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.WarnContext(ctx, "outbox drain failed", "error", err)
			}
		}
	}
}

// Drain publishes batches until the outbox is empty or a step fails. It returns
// the number of events published.
func (w *Worker) Drain(ctx context.Context) (int, error) {
	published := 0
	for {
		if !w.breaker.allow() {
			return published, nil
		}
		batch, err := w.outbox.Pending(ctx, w.batchSize)
		if err != nil {
			return published, err
		}
		w.metrics.SetPending(len(batch))
		if len(batch) == 0 {
			return published, nil
		}

		if err := w.publisher.Publish(ctx, batch); err != nil {
			w.metrics.IncPublishFailure()
			if w.breaker.failure() {
				w.logger.ErrorContext(ctx, "event publishing paused", "error", err)
			}
			return published, err
		}
		w.breaker.success()

		ids := make([]uuid.UUID, len(batch))
		for i, e := range batch {
			ids[i] = e.ID
		}
		if err := w.outbox.MarkPublished(ctx, ids, time.Now()); err != nil {
			return published, err
		}
		published += len(batch)
		w.metrics.ObservePublished(len(batch))
		w.logger.DebugContext(ctx, "outbox batch published",
			"count", len(batch),
			"last_seq", batch[len(batch)-1].Seq,
		)
		if len(batch) < w.batchSize {
			return published, nil
		}
	}
}
