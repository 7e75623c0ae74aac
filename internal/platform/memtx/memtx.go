// Package memtx serializes in-memory stores behind one transaction runner.
//
// Stores built on a Runner share its lock and its undo journal, so a transaction
// that touches several stores is all-or-nothing across all of them. Writes record
// an undo closure; a failed transaction replays the closures in reverse.
package memtx

import (
	"context"
	"time"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/platform/tx"
)

// DefaultTimeout bounds a transaction that was started without a deadline.
const DefaultTimeout = 5 * time.Second

// Journal collects undo steps for the running transaction.
type Journal struct {
	undo []func()
}

func (j *Journal) record(fn func()) {
	j.undo = append(j.undo, fn)
}

func (j *Journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// Runner is a single-slot lock plus the journal of whoever holds it.
type Runner struct {
	sem     chan struct{}
	timeout time.Duration
}

type Option func(*Runner)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func New(opts ...Option) *Runner {
	r := &Runner{sem: make(chan struct{}, 1), timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type journalKey struct {
	runner *Runner
}

func (r *Runner) journal(ctx context.Context) *Journal {
	j, _ := ctx.Value(journalKey{runner: r}).(*Journal)
	return j
}

// RunInTx runs fn holding the lock. A context that already carries this
// runner's journal joins the outer transaction. Any error from fn undoes every
// write made through the runner since the outermost RunInTx began.
func (r *Runner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.journal(ctx) != nil {
		return fn(ctx)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	hooks, err := r.runLocked(ctx, fn)
	if err != nil {
		return err
	}
	hooks.Run(context.WithoutCancel(ctx))
	return nil
}

func (r *Runner) runLocked(ctx context.Context, fn func(ctx context.Context) error) (*tx.CommitHooks, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.release()

	j := &Journal{}
	txCtx, hooks := tx.WithCommitHooks(context.WithValue(ctx, journalKey{runner: r}, j))
	if err := fn(txCtx); err != nil {
		j.rollback()
		return nil, err
	}
	return hooks, nil
}

// Write applies fn inside the caller's transaction, or in a transaction of its
// own when ctx carries none.
func (r *Runner) Write(ctx context.Context, fn func(j *Journal) error) error {
	if j := r.journal(ctx); j != nil {
		return fn(j)
	}
	return r.RunInTx(ctx, func(ctx context.Context) error {
		return fn(r.journal(ctx))
	})
}

// Read runs fn under the lock unless ctx is already inside a transaction.
func (r *Runner) Read(ctx context.Context, fn func() error) error {
	if r.journal(ctx) != nil {
		return fn()
	}
	if err := r.acquire(ctx); err != nil {
		return err
	}
	defer r.release()
	return fn()
}

func (r *Runner) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	select {
	case r.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
}

func (r *Runner) release() {
	<-r.sem
}

// Put sets m[k] = v and journals the previous state.
func Put[K comparable, V any](j *Journal, m map[K]V, k K, v V) {
	old, had := m[k]
	j.record(func() {
		if had {
			m[k] = old
		} else {
			delete(m, k)
		}
	})
	m[k] = v
}

// Delete removes m[k] and journals the previous state.
func Delete[K comparable, V any](j *Journal, m map[K]V, k K) {
	old, had := m[k]
	if !had {
		return
	}
	j.record(func() { m[k] = old })
	delete(m, k)
}

// Append appends v to *s and journals the truncation.
func Append[V any](j *Journal, s *[]V, v V) {
	n := len(*s)
	j.record(func() { *s = (*s)[:n] })
	*s = append(*s, v)
}

// Do journals an arbitrary undo step.
func Do(j *Journal, undo func()) {
	j.record(undo)
}
