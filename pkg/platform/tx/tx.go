// Package tx carries transactions through context so stores can join the
// transaction a service opened without the service passing handles around.
package tx

import (
	"context"
	"database/sql"
)

// Runner opens a transactional boundary. fn receives a context bound to the
// transaction; every store call made with that context participates in it.
// Calling RunInTx with a context that is already bound joins the outer
// transaction instead of opening a new one.
type Runner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

type hooksKey struct{}

// CommitHooks collects callbacks that run once the outermost transaction
// commits. A rolled back transaction drops them.
type CommitHooks struct {
	fns []func(ctx context.Context)
}

// WithCommitHooks binds a fresh hook list to ctx. Runners call it when they
// open an outermost transaction.
func WithCommitHooks(ctx context.Context) (context.Context, *CommitHooks) {
	h := &CommitHooks{}
	return context.WithValue(ctx, hooksKey{}, h), h
}

// Run invokes the collected callbacks in registration order.
func (h *CommitHooks) Run(ctx context.Context) {
	for _, fn := range h.fns {
		fn(ctx)
	}
	h.fns = nil
}

// AfterCommit defers fn until the transaction in ctx commits. Outside a
// transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if h, ok := ctx.Value(hooksKey{}).(*CommitHooks); ok {
		h.fns = append(h.fns, fn)
		return
	}
	fn(ctx)
}
