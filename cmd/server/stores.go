package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	controllerservice "bicns/internal/controller/service"
	controllerstore "bicns/internal/controller/store"
	"bicns/internal/events"
	"bicns/internal/events/outbox"
	"bicns/internal/events/worker"
	feetokenservice "bicns/internal/feetoken/service"
	feetokenstore "bicns/internal/feetoken/store"
	"bicns/internal/platform/config"
	"bicns/internal/platform/memtx"
	"bicns/internal/platform/postgres"
	registrarservice "bicns/internal/registrar/service"
	registrarstore "bicns/internal/registrar/store"
	registryservice "bicns/internal/registry/service"
	registrystore "bicns/internal/registry/store"
	resolverservice "bicns/internal/resolver/service"
	resolverstore "bicns/internal/resolver/store"
	wrapperservice "bicns/internal/wrapper/service"
	wrapperstore "bicns/internal/wrapper/store"
	"bicns/pkg/platform/tx"
)

type outboxStore interface {
	events.Sink
	worker.Outbox
}

// stores is one backend for every component. The fee token has its own
// runner so a debit commits independently of the registration it pays for.
type stores struct {
	runner      tx.Runner
	tokenRunner tx.Runner
	registry    registryservice.Store
	registrar   registrarservice.Store
	wrapper     wrapperservice.Store
	controller  controllerservice.Store
	resolver    resolverservice.Store
	token       feetokenservice.Store
	outbox      outboxStore
	health      func(ctx context.Context) error
	close       func() error
}

func openStores(ctx context.Context, cfg config.Server, log *slog.Logger) (*stores, error) {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set; state is kept in memory and lost on exit")
		return memoryStores(cfg), nil
	}
	db, err := postgres.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("postgres store ready")
	return postgresStores(db, cfg), nil
}

func memoryStores(cfg config.Server) *stores {
	runner := memtx.New(memtx.WithTimeout(cfg.TxTimeout))
	tokenRunner := memtx.New(memtx.WithTimeout(cfg.TxTimeout))
	return &stores{
		runner:      runner,
		tokenRunner: tokenRunner,
		registry:    registrystore.NewInMemory(runner),
		registrar:   registrarstore.NewInMemory(runner),
		wrapper:     wrapperstore.NewInMemory(runner),
		controller:  controllerstore.NewInMemory(runner),
		resolver:    resolverstore.NewInMemory(runner),
		token:       feetokenstore.NewInMemory(tokenRunner),
		outbox:      outbox.NewInMemory(runner),
		health:      func(context.Context) error { return nil },
		close:       func() error { return nil },
	}
}

func postgresStores(db *sql.DB, cfg config.Server) *stores {
	runner := postgres.NewTxRunner(db, cfg.TxTimeout)
	return &stores{
		runner:      runner,
		tokenRunner: runner,
		registry:    registrystore.NewPostgres(db),
		registrar:   registrarstore.NewPostgres(db),
		wrapper:     wrapperstore.NewPostgres(db),
		controller:  controllerstore.NewPostgres(db),
		resolver:    resolverstore.NewPostgres(db),
		token:       feetokenstore.NewPostgres(db),
		outbox:      outbox.NewPostgres(db),
		health:      db.PingContext,
		close:       db.Close,
	}
}
