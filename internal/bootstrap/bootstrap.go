// Package bootstrap brings a fresh store to the state the name system needs
// to serve requests. Every step checks before it writes, so running it on an
// initialised store changes nothing.
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	registrymodels "bicns/internal/registry/models"
	"bicns/pkg/domain"
	"bicns/pkg/platform/tx"
)

type RootStore interface {
	Record(ctx context.Context, node common.Hash) (registrymodels.Record, error)
	PutRecord(ctx context.Context, node common.Hash, rec registrymodels.Record) error
}

type Registry interface {
	Owner(ctx context.Context, node common.Hash) (common.Address, error)
	SetSubnodeOwner(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner common.Address) (common.Hash, error)
}

type Registrar interface {
	IsController(ctx context.Context, address common.Address) (bool, error)
	AddController(ctx context.Context, caller, controller common.Address) error
}

type Wrapper interface {
	IsController(ctx context.Context, address common.Address) (bool, error)
	SetController(ctx context.Context, caller, controller common.Address, active bool) error
}

// Addresses are the identities of the admin and the system components.
type Addresses struct {
	Admin      common.Address
	Registrar  common.Address
	Wrapper    common.Address
	Controller common.Address
	Reverse    common.Address
}

type Bootstrapper struct {
	tx        tx.Runner
	root      RootStore
	registry  Registry
	registrar Registrar
	wrapper   Wrapper
	addrs     Addresses
	logger    *slog.Logger
}

func New(runner tx.Runner, root RootStore, registry Registry, registrar Registrar, wrapper Wrapper, addrs Addresses, logger *slog.Logger) *Bootstrapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bootstrapper{
		tx:        runner,
		root:      root,
		registry:  registry,
		registrar: registrar,
		wrapper:   wrapper,
		addrs:     addrs,
		logger:    logger,
	}
}

// Run applies every missing step in one transaction.
func (b *Bootstrapper) Run(ctx context.Context) error {
	return b.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := b.claimRoot(ctx); err != nil {
			return err
		}
		if err := b.ensureSubnode(ctx, domain.RootNode, domain.TLD, b.addrs.Registrar); err != nil {
			return err
		}
		if err := b.ensureSubnode(ctx, domain.RootNode, "reverse", b.addrs.Admin); err != nil {
			return err
		}
		if err := b.ensureSubnode(ctx, domain.Namehash("reverse"), "addr", b.addrs.Reverse); err != nil {
			return err
		}
		for _, c := range []common.Address{b.addrs.Wrapper, b.addrs.Controller} {
			ok, err := b.registrar.IsController(ctx, c)
			if err != nil {
				return err
			}
			if !ok {
				if err := b.registrar.AddController(ctx, b.addrs.Admin, c); err != nil {
					return err
				}
				b.logger.InfoContext(ctx, "registrar controller added", "controller", c.Hex())
			}
		}
		ok, err := b.wrapper.IsController(ctx, b.addrs.Controller)
		if err != nil {
			return err
		}
		if !ok {
			if err := b.wrapper.SetController(ctx, b.addrs.Admin, b.addrs.Controller, true); err != nil {
				return err
			}
			b.logger.InfoContext(ctx, "wrapper controller added", "controller", b.addrs.Controller.Hex())
		}
		return nil
	})
}

func (b *Bootstrapper) claimRoot(ctx context.Context) error {
	rec, err := b.root.Record(ctx, domain.RootNode)
	if err != nil {
		return err
	}
	if rec.Exists() {
		return nil
	}
	b.logger.InfoContext(ctx, "root claimed", "owner", b.addrs.Admin.Hex())
	return b.root.PutRecord(ctx, domain.RootNode, registrymodels.Record{Owner: b.addrs.Admin})
}

// ensureSubnode assigns label under parent to owner unless it already has an
// owner. Existing assignments are left alone.
func (b *Bootstrapper) ensureSubnode(ctx context.Context, parent common.Hash, label string, owner common.Address) error {
	current, err := b.registry.Owner(ctx, domain.MakeNode(parent, domain.HashLabel(label)))
	if err != nil {
		return err
	}
	if current != (common.Address{}) {
		return nil
	}
	parentOwner, err := b.registry.Owner(ctx, parent)
	if err != nil {
		return err
	}
	if _, err := b.registry.SetSubnodeOwner(ctx, parentOwner, parent, domain.HashLabel(label), owner); err != nil {
		return err
	}
	b.logger.InfoContext(ctx, "node assigned", "label", label, "owner", owner.Hex())
	return nil
}
