// Package service implements the registry: the authoritative node -> (owner,
// resolver, ttl) table and its delegation rules.
//
// Only a node's owner, or an operator the owner approved, may change the node or
// create and reassign its direct children. Delegation is a write: reassigning a
// node never touches its existing descendants.
package service

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/events"
	"bicns/internal/registry/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/tx"
	"bicns/pkg/requestcontext"
)

type Store interface {
	Record(ctx context.Context, node common.Hash) (models.Record, error)
	PutRecord(ctx context.Context, node common.Hash, rec models.Record) error
	IsOperator(ctx context.Context, owner, operator common.Address) (bool, error)
	SetOperator(ctx context.Context, owner, operator common.Address, approved bool) error
}

// Service is safe for concurrent use; every mutation runs in its own (or the
// caller's) transaction.
type Service struct {
	store  Store
	tx     tx.Runner
	events events.Sink
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, runner tx.Runner, sink events.Sink, opts ...Option) *Service {
	s := &Service{store: store, tx: runner, events: sink}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record returns the node's record; unknown nodes read as empty.
func (s *Service) Record(ctx context.Context, node common.Hash) (models.Record, error) {
	rec, err := s.store.Record(ctx, node)
	if err != nil {
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}
	return rec, nil
}

func (s *Service) Owner(ctx context.Context, node common.Hash) (common.Address, error) {
	rec, err := s.Record(ctx, node)
	return rec.Owner, err
}

func (s *Service) Resolver(ctx context.Context, node common.Hash) (common.Address, error) {
	rec, err := s.Record(ctx, node)
	return rec.Resolver, err
}

func (s *Service) TTL(ctx context.Context, node common.Hash) (uint64, error) {
	rec, err := s.Record(ctx, node)
	return rec.TTL, err
}

func (s *Service) RecordExists(ctx context.Context, node common.Hash) (bool, error) {
	rec, err := s.Record(ctx, node)
	return rec.Exists(), err
}

func (s *Service) IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error) {
	ok, err := s.store.IsOperator(ctx, owner, operator)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load operator")
	}
	return ok, nil
}

// SetOwner transfers node to owner. The zero owner revokes every right over it.
func (s *Service) SetOwner(ctx context.Context, caller common.Address, node common.Hash, owner common.Address) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.authorised(ctx, caller, node)
		if err != nil {
			return err
		}
		return s.writeOwner(ctx, node, rec, owner)
	})
}

// SetSubnodeOwner assigns parent's child for labelHash to owner and returns the
// child node.
func (s *Service) SetSubnodeOwner(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner common.Address) (common.Hash, error) {
	child := domain.MakeNode(parent, labelHash)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.authorised(ctx, caller, parent); err != nil {
			return err
		}
		return s.writeSubnodeOwner(ctx, parent, labelHash, owner)
	})
	if err != nil {
		return common.Hash{}, err
	}
	return child, nil
}

func (s *Service) SetResolver(ctx context.Context, caller common.Address, node common.Hash, resolver common.Address) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.authorised(ctx, caller, node)
		if err != nil {
			return err
		}
		return s.writeResolver(ctx, node, rec, resolver, true)
	})
}

func (s *Service) SetTTL(ctx context.Context, caller common.Address, node common.Hash, ttl uint64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.authorised(ctx, caller, node)
		if err != nil {
			return err
		}
		return s.writeTTL(ctx, node, rec, ttl, true)
	})
}

// SetRecord sets owner, resolver and ttl at once. Resolver and TTL events are
// only emitted for values that change.
func (s *Service) SetRecord(ctx context.Context, caller common.Address, node common.Hash, owner, resolver common.Address, ttl uint64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.authorised(ctx, caller, node)
		if err != nil {
			return err
		}
		if err := s.writeOwner(ctx, node, rec, owner); err != nil {
			return err
		}
		rec.Owner = owner
		if err := s.writeResolver(ctx, node, rec, resolver, false); err != nil {
			return err
		}
		rec.Resolver = resolver
		return s.writeTTL(ctx, node, rec, ttl, false)
	})
}

// SetSubnodeRecord is SetSubnodeOwner followed by resolver and ttl on the child.
func (s *Service) SetSubnodeRecord(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner, resolver common.Address, ttl uint64) (common.Hash, error) {
	child := domain.MakeNode(parent, labelHash)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.authorised(ctx, caller, parent); err != nil {
			return err
		}
		if err := s.writeSubnodeOwner(ctx, parent, labelHash, owner); err != nil {
			return err
		}
		rec, err := s.store.Record(ctx, child)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
		}
		if err := s.writeResolver(ctx, child, rec, resolver, false); err != nil {
			return err
		}
		rec.Resolver = resolver
		return s.writeTTL(ctx, child, rec, ttl, false)
	})
	if err != nil {
		return common.Hash{}, err
	}
	return child, nil
}

// SetApprovalForAll lets operator act on every node caller owns.
func (s *Service) SetApprovalForAll(ctx context.Context, caller, operator common.Address, approved bool) error {
	if caller == operator {
		return dErrors.New(dErrors.CodeValidation, "cannot approve self as operator")
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SetOperator(ctx, caller, operator, approved); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store operator")
		}
		s.logAudit(ctx, string(events.TypeRegistryApproval), "owner", caller, "operator", operator, "approved", approved)
		return s.emit(ctx, events.TypeRegistryApproval, common.Hash{}, events.ApprovalForAll{Owner: caller, Operator: operator, Approved: approved})
	})
}

// Authorised reports whether caller may administer node.
func (s *Service) Authorised(ctx context.Context, caller common.Address, node common.Hash) (bool, error) {
	_, err := s.authorised(ctx, caller, node)
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) authorised(ctx context.Context, caller common.Address, node common.Hash) (models.Record, error) {
	rec, err := s.store.Record(ctx, node)
	if err != nil {
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}
	if !rec.Exists() || caller == (common.Address{}) {
		return models.Record{}, dErrors.New(dErrors.CodeUnauthorized, "caller does not own node")
	}
	if rec.Owner == caller {
		return rec, nil
	}
	ok, err := s.store.IsOperator(ctx, rec.Owner, caller)
	if err != nil {
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load operator")
	}
	if !ok {
		return models.Record{}, dErrors.New(dErrors.CodeUnauthorized, "caller does not own node")
	}
	return rec, nil
}

func (s *Service) writeOwner(ctx context.Context, node common.Hash, rec models.Record, owner common.Address) error {
	rec.Owner = owner
	if err := s.store.PutRecord(ctx, node, rec); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store record")
	}
	s.logAudit(ctx, string(events.TypeTransfer), "node", node, "owner", owner)
	return s.emit(ctx, events.TypeTransfer, node, events.Transfer{Node: node, Owner: owner})
}

func (s *Service) writeSubnodeOwner(ctx context.Context, parent, labelHash common.Hash, owner common.Address) error {
	child := domain.MakeNode(parent, labelHash)
	rec, err := s.store.Record(ctx, child)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load record")
	}
	rec.Owner = owner
	if err := s.store.PutRecord(ctx, child, rec); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store record")
	}
	s.logAudit(ctx, string(events.TypeNewOwner), "parent", parent, "label_hash", labelHash, "owner", owner)
	return s.emit(ctx, events.TypeNewOwner, child, events.NewOwner{Parent: parent, Label: labelHash, Owner: owner})
}

func (s *Service) writeResolver(ctx context.Context, node common.Hash, rec models.Record, resolver common.Address, always bool) error {
	if !always && rec.Resolver == resolver {
		return nil
	}
	rec.Resolver = resolver
	if err := s.store.PutRecord(ctx, node, rec); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store record")
	}
	return s.emit(ctx, events.TypeNewResolver, node, events.NewResolver{Node: node, Resolver: resolver})
}

func (s *Service) writeTTL(ctx context.Context, node common.Hash, rec models.Record, ttl uint64, always bool) error {
	if !always && rec.TTL == ttl {
		return nil
	}
	rec.TTL = ttl
	if err := s.store.PutRecord(ctx, node, rec); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store record")
	}
	return s.emit(ctx, events.TypeNewTTL, node, events.NewTTL{Node: node, TTL: ttl})
}

func (s *Service) emit(ctx context.Context, typ events.Type, node common.Hash, payload any) error {
	if err := s.events.Append(ctx, events.New(ctx, typ, node, payload)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record event")
	}
	return nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
