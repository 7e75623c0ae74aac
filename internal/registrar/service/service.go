// Package service implements the base registrar: time-bounded leases of labels
// directly under the bic node.
//
// A lease moves through three phases. While now < expiry the owner holds it and
// may transfer, approve and reclaim. Between expiry and expiry+GracePeriod it is
// frozen: only a renewal is accepted. After the grace period anyone may register
// it again through a controller.
//
// The registrar is live only while it owns the bic node in the registry; every
// registry write it makes goes through the registry's own authorization.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/events"
	"bicns/internal/registrar/metrics"
	"bicns/internal/registrar/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/sentinel"
	"bicns/pkg/platform/tx"
	"bicns/pkg/requestcontext"
)

type Store interface {
	Label(ctx context.Context, hash common.Hash) (*models.Label, error)
	PutLabel(ctx context.Context, label *models.Label) error
	IsOperator(ctx context.Context, owner, operator common.Address) (bool, error)
	SetOperator(ctx context.Context, owner, operator common.Address, approved bool) error
	IsController(ctx context.Context, address common.Address) (bool, error)
	SetController(ctx context.Context, address common.Address, enabled bool) error
	Controllers(ctx context.Context) ([]common.Address, error)
}

// Registry is the part of the registry the registrar writes through to.
type Registry interface {
	Owner(ctx context.Context, node common.Hash) (common.Address, error)
	SetSubnodeOwner(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner common.Address) (common.Hash, error)
}

type Service struct {
	store    Store
	registry Registry
	tx       tx.Runner
	events   events.Sink
	self     common.Address
	admin    common.Address
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs the registrar. self is the address the registrar acts under in
// the registry; admin manages the controller allowlist.
func New(store Store, registry Registry, runner tx.Runner, sink events.Sink, self, admin common.Address, opts ...Option) *Service {
	s := &Service{store: store, registry: registry, tx: runner, events: sink, self: self, admin: admin}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Address is the identity the registrar acts under.
func (s *Service) Address() common.Address {
	return s.self
}

// Label returns the lease, or nil when the label was never registered.
func (s *Service) Label(ctx context.Context, hash common.Hash) (*models.Label, error) {
	label, err := s.store.Label(ctx, hash)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load label")
	}
	return label, nil
}

func (s *Service) Available(ctx context.Context, hash common.Hash) (bool, error) {
	label, err := s.Label(ctx, hash)
	if err != nil {
		return false, err
	}
	return label.Available(requestcontext.NowUnix(ctx)), nil
}

// NameExpires returns 0 for labels that were never registered.
func (s *Service) NameExpires(ctx context.Context, hash common.Hash) (uint64, error) {
	label, err := s.Label(ctx, hash)
	if err != nil || label == nil {
		return 0, err
	}
	return label.Expiry, nil
}

// OwnerOf fails once the lease has expired, grace period included.
func (s *Service) OwnerOf(ctx context.Context, hash common.Hash) (common.Address, error) {
	label, err := s.activeLabel(ctx, hash)
	if err != nil {
		return common.Address{}, err
	}
	return label.Owner, nil
}

func (s *Service) GetApproved(ctx context.Context, hash common.Hash) (common.Address, error) {
	label, err := s.activeLabel(ctx, hash)
	if err != nil {
		return common.Address{}, err
	}
	return label.Approved, nil
}

func (s *Service) IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error) {
	ok, err := s.store.IsOperator(ctx, owner, operator)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load operator")
	}
	return ok, nil
}

func (s *Service) IsController(ctx context.Context, address common.Address) (bool, error) {
	ok, err := s.store.IsController(ctx, address)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load controller")
	}
	return ok, nil
}

func (s *Service) Controllers(ctx context.Context) ([]common.Address, error) {
	list, err := s.store.Controllers(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list controllers")
	}
	return list, nil
}

// AddController allowlists a controller. Admin only.
func (s *Service) AddController(ctx context.Context, caller, controller common.Address) error {
	return s.setController(ctx, caller, controller, true)
}

// RemoveController revokes a controller. Admin only.
func (s *Service) RemoveController(ctx context.Context, caller, controller common.Address) error {
	return s.setController(ctx, caller, controller, false)
}

func (s *Service) setController(ctx context.Context, caller, controller common.Address, enabled bool) error {
	if caller != s.admin {
		return dErrors.New(dErrors.CodeUnauthorized, "only the admin manages controllers")
	}
	if controller == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "controller address required")
	}
	typ := events.TypeControllerAdded
	if !enabled {
		typ = events.TypeControllerRemoved
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SetController(ctx, controller, enabled); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store controller")
		}
		s.logAudit(ctx, string(typ), "controller", controller)
		return s.emit(ctx, typ, domain.BICNode, events.ControllerChanged{Controller: controller, Enabled: enabled})
	})
}

// Register leases hash to owner for duration seconds and assigns the registry
// node. Controllers only.
func (s *Service) Register(ctx context.Context, caller common.Address, hash common.Hash, owner common.Address, duration uint64) (uint64, error) {
	return s.register(ctx, caller, hash, owner, duration, true)
}

// RegisterOnly is Register without the registry write, for callers that take
// registry ownership themselves in the same transaction.
func (s *Service) RegisterOnly(ctx context.Context, caller common.Address, hash common.Hash, owner common.Address, duration uint64) (uint64, error) {
	return s.register(ctx, caller, hash, owner, duration, false)
}

func (s *Service) register(ctx context.Context, caller common.Address, hash common.Hash, owner common.Address, duration uint64, updateRegistry bool) (uint64, error) {
	if owner == (common.Address{}) {
		return 0, dErrors.New(dErrors.CodeValidation, "owner cannot be the zero address")
	}
	now := requestcontext.NowUnix(ctx)
	if !models.LeaseFits(now, duration) {
		return 0, dErrors.New(dErrors.CodeValidation, "duration overflows expiry")
	}

	var expiry uint64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireController(ctx, caller); err != nil {
			return err
		}
		if err := s.requireLive(ctx); err != nil {
			return err
		}
		label, err := s.Label(ctx, hash)
		if err != nil {
			return err
		}
		if !label.Available(now) {
			return dErrors.New(dErrors.CodeNameNotAvailable, "name not available")
		}
		if label != nil {
			if err := s.emit(ctx, events.TypeLabelTransfer, domain.MakeNode(domain.BICNode, hash),
				events.LabelTransfer{From: label.Owner, To: common.Address{}, LabelHash: hash}); err != nil {
				return err
			}
		}

		expiry = now + duration
		next := &models.Label{Hash: hash, Owner: owner, Expiry: expiry}
		if err := s.store.PutLabel(ctx, next); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store label")
		}
		if err := s.emit(ctx, events.TypeLabelTransfer, domain.MakeNode(domain.BICNode, hash),
			events.LabelTransfer{From: common.Address{}, To: owner, LabelHash: hash}); err != nil {
			return err
		}
		if updateRegistry {
			if _, err := s.registry.SetSubnodeOwner(ctx, s.self, domain.BICNode, hash, owner); err != nil {
				return err
			}
		}
		s.logAudit(ctx, string(events.TypeLabelRegistered), "label_hash", hash, "owner", owner, "expiry", expiry)
		return s.emit(ctx, events.TypeLabelRegistered, domain.MakeNode(domain.BICNode, hash),
			events.LabelRegistered{LabelHash: hash, Owner: owner, Expiry: expiry})
	})
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.Registrations.Inc()
	}
	return expiry, nil
}

// Renew extends a lease that is active or in its grace period. Controllers only.
func (s *Service) Renew(ctx context.Context, caller common.Address, hash common.Hash, duration uint64) (uint64, error) {
	now := requestcontext.NowUnix(ctx)
	var expiry uint64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireController(ctx, caller); err != nil {
			return err
		}
		if err := s.requireLive(ctx); err != nil {
			return err
		}
		label, err := s.Label(ctx, hash)
		if err != nil {
			return err
		}
		if !label.Renewable(now) {
			return dErrors.New(dErrors.CodeNameExpired, "name expired")
		}
		if !models.LeaseFits(label.Expiry, duration) {
			return dErrors.New(dErrors.CodeValidation, "duration overflows expiry")
		}
		label.Expiry += duration
		expiry = label.Expiry
		if err := s.store.PutLabel(ctx, label); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store label")
		}
		s.logAudit(ctx, string(events.TypeLabelRenewed), "label_hash", hash, "expiry", expiry)
		return s.emit(ctx, events.TypeLabelRenewed, domain.MakeNode(domain.BICNode, hash),
			events.LabelRenewed{LabelHash: hash, Expiry: expiry})
	})
	if err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.Renewals.Inc()
	}
	return expiry, nil
}

// Reclaim points the registry node at owner without changing the lease owner.
func (s *Service) Reclaim(ctx context.Context, caller common.Address, hash common.Hash, owner common.Address) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireLive(ctx); err != nil {
			return err
		}
		label, err := s.approvedOrOwner(ctx, caller, hash)
		if err != nil {
			return err
		}
		if _, err := s.registry.SetSubnodeOwner(ctx, s.self, domain.BICNode, hash, owner); err != nil {
			return err
		}
		s.logAudit(ctx, "registrar.Reclaim", "label_hash", hash, "owner", owner, "lease_owner", label.Owner)
		return nil
	})
	if err == nil && s.metrics != nil {
		s.metrics.Reclaims.Inc()
	}
	return err
}

// TransferFrom moves the lease. The registry node is left alone; the new owner
// calls Reclaim to take it.
func (s *Service) TransferFrom(ctx context.Context, caller, from, to common.Address, hash common.Hash) error {
	if to == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "cannot transfer to the zero address")
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		label, err := s.approvedOrOwner(ctx, caller, hash)
		if err != nil {
			return err
		}
		if label.Owner != from {
			return dErrors.New(dErrors.CodeUnauthorized, "from is not the lease owner")
		}
		label.Owner = to
		label.Approved = common.Address{}
		if err := s.store.PutLabel(ctx, label); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store label")
		}
		s.logAudit(ctx, string(events.TypeLabelTransfer), "label_hash", hash, "from", from, "to", to)
		return s.emit(ctx, events.TypeLabelTransfer, domain.MakeNode(domain.BICNode, hash),
			events.LabelTransfer{From: from, To: to, LabelHash: hash})
	})
	if err == nil && s.metrics != nil {
		s.metrics.Transfers.Inc()
	}
	return err
}

// Approve lets to transfer this one lease. Cleared on every transfer.
func (s *Service) Approve(ctx context.Context, caller, to common.Address, hash common.Hash) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		label, err := s.activeLabel(ctx, hash)
		if err != nil {
			return err
		}
		if to == label.Owner {
			return dErrors.New(dErrors.CodeValidation, "approval to current owner")
		}
		if caller != label.Owner {
			ok, err := s.IsApprovedForAll(ctx, label.Owner, caller)
			if err != nil {
				return err
			}
			if !ok {
				return dErrors.New(dErrors.CodeUnauthorized, "caller is not owner nor approved for all")
			}
		}
		label.Approved = to
		if err := s.store.PutLabel(ctx, label); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store label")
		}
		return s.emit(ctx, events.TypeLabelApproval, domain.MakeNode(domain.BICNode, hash),
			events.LabelApproval{Owner: label.Owner, Approved: to, LabelHash: hash})
	})
}

func (s *Service) SetApprovalForAll(ctx context.Context, caller, operator common.Address, approved bool) error {
	if caller == operator {
		return dErrors.New(dErrors.CodeValidation, "cannot approve self as operator")
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SetOperator(ctx, caller, operator, approved); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store operator")
		}
		return s.emit(ctx, events.TypeRegistrarApproval, common.Hash{},
			events.ApprovalForAll{Owner: caller, Operator: operator, Approved: approved})
	})
}

// activeLabel returns the lease if it exists and has not expired.
func (s *Service) activeLabel(ctx context.Context, hash common.Hash) (*models.Label, error) {
	label, err := s.Label(ctx, hash)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "name not registered")
	}
	if !label.Active(requestcontext.NowUnix(ctx)) {
		return nil, dErrors.New(dErrors.CodeNameExpired, "name expired")
	}
	return label, nil
}

// approvedOrOwner loads an active lease and checks that caller may act on it.
// Expired and grace-period leases are frozen and fail as unauthorized.
func (s *Service) approvedOrOwner(ctx context.Context, caller common.Address, hash common.Hash) (*models.Label, error) {
	label, err := s.Label(ctx, hash)
	if err != nil {
		return nil, err
	}
	if !label.Active(requestcontext.NowUnix(ctx)) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "name is expired or in its grace period")
	}
	if caller == label.Owner || (caller == label.Approved && caller != (common.Address{})) {
		return label, nil
	}
	ok, err := s.IsApprovedForAll(ctx, label.Owner, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not owner nor approved")
	}
	return label, nil
}

func (s *Service) requireController(ctx context.Context, caller common.Address) error {
	ok, err := s.IsController(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not a controller")
	}
	return nil
}

func (s *Service) requireLive(ctx context.Context) error {
	owner, err := s.registry.Owner(ctx, domain.BICNode)
	if err != nil {
		return err
	}
	if owner != s.self {
		return dErrors.New(dErrors.CodeUnauthorized, "registrar does not own the bic node")
	}
	return nil
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
