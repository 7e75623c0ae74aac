// Package service implements the permission wrapper: an ownership-token layer
// over registry nodes that carries an owner, a fuse bitmask and an expiry.
//
// While a node is wrapped the wrapper itself owns it in the registry (and, for
// names directly under bic, in the registrar), and every mutation goes through
// the wrapper's fuse checks first. The wrapper writes to the registry and the
// registrar through their public operations under its own address, so their
// authorization rules apply to it like to any other caller.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"bicns/internal/events"
	"bicns/internal/wrapper/metrics"
	"bicns/internal/wrapper/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/sentinel"
	"bicns/pkg/platform/tx"
	"bicns/pkg/requestcontext"
)

type Store interface {
	Wrapped(ctx context.Context, node common.Hash) (*models.WrappedName, error)
	PutWrapped(ctx context.Context, w *models.WrappedName) error
	IsOperator(ctx context.Context, owner, operator common.Address) (bool, error)
	SetOperator(ctx context.Context, owner, operator common.Address, approved bool) error
	IsController(ctx context.Context, address common.Address) (bool, error)
	SetController(ctx context.Context, address common.Address, enabled bool) error
	Controllers(ctx context.Context) ([]common.Address, error)
}

// Registry is the registry surface the wrapper reads and writes through.
type Registry interface {
	Owner(ctx context.Context, node common.Hash) (common.Address, error)
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)
	SetOwner(ctx context.Context, caller common.Address, node common.Hash, owner common.Address) error
	SetSubnodeOwner(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner common.Address) (common.Hash, error)
	SetResolver(ctx context.Context, caller common.Address, node common.Hash, resolver common.Address) error
	SetTTL(ctx context.Context, caller common.Address, node common.Hash, ttl uint64) error
}

// Registrar is the base registrar surface used for names directly under bic.
type Registrar interface {
	OwnerOf(ctx context.Context, hash common.Hash) (common.Address, error)
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)
	NameExpires(ctx context.Context, hash common.Hash) (uint64, error)
	TransferFrom(ctx context.Context, caller, from, to common.Address, hash common.Hash) error
	Reclaim(ctx context.Context, caller common.Address, hash common.Hash, owner common.Address) error
	RegisterOnly(ctx context.Context, caller common.Address, hash common.Hash, owner common.Address, duration uint64) (uint64, error)
	Renew(ctx context.Context, caller common.Address, hash common.Hash, duration uint64) (uint64, error)
}

type Service struct {
	store     Store
	registry  Registry
	registrar Registrar
	tx        tx.Runner
	events    events.Sink
	self      common.Address
	admin     common.Address
	bicName   []byte
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
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

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs the wrapper. self is the address it acts under in the registry
// and the registrar; admin manages the controller allowlist.
func New(store Store, registry Registry, registrar Registrar, runner tx.Runner, sink events.Sink, self, admin common.Address, opts ...Option) *Service {
	bicName, _ := domain.EncodeName(domain.TLD)
	s := &Service{
		store:     store,
		registry:  registry,
		registrar: registrar,
		tx:        runner,
		events:    sink,
		self:      self,
		admin:     admin,
		bicName:   bicName,
		tracer:    noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Address is the identity the wrapper acts under.
func (s *Service) Address() common.Address {
	return s.self
}

// -----------------------------------------------------------------------------
// Reads
// -----------------------------------------------------------------------------

// Wrapped returns the stored token, or nil when the node was never wrapped.
// Unwrapped residue is returned with a zero owner.
func (s *Service) Wrapped(ctx context.Context, node common.Hash) (*models.WrappedName, error) {
	w, err := s.store.Wrapped(ctx, node)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load wrapped name")
	}
	return w, nil
}

// GetData returns the effective owner, fuses and expiry of node at request time.
func (s *Service) GetData(ctx context.Context, node common.Hash) (common.Address, models.Fuses, uint64, error) {
	w, err := s.Wrapped(ctx, node)
	if err != nil {
		return common.Address{}, 0, 0, err
	}
	owner, fuses, expiry := w.Data(requestcontext.NowUnix(ctx))
	return owner, fuses, expiry, nil
}

func (s *Service) OwnerOf(ctx context.Context, node common.Hash) (common.Address, error) {
	owner, _, _, err := s.GetData(ctx, node)
	return owner, err
}

func (s *Service) IsWrapped(ctx context.Context, node common.Hash) (bool, error) {
	owner, err := s.OwnerOf(ctx, node)
	if err != nil {
		return false, err
	}
	return owner != (common.Address{}), nil
}

// Names returns the DNS-encoded name stored for node, or nil.
func (s *Service) Names(ctx context.Context, node common.Hash) ([]byte, error) {
	w, err := s.Wrapped(ctx, node)
	if err != nil || w == nil {
		return nil, err
	}
	return w.Name, nil
}

func (s *Service) AllFusesBurned(ctx context.Context, node common.Hash, mask models.Fuses) (bool, error) {
	_, fuses, _, err := s.GetData(ctx, node)
	if err != nil {
		return false, err
	}
	return fuses.Has(mask), nil
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

// -----------------------------------------------------------------------------
// Wrapping
// -----------------------------------------------------------------------------

// Wrap takes registry ownership of any node not directly under bic and mints a
// token for it with no fuses. The caller must own the node in the registry (or
// be an operator of its owner), and the owner must have approved the wrapper.
func (s *Service) Wrap(ctx context.Context, caller common.Address, name []byte, wrappedOwner, resolver common.Address) (node common.Hash, err error) {
	labelHash, offset, err := domain.ReadLabel(name, 0)
	if err != nil {
		return common.Hash{}, err
	}
	if labelHash == (common.Hash{}) {
		return common.Hash{}, dErrors.New(dErrors.CodeValidation, "cannot wrap the root")
	}
	parent, err := domain.NamehashEncoded(name, offset)
	if err != nil {
		return common.Hash{}, err
	}
	node = domain.MakeNode(parent, labelHash)

	ctx, span := s.start(ctx, "Wrap", node)
	defer func() { finish(span, err) }()

	if parent == domain.BICNode {
		return common.Hash{}, dErrors.New(dErrors.CodeIncompatibleParent, "names under bic are wrapped with wrapBIC2LD")
	}
	if wrappedOwner == (common.Address{}) {
		return common.Hash{}, dErrors.New(dErrors.CodeValidation, "wrapped owner cannot be the zero address")
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		owner, err := s.registry.Owner(ctx, node)
		if err != nil {
			return err
		}
		if err := s.requireRegistryAuthorised(ctx, owner, caller); err != nil {
			return err
		}
		if err := s.registry.SetOwner(ctx, s.self, node, s.self); err != nil {
			return err
		}
		if resolver != (common.Address{}) {
			if err := s.registry.SetResolver(ctx, s.self, node, resolver); err != nil {
				return err
			}
		}
		_, err = s.mint(ctx, caller, node, name, wrappedOwner, models.CanDoEverything, 0)
		return err
	})
	if err != nil {
		return common.Hash{}, err
	}
	s.metrics.IncWrap("wrap")
	return node, nil
}

// WrapBIC2LD takes a bic second-level name from the registrar and wraps it with
// PARENT_CANNOT_CONTROL burned. A zero expiry follows the registrar expiry; any
// expiry is clamped to it. The caller must own the lease (or be an operator of
// its owner), and the owner must have approved the wrapper in the registrar.
func (s *Service) WrapBIC2LD(ctx context.Context, caller common.Address, label string, wrappedOwner common.Address, fuses models.Fuses, expiry uint64, resolver common.Address) (result uint64, err error) {
	hash := domain.HashLabel(label)
	ctx, span := s.start(ctx, "WrapBIC2LD", domain.MakeNode(domain.BICNode, hash))
	defer func() { finish(span, err) }()

	if err := validateLabel(label); err != nil {
		return 0, err
	}
	if err := validateMint(wrappedOwner, fuses); err != nil {
		return 0, err
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		registrant, err := s.registrar.OwnerOf(ctx, hash)
		if err != nil {
			return err
		}
		if registrant != caller {
			ok, err := s.registrar.IsApprovedForAll(ctx, registrant, caller)
			if err != nil {
				return err
			}
			if !ok {
				return dErrors.New(dErrors.CodeUnauthorized, "caller does not own the registration")
			}
		}
		if err := s.registrar.TransferFrom(ctx, s.self, registrant, s.self, hash); err != nil {
			return err
		}
		if err := s.registrar.Reclaim(ctx, s.self, hash, s.self); err != nil {
			return err
		}
		result, err = s.wrapBIC2LD(ctx, caller, label, wrappedOwner, fuses, expiry, resolver)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.metrics.IncWrap("bic2ld")
	return result, nil
}

// RegisterAndWrapBIC2LD leases label to the wrapper and wraps it for
// wrappedOwner in one step. Controllers only. Returns the registrar expiry.
func (s *Service) RegisterAndWrapBIC2LD(ctx context.Context, caller common.Address, label string, wrappedOwner common.Address, duration uint64, resolver common.Address, fuses models.Fuses, expiry uint64) (registrarExpiry uint64, err error) {
	hash := domain.HashLabel(label)
	ctx, span := s.start(ctx, "RegisterAndWrapBIC2LD", domain.MakeNode(domain.BICNode, hash))
	defer func() { finish(span, err) }()

	if err := validateLabel(label); err != nil {
		return 0, err
	}
	if err := validateMint(wrappedOwner, fuses); err != nil {
		return 0, err
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireController(ctx, caller); err != nil {
			return err
		}
		registrarExpiry, err = s.registrar.RegisterOnly(ctx, s.self, hash, s.self, duration)
		if err != nil {
			return err
		}
		if err := s.registrar.Reclaim(ctx, s.self, hash, s.self); err != nil {
			return err
		}
		_, err = s.wrapBIC2LD(ctx, caller, label, wrappedOwner, fuses, expiry, resolver)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.metrics.IncWrap("register")
	return registrarExpiry, nil
}

// Renew extends the registrar lease and moves the wrapped expiry with it.
// Controllers only.
func (s *Service) Renew(ctx context.Context, caller common.Address, hash common.Hash, duration uint64) (expires uint64, err error) {
	node := domain.MakeNode(domain.BICNode, hash)
	ctx, span := s.start(ctx, "Renew", node)
	defer func() { finish(span, err) }()

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.requireController(ctx, caller); err != nil {
			return err
		}
		expires, err = s.registrar.Renew(ctx, s.self, hash, duration)
		if err != nil {
			return err
		}
		w, err := s.Wrapped(ctx, node)
		if err != nil || w == nil {
			return err
		}
		w.Expiry = models.NormaliseExpiry(expires, w.Expiry, expires)
		if err := s.store.PutWrapped(ctx, w); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store wrapped name")
		}
		return s.emit(ctx, events.TypeExpiryExtended, node, events.ExpiryExtended{Node: node, Expiry: w.Expiry})
	})
	if err != nil {
		return 0, err
	}
	return expires, nil
}

// -----------------------------------------------------------------------------
// Unwrapping
// -----------------------------------------------------------------------------

// Unwrap hands registry ownership of parent/labelHash to controller. Names
// directly under bic must use UnwrapBIC2LD.
func (s *Service) Unwrap(ctx context.Context, caller common.Address, parent, labelHash common.Hash, controller common.Address) (err error) {
	node := domain.MakeNode(parent, labelHash)
	ctx, span := s.start(ctx, "Unwrap", node)
	defer func() { finish(span, err) }()

	if parent == domain.BICNode {
		return dErrors.New(dErrors.CodeIncompatibleParent, "names under bic are unwrapped with unwrapBIC2LD")
	}
	if controller == (common.Address{}) || controller == s.self {
		return dErrors.New(dErrors.CodeValidation, "invalid controller for unwrapped name")
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		w, err := s.canModifyName(ctx, caller, node)
		if err != nil {
			return err
		}
		return s.unwrap(ctx, caller, w, controller)
	})
	if err == nil {
		s.metrics.IncUnwrap("unwrap")
	}
	return err
}

// UnwrapBIC2LD returns the lease to registrant and the registry node to
// controller.
func (s *Service) UnwrapBIC2LD(ctx context.Context, caller common.Address, labelHash common.Hash, registrant, controller common.Address) (err error) {
	node := domain.MakeNode(domain.BICNode, labelHash)
	ctx, span := s.start(ctx, "UnwrapBIC2LD", node)
	defer func() { finish(span, err) }()

	if registrant == s.self || controller == s.self {
		return dErrors.New(dErrors.CodeValidation, "cannot unwrap to the wrapper")
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		w, err := s.canModifyName(ctx, caller, node)
		if err != nil {
			return err
		}
		if err := s.unwrap(ctx, caller, w, controller); err != nil {
			return err
		}
		return s.registrar.TransferFrom(ctx, s.self, s.self, registrant, labelHash)
	})
	if err == nil {
		s.metrics.IncUnwrap("bic2ld")
	}
	return err
}

func (s *Service) unwrap(ctx context.Context, operator common.Address, w *models.WrappedName, controller common.Address) error {
	if err := w.CheckAllowed(requestcontext.NowUnix(ctx), models.CannotUnwrap); err != nil {
		return err
	}
	previous := w.Owner
	w.ApplyUnwrap()
	if err := s.store.PutWrapped(ctx, w); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store wrapped name")
	}
	if err := s.registry.SetOwner(ctx, s.self, w.Node, controller); err != nil {
		return err
	}
	if err := s.emit(ctx, events.TypeTransferSingle, w.Node,
		events.TransferSingle{Operator: operator, From: previous, To: common.Address{}, ID: w.Node}); err != nil {
		return err
	}
	s.logAudit(ctx, string(events.TypeNameUnwrapped), "node", w.Node, "controller", controller)
	return s.emit(ctx, events.TypeNameUnwrapped, w.Node, events.NameUnwrapped{Node: w.Node, Owner: controller})
}

// -----------------------------------------------------------------------------
// Fuses and subnodes
// -----------------------------------------------------------------------------

// SetFuses burns more owner-controlled fuses on node and returns the merged set.
func (s *Service) SetFuses(ctx context.Context, caller common.Address, node common.Hash, fuses models.Fuses) (merged models.Fuses, err error) {
	ctx, span := s.start(ctx, "SetFuses", node)
	span.SetAttributes(attribute.String("bicns.fuses", fuses.String()))
	defer func() { finish(span, err) }()

	var burned models.Fuses
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := requestcontext.NowUnix(ctx)
		w, err := s.Wrapped(ctx, node)
		if err != nil {
			return err
		}
		ok, err := s.isOwnerOrOperator(ctx, w.EffectiveOwner(now), caller)
		if err != nil {
			return err
		}
		if !ok {
			return dErrors.New(dErrors.CodeOperationProhibited, "caller is not the wrapped owner")
		}
		before := w.EffectiveFuses(now)
		merged, err = w.CanBurn(now, fuses)
		if err != nil {
			return err
		}
		burned = merged &^ before
		w.Fuses = merged
		if err := s.store.PutWrapped(ctx, w); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store wrapped name")
		}
		s.logAudit(ctx, string(events.TypeFusesSet), "node", node, "fuses", merged.String())
		return s.emit(ctx, events.TypeFusesSet, node, events.FusesSet{Node: node, Fuses: uint32(merged), Expiry: w.Expiry})
	})
	if err != nil {
		return 0, err
	}
	s.metrics.ObserveBurn(burned.Names())
	return merged, nil
}

// SetSubnodeOwner creates or reassigns the wrapped child label under parent.
func (s *Service) SetSubnodeOwner(ctx context.Context, caller common.Address, parent common.Hash, label string, owner common.Address, fuses models.Fuses, expiry uint64) (common.Hash, error) {
	return s.setSubnode(ctx, caller, parent, label, owner, fuses, expiry, nil)
}

// SetSubnodeRecord is SetSubnodeOwner that also sets the child's resolver and TTL.
func (s *Service) SetSubnodeRecord(ctx context.Context, caller common.Address, parent common.Hash, label string, owner, resolver common.Address, ttl uint64, fuses models.Fuses, expiry uint64) (common.Hash, error) {
	return s.setSubnode(ctx, caller, parent, label, owner, fuses, expiry, &subnodeRecord{resolver: resolver, ttl: ttl})
}

type subnodeRecord struct {
	resolver common.Address
	ttl      uint64
}

func (s *Service) setSubnode(ctx context.Context, caller common.Address, parent common.Hash, label string, owner common.Address, fuses models.Fuses, expiry uint64, rec *subnodeRecord) (node common.Hash, err error) {
	labelHash := domain.HashLabel(label)
	node = domain.MakeNode(parent, labelHash)
	ctx, span := s.start(ctx, "SetSubnodeOwner", node)
	defer func() { finish(span, err) }()

	if err := validateLabel(label); err != nil {
		return common.Hash{}, err
	}
	if err := validateMint(owner, fuses); err != nil {
		return common.Hash{}, err
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := requestcontext.NowUnix(ctx)
		parentW, err := s.canModifyName(ctx, caller, parent)
		if err != nil {
			return err
		}
		registryOwner, err := s.registry.Owner(ctx, node)
		if err != nil {
			return err
		}
		child, err := s.Wrapped(ctx, node)
		if err != nil {
			return err
		}
		if registryOwner == (common.Address{}) {
			if err := parentW.CheckAllowed(now, models.CannotCreateSubdomain); err != nil {
				return err
			}
		} else if child.EffectiveFuses(now).Has(models.ParentCannotControl) {
			return dErrors.New(dErrors.CodeOperationProhibited, "child has PARENT_CANNOT_CONTROL burned")
		}
		if fuses.Has(models.ParentCannotControl) && !parentW.EffectiveFuses(now).Has(models.CannotUnwrap) {
			return dErrors.New(dErrors.CodeOperationProhibited, "parent must burn CANNOT_UNWRAP before granting PARENT_CANNOT_CONTROL")
		}

		var previous uint64
		if child != nil {
			previous = child.Expiry
		}
		_, _, parentExpiry := parentW.Data(now)
		expiry = models.NormaliseExpiry(expiry, previous, parentExpiry)

		if registryOwner != s.self || !child.IsWrapped() {
			if _, err := s.registry.SetSubnodeOwner(ctx, s.self, parent, labelHash, s.self); err != nil {
				return err
			}
			name, err := domain.AddLabel(label, parentW.Name)
			if err != nil {
				return err
			}
			if _, err := s.mint(ctx, caller, node, name, owner, fuses, expiry); err != nil {
				return err
			}
		} else if err := s.transferAndBurn(ctx, caller, child, owner, fuses, expiry); err != nil {
			return err
		}

		if rec != nil {
			if err := s.registry.SetResolver(ctx, s.self, node, rec.resolver); err != nil {
				return err
			}
			if err := s.registry.SetTTL(ctx, s.self, node, rec.ttl); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return common.Hash{}, err
	}
	s.metrics.IncSubnode()
	return node, nil
}

// transferAndBurn reassigns an existing wrapped child and merges fuses into it.
func (s *Service) transferAndBurn(ctx context.Context, operator common.Address, child *models.WrappedName, owner common.Address, fuses models.Fuses, expiry uint64) error {
	now := requestcontext.NowUnix(ctx)
	previous, current, _ := child.Data(now)
	merged := current.Burn(fuses)
	if !merged.Settable() {
		return dErrors.New(dErrors.CodeOperationProhibited, "burning fuses requires PARENT_CANNOT_CONTROL and CANNOT_UNWRAP")
	}
	child.Owner = owner
	child.Fuses = merged
	child.Expiry = expiry
	if err := s.store.PutWrapped(ctx, child); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store wrapped name")
	}
	if err := s.emit(ctx, events.TypeTransferSingle, child.Node,
		events.TransferSingle{Operator: operator, From: previous, To: owner, ID: child.Node}); err != nil {
		return err
	}
	return s.emit(ctx, events.TypeFusesSet, child.Node, events.FusesSet{Node: child.Node, Fuses: uint32(merged), Expiry: expiry})
}

// -----------------------------------------------------------------------------
// Record and token operations
// -----------------------------------------------------------------------------

func (s *Service) SetResolver(ctx context.Context, caller common.Address, node common.Hash, resolver common.Address) (err error) {
	ctx, span := s.start(ctx, "SetResolver", node)
	defer func() { finish(span, err) }()

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		w, err := s.canModifyName(ctx, caller, node)
		if err != nil {
			return err
		}
		if err := w.CheckAllowed(requestcontext.NowUnix(ctx), models.CannotSetResolver); err != nil {
			return err
		}
		return s.registry.SetResolver(ctx, s.self, node, resolver)
	})
}

func (s *Service) SetTTL(ctx context.Context, caller common.Address, node common.Hash, ttl uint64) (err error) {
	ctx, span := s.start(ctx, "SetTTL", node)
	defer func() { finish(span, err) }()

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		w, err := s.canModifyName(ctx, caller, node)
		if err != nil {
			return err
		}
		if err := w.CheckAllowed(requestcontext.NowUnix(ctx), models.CannotSetTTL); err != nil {
			return err
		}
		return s.registry.SetTTL(ctx, s.self, node, ttl)
	})
}

// SafeTransferFrom moves the token for node from from to to.
func (s *Service) SafeTransferFrom(ctx context.Context, caller, from, to common.Address, node common.Hash) (err error) {
	ctx, span := s.start(ctx, "SafeTransferFrom", node)
	defer func() { finish(span, err) }()

	if to == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "cannot transfer to the zero address")
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		ok, err := s.isOwnerOrOperator(ctx, from, caller)
		if err != nil {
			return err
		}
		if !ok {
			return dErrors.New(dErrors.CodeUnauthorized, "caller is not owner nor approved")
		}
		now := requestcontext.NowUnix(ctx)
		w, err := s.Wrapped(ctx, node)
		if err != nil {
			return err
		}
		if owner := w.EffectiveOwner(now); owner == (common.Address{}) || owner != from {
			return dErrors.New(dErrors.CodeUnauthorized, "from is not the token owner")
		}
		if err := w.CheckAllowed(now, models.CannotTransfer); err != nil {
			return err
		}
		w.Owner = to
		if err := s.store.PutWrapped(ctx, w); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store wrapped name")
		}
		s.logAudit(ctx, string(events.TypeTransferSingle), "node", node, "from", from, "to", to)
		return s.emit(ctx, events.TypeTransferSingle, node,
			events.TransferSingle{Operator: caller, From: from, To: to, ID: node})
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
		return s.emit(ctx, events.TypeWrapperApproval, common.Hash{},
			events.ApprovalForAll{Owner: caller, Operator: operator, Approved: approved})
	})
}

// SetController allowlists or revokes a controller. Admin only.
func (s *Service) SetController(ctx context.Context, caller, controller common.Address, active bool) error {
	if caller != s.admin {
		return dErrors.New(dErrors.CodeUnauthorized, "only the admin manages controllers")
	}
	if controller == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "controller address required")
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SetController(ctx, controller, active); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store controller")
		}
		s.logAudit(ctx, string(events.TypeControllerChanged), "controller", controller, "active", active)
		return s.emit(ctx, events.TypeControllerChanged, common.Hash{},
			events.ControllerChanged{Controller: controller, Enabled: active})
	})
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// wrapBIC2LD mints the token for label.bic once the wrapper holds both the lease
// and the registry node.
func (s *Service) wrapBIC2LD(ctx context.Context, operator common.Address, label string, owner common.Address, fuses models.Fuses, expiry uint64, resolver common.Address) (uint64, error) {
	hash := domain.HashLabel(label)
	node := domain.MakeNode(domain.BICNode, hash)
	name, err := domain.AddLabel(label, s.bicName)
	if err != nil {
		return 0, err
	}
	registrarExpiry, err := s.registrar.NameExpires(ctx, hash)
	if err != nil {
		return 0, err
	}
	old, err := s.Wrapped(ctx, node)
	if err != nil {
		return 0, err
	}
	var previous uint64
	if old != nil {
		previous = old.Expiry
	}
	if expiry == 0 {
		expiry = registrarExpiry
	}
	expiry = models.NormaliseExpiry(expiry, previous, registrarExpiry)

	w, err := s.mint(ctx, operator, node, name, owner, fuses|models.ParentCannotControl, expiry)
	if err != nil {
		return 0, err
	}
	if resolver != (common.Address{}) {
		if err := s.registry.SetResolver(ctx, s.self, node, resolver); err != nil {
			return 0, err
		}
	}
	return w.Expiry, nil
}

// mint stores a fresh token for node, merging unexpired residue and burning
// any token still held for it.
func (s *Service) mint(ctx context.Context, operator common.Address, node common.Hash, name []byte, owner common.Address, fuses models.Fuses, expiry uint64) (*models.WrappedName, error) {
	now := requestcontext.NowUnix(ctx)
	old, err := s.Wrapped(ctx, node)
	if err != nil {
		return nil, err
	}
	fuses, expiry = old.Rewrap(now, fuses, expiry)
	if !fuses.Settable() {
		return nil, dErrors.New(dErrors.CodeOperationProhibited, "burning fuses requires PARENT_CANNOT_CONTROL and CANNOT_UNWRAP")
	}

	if old.IsWrapped() {
		if err := s.emit(ctx, events.TypeNameUnwrapped, node, events.NameUnwrapped{Node: node}); err != nil {
			return nil, err
		}
		if err := s.emit(ctx, events.TypeTransferSingle, node,
			events.TransferSingle{Operator: operator, From: old.Owner, ID: node}); err != nil {
			return nil, err
		}
	}

	w := &models.WrappedName{Node: node, Name: name, Owner: owner, Fuses: fuses, Expiry: expiry}
	if err := s.store.PutWrapped(ctx, w); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store wrapped name")
	}
	s.logAudit(ctx, string(events.TypeNameWrapped), "node", node, "owner", owner, "fuses", fuses.String(), "expiry", expiry)
	if err := s.emit(ctx, events.TypeNameWrapped, node, events.NameWrapped{
		Node: node, Name: name, Owner: owner, Fuses: uint32(fuses), Expiry: expiry,
	}); err != nil {
		return nil, err
	}
	if err := s.emit(ctx, events.TypeTransferSingle, node,
		events.TransferSingle{Operator: operator, To: owner, ID: node}); err != nil {
		return nil, err
	}
	return w, nil
}

// canModifyName loads node and checks that caller is its effective owner or an
// operator of that owner.
func (s *Service) canModifyName(ctx context.Context, caller common.Address, node common.Hash) (*models.WrappedName, error) {
	w, err := s.Wrapped(ctx, node)
	if err != nil {
		return nil, err
	}
	owner := w.EffectiveOwner(requestcontext.NowUnix(ctx))
	if owner == (common.Address{}) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "name is not wrapped")
	}
	ok, err := s.isOwnerOrOperator(ctx, owner, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller is not owner nor approved")
	}
	return w, nil
}

func (s *Service) isOwnerOrOperator(ctx context.Context, owner, caller common.Address) (bool, error) {
	if caller == (common.Address{}) {
		return false, nil
	}
	if caller == owner {
		return true, nil
	}
	return s.IsApprovedForAll(ctx, owner, caller)
}

func (s *Service) requireRegistryAuthorised(ctx context.Context, owner, caller common.Address) error {
	if owner != (common.Address{}) && owner == caller {
		return nil
	}
	ok, err := s.registry.IsApprovedForAll(ctx, owner, caller)
	if err != nil {
		return err
	}
	if !ok {
		return dErrors.New(dErrors.CodeUnauthorized, "caller does not own the node")
	}
	return nil
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

// validateLabel rejects labels that cannot be stored as one label of a DNS
// encoded name.
func validateLabel(label string) error {
	if label == "" || len(label) > 255 {
		return dErrors.New(dErrors.CodeValidation, "label must be 1-255 bytes")
	}
	if strings.Contains(label, ".") {
		return dErrors.Newf(dErrors.CodeValidation, "label %q contains a dot", label)
	}
	return nil
}

func validateMint(owner common.Address, fuses models.Fuses) error {
	if owner == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "owner cannot be the zero address")
	}
	if !fuses.Known() {
		return dErrors.New(dErrors.CodeValidation, "unknown fuse bits")
	}
	return nil
}

func (s *Service) start(ctx context.Context, op string, node common.Hash) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, "wrapper."+op, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(attribute.String("bicns.node", node.Hex()))
	return ctx, span
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
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
