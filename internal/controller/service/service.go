// Package service is the commit-reveal registration controller.
//
// A registrant first commits to a hash of every registration parameter,
// secret included, and reveals the parameters only after minCommitmentAge and
// before maxCommitmentAge. The fee is debited before any name state changes
// and refunded if the registration it paid for does not commit.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"bicns/internal/controller/metrics"
	"bicns/internal/controller/models"
	"bicns/internal/events"
	registrarmodels "bicns/internal/registrar/models"
	resolvermodels "bicns/internal/resolver/models"
	wrappermodels "bicns/internal/wrapper/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/sentinel"
	"bicns/pkg/platform/tx"
	"bicns/pkg/requestcontext"
)

const (
	DefaultMinCommitmentAge = uint64(600)
	DefaultMaxCommitmentAge = uint64(86400)
)

type Store interface {
	Commitment(ctx context.Context, hash common.Hash) (*models.Commitment, error)
	PutCommitment(ctx context.Context, c models.Commitment) error
	DeleteCommitment(ctx context.Context, hash common.Hash) error
}

type PriceOracle interface {
	Price(label string, duration uint64) models.Price
}

// FeeToken is the ledger fees are pulled from. Its writes commit independently
// of the name store.
type FeeToken interface {
	TransferFrom(ctx context.Context, spender, from, to common.Address, amount *big.Int) error
	Transfer(ctx context.Context, caller, to common.Address, amount *big.Int) error
}

type Registrar interface {
	Label(ctx context.Context, hash common.Hash) (*registrarmodels.Label, error)
	Available(ctx context.Context, hash common.Hash) (bool, error)
	Register(ctx context.Context, caller common.Address, hash common.Hash, owner common.Address, duration uint64) (uint64, error)
	Renew(ctx context.Context, caller common.Address, hash common.Hash, duration uint64) (uint64, error)
	TransferFrom(ctx context.Context, caller, from, to common.Address, hash common.Hash) error
}

type Registry interface {
	SetRecord(ctx context.Context, caller common.Address, node common.Hash, owner, resolver common.Address, ttl uint64) error
}

type Wrapper interface {
	Address() common.Address
	RegisterAndWrapBIC2LD(ctx context.Context, caller common.Address, label string, wrappedOwner common.Address, duration uint64, resolver common.Address, fuses wrappermodels.Fuses, expiry uint64) (uint64, error)
	Renew(ctx context.Context, caller common.Address, hash common.Hash, duration uint64) (uint64, error)
}

type Resolver interface {
	Address() common.Address
	SetRecords(ctx context.Context, caller common.Address, node common.Hash, batch []resolvermodels.RecordWrite) error
}

// Components are the collaborators a registration writes through.
type Components struct {
	Registrar Registrar
	Registry  Registry
	Wrapper   Wrapper
	Resolver  Resolver
	Oracle    PriceOracle
	Token     FeeToken
}

type Service struct {
	store    Store
	deps     Components
	tx       tx.Runner
	events   events.Sink
	self     common.Address
	treasury common.Address
	minAge   uint64
	maxAge   uint64
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
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

// WithCommitmentAges sets the reveal window in seconds.
func WithCommitmentAges(minAge, maxAge uint64) Option {
	return func(s *Service) {
		s.minAge, s.maxAge = minAge, maxAge
	}
}

// WithTreasury sends fees somewhere other than the controller's own account.
func WithTreasury(addr common.Address) Option {
	return func(s *Service) {
		s.treasury = addr
	}
}

// New fails unless maxCommitmentAge > minCommitmentAge.
func New(store Store, deps Components, runner tx.Runner, sink events.Sink, self common.Address, opts ...Option) (*Service, error) {
	s := &Service{
		store:    store,
		deps:     deps,
		tx:       runner,
		events:   sink,
		self:     self,
		treasury: self,
		minAge:   DefaultMinCommitmentAge,
		maxAge:   DefaultMaxCommitmentAge,
		tracer:   noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxAge <= s.minAge {
		return nil, fmt.Errorf("max commitment age %d must exceed min commitment age %d", s.maxAge, s.minAge)
	}
	return s, nil
}

func (s *Service) Address() common.Address {
	return s.self
}

func (s *Service) Treasury() common.Address {
	return s.treasury
}

func (s *Service) MinCommitmentAge() uint64 {
	return s.minAge
}

func (s *Service) MaxCommitmentAge() uint64 {
	return s.maxAge
}

// Valid reports whether label may ever be registered.
func (s *Service) Valid(label string) bool {
	return domain.ValidLabel(label)
}

// Available is Valid plus registrar availability at request time.
func (s *Service) Available(ctx context.Context, label string) (bool, error) {
	if !s.Valid(label) {
		return false, nil
	}
	return s.deps.Registrar.Available(ctx, domain.HashLabel(label))
}

func (s *Service) RentPrice(label string, duration uint64) models.Price {
	return s.deps.Oracle.Price(label, duration)
}

// MakeCommitment hashes p. It reads no state.
func (s *Service) MakeCommitment(p models.RegisterParams) (common.Hash, error) {
	if err := p.Validate(); err != nil {
		return common.Hash{}, err
	}
	return p.Commitment()
}

// Commitments returns the commit timestamp of hash.
func (s *Service) Commitments(ctx context.Context, hash common.Hash) (uint64, error) {
	c, err := s.commitment(ctx, hash)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, dErrors.New(dErrors.CodeNotFound, "commitment not found")
	}
	return c.Timestamp, nil
}

// Commit records hash at the request time. Re-committing a hash that is still
// inside its reveal window is refused.
func (s *Service) Commit(ctx context.Context, caller common.Address, hash common.Hash) error {
	if hash == (common.Hash{}) {
		return dErrors.New(dErrors.CodeValidation, "commitment is required")
	}
	now := requestcontext.NowUnix(ctx)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.commitment(ctx, hash)
		if err != nil {
			return err
		}
		if existing != nil && existing.Pending(now, s.maxAge) {
			return dErrors.New(dErrors.CodeCommitmentTooNew, "commitment is already pending")
		}
		if err := s.store.PutCommitment(ctx, models.Commitment{Hash: hash, Timestamp: now}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store commitment")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.metrics.IncCommit()
	s.logAudit(ctx, "commitment_made", "commitment", hash.Hex(), "caller", caller.Hex())
	return nil
}

// Register reveals p, pulls fee from caller and registers the label. Record
// data in p is only accepted when p.Resolver is the public resolver, since
// that is the resolver the controller can write through. The commitment is
// consumed in the same transaction as the registration and the fee is
// refunded if that transaction fails.
func (s *Service) Register(ctx context.Context, caller common.Address, p models.RegisterParams, fee *big.Int) (result models.Registration, err error) {
	start := time.Now()
	defer s.metrics.ObserveRegister(start)
	ctx, span := s.start(ctx, "Register", p.Node())
	defer func() { finish(span, err) }()

	if !s.Valid(p.Label) {
		return models.Registration{}, dErrors.Newf(dErrors.CodeNameNotAvailable, "%q is not a valid label", p.Label)
	}
	if err := p.Validate(); err != nil {
		return models.Registration{}, err
	}
	if p.WrapOwner && !wrappermodels.Fuses(p.Fuses).Known() {
		return models.Registration{}, dErrors.New(dErrors.CodeValidation, "unknown fuse bits")
	}
	hash, err := p.Commitment()
	if err != nil {
		return models.Registration{}, err
	}
	now := requestcontext.NowUnix(ctx)
	if err := s.checkCommitment(ctx, hash, now); err != nil {
		return models.Registration{}, err
	}
	available, err := s.deps.Registrar.Available(ctx, p.LabelHash())
	if err != nil {
		return models.Registration{}, err
	}
	if !available {
		return models.Registration{}, dErrors.Newf(dErrors.CodeNameNotAvailable, "%s.%s is not available", p.Label, domain.TLD)
	}
	if p.Duration < models.MinRegistrationDuration {
		return models.Registration{}, dErrors.Newf(dErrors.CodeValidation, "duration must be at least %d seconds", models.MinRegistrationDuration)
	}
	if len(p.Data) > 0 && p.Resolver != s.deps.Resolver.Address() {
		return models.Registration{}, dErrors.New(dErrors.CodeValidation, "record data can only be applied to the public resolver")
	}
	price := s.RentPrice(p.Label, p.Duration)
	if err := s.debit(ctx, caller, price, fee); err != nil {
		return models.Registration{}, err
	}
	span.AddEvent("fee debited")

	var path string
	result = models.Registration{Node: p.Node(), Price: price}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// a concurrent reveal may have consumed the commitment since the check above
		if err := s.checkCommitment(ctx, hash, now); err != nil {
			return err
		}
		if err := s.store.DeleteCommitment(ctx, hash); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to consume commitment")
		}
		expiry, used, err := s.registerName(ctx, p)
		if err != nil {
			return err
		}
		result.Expiry, path = expiry, used

		if err := s.emit(ctx, events.TypeNameRegistered, result.Node, events.NameRegistered{
			Label:     p.Label,
			LabelHash: p.LabelHash(),
			Owner:     p.Owner,
			Duration:  p.Duration,
			BaseCost:  amountString(price.Base),
			Premium:   amountString(price.Premium),
			Expiry:    expiry,
		}); err != nil {
			return err
		}
		if len(p.Data) > 0 {
			return s.deps.Resolver.SetRecords(ctx, s.self, result.Node, p.Data)
		}
		return nil
	})
	if err != nil {
		s.refund(ctx, caller, fee, "register", err)
		return models.Registration{}, err
	}

	s.metrics.IncRegistration(path)
	s.logAudit(ctx, string(events.TypeNameRegistered),
		"label", p.Label,
		"owner", p.Owner.Hex(),
		"expiry", result.Expiry,
		"path", path,
		"fee", fee.String(),
	)
	return result, nil
}

// registerName runs the registration path p asks for and returns its expiry.
func (s *Service) registerName(ctx context.Context, p models.RegisterParams) (uint64, string, error) {
	hash := p.LabelHash()
	if p.WrapOwner {
		expiry, err := s.deps.Wrapper.RegisterAndWrapBIC2LD(ctx, s.self, p.Label, p.Owner, p.Duration, p.Resolver, wrappermodels.Fuses(p.Fuses), p.WrapperExpiry)
		return expiry, "wrapped", err
	}
	if p.Resolver == (common.Address{}) {
		expiry, err := s.deps.Registrar.Register(ctx, s.self, hash, p.Owner, p.Duration)
		return expiry, "direct", err
	}
	expiry, err := s.deps.Registrar.Register(ctx, s.self, hash, s.self, p.Duration)
	if err != nil {
		return 0, "", err
	}
	if err := s.deps.Registry.SetRecord(ctx, s.self, p.Node(), p.Owner, p.Resolver, 0); err != nil {
		return 0, "", err
	}
	if err := s.deps.Registrar.TransferFrom(ctx, s.self, s.self, p.Owner, hash); err != nil {
		return 0, "", err
	}
	return expiry, "record", nil
}

// Renew extends label by duration for a fee. Wrapped names renew through the
// wrapper so the wrapped expiry follows the lease.
func (s *Service) Renew(ctx context.Context, caller common.Address, label string, duration uint64, fee *big.Int) (expiry uint64, err error) {
	hash := domain.HashLabel(label)
	node := domain.MakeNode(domain.BICNode, hash)
	ctx, span := s.start(ctx, "Renew", node)
	defer func() { finish(span, err) }()

	now := requestcontext.NowUnix(ctx)
	lease, err := s.deps.Registrar.Label(ctx, hash)
	if err != nil {
		return 0, err
	}
	if !lease.Renewable(now) {
		return 0, dErrors.New(dErrors.CodeNameExpired, "name expired")
	}
	price := s.RentPrice(label, duration)
	if err := s.debit(ctx, caller, price, fee); err != nil {
		return 0, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		lease, err := s.deps.Registrar.Label(ctx, hash)
		if err != nil {
			return err
		}
		if lease != nil && lease.Owner == s.deps.Wrapper.Address() {
			expiry, err = s.deps.Wrapper.Renew(ctx, s.self, hash, duration)
		} else {
			expiry, err = s.deps.Registrar.Renew(ctx, s.self, hash, duration)
		}
		if err != nil {
			return err
		}
		return s.emit(ctx, events.TypeNameRenewed, node, events.NameRenewed{
			Label:     label,
			LabelHash: hash,
			Cost:      amountString(price.Total()),
			Expiry:    expiry,
		})
	})
	if err != nil {
		s.refund(ctx, caller, fee, "renew", err)
		return 0, err
	}
	s.metrics.IncRenewal()
	s.logAudit(ctx, string(events.TypeNameRenewed), "label", label, "expiry", expiry, "fee", fee.String())
	return expiry, nil
}

func (s *Service) checkCommitment(ctx context.Context, hash common.Hash, now uint64) error {
	c, err := s.commitment(ctx, hash)
	if err != nil {
		return err
	}
	if c == nil {
		return dErrors.New(dErrors.CodeCommitmentNotFound, "commitment not found")
	}
	return c.CheckRevealable(now, s.minAge, s.maxAge)
}

func (s *Service) commitment(ctx context.Context, hash common.Hash) (*models.Commitment, error) {
	c, err := s.store.Commitment(ctx, hash)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load commitment")
	}
	return c, nil
}

// debit pulls fee from payer once it covers price.
func (s *Service) debit(ctx context.Context, payer common.Address, price models.Price, fee *big.Int) error {
	if fee == nil || fee.Sign() < 0 {
		return dErrors.New(dErrors.CodeValidation, "fee must be a non-negative amount")
	}
	if fee.Cmp(price.Total()) < 0 {
		return dErrors.Newf(dErrors.CodeInsufficientFee, "fee %s below price %s", fee, price.Total())
	}
	if fee.Sign() == 0 {
		return nil
	}
	if err := s.deps.Token.TransferFrom(ctx, s.self, payer, s.treasury, fee); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInsufficientFee) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInsufficientFee, "fee debit failed")
	}
	return nil
}

// refund returns fee to payer after cause aborted the paid operation. A failed
// refund is logged; cause is still what the caller sees.
func (s *Service) refund(ctx context.Context, payer common.Address, fee *big.Int, op string, cause error) {
	if fee == nil || fee.Sign() == 0 {
		return
	}
	err := s.deps.Token.Transfer(ctx, s.treasury, payer, fee)
	s.metrics.IncRefund(err == nil)
	if s.logger == nil {
		return
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "fee refund failed",
			"op", op,
			"payer", payer.Hex(),
			"fee", fee.String(),
			"cause", cause,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	s.logAudit(ctx, "fee_refunded", "op", op, "payer", payer.Hex(), "fee", fee.String(), "cause", cause.Error())
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func (s *Service) start(ctx context.Context, op string, node common.Hash) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, "controller."+op, trace.WithSpanKind(trace.SpanKindInternal))
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
