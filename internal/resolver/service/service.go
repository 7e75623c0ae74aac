// Package service is the public resolver: per-node address, text, contenthash
// and name records.
//
// A node's records may be written by its registry owner, by an operator that
// owner approved, by the wrapped owner (or wrapper operator) when the registry
// owner is the wrapper, or by a trusted component such as the registration
// controller.
package service

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/events"
	"bicns/internal/resolver/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/platform/tx"
	"bicns/pkg/requestcontext"
)

type Store interface {
	Records(ctx context.Context, node common.Hash) (*models.Records, error)
	PutRecords(ctx context.Context, node common.Hash, records *models.Records) error
}

type Registry interface {
	Owner(ctx context.Context, node common.Hash) (common.Address, error)
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)
}

type Wrapper interface {
	Address() common.Address
	OwnerOf(ctx context.Context, node common.Hash) (common.Address, error)
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)
}

// Observer hears about record changes once they are committed.
type Observer interface {
	RecordsChanged(ctx context.Context, node common.Hash)
}

type Service struct {
	store     Store
	registry  Registry
	wrapper   Wrapper
	tx        tx.Runner
	events    events.Sink
	self      common.Address
	trusted   map[common.Address]struct{}
	observers []Observer
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTrusted lets the given components write any node's records.
func WithTrusted(addrs ...common.Address) Option {
	return func(s *Service) {
		for _, a := range addrs {
			s.trusted[a] = struct{}{}
		}
	}
}

// WithObserver notifies o after every committed SetRecords. When SetRecords
// joins an outer transaction, o hears about it after that one commits.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		s.observers = append(s.observers, o)
	}
}

func New(store Store, registry Registry, wrapper Wrapper, runner tx.Runner, sink events.Sink, self common.Address, opts ...Option) *Service {
	s := &Service{
		store:    store,
		registry: registry,
		wrapper:  wrapper,
		tx:       runner,
		events:   sink,
		self:     self,
		trusted:  make(map[common.Address]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Address is the resolver's identity, recorded as resolver on registry nodes.
func (s *Service) Address() common.Address {
	return s.self
}

func (s *Service) Records(ctx context.Context, node common.Hash) (*models.Records, error) {
	rec, err := s.store.Records(ctx, node)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load records")
	}
	return rec, nil
}

func (s *Service) Addr(ctx context.Context, node common.Hash) (common.Address, error) {
	rec, err := s.Records(ctx, node)
	if err != nil {
		return common.Address{}, err
	}
	return rec.Addr, nil
}

func (s *Service) Name(ctx context.Context, node common.Hash) (string, error) {
	rec, err := s.Records(ctx, node)
	if err != nil {
		return "", err
	}
	return rec.Name, nil
}

func (s *Service) Text(ctx context.Context, node common.Hash, key string) (string, error) {
	rec, err := s.Records(ctx, node)
	if err != nil {
		return "", err
	}
	return rec.Texts[key], nil
}

func (s *Service) Contenthash(ctx context.Context, node common.Hash) ([]byte, error) {
	rec, err := s.Records(ctx, node)
	if err != nil {
		return nil, err
	}
	return rec.Contenthash, nil
}

// SetRecords validates the whole batch, then applies it in order. Either every
// write lands or none does.
func (s *Service) SetRecords(ctx context.Context, caller common.Address, node common.Hash, batch []models.RecordWrite) error {
	if len(batch) == 0 {
		return nil
	}
	if err := models.ValidateBatch(batch); err != nil {
		return err
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		ok, err := s.Authorised(ctx, caller, node)
		if err != nil {
			return err
		}
		if !ok {
			return dErrors.New(dErrors.CodeUnauthorized, "caller may not write records for this node")
		}
		rec, err := s.Records(ctx, node)
		if err != nil {
			return err
		}
		rec.Apply(batch)
		if err := s.store.PutRecords(ctx, node, rec); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store records")
		}
		kinds := make([]string, len(batch))
		for i, w := range batch {
			kinds[i] = string(w.Kind)
		}
		if err := s.events.Append(ctx, events.New(ctx, events.TypeRecordsChanged, node, events.RecordsChanged{Node: node, Kinds: kinds})); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record event")
		}
		for _, o := range s.observers {
			tx.AfterCommit(ctx, func(ctx context.Context) { o.RecordsChanged(ctx, node) })
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logAudit(ctx, "records_changed", "node", node.Hex(), "caller", caller.Hex(), "writes", len(batch))
	return nil
}

// Authorised reports whether caller may write node's records.
func (s *Service) Authorised(ctx context.Context, caller common.Address, node common.Hash) (bool, error) {
	if _, ok := s.trusted[caller]; ok {
		return true, nil
	}
	owner, err := s.registry.Owner(ctx, node)
	if err != nil {
		return false, err
	}
	approvedForAll := s.registry.IsApprovedForAll
	if s.wrapper != nil && owner == s.wrapper.Address() {
		if owner, err = s.wrapper.OwnerOf(ctx, node); err != nil {
			return false, err
		}
		approvedForAll = s.wrapper.IsApprovedForAll
	}
	if owner == (common.Address{}) {
		return false, nil
	}
	if owner == caller {
		return true, nil
	}
	return approvedForAll(ctx, owner, caller)
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
