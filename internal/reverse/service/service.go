// Package service is the reverse registrar. It owns addr.reverse and gives
// every address a node under it whose name record points back at a forward
// name.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/events"
	resolvermodels "bicns/internal/resolver/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/platform/tx"
	"bicns/pkg/requestcontext"
)

type Registry interface {
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)
	SetSubnodeRecord(ctx context.Context, caller common.Address, parent, labelHash common.Hash, owner, resolver common.Address, ttl uint64) (common.Hash, error)
}

type Resolver interface {
	Address() common.Address
	SetRecords(ctx context.Context, caller common.Address, node common.Hash, batch []resolvermodels.RecordWrite) error
}

type Service struct {
	registry Registry
	resolver Resolver
	tx       tx.Runner
	events   events.Sink
	self     common.Address
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(registry Registry, resolver Resolver, runner tx.Runner, sink events.Sink, self common.Address, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		resolver: resolver,
		tx:       runner,
		events:   sink,
		self:     self,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Address() common.Address {
	return s.self
}

// Node is the reverse node of addr.
func (s *Service) Node(addr common.Address) common.Hash {
	return domain.ReverseNode(addr)
}

// SetNameForAddr points addr's reverse node at owner and resolver and stores
// name there. A zero resolver means the public resolver; a name can only be
// stored on the public resolver. The caller must be addr or an operator of addr.
func (s *Service) SetNameForAddr(ctx context.Context, caller, addr, owner, resolver common.Address, name string) (common.Hash, error) {
	name = strings.TrimSpace(name)
	if addr == (common.Address{}) {
		return common.Hash{}, dErrors.New(dErrors.CodeValidation, "address is required")
	}
	if owner == (common.Address{}) {
		owner = addr
	}
	if resolver == (common.Address{}) {
		resolver = s.resolver.Address()
	}
	if name != "" && resolver != s.resolver.Address() {
		return common.Hash{}, dErrors.New(dErrors.CodeValidation, "names can only be stored on the public resolver")
	}

	node := s.Node(addr)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.authorise(ctx, caller, addr); err != nil {
			return err
		}
		if _, err := s.registry.SetSubnodeRecord(ctx, s.self, domain.AddrReverseNode, domain.HashLabel(domain.ReverseLabel(addr)), owner, resolver, 0); err != nil {
			return err
		}
		if name != "" {
			if err := s.resolver.SetRecords(ctx, s.self, node, []resolvermodels.RecordWrite{{Kind: resolvermodels.KindName, Value: name}}); err != nil {
				return err
			}
		}
		if err := s.events.Append(ctx, events.New(ctx, events.TypeReverseClaimed, node, events.ReverseClaimed{Addr: addr, Node: node, Name: name})); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record event")
		}
		return nil
	})
	if err != nil {
		return common.Hash{}, err
	}
	s.logAudit(ctx, string(events.TypeReverseClaimed), "addr", addr.Hex(), "owner", owner.Hex(), "name", name)
	return node, nil
}

// SetName is SetNameForAddr for the caller's own address.
func (s *Service) SetName(ctx context.Context, caller common.Address, name string) (common.Hash, error) {
	return s.SetNameForAddr(ctx, caller, caller, caller, common.Address{}, name)
}

func (s *Service) authorise(ctx context.Context, caller, addr common.Address) error {
	if caller == addr {
		return nil
	}
	ok, err := s.registry.IsApprovedForAll(ctx, addr, caller)
	if err != nil {
		return err
	}
	if !ok {
		return dErrors.New(dErrors.CodeUnauthorized, "caller may not claim this address")
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
