package service

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"bicns/internal/events"
	"bicns/internal/events/outbox"
	"bicns/internal/platform/memtx"
	registrymodels "bicns/internal/registry/models"
	registryservice "bicns/internal/registry/service"
	registrystore "bicns/internal/registry/store"
	resolverservice "bicns/internal/resolver/service"
	resolverstore "bicns/internal/resolver/store"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/requestcontext"
)

var (
	admin    = common.HexToAddress("0x000000000000000000000000000000000000ad01")
	account  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	account2 = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	other    = common.HexToAddress("0x00000000000000000000000000000000000000e9")

	reverseAddr  = domain.SystemAddress("reverse")
	resolverAddr = domain.SystemAddress("resolver")
)

type ReverseServiceSuite struct {
	suite.Suite
	ctx      context.Context
	outbox   *outbox.InMemory
	registry *registryservice.Service
	resolver *resolverservice.Service
	service  *Service
}

func TestReverseServiceSuite(t *testing.T) {
	suite.Run(t, new(ReverseServiceSuite))
}

func (s *ReverseServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Unix(1_700_000_000, 0))
	runner := memtx.New()
	s.outbox = outbox.NewInMemory(runner)

	regStore := registrystore.NewInMemory(runner)
	s.Require().NoError(regStore.PutRecord(s.ctx, domain.RootNode, registrymodels.Record{Owner: admin}))
	s.registry = registryservice.New(regStore, runner, s.outbox)
	s.resolver = resolverservice.New(resolverstore.NewInMemory(runner), s.registry, nil, runner, s.outbox, resolverAddr,
		resolverservice.WithTrusted(reverseAddr))
	s.service = New(s.registry, s.resolver, runner, s.outbox, reverseAddr)

	reverse, err := s.registry.SetSubnodeOwner(s.ctx, admin, domain.RootNode, domain.HashLabel("reverse"), admin)
	s.Require().NoError(err)
	_, err = s.registry.SetSubnodeOwner(s.ctx, admin, reverse, domain.HashLabel("addr"), reverseAddr)
	s.Require().NoError(err)
}

func (s *ReverseServiceSuite) TestSetName() {
	node, err := s.service.SetName(s.ctx, account, "newname.bic")
	s.Require().NoError(err)
	s.Equal(domain.ReverseNode(account), node)

	rec, err := s.registry.Record(s.ctx, node)
	s.Require().NoError(err)
	s.Equal(account, rec.Owner)
	s.Equal(resolverAddr, rec.Resolver)

	name, err := s.resolver.Name(s.ctx, node)
	s.Require().NoError(err)
	s.Equal("newname.bic", name)

	all, err := s.outbox.All(s.ctx)
	s.Require().NoError(err)
	last := all[len(all)-1]
	s.Equal(events.TypeReverseClaimed, last.Type)
	s.Equal(events.ReverseClaimed{Addr: account, Node: node, Name: "newname.bic"}, last.Payload)
}

func (s *ReverseServiceSuite) TestSetNameForAddr() {
	s.Run("operator of addr", func() {
		s.Require().NoError(s.registry.SetApprovalForAll(s.ctx, account, account2, true))
		node, err := s.service.SetNameForAddr(s.ctx, account2, account, account2, common.Address{}, "newname.bic")
		s.Require().NoError(err)

		owner, err := s.registry.Owner(s.ctx, node)
		s.Require().NoError(err)
		s.Equal(account2, owner)
	})

	s.Run("stranger", func() {
		_, err := s.service.SetNameForAddr(s.ctx, other, account2, other, common.Address{}, "stolen.bic")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		owner, err := s.registry.Owner(s.ctx, domain.ReverseNode(account2))
		s.Require().NoError(err)
		s.Equal(common.Address{}, owner)
	})

	s.Run("name needs the public resolver", func() {
		_, err := s.service.SetNameForAddr(s.ctx, account, account, account, other, "newname.bic")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("custom resolver without a name", func() {
		node, err := s.service.SetNameForAddr(s.ctx, account, account, account, other, "")
		s.Require().NoError(err)
		res, err := s.registry.Resolver(s.ctx, node)
		s.Require().NoError(err)
		s.Equal(other, res)
	})

	s.Run("zero address", func() {
		_, err := s.service.SetNameForAddr(s.ctx, account, common.Address{}, account, common.Address{}, "x.bic")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
