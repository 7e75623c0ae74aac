package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"bicns/internal/events"
	"bicns/internal/events/outbox"
	"bicns/internal/platform/memtx"
	"bicns/internal/registry/models"
	"bicns/internal/registry/store"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/requestcontext"
)

var (
	admin   = common.HexToAddress("0x000000000000000000000000000000000000ad01")
	alice   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob     = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	carol   = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	resolve = common.HexToAddress("0x00000000000000000000000000000000000000e5")
)

type RegistryServiceSuite struct {
	suite.Suite
	ctx     context.Context
	tx      *memtx.Runner
	outbox  *outbox.InMemory
	service *Service
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Unix(1_700_000_000, 0))
	s.tx = memtx.New()
	s.outbox = outbox.NewInMemory(s.tx)
	st := store.NewInMemory(s.tx)
	s.service = New(st, s.tx, s.outbox)

	// bootstrap: root owned by admin
	s.Require().NoError(st.PutRecord(s.ctx, domain.RootNode, models.Record{Owner: admin}))
}

func (s *RegistryServiceSuite) eventTypes() []events.Type {
	all, err := s.outbox.All(s.ctx)
	s.Require().NoError(err)
	out := make([]events.Type, len(all))
	for i, e := range all {
		out[i] = e.Type
	}
	return out
}

func (s *RegistryServiceSuite) TestSetSubnodeOwner() {
	s.Run("parent owner creates child", func() {
		child, err := s.service.SetSubnodeOwner(s.ctx, admin, domain.RootNode, domain.HashLabel("bic"), alice)
		s.Require().NoError(err)
		s.Equal(domain.BICNode, child)

		owner, err := s.service.Owner(s.ctx, child)
		s.Require().NoError(err)
		s.Equal(alice, owner)
	})

	s.Run("non-owner is unauthorized", func() {
		_, err := s.service.SetSubnodeOwner(s.ctx, bob, domain.BICNode, domain.HashLabel("foo"), bob)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("reassigning a node leaves grandchildren orphaned, not cleared", func() {
		foo, err := s.service.SetSubnodeOwner(s.ctx, alice, domain.BICNode, domain.HashLabel("foo"), bob)
		s.Require().NoError(err)
		sub, err := s.service.SetSubnodeOwner(s.ctx, bob, foo, domain.HashLabel("sub"), bob)
		s.Require().NoError(err)

		_, err = s.service.SetSubnodeOwner(s.ctx, alice, domain.BICNode, domain.HashLabel("foo"), carol)
		s.Require().NoError(err)

		owner, err := s.service.Owner(s.ctx, sub)
		s.Require().NoError(err)
		s.Equal(bob, owner)
		s.Equal(domain.Namehash("sub.foo.bic"), sub)
	})
}

func (s *RegistryServiceSuite) TestSetOwner() {
	bic, err := s.service.SetSubnodeOwner(s.ctx, admin, domain.RootNode, domain.HashLabel("bic"), alice)
	s.Require().NoError(err)

	s.Run("owner transfers", func() {
		s.Require().NoError(s.service.SetOwner(s.ctx, alice, bic, bob))
		owner, err := s.service.Owner(s.ctx, bic)
		s.Require().NoError(err)
		s.Equal(bob, owner)
	})

	s.Run("previous owner loses rights", func() {
		err := s.service.SetOwner(s.ctx, alice, bic, alice)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("zero owner revokes every right until an ancestor reassigns", func() {
		s.Require().NoError(s.service.SetOwner(s.ctx, bob, bic, common.Address{}))
		exists, err := s.service.RecordExists(s.ctx, bic)
		s.Require().NoError(err)
		s.False(exists)

		_, err = s.service.SetSubnodeOwner(s.ctx, bob, bic, domain.HashLabel("foo"), bob)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		_, err = s.service.SetSubnodeOwner(s.ctx, admin, domain.RootNode, domain.HashLabel("bic"), carol)
		s.Require().NoError(err)
		_, err = s.service.SetSubnodeOwner(s.ctx, carol, bic, domain.HashLabel("foo"), carol)
		s.Require().NoError(err)
	})
}

func (s *RegistryServiceSuite) TestOperators() {
	bic, err := s.service.SetSubnodeOwner(s.ctx, admin, domain.RootNode, domain.HashLabel("bic"), alice)
	s.Require().NoError(err)

	s.Require().NoError(s.service.SetApprovalForAll(s.ctx, alice, bob, true))
	approved, err := s.service.IsApprovedForAll(s.ctx, alice, bob)
	s.Require().NoError(err)
	s.True(approved)

	s.Require().NoError(s.service.SetResolver(s.ctx, bob, bic, resolve))
	got, err := s.service.Resolver(s.ctx, bic)
	s.Require().NoError(err)
	s.Equal(resolve, got)

	s.Require().NoError(s.service.SetApprovalForAll(s.ctx, alice, bob, false))
	err = s.service.SetTTL(s.ctx, bob, bic, 60)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	err = s.service.SetApprovalForAll(s.ctx, alice, alice, true)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *RegistryServiceSuite) TestSetRecordEmitsOnlyChanges() {
	bic, err := s.service.SetSubnodeOwner(s.ctx, admin, domain.RootNode, domain.HashLabel("bic"), alice)
	s.Require().NoError(err)
	before := len(s.eventTypes())

	s.Require().NoError(s.service.SetRecord(s.ctx, alice, bic, alice, resolve, 0))
	s.Equal([]events.Type{events.TypeTransfer, events.TypeNewResolver}, s.eventTypes()[before:])

	rec, err := s.service.Record(s.ctx, bic)
	s.Require().NoError(err)
	s.Equal(alice, rec.Owner)
	s.Equal(resolve, rec.Resolver)
	s.Equal(uint64(0), rec.TTL)
}

func (s *RegistryServiceSuite) TestSetSubnodeRecord() {
	child, err := s.service.SetSubnodeRecord(s.ctx, admin, domain.RootNode, domain.HashLabel("bic"), alice, resolve, 300)
	s.Require().NoError(err)

	rec, err := s.service.Record(s.ctx, child)
	s.Require().NoError(err)
	s.Equal(alice, rec.Owner)
	s.Equal(resolve, rec.Resolver)
	s.Equal(uint64(300), rec.TTL)
	s.Equal([]events.Type{events.TypeNewOwner, events.TypeNewResolver, events.TypeNewTTL}, s.eventTypes())
}

func (s *RegistryServiceSuite) TestFailedTransactionLeavesNoTrace() {
	err := s.tx.RunInTx(s.ctx, func(ctx context.Context) error {
		_, err := s.service.SetSubnodeOwner(ctx, admin, domain.RootNode, domain.HashLabel("bic"), alice)
		s.Require().NoError(err)
		return errors.New("later step failed")
	})
	s.Require().Error(err)

	owner, err := s.service.Owner(s.ctx, domain.BICNode)
	s.Require().NoError(err)
	s.Equal(common.Address{}, owner)
	s.Empty(s.eventTypes())
}
