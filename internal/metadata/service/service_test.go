package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bicns/internal/events/outbox"
	"bicns/internal/metadata/cache"
	"bicns/internal/metadata/service/mocks"
	"bicns/internal/platform/memtx"
	registrymodels "bicns/internal/registry/models"
	registryservice "bicns/internal/registry/service"
	registrystore "bicns/internal/registry/store"
	resolvermodels "bicns/internal/resolver/models"
	resolverservice "bicns/internal/resolver/service"
	resolverstore "bicns/internal/resolver/store"
	reverseservice "bicns/internal/reverse/service"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
	"bicns/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Wrapper,Resolver,Cache
type MetadataServiceSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	wrapper  *mocks.MockWrapper
	resolver *mocks.MockResolver
	service  *Service
}

var account = common.HexToAddress("0x00000000000000000000000000000000000000a1")

func TestMetadataServiceSuite(t *testing.T) {
	suite.Run(t, new(MetadataServiceSuite))
}

func (s *MetadataServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.wrapper = mocks.NewMockWrapper(s.ctrl)
	s.resolver = mocks.NewMockResolver(s.ctrl)
	s.service = New(s.wrapper, s.resolver)
}

func (s *MetadataServiceSuite) encoded(name string) []byte {
	b, err := domain.EncodeName(name)
	s.Require().NoError(err)
	return b
}

func (s *MetadataServiceSuite) TestNameIsDecodedAndCached() {
	node := domain.Namehash("sub.newname.bic")
	s.wrapper.EXPECT().Names(gomock.Any(), node).Return(s.encoded("sub.newname.bic"), nil).Times(1)

	for range 2 {
		name, err := s.service.Name(s.ctx, node)
		s.Require().NoError(err)
		s.Equal("sub.newname.bic", name)
	}
}

func (s *MetadataServiceSuite) TestUnknownNodeIsNotFoundAndNotCached() {
	node := domain.Namehash("missing.bic")
	s.wrapper.EXPECT().Names(gomock.Any(), node).Return(nil, nil).Times(2)

	for range 2 {
		_, err := s.service.Name(s.ctx, node)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	}
}

func (s *MetadataServiceSuite) TestMalformedStoredName() {
	node := domain.Namehash("bad")
	s.wrapper.EXPECT().Names(gomock.Any(), node).Return([]byte{5, 'a'}, nil)

	_, err := s.service.Name(s.ctx, node)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *MetadataServiceSuite) TestPrimaryNameVerifiesForwardRecord() {
	s.resolver.EXPECT().Name(gomock.Any(), domain.ReverseNode(account)).Return("newname.bic", nil)
	s.resolver.EXPECT().Addr(gomock.Any(), domain.Namehash("newname.bic")).Return(account, nil)

	name, err := s.service.PrimaryName(s.ctx, account)
	s.Require().NoError(err)
	s.Equal("newname.bic", name)
}

func (s *MetadataServiceSuite) TestPrimaryNameRejectsMismatchedForwardRecord() {
	other := common.HexToAddress("0x00000000000000000000000000000000000000b2")
	s.resolver.EXPECT().Name(gomock.Any(), domain.ReverseNode(account)).Return("newname.bic", nil)
	s.resolver.EXPECT().Addr(gomock.Any(), domain.Namehash("newname.bic")).Return(other, nil)

	_, err := s.service.PrimaryName(s.ctx, account)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *MetadataServiceSuite) TestPrimaryNameWithoutReverseRecord() {
	s.resolver.EXPECT().Name(gomock.Any(), domain.ReverseNode(account)).Return("", nil)

	_, err := s.service.PrimaryName(s.ctx, account)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *MetadataServiceSuite) TestCacheFailureFallsBackToLoad() {
	c := mocks.NewMockCache(s.ctrl)
	svc := New(s.wrapper, s.resolver, WithCache(c, 0))
	node := domain.Namehash("newname.bic")

	c.EXPECT().Get(gomock.Any(), "name:"+node.Hex()).Return("", false, errors.New("connection refused"))
	c.EXPECT().Set(gomock.Any(), "name:"+node.Hex(), "newname.bic", DefaultTTL).Return(errors.New("connection refused"))
	s.wrapper.EXPECT().Names(gomock.Any(), node).Return(s.encoded("newname.bic"), nil)

	name, err := svc.Name(s.ctx, node)
	s.Require().NoError(err)
	s.Equal("newname.bic", name)
}

func (s *MetadataServiceSuite) TestCacheHitSkipsLoad() {
	c := mocks.NewMockCache(s.ctrl)
	svc := New(s.wrapper, s.resolver, WithCache(c, 0))

	c.EXPECT().Get(gomock.Any(), "primary:"+account.Hex()).Return("newname.bic", true, nil)

	name, err := svc.PrimaryName(s.ctx, account)
	s.Require().NoError(err)
	s.Equal("newname.bic", name)
}

func (s *MetadataServiceSuite) TestLoadIgnoresCallerCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	node := domain.Namehash("newname.bic")
	s.wrapper.EXPECT().Names(gomock.Any(), node).DoAndReturn(func(ctx context.Context, _ common.Hash) ([]byte, error) {
		s.NoError(ctx.Err())
		return s.encoded("newname.bic"), nil
	})

	name, err := s.service.Name(ctx, node)
	s.Require().NoError(err)
	s.Equal("newname.bic", name)
}

func (s *MetadataServiceSuite) TestPrimaryNameIndexesBothNodes() {
	c := mocks.NewMockCache(s.ctrl)
	svc := New(s.wrapper, s.resolver, WithCache(c, 0))
	reverse, forward := domain.ReverseNode(account), domain.Namehash("newname.bic")

	c.EXPECT().Get(gomock.Any(), "primary:"+account.Hex()).Return("", false, nil)
	s.resolver.EXPECT().Name(gomock.Any(), reverse).Return("newname.bic", nil)
	s.resolver.EXPECT().Addr(gomock.Any(), forward).Return(account, nil)
	c.EXPECT().Set(gomock.Any(), "depends:"+reverse.Hex(), account.Hex(), DefaultTTL).Return(nil)
	c.EXPECT().Set(gomock.Any(), "depends:"+forward.Hex(), account.Hex(), DefaultTTL).Return(nil)
	c.EXPECT().Set(gomock.Any(), "primary:"+account.Hex(), "newname.bic", DefaultTTL).Return(nil)

	_, err := svc.PrimaryName(s.ctx, account)
	s.Require().NoError(err)
}

func (s *MetadataServiceSuite) TestInvalidatorEvictsDependentPrimaryName() {
	c := mocks.NewMockCache(s.ctrl)
	inv := NewInvalidator(c, nil)
	node := domain.Namehash("newname.bic")

	s.Run("cached dependent", func() {
		c.EXPECT().Get(gomock.Any(), "depends:"+node.Hex()).Return(account.Hex(), true, nil)
		c.EXPECT().Delete(gomock.Any(), "primary:"+account.Hex(), "depends:"+node.Hex()).Return(nil)
		inv.RecordsChanged(s.ctx, node)
	})

	s.Run("nothing cached", func() {
		c.EXPECT().Get(gomock.Any(), "depends:"+node.Hex()).Return("", false, nil)
		inv.RecordsChanged(s.ctx, node)
	})

	s.Run("cache unavailable", func() {
		c.EXPECT().Get(gomock.Any(), "depends:"+node.Hex()).Return("", false, errors.New("connection refused"))
		inv.RecordsChanged(s.ctx, node)
	})
}

var (
	admin        = common.HexToAddress("0x000000000000000000000000000000000000ad01")
	other        = common.HexToAddress("0x00000000000000000000000000000000000000e9")
	reverseAddr  = domain.SystemAddress("reverse")
	resolverAddr = domain.SystemAddress("resolver")
)

// PrimaryNameFreshnessSuite runs the metadata service over real registry,
// resolver and reverse services sharing one cache.
type PrimaryNameFreshnessSuite struct {
	suite.Suite
	ctx      context.Context
	registry *registryservice.Service
	resolver *resolverservice.Service
	reverse  *reverseservice.Service
	service  *Service
}

func TestPrimaryNameFreshnessSuite(t *testing.T) {
	suite.Run(t, new(PrimaryNameFreshnessSuite))
}

func (s *PrimaryNameFreshnessSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Unix(1_700_000_000, 0))
	runner := memtx.New()
	ob := outbox.NewInMemory(runner)
	regStore := registrystore.NewInMemory(runner)
	s.Require().NoError(regStore.PutRecord(s.ctx, domain.RootNode, registrymodels.Record{Owner: admin}))
	s.registry = registryservice.New(regStore, runner, ob)

	c := cache.NewLocal(DefaultTTL, cache.DefaultCleanupInterval)
	s.resolver = resolverservice.New(resolverstore.NewInMemory(runner), s.registry, nil, runner, ob, resolverAddr,
		resolverservice.WithTrusted(reverseAddr),
		resolverservice.WithObserver(NewInvalidator(c, nil)))
	s.reverse = reverseservice.New(s.registry, s.resolver, runner, ob, reverseAddr)
	s.service = New(nil, s.resolver, WithCache(c, 0))

	reverse, err := s.registry.SetSubnodeOwner(s.ctx, admin, domain.RootNode, domain.HashLabel("reverse"), admin)
	s.Require().NoError(err)
	_, err = s.registry.SetSubnodeOwner(s.ctx, admin, reverse, domain.HashLabel("addr"), reverseAddr)
	s.Require().NoError(err)
	bic, err := s.registry.SetSubnodeOwner(s.ctx, admin, domain.RootNode, domain.HashLabel(domain.TLD), admin)
	s.Require().NoError(err)
	for _, label := range []string{"newname", "othername"} {
		node, err := s.registry.SetSubnodeOwner(s.ctx, admin, bic, domain.HashLabel(label), account)
		s.Require().NoError(err)
		s.setAddr(node, account)
	}
}

func (s *PrimaryNameFreshnessSuite) setAddr(node common.Hash, addr common.Address) {
	s.Require().NoError(s.resolver.SetRecords(s.ctx, account, node, []resolvermodels.RecordWrite{
		{Kind: resolvermodels.KindAddr, Value: addr.Hex()},
	}))
}

func (s *PrimaryNameFreshnessSuite) TestReverseChangeIsVisibleImmediately() {
	_, err := s.reverse.SetName(s.ctx, account, "newname.bic")
	s.Require().NoError(err)
	name, err := s.service.PrimaryName(s.ctx, account)
	s.Require().NoError(err)
	s.Equal("newname.bic", name)

	_, err = s.reverse.SetNameForAddr(s.ctx, account, account, account, common.Address{}, "othername.bic")
	s.Require().NoError(err)

	name, err = s.service.PrimaryName(s.ctx, account)
	s.Require().NoError(err)
	s.Equal("othername.bic", name)
}

func (s *PrimaryNameFreshnessSuite) TestForwardChangeIsVisibleImmediately() {
	_, err := s.reverse.SetName(s.ctx, account, "newname.bic")
	s.Require().NoError(err)
	_, err = s.service.PrimaryName(s.ctx, account)
	s.Require().NoError(err)

	s.setAddr(domain.Namehash("newname.bic"), other)

	_, err = s.service.PrimaryName(s.ctx, account)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
