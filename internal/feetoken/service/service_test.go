package service

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"bicns/internal/feetoken/store"
	"bicns/internal/platform/memtx"
	dErrors "bicns/pkg/domain-errors"
)

type FeeTokenSuite struct {
	suite.Suite
	ctx     context.Context
	service *Service
}

var (
	alice    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob      = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	treasury = common.HexToAddress("0x00000000000000000000000000000000000000c3")
)

func TestFeeTokenSuite(t *testing.T) {
	suite.Run(t, new(FeeTokenSuite))
}

func (s *FeeTokenSuite) SetupTest() {
	s.ctx = context.Background()
	runner := memtx.New()
	s.service = New(store.NewInMemory(runner), runner)
	s.Require().NoError(s.service.Mint(s.ctx, alice, big.NewInt(1000)))
}

func (s *FeeTokenSuite) balance(addr common.Address) string {
	b, err := s.service.BalanceOf(s.ctx, addr)
	s.Require().NoError(err)
	return b.String()
}

func (s *FeeTokenSuite) TestTransfer() {
	s.Require().NoError(s.service.Transfer(s.ctx, alice, bob, big.NewInt(400)))
	s.Equal("600", s.balance(alice))
	s.Equal("400", s.balance(bob))

	err := s.service.Transfer(s.ctx, bob, alice, big.NewInt(401))
	s.True(dErrors.HasCode(err, dErrors.CodeInsufficientFee))
	s.Equal("400", s.balance(bob))
}

func (s *FeeTokenSuite) TestTransferFromUsesAllowance() {
	s.Run("no allowance", func() {
		err := s.service.TransferFrom(s.ctx, treasury, alice, treasury, big.NewInt(1))
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientFee))
	})

	s.Require().NoError(s.service.Approve(s.ctx, alice, treasury, big.NewInt(300)))

	s.Run("within allowance", func() {
		s.Require().NoError(s.service.TransferFrom(s.ctx, treasury, alice, treasury, big.NewInt(200)))
		s.Equal("800", s.balance(alice))
		s.Equal("200", s.balance(treasury))

		allowance, err := s.service.Allowance(s.ctx, alice, treasury)
		s.Require().NoError(err)
		s.Equal("100", allowance.String())
	})

	s.Run("beyond remaining allowance leaves ledger unchanged", func() {
		err := s.service.TransferFrom(s.ctx, treasury, alice, treasury, big.NewInt(101))
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientFee))
		s.Equal("800", s.balance(alice))
	})
}

func (s *FeeTokenSuite) TestFailedDebitRestoresAllowance() {
	s.Require().NoError(s.service.Approve(s.ctx, bob, treasury, big.NewInt(50)))

	err := s.service.TransferFrom(s.ctx, treasury, bob, treasury, big.NewInt(50))
	s.True(dErrors.HasCode(err, dErrors.CodeInsufficientFee))

	allowance, err := s.service.Allowance(s.ctx, bob, treasury)
	s.Require().NoError(err)
	s.Equal("50", allowance.String())
}

func (s *FeeTokenSuite) TestValidation() {
	s.True(dErrors.HasCode(s.service.Transfer(s.ctx, alice, bob, big.NewInt(-1)), dErrors.CodeValidation))
	s.True(dErrors.HasCode(s.service.Transfer(s.ctx, alice, common.Address{}, big.NewInt(1)), dErrors.CodeValidation))
	s.True(dErrors.HasCode(s.service.Approve(s.ctx, alice, common.Address{}, big.NewInt(1)), dErrors.CodeValidation))
	s.True(dErrors.HasCode(s.service.Mint(s.ctx, alice, nil), dErrors.CodeValidation))
}
