// Package service is the fee token: an allowance-based ledger the controller
// debits registration fees from.
//
// The ledger runs on its own transaction runner. A debit commits on its own, so
// the controller must refund explicitly when the registration it paid for fails.
package service

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/platform/tx"
	"bicns/pkg/requestcontext"
)

type Store interface {
	Balance(ctx context.Context, addr common.Address) (*big.Int, error)
	SetBalance(ctx context.Context, addr common.Address, amount *big.Int) error
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)
	SetAllowance(ctx context.Context, owner, spender common.Address, amount *big.Int) error
}

type Service struct {
	store  Store
	tx     tx.Runner
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, runner tx.Runner, opts ...Option) *Service {
	s := &Service{store: store, tx: runner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error) {
	b, err := s.store.Balance(ctx, addr)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load balance")
	}
	return b, nil
}

func (s *Service) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	a, err := s.store.Allowance(ctx, owner, spender)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load allowance")
	}
	return a, nil
}

// Approve replaces the allowance caller grants spender.
func (s *Service) Approve(ctx context.Context, caller, spender common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if spender == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "spender is required")
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.SetAllowance(ctx, caller, spender, amount); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store allowance")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logAudit(ctx, "token_approval", "owner", caller.Hex(), "spender", spender.Hex(), "amount", amount.String())
	return nil
}

// Transfer moves amount from caller to to.
func (s *Service) Transfer(ctx context.Context, caller, to common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.move(ctx, caller, to, amount)
	})
	if err != nil {
		return err
	}
	s.logAudit(ctx, "token_transfer", "from", caller.Hex(), "to", to.Hex(), "amount", amount.String())
	return nil
}

// TransferFrom moves amount from from to to on spender's allowance. A spender
// moving its own funds needs no allowance.
func (s *Service) TransferFrom(ctx context.Context, spender, from, to common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if spender != from {
			allowance, err := s.Allowance(ctx, from, spender)
			if err != nil {
				return err
			}
			if allowance.Cmp(amount) < 0 {
				return dErrors.Newf(dErrors.CodeInsufficientFee, "allowance %s below %s", allowance, amount)
			}
			if err := s.store.SetAllowance(ctx, from, spender, new(big.Int).Sub(allowance, amount)); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store allowance")
			}
		}
		return s.move(ctx, from, to, amount)
	})
	if err != nil {
		return err
	}
	s.logAudit(ctx, "token_transfer",
		"spender", spender.Hex(),
		"from", from.Hex(),
		"to", to.Hex(),
		"amount", amount.String(),
	)
	return nil
}

// Mint credits to. The HTTP layer restricts it to the admin token.
func (s *Service) Mint(ctx context.Context, to common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "recipient is required")
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		balance, err := s.BalanceOf(ctx, to)
		if err != nil {
			return err
		}
		if err := s.store.SetBalance(ctx, to, balance.Add(balance, amount)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store balance")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logAudit(ctx, "token_minted", "to", to.Hex(), "amount", amount.String())
	return nil
}

func (s *Service) move(ctx context.Context, from, to common.Address, amount *big.Int) error {
	if to == (common.Address{}) {
		return dErrors.New(dErrors.CodeValidation, "recipient is required")
	}
	balance, err := s.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return dErrors.Newf(dErrors.CodeInsufficientFee, "balance %s below %s", balance, amount)
	}
	if from == to {
		return nil
	}
	if err := s.store.SetBalance(ctx, from, balance.Sub(balance, amount)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store balance")
	}
	toBalance, err := s.BalanceOf(ctx, to)
	if err != nil {
		return err
	}
	if err := s.store.SetBalance(ctx, to, toBalance.Add(toBalance, amount)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store balance")
	}
	return nil
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return dErrors.New(dErrors.CodeValidation, "amount must be a non-negative integer")
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
