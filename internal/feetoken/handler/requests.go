package handler

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
)

// Amounts travel as decimal strings in base units.
type ApproveRequest struct {
	Spender string `json:"spender"`
	Amount  string `json:"amount"`

	spender common.Address
	amount  *big.Int
}

func (r *ApproveRequest) Validate() error {
	spender, err := domain.ParseAddress(r.Spender)
	if err != nil {
		return err
	}
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return err
	}
	r.spender, r.amount = spender, amount
	return nil
}

type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`

	to     common.Address
	amount *big.Int
}

func (r *TransferRequest) Validate() error {
	to, err := domain.ParseAddress(r.To)
	if err != nil {
		return err
	}
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return err
	}
	r.to, r.amount = to, amount
	return nil
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "amount is required")
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "amount must be a non-negative decimal integer")
	}
	return amount, nil
}
