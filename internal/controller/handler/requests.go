package handler

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/controller/models"
	resolvermodels "bicns/internal/resolver/models"
	dErrors "bicns/pkg/domain-errors"
	"bicns/pkg/domain"
)

// CommitmentParamsRequest carries every value a commitment binds to. Secret is
// 32 bytes of 0x hex chosen by the registrant.
type CommitmentParamsRequest struct {
	Label         string                       `json:"label"`
	Owner         string                       `json:"owner"`
	Duration      uint64                       `json:"duration"`
	Secret        string                       `json:"secret"`
	Resolver      string                       `json:"resolver,omitempty"`
	Data          []resolvermodels.RecordWrite `json:"data,omitempty"`
	WrapOwner     bool                         `json:"wrap_owner,omitempty"`
	Fuses         uint32                       `json:"fuses,omitempty"`
	WrapperExpiry uint64                       `json:"wrapper_expiry,omitempty"`

	params models.RegisterParams
}

func (r *CommitmentParamsRequest) Validate() error {
	r.Label = strings.TrimSpace(r.Label)
	if r.Label == "" {
		return dErrors.New(dErrors.CodeValidation, "label is required")
	}
	owner, err := domain.ParseAddress(r.Owner)
	if err != nil {
		return err
	}
	secret, err := domain.ParseHash(r.Secret)
	if err != nil {
		return err
	}
	resolver, err := domain.ParseOptionalAddress(r.Resolver)
	if err != nil {
		return err
	}
	r.params = models.RegisterParams{
		Label:         r.Label,
		Owner:         owner,
		Duration:      r.Duration,
		Secret:        secret,
		Resolver:      resolver,
		Data:          r.Data,
		WrapOwner:     r.WrapOwner,
		Fuses:         r.Fuses,
		WrapperExpiry: r.WrapperExpiry,
	}
	return nil
}

type CommitRequest struct {
	Commitment string `json:"commitment"`

	hash common.Hash
}

func (r *CommitRequest) Validate() error {
	hash, err := domain.ParseHash(r.Commitment)
	if err != nil {
		return err
	}
	r.hash = hash
	return nil
}

// RegisterRequest reveals a commitment. Fee is a decimal string in fee-token
// base units and must cover the quoted price.
type RegisterRequest struct {
	CommitmentParamsRequest
	Fee string `json:"fee"`

	fee *big.Int
}

func (r *RegisterRequest) Validate() error {
	if err := r.CommitmentParamsRequest.Validate(); err != nil {
		return err
	}
	fee, err := parseFee(r.Fee)
	if err != nil {
		return err
	}
	r.fee = fee
	return nil
}

type RenewRequest struct {
	Label    string `json:"label"`
	Duration uint64 `json:"duration"`
	Fee      string `json:"fee"`

	fee *big.Int
}

func (r *RenewRequest) Validate() error {
	r.Label = strings.TrimSpace(r.Label)
	if r.Label == "" {
		return dErrors.New(dErrors.CodeValidation, "label is required")
	}
	if r.Duration == 0 {
		return dErrors.New(dErrors.CodeValidation, "duration is required")
	}
	fee, err := parseFee(r.Fee)
	if err != nil {
		return err
	}
	r.fee = fee
	return nil
}

func parseFee(s string) (*big.Int, error) {
	if s == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "fee is required")
	}
	fee, ok := new(big.Int).SetString(s, 10)
	if !ok || fee.Sign() < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "fee must be a non-negative decimal integer")
	}
	return fee, nil
}
