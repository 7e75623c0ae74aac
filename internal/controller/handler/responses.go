package handler

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/controller/models"
	"bicns/pkg/domain"
)

type LabelResponse struct {
	Label     string `json:"label"`
	Valid     bool   `json:"valid"`
	Available bool   `json:"available"`
}

// Amounts are decimal strings in fee-token base units.
type PriceResponse struct {
	Label    string `json:"label"`
	Duration uint64 `json:"duration"`
	Base     string `json:"base"`
	Premium  string `json:"premium"`
	Total    string `json:"total"`
}

type CommitmentResponse struct {
	Commitment   common.Hash `json:"commitment"`
	Timestamp    uint64      `json:"timestamp,omitempty"`
	RevealableAt uint64      `json:"revealable_at,omitempty"`
	ExpiresAt    uint64      `json:"expires_at,omitempty"`
}

type RegistrationResponse struct {
	Node     common.Hash `json:"node"`
	Name     string      `json:"name"`
	Expiry   uint64      `json:"expiry"`
	BaseCost string      `json:"base_cost"`
	Premium  string      `json:"premium"`
}

type RenewalResponse struct {
	Label  string `json:"label"`
	Expiry uint64 `json:"expiry"`
}

func toPriceResponse(label string, duration uint64, p models.Price) PriceResponse {
	return PriceResponse{
		Label:    label,
		Duration: duration,
		Base:     amount(p.Base),
		Premium:  amount(p.Premium),
		Total:    p.Total().String(),
	}
}

func toRegistrationResponse(label string, r models.Registration) RegistrationResponse {
	return RegistrationResponse{
		Node:     r.Node,
		Name:     label + "." + domain.TLD,
		Expiry:   r.Expiry,
		BaseCost: amount(r.Price.Base),
		Premium:  amount(r.Price.Premium),
	}
}

func amount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
