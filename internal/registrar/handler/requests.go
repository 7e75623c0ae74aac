package handler

import (
	"github.com/ethereum/go-ethereum/common"

	"bicns/pkg/domain"
)

type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`

	from common.Address
	to   common.Address
}

func (r *TransferRequest) Validate() error {
	from, err := domain.ParseAddress(r.From)
	if err != nil {
		return err
	}
	to, err := domain.ParseAddress(r.To)
	if err != nil {
		return err
	}
	r.from, r.to = from, to
	return nil
}

type ReclaimRequest struct {
	Owner string `json:"owner"`

	owner common.Address
}

func (r *ReclaimRequest) Validate() error {
	owner, err := domain.ParseOptionalAddress(r.Owner)
	if err != nil {
		return err
	}
	r.owner = owner
	return nil
}

// ApproveRequest names the single-token approval. An empty To clears it.
type ApproveRequest struct {
	To string `json:"to"`

	to common.Address
}

func (r *ApproveRequest) Validate() error {
	to, err := domain.ParseOptionalAddress(r.To)
	if err != nil {
		return err
	}
	r.to = to
	return nil
}

type SetApprovalRequest struct {
	Approved bool `json:"approved"`
}

func (r *SetApprovalRequest) Validate() error { return nil }
