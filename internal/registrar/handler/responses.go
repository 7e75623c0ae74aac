package handler

import (
	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/registrar/models"
)

type LabelResponse struct {
	LabelHash  common.Hash     `json:"label_hash"`
	Registered bool            `json:"registered"`
	Owner      *common.Address `json:"owner,omitempty"`
	Approved   *common.Address `json:"approved,omitempty"`
	Expiry     uint64          `json:"expiry"`
	Available  bool            `json:"available"`
	InGrace    bool            `json:"in_grace"`
}

// toLabelResponse hides the owner of expired leases, matching ownerOf.
func toLabelResponse(hash common.Hash, label *models.Label, available bool, now uint64) LabelResponse {
	resp := LabelResponse{LabelHash: hash, Available: available}
	if label == nil {
		return resp
	}
	resp.Registered = true
	resp.Expiry = label.Expiry
	if label.Active(now) {
		owner, approved := label.Owner, label.Approved
		resp.Owner = &owner
		if approved != (common.Address{}) {
			resp.Approved = &approved
		}
	} else {
		resp.InGrace = !available
	}
	return resp
}

type ControllersResponse struct {
	Controllers []common.Address `json:"controllers"`
}

type ApprovalResponse struct {
	Owner    common.Address `json:"owner"`
	Operator common.Address `json:"operator"`
	Approved bool           `json:"approved"`
}
