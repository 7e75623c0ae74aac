package handler

import (
	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/registry/models"
)

type RecordResponse struct {
	Node     common.Hash    `json:"node"`
	Owner    common.Address `json:"owner"`
	Resolver common.Address `json:"resolver"`
	TTL      uint64         `json:"ttl"`
	Exists   bool           `json:"exists"`
}

func toRecordResponse(node common.Hash, rec models.Record) RecordResponse {
	return RecordResponse{
		Node:     node,
		Owner:    rec.Owner,
		Resolver: rec.Resolver,
		TTL:      rec.TTL,
		Exists:   rec.Exists(),
	}
}

type SubnodeResponse struct {
	Node common.Hash `json:"node"`
}

type ApprovalResponse struct {
	Owner    common.Address `json:"owner"`
	Operator common.Address `json:"operator"`
	Approved bool           `json:"approved"`
}
