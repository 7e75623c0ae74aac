package handler

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"bicns/internal/wrapper/models"
	"bicns/pkg/domain"
)

type DataResponse struct {
	Node      common.Hash    `json:"node"`
	Name      string         `json:"name,omitempty"`
	Encoded   hexutil.Bytes  `json:"encoded_name,omitempty"`
	Owner     common.Address `json:"owner"`
	Fuses     uint32         `json:"fuses"`
	FuseNames []string       `json:"fuse_names"`
	Expiry    uint64         `json:"expiry"`
	Wrapped   bool           `json:"wrapped"`
}

func toDataResponse(node common.Hash, encoded []byte, owner common.Address, fuses models.Fuses, expiry uint64) DataResponse {
	resp := DataResponse{
		Node:      node,
		Encoded:   encoded,
		Owner:     owner,
		Fuses:     uint32(fuses),
		FuseNames: fuses.Names(),
		Expiry:    expiry,
		Wrapped:   owner != (common.Address{}),
	}
	if resp.FuseNames == nil {
		resp.FuseNames = []string{}
	}
	if len(encoded) > 0 {
		if name, err := domain.DecodeName(encoded); err == nil {
			resp.Name = name
		}
	}
	return resp
}

type ApprovalResponse struct {
	Owner    common.Address `json:"owner"`
	Operator common.Address `json:"operator"`
	Approved bool           `json:"approved"`
}
