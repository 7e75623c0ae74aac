package handler

import "github.com/ethereum/go-ethereum/common"

type ReverseResponse struct {
	Node common.Hash    `json:"node"`
	Addr common.Address `json:"addr"`
	Name string         `json:"name"`
}
