package handler

import "github.com/ethereum/go-ethereum/common"

type BalanceResponse struct {
	Address   common.Address  `json:"address"`
	Balance   string          `json:"balance"`
	Spender   *common.Address `json:"spender,omitempty"`
	Allowance string          `json:"allowance,omitempty"`
}
