package handler

import (
	"github.com/ethereum/go-ethereum/common"

	"bicns/internal/resolver/models"
)

type RecordsResponse struct {
	Node    common.Hash     `json:"node"`
	Records *models.Records `json:"records"`
}
