package handler

import (
	"bicns/internal/resolver/models"
	dErrors "bicns/pkg/domain-errors"
)

const maxBatchSize = 64

type SetRecordsRequest struct {
	Records []models.RecordWrite `json:"records"`
}

func (r *SetRecordsRequest) Validate() error {
	if len(r.Records) == 0 {
		return dErrors.New(dErrors.CodeValidation, "records are required")
	}
	if len(r.Records) > maxBatchSize {
		return dErrors.Newf(dErrors.CodeValidation, "at most %d records per batch", maxBatchSize)
	}
	return models.ValidateBatch(r.Records)
}
