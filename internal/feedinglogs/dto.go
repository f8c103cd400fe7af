package feedinglogs

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// FeedingLogDTO is the API representation of a feeding log entry.
type FeedingLogDTO struct {
	ID          int64           `json:"id"`
	LitterID    int64           `json:"litter_id"`
	FeedType    string          `json:"feed_type"`
	QuantityKg  decimal.Decimal `json:"quantity_kg"`
	FeedingTime time.Time       `json:"feeding_time"`
	CaretakerID *int64          `json:"caretaker_id,omitempty"`
}

// CreateFeedingLogRequest is the payload for recording a feeding.
type CreateFeedingLogRequest struct {
	LitterID    int64           `json:"litter_id" validate:"required"`
	FeedType    string          `json:"feed_type" validate:"required,max=50"`
	QuantityKg  decimal.Decimal `json:"quantity_kg" validate:"required"`
	FeedingTime time.Time       `json:"feeding_time" validate:"required"`
}

// UpdateFeedingLogRequest carries partial feeding log edits.
type UpdateFeedingLogRequest struct {
	LitterID    *int64           `json:"litter_id"`
	FeedType    *string          `json:"feed_type" validate:"omitempty,max=50"`
	QuantityKg  *decimal.Decimal `json:"quantity_kg"`
	FeedingTime *time.Time       `json:"feeding_time"`
}

// ListFilter narrows the feeding log listing.
type ListFilter struct {
	LitterID   *int64
	Pagination pagination.Params
}

// FromModel converts a stored feeding log into its DTO.
func FromModel(f *models.FeedingLog) *FeedingLogDTO {
	return &FeedingLogDTO{
		ID:          f.ID,
		LitterID:    f.LitterID,
		FeedType:    f.FeedType,
		QuantityKg:  f.QuantityKg,
		FeedingTime: f.FeedingTime,
		CaretakerID: f.CaretakerID,
	}
}

// FromModels converts a feeding log slice into DTOs.
func FromModels(rows []models.FeedingLog) []FeedingLogDTO {
	out := make([]FeedingLogDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
