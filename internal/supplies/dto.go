package supplies

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// SupplyDTO is the API representation of a stocked supply.
type SupplyDTO struct {
	ID        int64           `json:"id"`
	ItemName  string          `json:"item_name"`
	Category  *string         `json:"category,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UpdatedBy *int64          `json:"updated_by,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateSupplyRequest is the payload for stocking a new supply item.
type CreateSupplyRequest struct {
	ItemName string          `json:"item_name" validate:"required,max=100"`
	Category *string         `json:"category" validate:"omitempty,max=50"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit" validate:"required,max=20"`
}

// UpdateSupplyRequest carries partial supply edits.
type UpdateSupplyRequest struct {
	ItemName *string          `json:"item_name" validate:"omitempty,max=100"`
	Category *string          `json:"category" validate:"omitempty,max=50"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     *string          `json:"unit" validate:"omitempty,max=20"`
}

// AdjustQuantityRequest moves stock by a signed delta.
type AdjustQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// ListFilter narrows the supply listing.
type ListFilter struct {
	Q          *string
	Category   *string
	Pagination pagination.Params
}

// FromModel converts a stored supply into its DTO.
func FromModel(s *models.Supply) *SupplyDTO {
	return &SupplyDTO{
		ID:        s.ID,
		ItemName:  s.ItemName,
		Category:  s.Category,
		Quantity:  s.Quantity,
		Unit:      s.Unit,
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromModels converts a supply slice into DTOs.
func FromModels(rows []models.Supply) []SupplyDTO {
	out := make([]SupplyDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
