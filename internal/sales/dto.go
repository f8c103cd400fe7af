package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// SaleDTO is the API shape of a recorded sale.
type SaleDTO struct {
	ID              int64           `json:"id"`
	BookingID       *int64          `json:"booking_id,omitempty"`
	ItemType        string          `json:"item_type"`
	ItemDescription *string         `json:"item_description,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentDate     types.Date      `json:"payment_date"`
	RecordedBy      *int64          `json:"recorded_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateSaleRequest records a payment, optionally settling a booking.
type CreateSaleRequest struct {
	BookingID       *int64          `json:"booking_id"`
	ItemType        string          `json:"item_type" validate:"required,max=50"`
	ItemDescription *string         `json:"item_description" validate:"omitempty,max=255"`
	TotalAmount     decimal.Decimal `json:"total_amount" validate:"required"`
	PaymentDate     types.Date      `json:"payment_date" validate:"required"`
}

// UpdateSaleRequest carries partial sale edits. The settled booking is
// fixed at creation time and cannot be re-pointed.
type UpdateSaleRequest struct {
	ItemType        *string          `json:"item_type" validate:"omitempty,max=50"`
	ItemDescription *string          `json:"item_description" validate:"omitempty,max=255"`
	TotalAmount     *decimal.Decimal `json:"total_amount"`
	PaymentDate     *types.Date      `json:"payment_date"`
}

// ListFilter narrows sale listings by booking and payment date window.
type ListFilter struct {
	BookingID  *int64
	DateFrom   *types.Date
	DateTo     *types.Date
	Pagination pagination.Params
}

// FromModel converts a stored sale into its DTO.
func FromModel(s *models.Sale) *SaleDTO {
	return &SaleDTO{
		ID:              s.ID,
		BookingID:       s.BookingID,
		ItemType:        s.ItemType,
		ItemDescription: s.ItemDescription,
		TotalAmount:     s.TotalAmount,
		PaymentDate:     types.DateOf(s.PaymentDate),
		RecordedBy:      s.RecordedBy,
		CreatedAt:       s.CreatedAt,
	}
}

// FromModels converts a sale slice into DTOs.
func FromModels(rows []models.Sale) []SaleDTO {
	out := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
