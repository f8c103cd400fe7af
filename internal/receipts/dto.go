package receipts

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// ReceiptDTO is the API shape of a reservation receipt. ReceiptData carries
// the receipt document exactly as it was rendered at approval time.
type ReceiptDTO struct {
	ID          int64          `json:"id"`
	BookingID   int64          `json:"booking_id"`
	ReceiptData types.JSONText `json:"receipt_data"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ListFilter narrows receipt listings. ClientID scopes the result to
// receipts issued for that client's bookings.
type ListFilter struct {
	BookingID  *int64
	ClientID   *int64
	Pagination pagination.Params
}

// FromModel converts a stored receipt into its DTO.
func FromModel(r *models.ReservationReceipt) *ReceiptDTO {
	return &ReceiptDTO{
		ID:          r.ID,
		BookingID:   r.BookingID,
		ReceiptData: types.JSONText(r.ReceiptData),
		GeneratedAt: r.GeneratedAt,
	}
}

// FromModels converts a receipt slice into DTOs.
func FromModels(rows []models.ReservationReceipt) []ReceiptDTO {
	out := make([]ReceiptDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
