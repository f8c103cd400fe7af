package bookings

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// BookingDTO is the API shape of a booking, with the reserved pig ids
// aggregated from the junction table.
type BookingDTO struct {
	ID          int64               `json:"id"`
	ClientID    int64               `json:"client_id"`
	Type        enums.BookingType   `json:"type"`
	ItemDetails *string             `json:"item_details,omitempty"`
	Status      enums.BookingStatus `json:"status"`
	BookingDate types.Date          `json:"booking_date"`
	PigIDs      []int64             `json:"pigs_ids"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// CreateBookingRequest is the client's booking payload.
type CreateBookingRequest struct {
	Type        enums.BookingType `json:"type" validate:"required"`
	ItemDetails *string           `json:"item_details"`
	BookingDate types.Date        `json:"booking_date" validate:"required"`
	PigIDs      []int64           `json:"pigs_ids" validate:"required,min=1"`
}

// UpdateBookingRequest carries partial booking edits. Status and Decision
// are decoded so the service can reject attempts to decide a booking
// through the plain update endpoint.
type UpdateBookingRequest struct {
	Type        *enums.BookingType `json:"type"`
	ItemDetails *string            `json:"item_details"`
	BookingDate *types.Date        `json:"booking_date"`
	PigIDs      []int64            `json:"pigs_ids"`
	Status      *string            `json:"status"`
	Decision    *string            `json:"decision"`
}

// DecisionRequest settles a pending booking.
type DecisionRequest struct {
	Decision enums.BookingStatus `json:"decision" validate:"required,oneof=approved declined"`
}

// ListFilter narrows booking listings.
type ListFilter struct {
	ClientID   *int64
	Status     *enums.BookingStatus
	Pagination pagination.Params
}

// FromModel converts a stored booking plus its pig ids into a DTO.
func FromModel(b *models.Booking, pigIDs []int64) *BookingDTO {
	if pigIDs == nil {
		pigIDs = []int64{}
	}
	return &BookingDTO{
		ID:          b.ID,
		ClientID:    b.ClientID,
		Type:        b.Type,
		ItemDetails: b.ItemDetails,
		Status:      b.Status,
		BookingDate: types.DateOf(b.BookingDate),
		PigIDs:      pigIDs,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
