package listings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// ListingDTO is the staff view of a sale listing.
type ListingDTO struct {
	ID        int64                 `json:"id"`
	PigID     int64                 `json:"pigs_id"`
	WeightKg  decimal.Decimal       `json:"weight_kg"`
	SaleType  enums.ListingSaleType `json:"sale_type"`
	Status    enums.ListingStatus   `json:"status"`
	ListedBy  *int64                `json:"listed_by,omitempty"`
	Notes     *string               `json:"notes,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// PublicListingDTO is the restricted shape served to anonymous browsers.
type PublicListingDTO struct {
	PigID    int64                 `json:"pigs_id"`
	WeightKg decimal.Decimal       `json:"weight_kg"`
	SaleType enums.ListingSaleType `json:"sale_type"`
}

// CreateListingRequest is the payload for listing a pig for sale.
type CreateListingRequest struct {
	PigID    int64                 `json:"pigs_id" validate:"required"`
	WeightKg decimal.Decimal       `json:"weight_kg" validate:"required"`
	SaleType enums.ListingSaleType `json:"sale_type" validate:"required"`
	Notes    *string               `json:"notes"`
}

// UpdateListingRequest carries partial listing edits.
type UpdateListingRequest struct {
	WeightKg *decimal.Decimal       `json:"weight_kg"`
	SaleType *enums.ListingSaleType `json:"sale_type"`
	Status   *enums.ListingStatus   `json:"status"`
	Notes    *string                `json:"notes"`
}

// ListFilter narrows the staff listing view.
type ListFilter struct {
	Status     *enums.ListingStatus
	SaleType   *enums.ListingSaleType
	MinWeight  *decimal.Decimal
	MaxWeight  *decimal.Decimal
	Pagination pagination.Params
}

// FromModel converts a stored listing into its staff DTO.
func FromModel(l *models.AvailablePig) *ListingDTO {
	return &ListingDTO{
		ID:        l.ID,
		PigID:     l.PigID,
		WeightKg:  l.WeightKg,
		SaleType:  l.SaleType,
		Status:    l.Status,
		ListedBy:  l.ListedBy,
		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// FromModels converts a listing slice into staff DTOs.
func FromModels(rows []models.AvailablePig) []ListingDTO {
	out := make([]ListingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

// PublicFromModels converts listings into the anonymous browse shape.
func PublicFromModels(rows []models.AvailablePig) []PublicListingDTO {
	out := make([]PublicListingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, PublicListingDTO{PigID: row.PigID, WeightKg: row.WeightKg, SaleType: row.SaleType})
	}
	return out
}
