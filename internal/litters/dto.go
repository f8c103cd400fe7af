package litters

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// LitterDTO is the API representation of a litter.
type LitterDTO struct {
	ID            int64      `json:"litter_id"`
	SowIdentifier *string    `json:"sow_identifier,omitempty"`
	BirthDate     types.Date `json:"birth_date"`
	LitterSize    *int       `json:"litter_size,omitempty"`
	CaretakerID   *int64     `json:"caretaker_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateLitterRequest is the payload for registering a litter.
type CreateLitterRequest struct {
	SowIdentifier *string    `json:"sow_identifier" validate:"omitempty,max=50"`
	BirthDate     types.Date `json:"birth_date" validate:"required"`
	LitterSize    *int       `json:"litter_size" validate:"omitempty,gte=0"`
}

// UpdateLitterRequest carries partial litter edits.
type UpdateLitterRequest struct {
	SowIdentifier *string     `json:"sow_identifier" validate:"omitempty,max=50"`
	BirthDate     *types.Date `json:"birth_date"`
	LitterSize    *int        `json:"litter_size" validate:"omitempty,gte=0"`
}

// ListFilter narrows the litter listing.
type ListFilter struct {
	Pagination pagination.Params
}

// FromModel converts a stored litter into its DTO.
func FromModel(l *models.Litter) *LitterDTO {
	return &LitterDTO{
		ID:            l.ID,
		SowIdentifier: l.SowIdentifier,
		BirthDate:     types.DateOf(l.BirthDate),
		LitterSize:    l.LitterSize,
		CaretakerID:   l.CaretakerID,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// FromModels converts a litter slice into DTOs.
func FromModels(rows []models.Litter) []LitterDTO {
	out := make([]LitterDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
