package pigs

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// PigDTO is the API representation of a pig.
type PigDTO struct {
	ID            int64       `json:"id"`
	LitterID      *int64      `json:"litter_id,omitempty"`
	SowIdentifier *string     `json:"sow_identifier,omitempty"`
	BirthDate     *types.Date `json:"birth_date,omitempty"`
	Status        string      `json:"status"`
	Notes         *string     `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CreatePigRequest is the payload for registering a pig.
type CreatePigRequest struct {
	LitterID      *int64      `json:"litter_id"`
	SowIdentifier *string     `json:"sow_identifier" validate:"omitempty,max=50"`
	BirthDate     *types.Date `json:"birth_date"`
	Status        *string     `json:"status" validate:"omitempty,max=20"`
	Notes         *string     `json:"notes"`
}

// UpdatePigRequest carries the editable pig fields.
type UpdatePigRequest struct {
	Status *string `json:"status" validate:"omitempty,max=20"`
	Notes  *string `json:"notes"`
}

// ListFilter narrows the pig listing.
type ListFilter struct {
	LitterID   *int64
	Status     *string
	Pagination pagination.Params
}

// FromModel converts a stored pig into its DTO.
func FromModel(p *models.Pig) *PigDTO {
	dto := &PigDTO{
		ID:            p.ID,
		LitterID:      p.LitterID,
		SowIdentifier: p.SowIdentifier,
		Status:        p.Status,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.BirthDate != nil {
		born := types.DateOf(*p.BirthDate)
		dto.BirthDate = &born
	}
	return dto
}

// FromModels converts a pig slice into DTOs.
func FromModels(rows []models.Pig) []PigDTO {
	out := make([]PigDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
