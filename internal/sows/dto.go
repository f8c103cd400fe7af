package sows

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// SowDTO is the API representation of a sow. IsOverdue flags a pregnant sow
// whose expected birth date has passed.
type SowDTO struct {
	SowID         int64           `json:"sow_id"`
	SowIdentifier string          `json:"sow_identifier"`
	Status        enums.SowStatus `json:"status"`
	MatingDate    *types.Date     `json:"mating_date,omitempty"`
	ExpectedBirth *types.Date     `json:"expected_birth,omitempty"`
	LastBirthDate *types.Date     `json:"last_birth_date,omitempty"`
	CaretakerID   *int64          `json:"caretaker_id,omitempty"`
	IsOverdue     bool            `json:"is_overdue"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateSowRequest is the payload for registering a sow. ExpectedBirth
// overrides the computed due date when present.
type CreateSowRequest struct {
	SowIdentifier string          `json:"sow_identifier" validate:"required,max=50"`
	Status        enums.SowStatus `json:"status" validate:"required"`
	MatingDate    *types.Date     `json:"mating_date"`
	ExpectedBirth *types.Date     `json:"expected_birth"`
}

// UpdateSowRequest carries partial sow edits.
type UpdateSowRequest struct {
	SowIdentifier *string          `json:"sow_identifier" validate:"omitempty,min=1,max=50"`
	Status        *enums.SowStatus `json:"status"`
	MatingDate    *types.Date      `json:"mating_date"`
	ExpectedBirth *types.Date      `json:"expected_birth"`
	CaretakerID   *int64           `json:"caretaker_id"`
}

// ListFilter narrows the sow listing. DueWithinDays keeps pregnant sows whose
// expected birth falls inside the window starting today.
type ListFilter struct {
	Q             *string
	Status        *enums.SowStatus
	DueWithinDays *int
	Pagination    pagination.Params
}

// FromModel converts a stored sow into its DTO, computing overdue state
// against the given day.
func FromModel(s *models.Sow, today time.Time) *SowDTO {
	return &SowDTO{
		SowID:         s.ID,
		SowIdentifier: s.SowIdentifier,
		Status:        s.Status,
		MatingDate:    datePtr(s.MatingDate),
		ExpectedBirth: datePtr(s.ExpectedBirth),
		LastBirthDate: datePtr(s.LastBirthDate),
		CaretakerID:   s.CaretakerID,
		IsOverdue:     isOverdue(s, today),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromModels converts a sow slice into DTOs.
func FromModels(rows []models.Sow, today time.Time) []SowDTO {
	out := make([]SowDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i], today))
	}
	return out
}

func isOverdue(s *models.Sow, today time.Time) bool {
	if s.Status != enums.SowStatusPregnant || s.ExpectedBirth == nil {
		return false
	}
	return types.DateOf(*s.ExpectedBirth).Before(types.DateOf(today).Time)
}

func datePtr(t *time.Time) *types.Date {
	if t == nil {
		return nil
	}
	d := types.DateOf(*t)
	return &d
}
