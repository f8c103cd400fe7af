package feedback

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// FeedbackDTO is the API shape of a client comment.
type FeedbackDTO struct {
	ID          int64     `json:"id"`
	ClientID    *int64    `json:"client_id,omitempty"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateFeedbackRequest is the client's feedback payload.
type CreateFeedbackRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}

// ListFilter narrows feedback listings.
type ListFilter struct {
	ClientID   *int64
	Pagination pagination.Params
}

// FromModel converts stored feedback into its DTO.
func FromModel(f *models.Feedback) *FeedbackDTO {
	return &FeedbackDTO{
		ID:          f.ID,
		ClientID:    f.ClientID,
		Comment:     f.Comment,
		SubmittedAt: f.SubmittedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// FromModels converts a feedback slice into DTOs.
func FromModels(rows []models.Feedback) []FeedbackDTO {
	out := make([]FeedbackDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
