package inquiries

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// InquiryDTO is the API shape of a client inquiry.
type InquiryDTO struct {
	ID          int64               `json:"inquiry_id"`
	ClientID    int64               `json:"client_id"`
	Subject     string              `json:"subject"`
	Message     string              `json:"message"`
	Status      enums.InquiryStatus `json:"status"`
	SubmittedAt time.Time           `json:"submitted_at"`
	RespondedBy *int64              `json:"responded_by,omitempty"`
	RespondedAt *time.Time          `json:"responded_at,omitempty"`
	Response    *string             `json:"response,omitempty"`
}

// CreateInquiryRequest is the client's question payload.
type CreateInquiryRequest struct {
	Subject string `json:"subject" validate:"required,min=1,max=200"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// RespondRequest answers an inquiry.
type RespondRequest struct {
	Response string `json:"response" validate:"required,min=1,max=1000"`
}

// ListFilter narrows inquiry listings.
type ListFilter struct {
	ClientID   *int64
	Status     *enums.InquiryStatus
	Pagination pagination.Params
}

// FromModel converts a stored inquiry into its DTO.
func FromModel(i *models.Inquiry) *InquiryDTO {
	return &InquiryDTO{
		ID:          i.ID,
		ClientID:    i.ClientID,
		Subject:     i.Subject,
		Message:     i.Message,
		Status:      i.Status,
		SubmittedAt: i.SubmittedAt,
		RespondedBy: i.RespondedBy,
		RespondedAt: i.RespondedAt,
		Response:    i.Response,
	}
}

// FromModels converts an inquiry slice into DTOs.
func FromModels(rows []models.Inquiry) []InquiryDTO {
	out := make([]InquiryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
