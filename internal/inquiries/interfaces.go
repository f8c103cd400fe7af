package inquiries

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Repository persists inquiries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, inquiry *models.Inquiry) error
	FindByID(ctx context.Context, id int64) (*models.Inquiry, error)
	List(ctx context.Context, filter ListFilter) ([]models.Inquiry, error)
	Save(ctx context.Context, inquiry *models.Inquiry) error
}

// Service manages inquiries. Clients see their own; staff reading an unread
// inquiry marks it read; an inquiry takes exactly one response.
type Service interface {
	Create(ctx context.Context, clientID int64, req CreateInquiryRequest) (*InquiryDTO, error)
	Get(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*InquiryDTO, error)
	List(ctx context.Context, actorID int64, role enums.UserRole, filter ListFilter) ([]InquiryDTO, error)
	Respond(ctx context.Context, responderID int64, id int64, req RespondRequest) (*InquiryDTO, error)
}
