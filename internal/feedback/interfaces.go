package feedback

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// Repository persists client feedback.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, feedback *models.Feedback) error
	FindByID(ctx context.Context, id int64) (*models.Feedback, error)
	List(ctx context.Context, filter ListFilter) ([]models.Feedback, error)
	Delete(ctx context.Context, id int64) error
}

// Service manages feedback. Clients see only their own comments; reading a
// specific comment is owner-or-staff.
type Service interface {
	Create(ctx context.Context, clientID int64, req CreateFeedbackRequest) (*FeedbackDTO, error)
	Get(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*FeedbackDTO, error)
	List(ctx context.Context, filter ListFilter) ([]FeedbackDTO, error)
	ListMine(ctx context.Context, clientID int64, p pagination.Params) ([]FeedbackDTO, error)
	Delete(ctx context.Context, id int64) error
}
