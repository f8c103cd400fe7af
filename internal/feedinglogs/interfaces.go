package feedinglogs

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Repository defines persistence for feeding logs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, log *models.FeedingLog) error
	FindByID(ctx context.Context, id int64) (*models.FeedingLog, error)
	List(ctx context.Context, filter ListFilter) ([]models.FeedingLog, error)
	Save(ctx context.Context, log *models.FeedingLog) error
	Delete(ctx context.Context, id int64) error
}
