package litters

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Repository defines persistence for litters.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, litter *models.Litter) error
	FindByID(ctx context.Context, id int64) (*models.Litter, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]models.Litter, error)
	Save(ctx context.Context, litter *models.Litter) error
	Delete(ctx context.Context, id int64) error
}
