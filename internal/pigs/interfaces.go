package pigs

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Repository defines persistence for pigs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, pig *models.Pig) error
	FindByID(ctx context.Context, id int64) (*models.Pig, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]models.Pig, error)
	Save(ctx context.Context, pig *models.Pig) error
	Delete(ctx context.Context, id int64) error
}
