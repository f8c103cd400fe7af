package sows

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Repository defines persistence for sows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sow *models.Sow) error
	FindByID(ctx context.Context, id int64) (*models.Sow, error)
	IdentifierTaken(ctx context.Context, identifier string, excludeID int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]models.Sow, error)
	Save(ctx context.Context, sow *models.Sow) error
	Delete(ctx context.Context, id int64) error
}
