package expenses

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Repository defines persistence for expenses.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, expense *models.Expense) error
	FindByID(ctx context.Context, id int64) (*models.Expense, error)
	List(ctx context.Context, filter ListFilter) ([]models.Expense, error)
	Save(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id int64) error
}
