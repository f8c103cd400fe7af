package supplies

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Repository defines persistence for supplies. AdjustQuantity applies a
// signed stock delta as a single conditional update and reports whether the
// row accepted it; FindForUpdate locks the row for the transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, supply *models.Supply) error
	FindByID(ctx context.Context, id int64) (*models.Supply, error)
	FindForUpdate(ctx context.Context, id int64) (*models.Supply, error)
	List(ctx context.Context, filter ListFilter) ([]models.Supply, error)
	Save(ctx context.Context, supply *models.Supply) error
	Delete(ctx context.Context, id int64) error
	AdjustQuantity(ctx context.Context, id int64, delta decimal.Decimal, actorID int64) (bool, error)
}
