package supplies

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a supply repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, supply *models.Supply) error {
	return r.db.WithContext(ctx).Create(supply).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Supply, error) {
	var supply models.Supply
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&supply).Error; err != nil {
		return nil, err
	}
	return &supply, nil
}

// FindForUpdate locks the supply row until the surrounding transaction ends.
func (r *repository) FindForUpdate(ctx context.Context, id int64) (*models.Supply, error) {
	var supply models.Supply
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&supply).Error
	if err != nil {
		return nil, err
	}
	return &supply, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Supply, error) {
	page := pagination.Normalize(filter.Pagination)

	query := r.db.WithContext(ctx).Model(&models.Supply{})
	if filter.Q != nil && *filter.Q != "" {
		pattern := "%" + strings.ToLower(*filter.Q) + "%"
		query = query.Where("LOWER(item_name) LIKE ?", pattern)
	}
	if filter.Category != nil && *filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(*filter.Category))
	}

	var rows []models.Supply
	err := query.
		Order("item_name ASC, id ASC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Save(ctx context.Context, supply *models.Supply) error {
	return r.db.WithContext(ctx).Save(supply).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Supply{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustQuantity applies the delta only while the result stays non-negative,
// so concurrent draws cannot take the stock below zero.
func (r *repository) AdjustQuantity(ctx context.Context, id int64, delta decimal.Decimal, actorID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Supply{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_by": actorID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
