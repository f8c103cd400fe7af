package expenses

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an expense repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Expense, error) {
	page := pagination.Normalize(filter.Pagination)

	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if filter.DateFrom != nil && !filter.DateFrom.IsZero() {
		query = query.Where("date_spent >= ?", filter.DateFrom.Time)
	}
	if filter.DateTo != nil && !filter.DateTo.IsZero() {
		query = query.Where("date_spent <= ?", filter.DateTo.Time)
	}

	var rows []models.Expense
	err := query.
		Order("date_spent DESC, id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Save(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
