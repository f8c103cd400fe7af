package litters

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a litter repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, litter *models.Litter) error {
	return r.db.WithContext(ctx).Create(litter).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Litter, error) {
	var litter models.Litter
	if err := r.db.WithContext(ctx).Where("litter_id = ?", id).First(&litter).Error; err != nil {
		return nil, err
	}
	return &litter, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Litter{}).
		Where("litter_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Litter, error) {
	page := pagination.Normalize(filter.Pagination)

	var rows []models.Litter
	err := r.db.WithContext(ctx).
		Order("litter_id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Save(ctx context.Context, litter *models.Litter) error {
	return r.db.WithContext(ctx).Save(litter).Error
}

// Delete removes the litter row. Pigs and feeding logs under it go with it
// through the FK cascade.
func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("litter_id = ?", id).Delete(&models.Litter{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
