package pigs

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pig repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, pig *models.Pig) error {
	return r.db.WithContext(ctx).Create(pig).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Pig, error) {
	var pig models.Pig
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pig).Error; err != nil {
		return nil, err
	}
	return &pig, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Pig{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Pig, error) {
	page := pagination.Normalize(filter.Pagination)

	query := r.db.WithContext(ctx).Model(&models.Pig{})
	if filter.LitterID != nil {
		query = query.Where("litter_id = ?", *filter.LitterID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var rows []models.Pig
	err := query.
		Order("id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Save(ctx context.Context, pig *models.Pig) error {
	return r.db.WithContext(ctx).Save(pig).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Pig{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
