package feedinglogs

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a feeding log repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, log *models.FeedingLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.FeedingLog, error) {
	var log models.FeedingLog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.FeedingLog, error) {
	page := pagination.Normalize(filter.Pagination)

	query := r.db.WithContext(ctx).Model(&models.FeedingLog{})
	if filter.LitterID != nil {
		query = query.Where("litter_id = ?", *filter.LitterID)
	}

	var rows []models.FeedingLog
	err := query.
		Order("feeding_time DESC, id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Save(ctx context.Context, log *models.FeedingLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FeedingLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
