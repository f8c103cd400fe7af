package sows

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sow repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, sow *models.Sow) error {
	return r.db.WithContext(ctx).Create(sow).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Sow, error) {
	var sow models.Sow
	if err := r.db.WithContext(ctx).Where("sow_id = ?", id).First(&sow).Error; err != nil {
		return nil, err
	}
	return &sow, nil
}

func (r *repository) IdentifierTaken(ctx context.Context, identifier string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Sow{}).
		Where("sow_identifier = ?", identifier)
	if excludeID > 0 {
		query = query.Where("sow_id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Sow, error) {
	page := pagination.Normalize(filter.Pagination)

	query := r.db.WithContext(ctx).Model(&models.Sow{})
	if filter.Q != nil && *filter.Q != "" {
		pattern := "%" + strings.ToLower(*filter.Q) + "%"
		query = query.Where("LOWER(sow_identifier) LIKE ?", pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DueWithinDays != nil && *filter.DueWithinDays >= 0 {
		today := time.Now().Truncate(24 * time.Hour)
		windowEnd := today.AddDate(0, 0, *filter.DueWithinDays)
		query = query.Where("status = ?", enums.SowStatusPregnant).
			Where("expected_birth IS NOT NULL").
			Where("expected_birth >= ?", today).
			Where("expected_birth <= ?", windowEnd)
	}

	var rows []models.Sow
	err := query.
		Order("sow_id ASC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Save(ctx context.Context, sow *models.Sow) error {
	return r.db.WithContext(ctx).Save(sow).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("sow_id = ?", id).Delete(&models.Sow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
