package healthrecords

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed health record repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *models.PigHealthRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.PigHealthRecord, error) {
	var record models.PigHealthRecord
	if err := r.db.WithContext(ctx).First(&record, "health_record_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.PigHealthRecord, error) {
	q := r.db.WithContext(ctx).Model(&models.PigHealthRecord{})
	if filter.PigID != nil {
		q = q.Where("pigs_id = ?", *filter.PigID)
	}
	if filter.Mortality != nil {
		q = q.Where("mortality = ?", *filter.Mortality)
	}

	page := pagination.Normalize(filter.Pagination)
	var rows []models.PigHealthRecord
	err := q.Order("recorded_at DESC, health_record_id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Save(ctx context.Context, record *models.PigHealthRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.PigHealthRecord{}, "health_record_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
