package reports

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Snapshot history is capped; anything older can be regenerated on demand.
const listLimit = 200

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed report snapshot repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Report, error) {
	q := r.db.WithContext(ctx).Model(&models.Report{})
	if filter.ReportType != nil {
		q = q.Where("report_type = ?", *filter.ReportType)
	}

	var rows []models.Report
	err := q.Order("generated_at DESC, id DESC").
		Limit(listLimit).
		Find(&rows).Error
	return rows, err
}
