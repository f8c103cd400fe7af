package feedback

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed feedback repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).First(&feedback, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Feedback, error) {
	q := r.db.WithContext(ctx).Model(&models.Feedback{})
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}

	page := pagination.Normalize(filter.Pagination)
	var rows []models.Feedback
	err := q.Order("submitted_at DESC, id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Feedback{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
