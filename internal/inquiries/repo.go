package inquiries

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed inquiry repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).First(&inquiry, "inquiry_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Inquiry, error) {
	q := r.db.WithContext(ctx).Model(&models.Inquiry{})
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	page := pagination.Normalize(filter.Pagination)
	var rows []models.Inquiry
	err := q.Order("submitted_at DESC, inquiry_id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Save(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Save(inquiry).Error
}
