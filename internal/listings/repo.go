package listings

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed listing repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, listing *models.AvailablePig) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.AvailablePig, error) {
	var listing models.AvailablePig
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *repository) FindActiveByPig(ctx context.Context, pigID int64) (*models.AvailablePig, error) {
	var listing models.AvailablePig
	err := r.db.WithContext(ctx).
		Where("pigs_id = ? AND status IN ?", pigID, enums.ActiveListingStatuses()).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *repository) HasActiveListing(ctx context.Context, pigID int64, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.AvailablePig{}).
		Where("pigs_id = ? AND status IN ?", pigID, enums.ActiveListingStatuses())
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.AvailablePig, error) {
	q := r.db.WithContext(ctx).Model(&models.AvailablePig{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.SaleType != nil {
		q = q.Where("sale_type = ?", *filter.SaleType)
	}
	if filter.MinWeight != nil {
		q = q.Where("weight_kg >= ?", *filter.MinWeight)
	}
	if filter.MaxWeight != nil {
		q = q.Where("weight_kg <= ?", *filter.MaxWeight)
	}

	page := pagination.Normalize(filter.Pagination)
	var rows []models.AvailablePig
	err := q.Order("id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListAvailable(ctx context.Context, p pagination.Params) ([]models.AvailablePig, error) {
	page := pagination.Normalize(p)
	var rows []models.AvailablePig
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.ListingStatusAvailable).
		Order("id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Save(ctx context.Context, listing *models.AvailablePig) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.AvailablePig{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Reserve flips a listing to reserved only while it is still available, so
// two overlapping approvals cannot both claim the same pig.
func (r *repository) Reserve(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.AvailablePig{}).
		Where("id = ? AND status = ?", id, enums.ListingStatusAvailable).
		Update("status", enums.ListingStatusReserved)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) MarkSold(ctx context.Context, pigIDs []int64) error {
	if len(pigIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.AvailablePig{}).
		Where("pigs_id IN ? AND status IN ?", pigIDs, enums.ActiveListingStatuses()).
		Update("status", enums.ListingStatusSold).Error
}
