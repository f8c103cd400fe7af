package bookings

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed booking repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	page := pagination.Normalize(filter.Pagination)
	var rows []models.Booking
	err := q.Order("id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Save(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *repository) AddPigs(ctx context.Context, bookingID int64, pigIDs []int64) error {
	if len(pigIDs) == 0 {
		return nil
	}
	rows := make([]models.BookingPig, 0, len(pigIDs))
	for _, pigID := range pigIDs {
		rows = append(rows, models.BookingPig{BookingID: bookingID, PigID: pigID})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repository) ReplacePigs(ctx context.Context, bookingID int64, pigIDs []int64) error {
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&models.BookingPig{}).Error; err != nil {
		return err
	}
	return r.AddPigs(ctx, bookingID, pigIDs)
}

func (r *repository) PigIDs(ctx context.Context, bookingID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.BookingPig{}).
		Where("booking_id = ?", bookingID).
		Order("id ASC").
		Pluck("pigs_id", &ids).Error
	return ids, err
}

func (r *repository) PigIDsForBookings(ctx context.Context, bookingIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return out, nil
	}

	var rows []models.BookingPig
	err := r.db.WithContext(ctx).
		Where("booking_id IN ?", bookingIDs).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.BookingID] = append(out[row.BookingID], row.PigID)
	}
	return out, nil
}
