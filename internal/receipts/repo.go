package receipts

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed receipt repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, receipt *models.ReservationReceipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.ReservationReceipt, error) {
	var receipt models.ReservationReceipt
	if err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *repository) FindByBooking(ctx context.Context, bookingID int64) (*models.ReservationReceipt, error) {
	var receipt models.ReservationReceipt
	if err := r.db.WithContext(ctx).First(&receipt, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *repository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReservationReceipt{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.ReservationReceipt, error) {
	q := r.db.WithContext(ctx).Model(&models.ReservationReceipt{})
	if filter.BookingID != nil {
		q = q.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.ClientID != nil {
		q = q.Where("booking_id IN (?)",
			r.db.Model(&models.Booking{}).Select("id").Where("client_id = ?", *filter.ClientID))
	}

	page := pagination.Normalize(filter.Pagination)
	var rows []models.ReservationReceipt
	err := q.Order("id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&rows).Error
	return rows, err
}
