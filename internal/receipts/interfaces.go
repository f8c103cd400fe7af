package receipts

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Repository persists reservation receipts. Receipts are written by the
// booking approval flow; the API surface only reads them.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, receipt *models.ReservationReceipt) error
	FindByID(ctx context.Context, id int64) (*models.ReservationReceipt, error)
	FindByBooking(ctx context.Context, bookingID int64) (*models.ReservationReceipt, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]models.ReservationReceipt, error)
}

// Service reads receipts with per-role scoping: clients only ever see
// receipts issued for their own bookings.
type Service interface {
	Get(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*ReceiptDTO, error)
	List(ctx context.Context, actorID int64, role enums.UserRole, filter ListFilter) ([]ReceiptDTO, error)
}
