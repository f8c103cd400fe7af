package bookings

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Repository persists bookings and their pig junction rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id int64) (*models.Booking, error)
	List(ctx context.Context, filter ListFilter) ([]models.Booking, error)
	Save(ctx context.Context, booking *models.Booking) error
	AddPigs(ctx context.Context, bookingID int64, pigIDs []int64) error
	ReplacePigs(ctx context.Context, bookingID int64, pigIDs []int64) error
	PigIDs(ctx context.Context, bookingID int64) ([]int64, error)
	PigIDsForBookings(ctx context.Context, bookingIDs []int64) (map[int64][]int64, error)
}

// Service manages the booking lifecycle. Reads are role-scoped: clients
// only ever see their own bookings.
type Service interface {
	Create(ctx context.Context, clientID int64, req CreateBookingRequest) (*BookingDTO, error)
	Get(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*BookingDTO, error)
	List(ctx context.Context, actorID int64, role enums.UserRole, filter ListFilter) ([]BookingDTO, error)
	Update(ctx context.Context, actorID int64, role enums.UserRole, id int64, req UpdateBookingRequest) (*BookingDTO, error)
	Decide(ctx context.Context, actorID int64, id int64, req DecisionRequest) (*BookingDTO, error)
}
