package sales

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Repository persists sales.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sale *models.Sale) error
	FindByID(ctx context.Context, id int64) (*models.Sale, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]models.Sale, error)
	Save(ctx context.Context, sale *models.Sale) error
	Delete(ctx context.Context, id int64) error
}

// Service records and manages sales. Recording a sale against a booking
// closes out the booked pigs' active listings.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreateSaleRequest) (*SaleDTO, error)
	Get(ctx context.Context, id int64) (*SaleDTO, error)
	List(ctx context.Context, filter ListFilter) ([]SaleDTO, error)
	Update(ctx context.Context, actorID int64, id int64, req UpdateSaleRequest) (*SaleDTO, error)
	Delete(ctx context.Context, actorID int64, id int64) error
}
