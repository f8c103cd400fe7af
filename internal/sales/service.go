package sales

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/listings"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

type bookingLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Booking, error)
	PigIDs(ctx context.Context, bookingID int64) ([]int64, error)
}

type service struct {
	repo     Repository
	bookings bookingLoader
	listings listings.Repository
	tx       txRunner
	audit    auditRecorder
}

// NewService wires the sale service.
func NewService(repo Repository, bookings bookingLoader, listingRepo listings.Repository, tx txRunner, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	if bookings == nil {
		return nil, fmt.Errorf("booking loader required")
	}
	if listingRepo == nil {
		return nil, fmt.Errorf("listing repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, bookings: bookings, listings: listingRepo, tx: tx, audit: recorder}, nil
}

// Create records a sale. When the sale settles a booking, the booking must
// be approved and unsold, and the booked pigs' active listings flip to sold
// in the same transaction.
func (s *service) Create(ctx context.Context, actorID int64, req CreateSaleRequest) (*SaleDTO, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_amount must be positive")
	}

	var pigIDs []int64
	if req.BookingID != nil {
		booking, err := s.bookings.FindByID(ctx, *req.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Booking not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
		}
		if booking.Status != enums.BookingStatusApproved {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "Booking is not approved").
				WithDetails(map[string]any{"reason": "booking_not_approved"})
		}
		if pigIDs, err = s.bookings.PigIDs(ctx, booking.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking pigs")
		}
	}

	sale := &models.Sale{
		BookingID:       req.BookingID,
		ItemType:        req.ItemType,
		ItemDescription: req.ItemDescription,
		TotalAmount:     req.TotalAmount,
		PaymentDate:     req.PaymentDate.Time,
		RecordedBy:      &actorID,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if req.BookingID != nil {
			sold, err := repo.ExistsForBooking(ctx, *req.BookingID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check booking sale")
			}
			if sold {
				return pkgerrors.New(pkgerrors.CodeConflict, "Booking already has a sale")
			}
		}
		if err := repo.Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
		}
		if len(pigIDs) > 0 {
			if err := s.listings.WithTx(tx).MarkSold(ctx, pigIDs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close listings")
			}
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySale,
			EntityID:   sale.ID,
			Action:     enums.AuditActionCreate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(sale), nil
}

func (s *service) Get(ctx context.Context, id int64) (*SaleDTO, error) {
	sale, err := s.loadSale(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(sale), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]SaleDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actorID int64, id int64, req UpdateSaleRequest) (*SaleDTO, error) {
	sale, err := s.loadSale(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemType != nil {
		sale.ItemType = *req.ItemType
	}
	if req.ItemDescription != nil {
		sale.ItemDescription = req.ItemDescription
	}
	if req.TotalAmount != nil {
		if !req.TotalAmount.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total_amount must be positive")
		}
		sale.TotalAmount = *req.TotalAmount
	}
	if req.PaymentDate != nil {
		sale.PaymentDate = req.PaymentDate.Time
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sale")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySale,
			EntityID:   sale.ID,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(sale), nil
}

func (s *service) Delete(ctx context.Context, actorID int64, id int64) error {
	if _, err := s.loadSale(ctx, id); err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Sale not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sale")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySale,
			EntityID:   id,
			Action:     enums.AuditActionDelete,
			ActorID:    &actorID,
		})
	})
}

func (s *service) loadSale(ctx context.Context, id int64) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return sale, nil
}
