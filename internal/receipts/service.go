package receipts

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
)

type bookingLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Booking, error)
}

type service struct {
	repo     Repository
	bookings bookingLoader
}

// NewService wires the receipt read service.
func NewService(repo Repository, bookings bookingLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("receipt repository required")
	}
	if bookings == nil {
		return nil, fmt.Errorf("booking loader required")
	}
	return &service{repo: repo, bookings: bookings}, nil
}

func (s *service) Get(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*ReceiptDTO, error) {
	receipt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Receipt not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load receipt")
	}

	// Clients can only pull receipts issued against their own bookings;
	// anyone else's receipt stays invisible to them.
	if role == enums.UserRoleClient {
		booking, err := s.bookings.FindByID(ctx, receipt.BookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Receipt not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
		}
		if booking.ClientID != actorID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Receipt not found")
		}
	}

	return FromModel(receipt), nil
}

func (s *service) List(ctx context.Context, actorID int64, role enums.UserRole, filter ListFilter) ([]ReceiptDTO, error) {
	if role == enums.UserRoleClient {
		filter.ClientID = &actorID
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list receipts")
	}
	return FromModels(rows), nil
}
