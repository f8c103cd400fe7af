package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/listings"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/receipts"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type pigChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo     Repository
	pigs     pigChecker
	listings listings.Repository
	receipts receipts.Repository
	tx       txRunner
}

// NewService wires the booking service. Approval touches listings and
// receipts, so their repositories ride along for the decision transaction.
func NewService(repo Repository, pigs pigChecker, listingRepo listings.Repository, receiptRepo receipts.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if pigs == nil {
		return nil, fmt.Errorf("pig checker required")
	}
	if listingRepo == nil {
		return nil, fmt.Errorf("listing repository required")
	}
	if receiptRepo == nil {
		return nil, fmt.Errorf("receipt repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, pigs: pigs, listings: listingRepo, receipts: receiptRepo, tx: tx}, nil
}

// Create places a client booking and one junction row per requested pig.
// Duplicate pig ids collapse to a single row.
func (s *service) Create(ctx context.Context, clientID int64, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid booking type").
			WithDetails(map[string]any{"field": "type"})
	}
	pigIDs := dedupeIDs(req.PigIDs)
	if len(pigIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pigs_ids must not be empty")
	}
	for _, pigID := range pigIDs {
		if err := s.checkPig(ctx, pigID); err != nil {
			return nil, err
		}
	}

	booking := &models.Booking{
		ClientID:    clientID,
		Type:        req.Type,
		ItemDetails: req.ItemDetails,
		Status:      enums.BookingStatusPending,
		BookingDate: req.BookingDate.Time,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}
		if err := repo.AddPigs(ctx, booking.ID, pigIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach booking pigs")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(booking, pigIDs), nil
}

func (s *service) Get(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*BookingDTO, error) {
	booking, err := s.loadScoped(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}
	pigIDs, err := s.repo.PigIDs(ctx, booking.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking pigs")
	}
	return FromModel(booking, pigIDs), nil
}

func (s *service) List(ctx context.Context, actorID int64, role enums.UserRole, filter ListFilter) ([]BookingDTO, error) {
	if role == enums.UserRoleClient {
		filter.ClientID = &actorID
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	pigsByBooking, err := s.repo.PigIDsForBookings(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking pigs")
	}

	out := make([]BookingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i], pigsByBooking[rows[i].ID]))
	}
	return out, nil
}

// Update edits a pending booking. Decisions are rejected here so approval
// side effects cannot be bypassed.
func (s *service) Update(ctx context.Context, actorID int64, role enums.UserRole, id int64, req UpdateBookingRequest) (*BookingDTO, error) {
	if req.Status != nil || req.Decision != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Use the decision endpoint")
	}

	booking, err := s.loadScoped(ctx, actorID, role, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != enums.BookingStatusPending {
		return nil, decidedConflict()
	}

	if req.Type != nil {
		if !req.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid booking type").
				WithDetails(map[string]any{"field": "type"})
		}
		booking.Type = *req.Type
	}
	if req.ItemDetails != nil {
		booking.ItemDetails = req.ItemDetails
	}
	if req.BookingDate != nil {
		booking.BookingDate = req.BookingDate.Time
	}

	var pigIDs []int64
	if req.PigIDs != nil {
		pigIDs = dedupeIDs(req.PigIDs)
		if len(pigIDs) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pigs_ids must not be empty")
		}
		for _, pigID := range pigIDs {
			if err := s.checkPig(ctx, pigID); err != nil {
				return nil, err
			}
		}
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Save(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
		}
		if pigIDs != nil {
			if err := repo.ReplacePigs(ctx, booking.ID, pigIDs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace booking pigs")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if pigIDs == nil {
		if pigIDs, err = s.repo.PigIDs(ctx, booking.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking pigs")
		}
	}
	return FromModel(booking, pigIDs), nil
}

// Decide settles a pending booking. Approval reserves each booked pig's
// active listing and issues the reservation receipt in the same transaction
// as the status flip, so a failed reservation leaves the booking pending.
// Repeating an already-applied decision returns the current state.
func (s *service) Decide(ctx context.Context, actorID int64, id int64, req DecisionRequest) (*BookingDTO, error) {
	if req.Decision != enums.BookingStatusApproved && req.Decision != enums.BookingStatusDeclined {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid decision").
			WithDetails(map[string]any{"field": "decision"})
	}

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	pigIDs, err := s.repo.PigIDs(ctx, booking.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking pigs")
	}

	if booking.Status != enums.BookingStatusPending {
		if booking.Status == req.Decision {
			return FromModel(booking, pigIDs), nil
		}
		return nil, decidedConflict()
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		booking.Status = req.Decision
		if err := repo.Save(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
		}
		if req.Decision == enums.BookingStatusDeclined {
			return nil
		}

		lines, err := s.reserveListings(ctx, tx, pigIDs)
		if err != nil {
			return err
		}
		return s.issueReceipt(ctx, tx, booking, lines)
	})
	if err != nil {
		booking.Status = enums.BookingStatusPending
		return nil, err
	}
	return FromModel(booking, pigIDs), nil
}

func (s *service) reserveListings(ctx context.Context, tx *gorm.DB, pigIDs []int64) ([]receiptPigLine, error) {
	repo := s.listings.WithTx(tx)
	lines := make([]receiptPigLine, 0, len(pigIDs))
	for _, pigID := range pigIDs {
		listing, err := repo.FindActiveByPig(ctx, pigID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Unlisted pigs (lechon and market orders) have nothing
				// to reserve.
				lines = append(lines, receiptPigLine{PigID: pigID})
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pig listing")
		}

		ok, err := repo.Reserve(ctx, listing.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve listing")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "Pig is no longer available").
				WithDetails(map[string]any{"reason": "listing_not_available", "pigs_id": pigID})
		}

		weight := listing.WeightKg
		saleType := listing.SaleType
		lines = append(lines, receiptPigLine{PigID: pigID, WeightKg: &weight, SaleType: &saleType})
	}
	return lines, nil
}

func (s *service) issueReceipt(ctx context.Context, tx *gorm.DB, booking *models.Booking, lines []receiptPigLine) error {
	doc := receiptDocument{
		ReceiptNo: fmt.Sprintf("RCPT-%06d", booking.ID),
		Booking: receiptBooking{
			ID:          booking.ID,
			ClientID:    booking.ClientID,
			Type:        booking.Type,
			ItemDetails: booking.ItemDetails,
			Status:      enums.BookingStatusApproved,
			BookingDate: types.DateOf(booking.BookingDate),
		},
		Pigs: lines,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render receipt")
	}

	receipt := &models.ReservationReceipt{BookingID: booking.ID, ReceiptData: string(payload)}
	if err := s.receipts.WithTx(tx).Create(receipt); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create receipt")
	}
	return nil
}

// receiptDocument is the JSON snapshot stored as receipt_data.
type receiptDocument struct {
	ReceiptNo string           `json:"receipt_no"`
	Booking   receiptBooking   `json:"booking"`
	Pigs      []receiptPigLine `json:"pigs"`
}

type receiptBooking struct {
	ID          int64               `json:"id"`
	ClientID    int64               `json:"client_id"`
	Type        enums.BookingType   `json:"type"`
	ItemDetails *string             `json:"item_details,omitempty"`
	Status      enums.BookingStatus `json:"status"`
	BookingDate types.Date          `json:"booking_date"`
}

type receiptPigLine struct {
	PigID    int64                  `json:"pigs_id"`
	WeightKg *decimal.Decimal       `json:"weight_kg,omitempty"`
	SaleType *enums.ListingSaleType `json:"sale_type,omitempty"`
}

func (s *service) loadScoped(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	// Clients must not learn about other clients' bookings.
	if role == enums.UserRoleClient && booking.ClientID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Booking not found")
	}
	return booking, nil
}

func (s *service) loadBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return booking, nil
}

func (s *service) checkPig(ctx context.Context, pigID int64) error {
	ok, err := s.pigs.Exists(ctx, pigID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pig")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Pig not found").
			WithDetails(map[string]any{"pigs_id": pigID})
	}
	return nil
}

func decidedConflict() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "Booking has already been decided").
		WithDetails(map[string]any{"reason": "booking_already_decided"})
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
