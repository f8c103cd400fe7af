package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/listings"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/receipts"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubPigs struct {
	existing map[int64]bool
}

func (s stubPigs) Exists(_ context.Context, id int64) (bool, error) {
	return s.existing[id], nil
}

type stubRepo struct {
	byID     map[int64]*models.Booking
	pigsByID map[int64][]int64
	nextID   int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[int64]*models.Booking{}, pigsByID: map[int64][]int64{}, nextID: 40}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, booking *models.Booking) error {
	s.nextID++
	booking.ID = s.nextID
	s.byID[booking.ID] = booking
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*models.Booking, error) {
	booking, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (s *stubRepo) List(_ context.Context, filter ListFilter) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(s.byID))
	for _, booking := range s.byID {
		if filter.ClientID != nil && booking.ClientID != *filter.ClientID {
			continue
		}
		out = append(out, *booking)
	}
	return out, nil
}

func (s *stubRepo) Save(_ context.Context, booking *models.Booking) error {
	s.byID[booking.ID] = booking
	return nil
}

func (s *stubRepo) AddPigs(_ context.Context, bookingID int64, pigIDs []int64) error {
	s.pigsByID[bookingID] = append(s.pigsByID[bookingID], pigIDs...)
	return nil
}

func (s *stubRepo) ReplacePigs(_ context.Context, bookingID int64, pigIDs []int64) error {
	s.pigsByID[bookingID] = append([]int64{}, pigIDs...)
	return nil
}

func (s *stubRepo) PigIDs(_ context.Context, bookingID int64) ([]int64, error) {
	return s.pigsByID[bookingID], nil
}

func (s *stubRepo) PigIDsForBookings(_ context.Context, bookingIDs []int64) (map[int64][]int64, error) {
	out := map[int64][]int64{}
	for _, id := range bookingIDs {
		out[id] = s.pigsByID[id]
	}
	return out, nil
}

type stubListings struct {
	byID   map[int64]*models.AvailablePig
	nextID int64
}

func newStubListings() *stubListings {
	return &stubListings{byID: map[int64]*models.AvailablePig{}, nextID: 60}
}

func (s *stubListings) WithTx(tx *gorm.DB) listings.Repository { return s }

func (s *stubListings) Create(_ context.Context, listing *models.AvailablePig) error {
	s.nextID++
	listing.ID = s.nextID
	s.byID[listing.ID] = listing
	return nil
}

func (s *stubListings) FindByID(_ context.Context, id int64) (*models.AvailablePig, error) {
	listing, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return listing, nil
}

func (s *stubListings) FindActiveByPig(_ context.Context, pigID int64) (*models.AvailablePig, error) {
	for _, listing := range s.byID {
		if listing.PigID != pigID {
			continue
		}
		if listing.Status == enums.ListingStatusAvailable || listing.Status == enums.ListingStatusReserved {
			return listing, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubListings) HasActiveListing(_ context.Context, pigID int64, excludeID int64) (bool, error) {
	_, err := s.FindActiveByPig(context.Background(), pigID)
	return err == nil, nil
}

func (s *stubListings) List(_ context.Context, _ listings.ListFilter) ([]models.AvailablePig, error) {
	return nil, nil
}

func (s *stubListings) ListAvailable(_ context.Context, _ pagination.Params) ([]models.AvailablePig, error) {
	return nil, nil
}

func (s *stubListings) Save(_ context.Context, listing *models.AvailablePig) error {
	s.byID[listing.ID] = listing
	return nil
}

func (s *stubListings) Delete(_ context.Context, id int64) error {
	delete(s.byID, id)
	return nil
}

func (s *stubListings) Reserve(_ context.Context, id int64) (bool, error) {
	listing, ok := s.byID[id]
	if !ok || listing.Status != enums.ListingStatusAvailable {
		return false, nil
	}
	listing.Status = enums.ListingStatusReserved
	return true, nil
}

func (s *stubListings) MarkSold(_ context.Context, pigIDs []int64) error { return nil }

type stubReceipts struct {
	created []*models.ReservationReceipt
	nextID  int64
}

func (s *stubReceipts) WithTx(tx *gorm.DB) receipts.Repository { return s }

func (s *stubReceipts) Create(_ context.Context, receipt *models.ReservationReceipt) error {
	s.nextID++
	receipt.ID = s.nextID
	s.created = append(s.created, receipt)
	return nil
}

func (s *stubReceipts) FindByID(_ context.Context, id int64) (*models.ReservationReceipt, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReceipts) FindByBooking(_ context.Context, bookingID int64) (*models.ReservationReceipt, error) {
	for _, receipt := range s.created {
		if receipt.BookingID == bookingID {
			return receipt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReceipts) ExistsForBooking(_ context.Context, bookingID int64) (bool, error) {
	_, err := s.FindByBooking(context.Background(), bookingID)
	return err == nil, nil
}

func (s *stubReceipts) List(_ context.Context, _ receipts.ListFilter) ([]models.ReservationReceipt, error) {
	return nil, nil
}

func buildService(t *testing.T, repo Repository, pigs pigChecker, lst listings.Repository, rcp receipts.Repository) Service {
	t.Helper()
	svc, err := NewService(repo, pigs, lst, rcp, stubTxRunner{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func bookingDate() types.Date {
	return types.DateOf(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
}

func TestServiceCreateDedupesPigs(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo, stubPigs{existing: map[int64]bool{1: true, 2: true}}, newStubListings(), &stubReceipts{})

	dto, err := svc.Create(context.Background(), 10, CreateBookingRequest{
		Type:        enums.BookingTypePig,
		BookingDate: bookingDate(),
		PigIDs:      []int64{1, 2, 1, 2, 1},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(dto.PigIDs) != 2 || dto.PigIDs[0] != 1 || dto.PigIDs[1] != 2 {
		t.Fatalf("expected deduped pig ids [1 2], got %v", dto.PigIDs)
	}
	if dto.Status != enums.BookingStatusPending {
		t.Fatalf("expected pending, got %s", dto.Status)
	}
	if got := repo.pigsByID[dto.ID]; len(got) != 2 {
		t.Fatalf("expected 2 junction rows, got %v", got)
	}
}

func TestServiceCreateRejectsUnknownPig(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo, stubPigs{existing: map[int64]bool{1: true}}, newStubListings(), &stubReceipts{})

	_, err := svc.Create(context.Background(), 10, CreateBookingRequest{
		Type:        enums.BookingTypePig,
		BookingDate: bookingDate(),
		PigIDs:      []int64{1, 404},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Pig not found" {
		t.Fatalf("expected pig not found, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("no booking should be created when a pig is missing")
	}
}

func TestServiceUpdateRejectsDecisionFields(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo, stubPigs{}, newStubListings(), &stubReceipts{})

	repo.byID[5] = &models.Booking{ID: 5, ClientID: 10, Status: enums.BookingStatusPending}

	status := "approved"
	_, err := svc.Update(context.Background(), 10, enums.UserRoleClient, 5, UpdateBookingRequest{Status: &status})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation || typed.Message() != "Use the decision endpoint" {
		t.Fatalf("expected decision endpoint rejection, got %v", err)
	}
}

func TestServiceClientScope(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo, stubPigs{}, newStubListings(), &stubReceipts{})

	repo.byID[5] = &models.Booking{ID: 5, ClientID: 10, Status: enums.BookingStatusPending}
	repo.byID[6] = &models.Booking{ID: 6, ClientID: 20, Status: enums.BookingStatusPending}

	// A stranger's booking reads as missing, not forbidden.
	_, err := svc.Get(context.Background(), 10, enums.UserRoleClient, 6)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Booking not found" {
		t.Fatalf("expected hidden booking, got %v", err)
	}

	rows, err := svc.List(context.Background(), 10, enums.UserRoleClient, ListFilter{Pagination: pagination.Params{Limit: 10}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 5 {
		t.Fatalf("expected only own booking, got %+v", rows)
	}

	rows, err = svc.List(context.Background(), 1, enums.UserRoleAdmin, ListFilter{Pagination: pagination.Params{Limit: 10}})
	if err != nil {
		t.Fatalf("admin List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected all bookings for staff, got %+v", rows)
	}
}

func TestServiceDecideApprovesAndIssuesReceipt(t *testing.T) {
	repo := newStubRepo()
	lst := newStubListings()
	rcp := &stubReceipts{}
	svc := buildService(t, repo, stubPigs{}, lst, rcp)

	repo.byID[5] = &models.Booking{ID: 5, ClientID: 10, Type: enums.BookingTypePig, Status: enums.BookingStatusPending, BookingDate: bookingDate().Time}
	repo.pigsByID[5] = []int64{1, 2}
	listed := &models.AvailablePig{PigID: 1, WeightKg: decimal.NewFromInt(85), SaleType: enums.ListingSaleTypeMarket, Status: enums.ListingStatusAvailable}
	if err := lst.Create(context.Background(), listed); err != nil {
		t.Fatalf("seed listing: %v", err)
	}

	dto, err := svc.Decide(context.Background(), 1, 5, DecisionRequest{Decision: enums.BookingStatusApproved})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dto.Status != enums.BookingStatusApproved {
		t.Fatalf("expected approved, got %s", dto.Status)
	}
	if listed.Status != enums.ListingStatusReserved {
		t.Fatalf("expected reserved listing, got %s", listed.Status)
	}
	if len(rcp.created) != 1 {
		t.Fatalf("expected one receipt, got %d", len(rcp.created))
	}
	if want := `"receipt_no":"RCPT-000005"`; !strings.Contains(rcp.created[0].ReceiptData, want) {
		t.Fatalf("receipt %s missing %s", rcp.created[0].ReceiptData, want)
	}

	// Repeating the applied decision is a no-op, not a conflict.
	again, err := svc.Decide(context.Background(), 1, 5, DecisionRequest{Decision: enums.BookingStatusApproved})
	if err != nil {
		t.Fatalf("repeat Decide: %v", err)
	}
	if again.Status != enums.BookingStatusApproved {
		t.Fatalf("expected approved, got %s", again.Status)
	}
	if len(rcp.created) != 1 {
		t.Fatalf("repeat decision must not issue another receipt, got %d", len(rcp.created))
	}

	// Flipping an already-decided booking is refused.
	_, err = svc.Decide(context.Background(), 1, 5, DecisionRequest{Decision: enums.BookingStatusDeclined})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["reason"] != "booking_already_decided" {
		t.Fatalf("unexpected details %v", typed.Details())
	}
}

func TestServiceDecideConflictsOnReservedListing(t *testing.T) {
	repo := newStubRepo()
	lst := newStubListings()
	svc := buildService(t, repo, stubPigs{}, lst, &stubReceipts{})

	repo.byID[5] = &models.Booking{ID: 5, ClientID: 10, Type: enums.BookingTypePig, Status: enums.BookingStatusPending, BookingDate: bookingDate().Time}
	repo.pigsByID[5] = []int64{1}
	taken := &models.AvailablePig{PigID: 1, WeightKg: decimal.NewFromInt(85), SaleType: enums.ListingSaleTypeMarket, Status: enums.ListingStatusReserved}
	if err := lst.Create(context.Background(), taken); err != nil {
		t.Fatalf("seed listing: %v", err)
	}

	_, err := svc.Decide(context.Background(), 1, 5, DecisionRequest{Decision: enums.BookingStatusApproved})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict || typed.Message() != "Pig is no longer available" {
		t.Fatalf("expected reservation conflict, got %v", err)
	}
}

func TestServiceDecideDeclineSkipsReceipt(t *testing.T) {
	repo := newStubRepo()
	rcp := &stubReceipts{}
	svc := buildService(t, repo, stubPigs{}, newStubListings(), rcp)

	repo.byID[5] = &models.Booking{ID: 5, ClientID: 10, Type: enums.BookingTypeLechon, Status: enums.BookingStatusPending, BookingDate: bookingDate().Time}

	dto, err := svc.Decide(context.Background(), 1, 5, DecisionRequest{Decision: enums.BookingStatusDeclined})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if dto.Status != enums.BookingStatusDeclined {
		t.Fatalf("expected declined, got %s", dto.Status)
	}
	if len(rcp.created) != 0 {
		t.Fatalf("decline must not issue receipts, got %d", len(rcp.created))
	}
}
