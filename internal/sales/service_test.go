package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/listings"
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

type stubAudit struct {
	entries []audit.Entry
}

func (s *stubAudit) Record(_ context.Context, _ *gorm.DB, entry audit.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

type stubBookings struct {
	byID map[int64]*models.Booking
	pigs map[int64][]int64
}

func (s stubBookings) FindByID(_ context.Context, id int64) (*models.Booking, error) {
	booking, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (s stubBookings) PigIDs(_ context.Context, bookingID int64) ([]int64, error) {
	return s.pigs[bookingID], nil
}

type stubListings struct {
	soldPigs []int64
}

func (s *stubListings) WithTx(tx *gorm.DB) listings.Repository { return s }

func (s *stubListings) Create(_ context.Context, _ *models.AvailablePig) error { return nil }

func (s *stubListings) FindByID(_ context.Context, _ int64) (*models.AvailablePig, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubListings) FindActiveByPig(_ context.Context, _ int64) (*models.AvailablePig, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubListings) HasActiveListing(_ context.Context, _ int64, _ int64) (bool, error) {
	return false, nil
}

func (s *stubListings) List(_ context.Context, _ listings.ListFilter) ([]models.AvailablePig, error) {
	return nil, nil
}

func (s *stubListings) ListAvailable(_ context.Context, _ pagination.Params) ([]models.AvailablePig, error) {
	return nil, nil
}

func (s *stubListings) Save(_ context.Context, _ *models.AvailablePig) error { return nil }

func (s *stubListings) Delete(_ context.Context, _ int64) error { return nil }

func (s *stubListings) Reserve(_ context.Context, _ int64) (bool, error) { return false, nil }

func (s *stubListings) MarkSold(_ context.Context, pigIDs []int64) error {
	s.soldPigs = append(s.soldPigs, pigIDs...)
	return nil
}

type stubRepo struct {
	byID   map[int64]*models.Sale
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[int64]*models.Sale{}, nextID: 70}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, sale *models.Sale) error {
	s.nextID++
	sale.ID = s.nextID
	s.byID[sale.ID] = sale
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*models.Sale, error) {
	sale, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sale, nil
}

func (s *stubRepo) ExistsForBooking(_ context.Context, bookingID int64) (bool, error) {
	for _, sale := range s.byID {
		if sale.BookingID != nil && *sale.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) List(_ context.Context, _ ListFilter) ([]models.Sale, error) {
	out := make([]models.Sale, 0, len(s.byID))
	for _, sale := range s.byID {
		out = append(out, *sale)
	}
	return out, nil
}

func (s *stubRepo) Save(_ context.Context, sale *models.Sale) error {
	s.byID[sale.ID] = sale
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.byID, id)
	return nil
}

func buildService(t *testing.T, repo Repository, bookings bookingLoader, lst listings.Repository, recorder auditRecorder) Service {
	t.Helper()
	svc, err := NewService(repo, bookings, lst, stubTxRunner{}, recorder)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func paymentDate() types.Date {
	return types.DateOf(time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC))
}

func saleRequest(bookingID *int64) CreateSaleRequest {
	return CreateSaleRequest{
		BookingID:   bookingID,
		ItemType:    "pig",
		TotalAmount: decimal.NewFromInt(12000),
		PaymentDate: paymentDate(),
	}
}

func TestServiceCreateGuardsBooking(t *testing.T) {
	repo := newStubRepo()
	bookings := stubBookings{byID: map[int64]*models.Booking{
		1: {ID: 1, Status: enums.BookingStatusPending},
		2: {ID: 2, Status: enums.BookingStatusApproved},
	}}
	svc := buildService(t, repo, bookings, &stubListings{}, &stubAudit{})
	ctx := context.Background()

	_, err := svc.Create(ctx, 42, saleRequest(int64Ptr(404)))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Booking not found" {
		t.Fatalf("expected booking not found, got %v", err)
	}

	_, err = svc.Create(ctx, 42, saleRequest(int64Ptr(1)))
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict || typed.Message() != "Booking is not approved" {
		t.Fatalf("expected unapproved conflict, got %v", err)
	}

	if _, err := svc.Create(ctx, 42, saleRequest(int64Ptr(2))); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The settled booking cannot be sold twice.
	_, err = svc.Create(ctx, 42, saleRequest(int64Ptr(2)))
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict || typed.Message() != "Booking already has a sale" {
		t.Fatalf("expected duplicate sale conflict, got %v", err)
	}
}

func TestServiceCreateClosesListings(t *testing.T) {
	repo := newStubRepo()
	bookings := stubBookings{
		byID: map[int64]*models.Booking{2: {ID: 2, Status: enums.BookingStatusApproved}},
		pigs: map[int64][]int64{2: {7, 8}},
	}
	lst := &stubListings{}
	recorder := &stubAudit{}
	svc := buildService(t, repo, bookings, lst, recorder)

	dto, err := svc.Create(context.Background(), 42, saleRequest(int64Ptr(2)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.RecordedBy == nil || *dto.RecordedBy != 42 {
		t.Fatalf("expected recorder 42, got %v", dto.RecordedBy)
	}
	if len(lst.soldPigs) != 2 || lst.soldPigs[0] != 7 || lst.soldPigs[1] != 8 {
		t.Fatalf("expected booked pigs closed out, got %v", lst.soldPigs)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].EntityType != enums.AuditEntitySale || recorder.entries[0].Action != enums.AuditActionCreate {
		t.Fatalf("expected one SALE CREATE audit entry, got %+v", recorder.entries)
	}
}

func TestServiceCreateWalkInSale(t *testing.T) {
	repo := newStubRepo()
	lst := &stubListings{}
	svc := buildService(t, repo, stubBookings{}, lst, &stubAudit{})

	dto, err := svc.Create(context.Background(), 42, CreateSaleRequest{
		ItemType:        "lechon",
		ItemDescription: strPtr("whole lechon, 25kg"),
		TotalAmount:     decimal.NewFromInt(9500),
		PaymentDate:     paymentDate(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.BookingID != nil {
		t.Fatalf("expected no booking, got %v", dto.BookingID)
	}
	if len(lst.soldPigs) != 0 {
		t.Fatalf("walk-in sale must not touch listings, got %v", lst.soldPigs)
	}
}

func TestServiceCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := buildService(t, newStubRepo(), stubBookings{}, &stubListings{}, &stubAudit{})

	req := saleRequest(nil)
	req.TotalAmount = decimal.Zero
	_, err := svc.Create(context.Background(), 42, req)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected amount validation error, got %v", err)
	}
}

func TestServiceUpdateAndDelete(t *testing.T) {
	repo := newStubRepo()
	recorder := &stubAudit{}
	svc := buildService(t, repo, stubBookings{}, &stubListings{}, recorder)
	ctx := context.Background()

	repo.byID[3] = &models.Sale{ID: 3, ItemType: "pig", TotalAmount: decimal.NewFromInt(1000), PaymentDate: paymentDate().Time}

	amount := decimal.NewFromInt(1500)
	dto, err := svc.Update(ctx, 42, 3, UpdateSaleRequest{TotalAmount: &amount})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !dto.TotalAmount.Equal(amount) {
		t.Fatalf("expected amount 1500, got %s", dto.TotalAmount)
	}

	if err := svc.Delete(ctx, 42, 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(recorder.entries) != 2 || recorder.entries[1].Action != enums.AuditActionDelete {
		t.Fatalf("expected UPDATE then DELETE audit entries, got %+v", recorder.entries)
	}

	err = svc.Delete(ctx, 42, 3)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Sale not found" {
		t.Fatalf("expected sale not found, got %v", err)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
