package feedinglogs

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
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

type stubLitters struct {
	existing map[int64]bool
}

func (s stubLitters) Exists(_ context.Context, id int64) (bool, error) {
	return s.existing[id], nil
}

type stubRepo struct {
	byID   map[int64]*models.FeedingLog
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[int64]*models.FeedingLog{}, nextID: 40}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, log *models.FeedingLog) error {
	s.nextID++
	log.ID = s.nextID
	s.byID[log.ID] = log
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*models.FeedingLog, error) {
	log, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return log, nil
}

func (s *stubRepo) List(_ context.Context, _ ListFilter) ([]models.FeedingLog, error) {
	out := make([]models.FeedingLog, 0, len(s.byID))
	for _, log := range s.byID {
		out = append(out, *log)
	}
	return out, nil
}

func (s *stubRepo) Save(_ context.Context, log *models.FeedingLog) error {
	s.byID[log.ID] = log
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.byID, id)
	return nil
}

func buildService(t *testing.T, repo Repository, litters litterChecker, recorder auditRecorder) Service {
	t.Helper()
	svc, err := NewService(repo, litters, stubTxRunner{}, recorder)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceCreateStampsCaretakerAndRecords(t *testing.T) {
	repo := newStubRepo()
	recorder := &stubAudit{}
	svc := buildService(t, repo, stubLitters{existing: map[int64]bool{3: true}}, recorder)

	dto, err := svc.Create(context.Background(), 42, CreateFeedingLogRequest{
		LitterID:    3,
		FeedType:    "starter",
		QuantityKg:  decimal.NewFromFloat(2.5),
		FeedingTime: time.Date(2025, 9, 10, 7, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.CaretakerID == nil || *dto.CaretakerID != 42 {
		t.Fatalf("expected caretaker 42, got %v", dto.CaretakerID)
	}

	if len(recorder.entries) != 2 {
		t.Fatalf("expected CREATE and RECORD audit entries, got %+v", recorder.entries)
	}
	if recorder.entries[0].Action != enums.AuditActionCreate || recorder.entries[1].Action != enums.AuditActionRecord {
		t.Fatalf("unexpected audit actions %+v", recorder.entries)
	}
	for _, entry := range recorder.entries {
		if entry.EntityType != enums.AuditEntityFeedLog {
			t.Fatalf("unexpected entity %s", entry.EntityType)
		}
	}
}

func TestServiceCreateValidates(t *testing.T) {
	svc := buildService(t, newStubRepo(), stubLitters{existing: map[int64]bool{3: true}}, &stubAudit{})

	_, err := svc.Create(context.Background(), 42, CreateFeedingLogRequest{
		LitterID:    99,
		FeedType:    "starter",
		QuantityKg:  decimal.NewFromFloat(2.5),
		FeedingTime: time.Now(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Litter not found" {
		t.Fatalf("expected litter not found, got %v", err)
	}

	_, err = svc.Create(context.Background(), 42, CreateFeedingLogRequest{
		LitterID:    3,
		FeedType:    "starter",
		QuantityKg:  decimal.Zero,
		FeedingTime: time.Now(),
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestServiceUpdateChecksNewLitter(t *testing.T) {
	repo := newStubRepo()
	recorder := &stubAudit{}
	svc := buildService(t, repo, stubLitters{existing: map[int64]bool{3: true, 4: true}}, recorder)

	repo.byID[9] = &models.FeedingLog{ID: 9, LitterID: 3, FeedType: "starter", QuantityKg: decimal.NewFromInt(2), FeedingTime: time.Now()}

	moved := int64(4)
	dto, err := svc.Update(context.Background(), 42, 9, UpdateFeedingLogRequest{LitterID: &moved})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.LitterID != 4 {
		t.Fatalf("expected litter 4, got %d", dto.LitterID)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != enums.AuditActionUpdate {
		t.Fatalf("expected one UPDATE entry, got %+v", recorder.entries)
	}

	missing := int64(99)
	_, err = svc.Update(context.Background(), 42, 9, UpdateFeedingLogRequest{LitterID: &missing})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected litter not found on move, got %v", err)
	}
}
