package pigs

import (
	"context"
	"testing"

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
	byID    map[int64]*models.Pig
	deleted []int64
	nextID  int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[int64]*models.Pig{}, nextID: 20}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, pig *models.Pig) error {
	s.nextID++
	pig.ID = s.nextID
	s.byID[pig.ID] = pig
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*models.Pig, error) {
	pig, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pig, nil
}

func (s *stubRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.byID[id]
	return ok, nil
}

func (s *stubRepo) List(_ context.Context, _ ListFilter) ([]models.Pig, error) {
	out := make([]models.Pig, 0, len(s.byID))
	for _, pig := range s.byID {
		out = append(out, *pig)
	}
	return out, nil
}

func (s *stubRepo) Save(_ context.Context, pig *models.Pig) error {
	s.byID[pig.ID] = pig
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
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

func TestServiceCreateValidatesLitter(t *testing.T) {
	repo := newStubRepo()
	recorder := &stubAudit{}
	svc := buildService(t, repo, stubLitters{existing: map[int64]bool{3: true}}, recorder)

	_, err := svc.Create(context.Background(), 42, CreatePigRequest{LitterID: int64Ptr(99)})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Litter not found" {
		t.Fatalf("expected litter not found, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("no pig should be created when the litter is missing")
	}

	dto, err := svc.Create(context.Background(), 42, CreatePigRequest{LitterID: int64Ptr(3)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Status != "alive" {
		t.Fatalf("expected default status alive, got %q", dto.Status)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].EntityType != enums.AuditEntityPig {
		t.Fatalf("expected one PIG audit entry, got %+v", recorder.entries)
	}
}

func TestServiceCreateWithoutLitter(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo, stubLitters{}, &stubAudit{})

	dto, err := svc.Create(context.Background(), 42, CreatePigRequest{Notes: strPtr("orphan piglet")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.LitterID != nil {
		t.Fatalf("expected no litter, got %v", dto.LitterID)
	}
}

func TestServiceUpdateTouchesStatusAndNotes(t *testing.T) {
	repo := newStubRepo()
	recorder := &stubAudit{}
	svc := buildService(t, repo, stubLitters{}, recorder)

	repo.byID[7] = &models.Pig{ID: 7, Status: "alive"}

	dto, err := svc.Update(context.Background(), 42, 7, UpdatePigRequest{Status: strPtr("sold"), Notes: strPtr("picked up")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if dto.Status != "sold" || dto.Notes == nil || *dto.Notes != "picked up" {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != enums.AuditActionUpdate {
		t.Fatalf("expected one UPDATE audit entry, got %+v", recorder.entries)
	}
}

func TestServiceDeleteMissingPig(t *testing.T) {
	svc := buildService(t, newStubRepo(), stubLitters{}, &stubAudit{})

	err := svc.Delete(context.Background(), 42, 404)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Pig not found" {
		t.Fatalf("expected pig not found, got %v", err)
	}
}
