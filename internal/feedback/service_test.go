package feedback

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type stubRepo struct {
	byID   map[int64]*models.Feedback
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: map[int64]*models.Feedback{}, nextID: 90}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, feedback *models.Feedback) error {
	s.nextID++
	feedback.ID = s.nextID
	s.byID[feedback.ID] = feedback
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id int64) (*models.Feedback, error) {
	feedback, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return feedback, nil
}

func (s *stubRepo) List(_ context.Context, filter ListFilter) ([]models.Feedback, error) {
	out := make([]models.Feedback, 0, len(s.byID))
	for _, feedback := range s.byID {
		if filter.ClientID != nil {
			if feedback.ClientID == nil || *feedback.ClientID != *filter.ClientID {
				continue
			}
		}
		out = append(out, *feedback)
	}
	return out, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.byID, id)
	return nil
}

func buildService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceCreateTrimsComment(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo)

	dto, err := svc.Create(context.Background(), 10, CreateFeedbackRequest{Comment: "  great piglets!  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Comment != "great piglets!" {
		t.Fatalf("expected trimmed comment, got %q", dto.Comment)
	}
	if dto.ClientID == nil || *dto.ClientID != 10 {
		t.Fatalf("expected client 10, got %v", dto.ClientID)
	}

	_, err = svc.Create(context.Background(), 10, CreateFeedbackRequest{Comment: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected empty comment rejection, got %v", err)
	}
}

func TestServiceGetOwnerOrStaff(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo)
	ctx := context.Background()

	owner := int64(10)
	repo.byID[1] = &models.Feedback{ID: 1, ClientID: &owner, Comment: "delivery was late"}

	if _, err := svc.Get(ctx, 10, enums.UserRoleClient, 1); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if _, err := svc.Get(ctx, 3, enums.UserRoleSales, 1); err != nil {
		t.Fatalf("staff Get: %v", err)
	}

	_, err := svc.Get(ctx, 77, enums.UserRoleClient, 1)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound || typed.Message() != "Feedback not found" {
		t.Fatalf("expected hidden feedback, got %v", err)
	}
}

func TestServiceListMine(t *testing.T) {
	repo := newStubRepo()
	svc := buildService(t, repo)
	ctx := context.Background()

	mine := int64(10)
	other := int64(20)
	repo.byID[1] = &models.Feedback{ID: 1, ClientID: &mine, Comment: "a"}
	repo.byID[2] = &models.Feedback{ID: 2, ClientID: &other, Comment: "b"}

	rows, err := svc.ListMine(ctx, 10, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("expected only own feedback, got %+v", rows)
	}
}

func TestServiceDeleteMissing(t *testing.T) {
	svc := buildService(t, newStubRepo())

	err := svc.Delete(context.Background(), 404)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
