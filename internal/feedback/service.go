package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

type service struct {
	repo Repository
}

// NewService wires the feedback service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("feedback repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, clientID int64, req CreateFeedbackRequest) (*FeedbackDTO, error) {
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment must not be empty")
	}

	feedback := &models.Feedback{ClientID: &clientID, Comment: comment}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create feedback")
	}
	return FromModel(feedback), nil
}

func (s *service) Get(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*FeedbackDTO, error) {
	feedback, err := s.loadFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	// Clients only see their own comments.
	if role == enums.UserRoleClient {
		if feedback.ClientID == nil || *feedback.ClientID != actorID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Feedback not found")
		}
	}
	return FromModel(feedback), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]FeedbackDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list feedback")
	}
	return FromModels(rows), nil
}

func (s *service) ListMine(ctx context.Context, clientID int64, p pagination.Params) ([]FeedbackDTO, error) {
	return s.List(ctx, ListFilter{ClientID: &clientID, Pagination: p})
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Feedback not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete feedback")
	}
	return nil
}

func (s *service) loadFeedback(ctx context.Context, id int64) (*models.Feedback, error) {
	feedback, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Feedback not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load feedback")
	}
	return feedback, nil
}
