package inquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
)

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires the inquiry service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inquiry repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, clientID int64, req CreateInquiryRequest) (*InquiryDTO, error) {
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)
	if subject == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject and message must not be empty")
	}

	inquiry := &models.Inquiry{
		ClientID: clientID,
		Subject:  subject,
		Message:  message,
		Status:   enums.InquiryStatusUnread,
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inquiry")
	}
	return FromModel(inquiry), nil
}

func (s *service) Get(ctx context.Context, actorID int64, role enums.UserRole, id int64) (*InquiryDTO, error) {
	inquiry, err := s.loadInquiry(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == enums.UserRoleClient {
		if inquiry.ClientID != actorID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Inquiry not found")
		}
		return FromModel(inquiry), nil
	}

	// The first staff view moves an unread inquiry to read.
	if inquiry.Status == enums.InquiryStatusUnread {
		inquiry.Status = enums.InquiryStatusRead
		if err := s.repo.Save(ctx, inquiry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark inquiry read")
		}
	}
	return FromModel(inquiry), nil
}

func (s *service) List(ctx context.Context, actorID int64, role enums.UserRole, filter ListFilter) ([]InquiryDTO, error) {
	if role == enums.UserRoleClient {
		filter.ClientID = &actorID
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inquiries")
	}
	return FromModels(rows), nil
}

// Respond answers an inquiry exactly once.
func (s *service) Respond(ctx context.Context, responderID int64, id int64, req RespondRequest) (*InquiryDTO, error) {
	response := strings.TrimSpace(req.Response)
	if response == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "response must not be empty")
	}

	inquiry, err := s.loadInquiry(ctx, id)
	if err != nil {
		return nil, err
	}
	if inquiry.Status == enums.InquiryStatusResponded {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "Inquiry has already been responded to").
			WithDetails(map[string]any{"reason": "inquiry_already_responded"})
	}

	respondedAt := s.now().UTC()
	inquiry.Status = enums.InquiryStatusResponded
	inquiry.Response = &response
	inquiry.RespondedBy = &responderID
	inquiry.RespondedAt = &respondedAt
	if err := s.repo.Save(ctx, inquiry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "respond to inquiry")
	}
	return FromModel(inquiry), nil
}

func (s *service) loadInquiry(ctx context.Context, id int64) (*models.Inquiry, error) {
	inquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Inquiry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inquiry")
	}
	return inquiry, nil
}
