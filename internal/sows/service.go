package sows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// gestationDays is the swine gestation period used to derive the expected
// birth date from the mating date.
const gestationDays = 114

// nursingWindowDays bounds how long after farrowing a sow may be marked
// nursing.
const nursingWindowDays = 21

// Service exposes sow breeding management.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreateSowRequest) (*SowDTO, error)
	Get(ctx context.Context, id int64) (*SowDTO, error)
	List(ctx context.Context, filter ListFilter) ([]SowDTO, error)
	Update(ctx context.Context, actorID, id int64, req UpdateSowRequest) (*SowDTO, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

type service struct {
	repo  Repository
	tx    txRunner
	audit auditRecorder
}

// NewService constructs the sow service.
func NewService(repo Repository, tx txRunner, audit auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sow repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: audit}, nil
}

func (s *service) Create(ctx context.Context, actorID int64, req CreateSowRequest) (*SowDTO, error) {
	if !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sow status").
			WithDetails(map[string]any{"field": "status"})
	}

	taken, err := s.repo.IdentifierTaken(ctx, req.SowIdentifier, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sow identifier")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Sow identifier already in use")
	}

	sow := &models.Sow{
		SowIdentifier: req.SowIdentifier,
		Status:        req.Status,
		CaretakerID:   &actorID,
	}
	if req.MatingDate != nil && !req.MatingDate.IsZero() {
		mating := req.MatingDate.Time
		sow.MatingDate = &mating
	}
	switch {
	case req.ExpectedBirth != nil && !req.ExpectedBirth.IsZero():
		expected := req.ExpectedBirth.Time
		sow.ExpectedBirth = &expected
	case sow.MatingDate != nil:
		expected := computeExpectedBirth(*sow.MatingDate)
		sow.ExpectedBirth = &expected
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, sow); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sow")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySow,
			EntityID:   sow.ID,
			Action:     enums.AuditActionCreate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(sow, time.Now()), nil
}

func (s *service) Get(ctx context.Context, id int64) (*SowDTO, error) {
	sow, err := s.loadSow(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(sow, time.Now()), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]SowDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sows")
	}
	return FromModels(rows, time.Now()), nil
}

func (s *service) Update(ctx context.Context, actorID, id int64, req UpdateSowRequest) (*SowDTO, error) {
	sow, err := s.loadSow(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SowIdentifier != nil && *req.SowIdentifier != sow.SowIdentifier {
		taken, err := s.repo.IdentifierTaken(ctx, *req.SowIdentifier, sow.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sow identifier")
		}
		if taken {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Sow identifier already in use")
		}
		sow.SowIdentifier = *req.SowIdentifier
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sow status").
				WithDetails(map[string]any{"field": "status"})
		}
		sow.Status = *req.Status
	}
	if req.MatingDate != nil && !req.MatingDate.IsZero() {
		mating := req.MatingDate.Time
		sow.MatingDate = &mating
	}
	switch {
	case req.ExpectedBirth != nil && !req.ExpectedBirth.IsZero():
		expected := req.ExpectedBirth.Time
		sow.ExpectedBirth = &expected
	case req.MatingDate != nil && !req.MatingDate.IsZero():
		expected := computeExpectedBirth(req.MatingDate.Time)
		sow.ExpectedBirth = &expected
	}
	if req.CaretakerID != nil {
		sow.CaretakerID = req.CaretakerID
	}

	if err := applyStatusRules(sow, req.Status); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, sow); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save sow")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySow,
			EntityID:   sow.ID,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(sow, time.Now()), nil
}

func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		err := s.repo.WithTx(tx).Delete(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Sow not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sow")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySow,
			EntityID:   id,
			Action:     enums.AuditActionDelete,
			ActorID:    &actorID,
		})
	})
}

func (s *service) loadSow(ctx context.Context, id int64) (*models.Sow, error) {
	sow, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Sow not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sow")
	}
	return sow, nil
}

func computeExpectedBirth(matingDate time.Time) time.Time {
	return types.DateOf(matingDate).AddDays(gestationDays).Time
}

// applyStatusRules enforces the breeding cycle transitions. gave_birth stamps
// today as the farrowing date and resets the pregnancy fields; nursing is
// only reachable within the window after a recorded birth.
func applyStatusRules(sow *models.Sow, newStatus *enums.SowStatus) error {
	if newStatus == nil {
		return nil
	}

	switch *newStatus {
	case enums.SowStatusGaveBirth:
		today := types.Today().Time
		sow.LastBirthDate = &today
		sow.MatingDate = nil
		sow.ExpectedBirth = nil
	case enums.SowStatusNursing:
		if sow.LastBirthDate == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "Cannot set 'nursing' before 'gave_birth'").
				WithDetails(map[string]any{"reason": "nursing_before_birth"})
		}
		if types.Today().DaysSince(types.DateOf(*sow.LastBirthDate)) > nursingWindowDays {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "Nursing allowed only within 3 weeks of giving birth").
				WithDetails(map[string]any{"reason": "nursing_window_closed"})
		}
	}
	return nil
}
