package pigs

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
)

const defaultStatus = "alive"

// Service exposes pig management.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreatePigRequest) (*PigDTO, error)
	Get(ctx context.Context, id int64) (*PigDTO, error)
	List(ctx context.Context, filter ListFilter) ([]PigDTO, error)
	Update(ctx context.Context, actorID, id int64, req UpdatePigRequest) (*PigDTO, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

// litterChecker verifies litter references before a pig is attached to one.
type litterChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo    Repository
	litters litterChecker
	tx      txRunner
	audit   auditRecorder
}

// NewService constructs the pig service.
func NewService(repo Repository, litters litterChecker, tx txRunner, audit auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pig repository required")
	}
	if litters == nil {
		return nil, fmt.Errorf("litter checker required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, litters: litters, tx: tx, audit: audit}, nil
}

func (s *service) Create(ctx context.Context, actorID int64, req CreatePigRequest) (*PigDTO, error) {
	if req.LitterID != nil {
		ok, err := s.litters.Exists(ctx, *req.LitterID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check litter")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Litter not found")
		}
	}

	pig := &models.Pig{
		LitterID:      req.LitterID,
		SowIdentifier: req.SowIdentifier,
		Status:        defaultStatus,
		Notes:         req.Notes,
	}
	if req.Status != nil && *req.Status != "" {
		pig.Status = *req.Status
	}
	if req.BirthDate != nil && !req.BirthDate.IsZero() {
		born := req.BirthDate.Time
		pig.BirthDate = &born
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, pig); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pig")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityPig,
			EntityID:   pig.ID,
			Action:     enums.AuditActionCreate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(pig), nil
}

func (s *service) Get(ctx context.Context, id int64) (*PigDTO, error) {
	pig, err := s.loadPig(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(pig), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]PigDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pigs")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actorID, id int64, req UpdatePigRequest) (*PigDTO, error) {
	pig, err := s.loadPig(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != "" {
		pig.Status = *req.Status
	}
	if req.Notes != nil {
		pig.Notes = req.Notes
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, pig); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save pig")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityPig,
			EntityID:   pig.ID,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(pig), nil
}

func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		err := s.repo.WithTx(tx).Delete(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Pig not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pig")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityPig,
			EntityID:   id,
			Action:     enums.AuditActionDelete,
			ActorID:    &actorID,
		})
	})
}

func (s *service) loadPig(ctx context.Context, id int64) (*models.Pig, error) {
	pig, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Pig not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pig")
	}
	return pig, nil
}
