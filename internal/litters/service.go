package litters

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

// Service exposes litter management.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreateLitterRequest) (*LitterDTO, error)
	Get(ctx context.Context, id int64) (*LitterDTO, error)
	List(ctx context.Context, filter ListFilter) ([]LitterDTO, error)
	Update(ctx context.Context, actorID, id int64, req UpdateLitterRequest) (*LitterDTO, error)
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

// NewService constructs the litter service.
func NewService(repo Repository, tx txRunner, audit auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("litter repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: audit}, nil
}

func (s *service) Create(ctx context.Context, actorID int64, req CreateLitterRequest) (*LitterDTO, error) {
	litter := &models.Litter{
		SowIdentifier: req.SowIdentifier,
		BirthDate:     req.BirthDate.Time,
		LitterSize:    req.LitterSize,
		CaretakerID:   &actorID,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, litter); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create litter")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityLitter,
			EntityID:   litter.ID,
			Action:     enums.AuditActionCreate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(litter), nil
}

func (s *service) Get(ctx context.Context, id int64) (*LitterDTO, error) {
	litter, err := s.loadLitter(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(litter), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]LitterDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list litters")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actorID, id int64, req UpdateLitterRequest) (*LitterDTO, error) {
	litter, err := s.loadLitter(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SowIdentifier != nil {
		litter.SowIdentifier = req.SowIdentifier
	}
	if req.BirthDate != nil && !req.BirthDate.IsZero() {
		litter.BirthDate = req.BirthDate.Time
	}
	if req.LitterSize != nil {
		litter.LitterSize = req.LitterSize
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, litter); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save litter")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityLitter,
			EntityID:   litter.ID,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(litter), nil
}

// Delete removes a litter and, through the schema cascade, every pig and
// feeding log registered under it.
func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		err := s.repo.WithTx(tx).Delete(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Litter not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete litter")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityLitter,
			EntityID:   id,
			Action:     enums.AuditActionDelete,
			ActorID:    &actorID,
		})
	})
}

func (s *service) loadLitter(ctx context.Context, id int64) (*models.Litter, error) {
	litter, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Litter not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load litter")
	}
	return litter, nil
}
