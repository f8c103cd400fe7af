package feedinglogs

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

// Service exposes feeding log management.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreateFeedingLogRequest) (*FeedingLogDTO, error)
	Get(ctx context.Context, id int64) (*FeedingLogDTO, error)
	List(ctx context.Context, filter ListFilter) ([]FeedingLogDTO, error)
	Update(ctx context.Context, actorID, id int64, req UpdateFeedingLogRequest) (*FeedingLogDTO, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

type litterChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type service struct {
	repo    Repository
	litters litterChecker
	tx      txRunner
	audit   auditRecorder
}

// NewService constructs the feeding log service.
func NewService(repo Repository, litters litterChecker, tx txRunner, audit auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("feeding log repository required")
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

// Create records a feeding. The caretaker is always the calling user.
func (s *service) Create(ctx context.Context, actorID int64, req CreateFeedingLogRequest) (*FeedingLogDTO, error) {
	if !req.QuantityKg.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_kg must be positive").
			WithDetails(map[string]any{"field": "quantity_kg"})
	}
	if err := s.checkLitter(ctx, req.LitterID); err != nil {
		return nil, err
	}

	log := &models.FeedingLog{
		LitterID:    req.LitterID,
		FeedType:    req.FeedType,
		QuantityKg:  req.QuantityKg,
		FeedingTime: req.FeedingTime,
		CaretakerID: &actorID,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, log); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create feeding log")
		}
		for _, action := range []enums.AuditAction{enums.AuditActionCreate, enums.AuditActionRecord} {
			err := s.audit.Record(ctx, tx, audit.Entry{
				EntityType: enums.AuditEntityFeedLog,
				EntityID:   log.ID,
				Action:     action,
				ActorID:    &actorID,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(log), nil
}

func (s *service) Get(ctx context.Context, id int64) (*FeedingLogDTO, error) {
	log, err := s.loadLog(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(log), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]FeedingLogDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list feeding logs")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actorID, id int64, req UpdateFeedingLogRequest) (*FeedingLogDTO, error) {
	log, err := s.loadLog(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LitterID != nil && *req.LitterID != log.LitterID {
		if err := s.checkLitter(ctx, *req.LitterID); err != nil {
			return nil, err
		}
		log.LitterID = *req.LitterID
	}
	if req.FeedType != nil && *req.FeedType != "" {
		log.FeedType = *req.FeedType
	}
	if req.QuantityKg != nil {
		if !req.QuantityKg.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_kg must be positive").
				WithDetails(map[string]any{"field": "quantity_kg"})
		}
		log.QuantityKg = *req.QuantityKg
	}
	if req.FeedingTime != nil && !req.FeedingTime.IsZero() {
		log.FeedingTime = *req.FeedingTime
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, log); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save feeding log")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityFeedLog,
			EntityID:   log.ID,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(log), nil
}

func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		err := s.repo.WithTx(tx).Delete(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Feeding log not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete feeding log")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityFeedLog,
			EntityID:   id,
			Action:     enums.AuditActionDelete,
			ActorID:    &actorID,
		})
	})
}

func (s *service) checkLitter(ctx context.Context, litterID int64) error {
	ok, err := s.litters.Exists(ctx, litterID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check litter")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Litter not found")
	}
	return nil
}

func (s *service) loadLog(ctx context.Context, id int64) (*models.FeedingLog, error) {
	log, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Feeding log not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load feeding log")
	}
	return log, nil
}
