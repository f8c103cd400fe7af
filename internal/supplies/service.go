package supplies

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

// Service exposes supply inventory management.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreateSupplyRequest) (*SupplyDTO, error)
	Get(ctx context.Context, id int64) (*SupplyDTO, error)
	List(ctx context.Context, filter ListFilter) ([]SupplyDTO, error)
	Update(ctx context.Context, actorID, id int64, req UpdateSupplyRequest) (*SupplyDTO, error)
	Delete(ctx context.Context, actorID, id int64) error
	AdjustQuantity(ctx context.Context, actorID, id int64, req AdjustQuantityRequest) (*SupplyDTO, error)
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

// NewService constructs the supply service.
func NewService(repo Repository, tx txRunner, audit auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supply repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: audit}, nil
}

func (s *service) Create(ctx context.Context, actorID int64, req CreateSupplyRequest) (*SupplyDTO, error) {
	if req.Quantity.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative").
			WithDetails(map[string]any{"field": "quantity"})
	}

	supply := &models.Supply{
		ItemName:  req.ItemName,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		UpdatedBy: &actorID,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, supply); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supply")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySupply,
			EntityID:   supply.ID,
			Action:     enums.AuditActionCreate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(supply), nil
}

func (s *service) Get(ctx context.Context, id int64) (*SupplyDTO, error) {
	supply, err := s.loadSupply(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(supply), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]SupplyDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supplies")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actorID, id int64, req UpdateSupplyRequest) (*SupplyDTO, error) {
	supply, err := s.loadSupply(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ItemName != nil && *req.ItemName != "" {
		supply.ItemName = *req.ItemName
	}
	if req.Category != nil {
		supply.Category = req.Category
	}
	if req.Quantity != nil {
		if req.Quantity.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative").
				WithDetails(map[string]any{"field": "quantity"})
		}
		supply.Quantity = *req.Quantity
	}
	if req.Unit != nil && *req.Unit != "" {
		supply.Unit = *req.Unit
	}
	supply.UpdatedBy = &actorID

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, supply); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save supply")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySupply,
			EntityID:   supply.ID,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(supply), nil
}

func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		err := s.repo.WithTx(tx).Delete(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Supply not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete supply")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySupply,
			EntityID:   id,
			Action:     enums.AuditActionDelete,
			ActorID:    &actorID,
		})
	})
}

// AdjustQuantity moves stock by a signed delta. The conditional update keeps
// the quantity from going negative under concurrent adjustments.
func (s *service) AdjustQuantity(ctx context.Context, actorID, id int64, req AdjustQuantityRequest) (*SupplyDTO, error) {
	if req.Quantity.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity delta must be non-zero").
			WithDetails(map[string]any{"field": "quantity"})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		applied, err := repo.AdjustQuantity(ctx, id, req.Quantity, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust supply quantity")
		}
		if !applied {
			if _, err := repo.FindByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Supply not found")
			} else if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supply")
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "Insufficient stock").
				WithDetails(map[string]any{"reason": "insufficient_stock"})
		}

		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntitySupply,
			EntityID:   id,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *service) loadSupply(ctx context.Context, id int64) (*models.Supply, error) {
	supply, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Supply not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load supply")
	}
	return supply, nil
}
