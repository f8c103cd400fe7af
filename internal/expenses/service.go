package expenses

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

// Service exposes expense management.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreateExpenseRequest) (*ExpenseDTO, error)
	Get(ctx context.Context, id int64) (*ExpenseDTO, error)
	List(ctx context.Context, filter ListFilter) ([]ExpenseDTO, error)
	Update(ctx context.Context, actorID, id int64, req UpdateExpenseRequest) (*ExpenseDTO, error)
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

// NewService constructs the expense service.
func NewService(repo Repository, tx txRunner, audit auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("expense repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: audit}, nil
}

func (s *service) Create(ctx context.Context, actorID int64, req CreateExpenseRequest) (*ExpenseDTO, error) {
	if !req.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive").
			WithDetails(map[string]any{"field": "amount"})
	}

	expense := &models.Expense{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		DateSpent:   req.DateSpent.Time,
		RecordedBy:  &actorID,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, expense); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create expense")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityExpense,
			EntityID:   expense.ID,
			Action:     enums.AuditActionCreate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(expense), nil
}

func (s *service) Get(ctx context.Context, id int64) (*ExpenseDTO, error) {
	expense, err := s.loadExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(expense), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ExpenseDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actorID, id int64, req UpdateExpenseRequest) (*ExpenseDTO, error) {
	expense, err := s.loadExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil && *req.Description != "" {
		expense.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive").
				WithDetails(map[string]any{"field": "amount"})
		}
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = req.Category
	}
	if req.DateSpent != nil && !req.DateSpent.IsZero() {
		expense.DateSpent = req.DateSpent.Time
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, expense); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save expense")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityExpense,
			EntityID:   expense.ID,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(expense), nil
}

func (s *service) Delete(ctx context.Context, actorID, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		err := s.repo.WithTx(tx).Delete(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Expense not found")
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete expense")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityExpense,
			EntityID:   id,
			Action:     enums.AuditActionDelete,
			ActorID:    &actorID,
		})
	})
}

func (s *service) loadExpense(ctx context.Context, id int64) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Expense not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load expense")
	}
	return expense, nil
}
