package healthrecords

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/audit"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/supplies"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry audit.Entry) error
}

type pigChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Supply categories that may back a treatment.
var treatmentCategories = map[string]bool{
	"medicine": true,
	"vaccine":  true,
}

type service struct {
	repo     Repository
	pigs     pigChecker
	supplies supplies.Repository
	tx       txRunner
	audit    auditRecorder
}

// NewService wires the health record service.
func NewService(repo Repository, pigs pigChecker, supplyRepo supplies.Repository, tx txRunner, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("health record repository required")
	}
	if pigs == nil {
		return nil, fmt.Errorf("pig checker required")
	}
	if supplyRepo == nil {
		return nil, fmt.Errorf("supply repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, pigs: pigs, supplies: supplyRepo, tx: tx, audit: recorder}, nil
}

// Create registers a health event. A treatment backed by a supply draws
// quantity_used from its stock under a row lock in the same transaction.
func (s *service) Create(ctx context.Context, actorID int64, req CreateHealthRecordRequest) (*HealthRecordDTO, error) {
	if err := s.checkPig(ctx, req.PigID); err != nil {
		return nil, err
	}
	if err := validateSupplyPair(req.TreatmentSupplyID, req.QuantityUsed); err != nil {
		return nil, err
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	record := &models.PigHealthRecord{
		PigID:             req.PigID,
		Symptoms:          req.Symptoms,
		Diagnosis:         req.Diagnosis,
		Treatment:         req.Treatment,
		TreatmentSupplyID: req.TreatmentSupplyID,
		QuantityUsed:      req.QuantityUsed,
		Mortality:         req.Mortality,
		RecordedAt:        recordedAt,
		RecordedBy:        &actorID,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.rebalanceStock(ctx, tx, nil, nil, req.TreatmentSupplyID, req.QuantityUsed, actorID); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Create(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create health record")
		}

		actions := []enums.AuditAction{enums.AuditActionCreate}
		if record.Mortality {
			actions = append(actions, enums.AuditActionRecord)
		}
		for _, action := range actions {
			err := s.audit.Record(ctx, tx, audit.Entry{
				EntityType: enums.AuditEntityHealth,
				EntityID:   record.ID,
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
	return FromModel(record), nil
}

func (s *service) Get(ctx context.Context, id int64) (*HealthRecordDTO, error) {
	record, err := s.loadRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]HealthRecordDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list health records")
	}
	return FromModels(rows), nil
}

// Update edits a record. When the treatment supply or quantity changes, the
// old draw is returned and the new one taken in a single transaction.
func (s *service) Update(ctx context.Context, actorID int64, id int64, req UpdateHealthRecordRequest) (*HealthRecordDTO, error) {
	record, err := s.loadRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	oldSupply := record.TreatmentSupplyID
	oldQty := record.QuantityUsed

	newSupply := oldSupply
	if req.TreatmentSupplyID != nil {
		newSupply = req.TreatmentSupplyID
	}
	newQty := oldQty
	if req.QuantityUsed != nil {
		newQty = req.QuantityUsed
	}
	if err := validateSupplyPair(newSupply, newQty); err != nil {
		return nil, err
	}

	if req.Symptoms != nil {
		record.Symptoms = req.Symptoms
	}
	if req.Diagnosis != nil {
		record.Diagnosis = req.Diagnosis
	}
	if req.Treatment != nil {
		record.Treatment = req.Treatment
	}
	if req.Mortality != nil {
		record.Mortality = *req.Mortality
	}
	if req.RecordedAt != nil {
		record.RecordedAt = *req.RecordedAt
	}
	record.TreatmentSupplyID = newSupply
	record.QuantityUsed = newQty

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.rebalanceStock(ctx, tx, oldSupply, oldQty, newSupply, newQty, actorID); err != nil {
			return err
		}
		if err := s.repo.WithTx(tx).Save(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update health record")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityHealth,
			EntityID:   record.ID,
			Action:     enums.AuditActionUpdate,
			ActorID:    &actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

func (s *service) Delete(ctx context.Context, actorID int64, id int64) error {
	if _, err := s.loadRecord(ctx, id); err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Health record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete health record")
		}
		return s.audit.Record(ctx, tx, audit.Entry{
			EntityType: enums.AuditEntityHealth,
			EntityID:   id,
			Action:     enums.AuditActionDelete,
			ActorID:    &actorID,
		})
	})
}

// rebalanceStock returns the old draw and takes the new one. Both supply
// rows are locked in ascending id order so two concurrent rebalances cannot
// deadlock each other.
func (s *service) rebalanceStock(ctx context.Context, tx *gorm.DB, oldID *int64, oldQty *decimal.Decimal, newID *int64, newQty *decimal.Decimal, actorID int64) error {
	deltas := map[int64]decimal.Decimal{}
	if oldID != nil && oldQty != nil {
		deltas[*oldID] = deltas[*oldID].Add(*oldQty)
	}
	if newID != nil && newQty != nil {
		deltas[*newID] = deltas[*newID].Sub(*newQty)
	}

	ids := make([]int64, 0, len(deltas))
	for id, delta := range deltas {
		if delta.IsZero() && (newID == nil || id != *newID) {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	repo := s.supplies.WithTx(tx)
	for _, id := range ids {
		supply, err := repo.FindForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Supply not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock supply")
		}
		if newID != nil && id == *newID && !isTreatmentCategory(supply.Category) {
			return pkgerrors.New(pkgerrors.CodeValidation, "Supply must be a medicine or vaccine").
				WithDetails(map[string]any{"field": "treatment_supply_id"})
		}
	}

	for _, id := range ids {
		delta := deltas[id]
		if delta.IsZero() {
			continue
		}
		applied, err := repo.AdjustQuantity(ctx, id, delta, actorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust supply stock")
		}
		if !applied {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "Insufficient stock").
				WithDetails(map[string]any{"reason": "insufficient_stock", "supply_id": id})
		}
	}
	return nil
}

func validateSupplyPair(supplyID *int64, qty *decimal.Decimal) error {
	if supplyID != nil {
		if qty == nil || !qty.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity_used must be positive")
		}
		return nil
	}
	if qty != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "treatment_supply_id required with quantity_used")
	}
	return nil
}

func isTreatmentCategory(category *string) bool {
	if category == nil {
		return false
	}
	return treatmentCategories[strings.ToLower(*category)]
}

func (s *service) checkPig(ctx context.Context, pigID int64) error {
	ok, err := s.pigs.Exists(ctx, pigID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pig")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Pig not found")
	}
	return nil
}

func (s *service) loadRecord(ctx context.Context, id int64) (*models.PigHealthRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Health record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load health record")
	}
	return record, nil
}
