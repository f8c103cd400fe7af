package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds the audit event repository backed by gorm.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, event *models.AuditEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) ListForEntity(ctx context.Context, entityType enums.AuditEntity, entityID int64, actions []enums.AuditAction) ([]models.AuditEvent, error) {
	query := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	if len(actions) > 0 {
		query = query.Where("action IN ?", actions)
	}

	var events []models.AuditEvent
	if err := query.Order("recorded_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
