package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Repository persists and queries audit events.
type Repository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) Repository

	Insert(ctx context.Context, event *models.AuditEvent) error
	ListForEntity(ctx context.Context, entityType enums.AuditEntity, entityID int64, actions []enums.AuditAction) ([]models.AuditEvent, error)
}
