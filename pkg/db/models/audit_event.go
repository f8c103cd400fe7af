package models

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// AuditEvent records who did what to a farm record and when.
type AuditEvent struct {
	ID         int64             `gorm:"column:id;primaryKey"`
	EntityType enums.AuditEntity `gorm:"column:entity_type;type:audit_entity;not null"`
	EntityID   int64             `gorm:"column:entity_id;not null"`
	Action     enums.AuditAction `gorm:"column:action;type:audit_action;not null"`
	RecordedBy *int64            `gorm:"column:recorded_by"`
	RecordedAt time.Time         `gorm:"column:recorded_at;autoCreateTime"`
	Note       *string           `gorm:"column:note;type:varchar(255)"`
}
