package audit

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Entry describes one audit event to record against a farm record.
type Entry struct {
	EntityType enums.AuditEntity
	EntityID   int64
	Action     enums.AuditAction
	ActorID    *int64
	Note       *string
}

// Meta summarizes who created and last updated a record, resolved to
// display names. A record with no audit trail serializes as {}.
type Meta struct {
	CreatedAt *time.Time `json:"created_at,omitempty"`
	CreatedBy *string    `json:"created_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy *string    `json:"updated_by,omitempty"`
}
