package healthrecords

import (
	"context"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
)

// Repository persists pig health records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.PigHealthRecord) error
	FindByID(ctx context.Context, id int64) (*models.PigHealthRecord, error)
	List(ctx context.Context, filter ListFilter) ([]models.PigHealthRecord, error)
	Save(ctx context.Context, record *models.PigHealthRecord) error
	Delete(ctx context.Context, id int64) error
}

// Service manages health records. Treatments backed by a supply draw stock
// under a row lock; mortality events are additionally audited as RECORD.
type Service interface {
	Create(ctx context.Context, actorID int64, req CreateHealthRecordRequest) (*HealthRecordDTO, error)
	Get(ctx context.Context, id int64) (*HealthRecordDTO, error)
	List(ctx context.Context, filter ListFilter) ([]HealthRecordDTO, error)
	Update(ctx context.Context, actorID int64, id int64, req UpdateHealthRecordRequest) (*HealthRecordDTO, error)
	Delete(ctx context.Context, actorID int64, id int64) error
}
