package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PigHealthRecord records a treatment or mortality event for a pig.
type PigHealthRecord struct {
	ID                int64            `gorm:"column:health_record_id;primaryKey"`
	PigID             int64            `gorm:"column:pigs_id;not null"`
	Symptoms          *string          `gorm:"column:symptoms;type:text"`
	Diagnosis         *string          `gorm:"column:diagnosis;type:text"`
	Treatment         *string          `gorm:"column:treatment;type:text"`
	TreatmentSupplyID *int64           `gorm:"column:treatment_supply_id"`
	QuantityUsed      *decimal.Decimal `gorm:"column:quantity_used;type:numeric(12,2)"`
	Mortality         bool             `gorm:"column:mortality;not null;default:false"`
	RecordedAt        time.Time        `gorm:"column:recorded_at;not null"`
	RecordedBy        *int64           `gorm:"column:recorded_by"`
}
