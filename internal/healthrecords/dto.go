package healthrecords

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// HealthRecordDTO is the API shape of a pig health record.
type HealthRecordDTO struct {
	ID                int64            `json:"health_record_id"`
	PigID             int64            `json:"pig_id"`
	Symptoms          *string          `json:"symptoms,omitempty"`
	Diagnosis         *string          `json:"diagnosis,omitempty"`
	Treatment         *string          `json:"treatment,omitempty"`
	TreatmentSupplyID *int64           `json:"treatment_supply_id,omitempty"`
	QuantityUsed      *decimal.Decimal `json:"quantity_used,omitempty"`
	Mortality         bool             `json:"mortality"`
	RecordedAt        time.Time        `json:"recorded_at"`
	RecordedBy        *int64           `json:"recorded_by,omitempty"`
}

// CreateHealthRecordRequest registers a treatment or mortality event.
// RecordedAt defaults to now when absent.
type CreateHealthRecordRequest struct {
	PigID             int64            `json:"pig_id" validate:"required"`
	Symptoms          *string          `json:"symptoms"`
	Diagnosis         *string          `json:"diagnosis"`
	Treatment         *string          `json:"treatment"`
	TreatmentSupplyID *int64           `json:"treatment_supply_id"`
	QuantityUsed      *decimal.Decimal `json:"quantity_used"`
	Mortality         bool             `json:"mortality"`
	RecordedAt        *time.Time       `json:"recorded_at"`
}

// UpdateHealthRecordRequest carries partial edits. A set TreatmentSupplyID
// re-points the stock draw; the released and newly drawn supplies are
// rebalanced together.
type UpdateHealthRecordRequest struct {
	Symptoms          *string          `json:"symptoms"`
	Diagnosis         *string          `json:"diagnosis"`
	Treatment         *string          `json:"treatment"`
	TreatmentSupplyID *int64           `json:"treatment_supply_id"`
	QuantityUsed      *decimal.Decimal `json:"quantity_used"`
	Mortality         *bool            `json:"mortality"`
	RecordedAt        *time.Time       `json:"recorded_at"`
}

// ListFilter narrows health record listings.
type ListFilter struct {
	PigID      *int64
	Mortality  *bool
	Pagination pagination.Params
}

// FromModel converts a stored record into its DTO.
func FromModel(r *models.PigHealthRecord) *HealthRecordDTO {
	return &HealthRecordDTO{
		ID:                r.ID,
		PigID:             r.PigID,
		Symptoms:          r.Symptoms,
		Diagnosis:         r.Diagnosis,
		Treatment:         r.Treatment,
		TreatmentSupplyID: r.TreatmentSupplyID,
		QuantityUsed:      r.QuantityUsed,
		Mortality:         r.Mortality,
		RecordedAt:        r.RecordedAt,
		RecordedBy:        r.RecordedBy,
	}
}

// FromModels converts a record slice into DTOs.
func FromModels(rows []models.PigHealthRecord) []HealthRecordDTO {
	out := make([]HealthRecordDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
