package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

// ReportDTO is the API shape of a generated report. ID is zero when the
// report was generated without a snapshot.
type ReportDTO struct {
	ID          int64            `json:"id"`
	ReportType  enums.ReportType `json:"report_type"`
	GeneratedBy *int64           `json:"generated_by,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	Data        types.JSONText   `json:"data"`
}

// ReportFilters narrows what a generator aggregates over. The date window
// applies to every generator except inventory, which only reads the
// low-stock threshold.
type ReportFilters struct {
	DateFrom          *types.Date      `json:"date_from"`
	DateTo            *types.Date      `json:"date_to"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
}

// GenerateReportRequest asks for a report. Snapshot defaults to true; pass
// false to get the document without persisting it.
type GenerateReportRequest struct {
	ReportType enums.ReportType `json:"report_type" validate:"required"`
	Filters    *ReportFilters   `json:"filters"`
	Snapshot   *bool            `json:"snapshot"`
}

// ListFilter narrows the snapshot history.
type ListFilter struct {
	ReportType *enums.ReportType
}

// FromModel maps a stored snapshot to its DTO.
func FromModel(m *models.Report) *ReportDTO {
	return &ReportDTO{
		ID:          m.ID,
		ReportType:  m.ReportType,
		GeneratedBy: m.GeneratedBy,
		GeneratedAt: m.GeneratedAt,
		Data:        types.JSONText(m.Data),
	}
}

// FromModels maps stored snapshots to DTOs.
func FromModels(rows []models.Report) []ReportDTO {
	out := make([]ReportDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
