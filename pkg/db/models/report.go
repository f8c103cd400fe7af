package models

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Report is a persisted snapshot of a generated farm report. Data holds the
// report payload as JSON.
type Report struct {
	ID          int64            `gorm:"column:id;primaryKey"`
	ReportType  enums.ReportType `gorm:"column:report_type;type:report_type;not null"`
	GeneratedBy *int64           `gorm:"column:generated_by"`
	GeneratedAt time.Time        `gorm:"column:generated_at;autoCreateTime"`
	Data        string           `gorm:"column:data;type:text;not null"`
}
