package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense records money spent on the farm.
type Expense struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	Description string          `gorm:"column:description;type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Category    *string         `gorm:"column:category;type:varchar(50)"`
	DateSpent   time.Time       `gorm:"column:date_spent;type:date;not null"`
	RecordedBy  *int64          `gorm:"column:recorded_by"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
