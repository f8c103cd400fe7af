package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records a completed payment, optionally tied to the booking it
// settles.
type Sale struct {
	ID              int64           `gorm:"column:id;primaryKey"`
	BookingID       *int64          `gorm:"column:booking_id"`
	ItemType        string          `gorm:"column:item_type;type:varchar(50);not null"`
	ItemDescription *string         `gorm:"column:item_description;type:varchar(255)"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	PaymentDate     time.Time       `gorm:"column:payment_date;type:date;not null"`
	RecordedBy      *int64          `gorm:"column:recorded_by"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
