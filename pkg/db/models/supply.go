package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supply represents a stocked consumable such as feed, medicine or vaccine.
type Supply struct {
	ID        int64           `gorm:"column:id;primaryKey"`
	ItemName  string          `gorm:"column:item_name;type:varchar(100);not null"`
	Category  *string         `gorm:"column:category;type:varchar(50)"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:numeric(12,2);not null;default:0"`
	Unit      string          `gorm:"column:unit;type:varchar(20);not null"`
	UpdatedBy *int64          `gorm:"column:updated_by"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
