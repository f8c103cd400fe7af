package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// AvailablePig represents a sale listing for a pig.
type AvailablePig struct {
	ID        int64                 `gorm:"column:id;primaryKey"`
	PigID     int64                 `gorm:"column:pigs_id;not null"`
	WeightKg  decimal.Decimal       `gorm:"column:weight_kg;type:numeric(10,2);not null"`
	SaleType  enums.ListingSaleType `gorm:"column:sale_type;type:listing_sale_type;not null"`
	Status    enums.ListingStatus   `gorm:"column:status;type:listing_status;not null;default:'available'"`
	ListedBy  *int64                `gorm:"column:listed_by"`
	Notes     *string               `gorm:"column:notes;type:text"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
