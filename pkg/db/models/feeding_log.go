package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeedingLog records a single feeding of a litter.
type FeedingLog struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	LitterID    int64           `gorm:"column:litter_id;not null"`
	FeedType    string          `gorm:"column:feed_type;type:varchar(50);not null"`
	QuantityKg  decimal.Decimal `gorm:"column:quantity_kg;type:numeric(10,2);not null"`
	FeedingTime time.Time       `gorm:"column:feeding_time;not null"`
	CaretakerID *int64          `gorm:"column:caretaker_id"`
}
