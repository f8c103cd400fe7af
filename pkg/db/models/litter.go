package models

import "time"

// Litter represents a group of piglets born together.
//
// SowIdentifier is a loose string reference kept for historical data whose
// sow was never registered, so no foreign key backs it. CaretakerID likewise
// carries no constraint.
type Litter struct {
	ID            int64     `gorm:"column:litter_id;primaryKey"`
	SowIdentifier *string   `gorm:"column:sow_identifier;type:varchar(50)"`
	BirthDate     time.Time `gorm:"column:birth_date;type:date;not null"`
	LitterSize    *int      `gorm:"column:litter_size"`
	CaretakerID   *int64    `gorm:"column:caretaker_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
