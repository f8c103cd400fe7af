package models

import "time"

// Pig represents an individual animal, usually tied to its litter.
type Pig struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	LitterID      *int64     `gorm:"column:litter_id"`
	SowIdentifier *string    `gorm:"column:sow_identifier;type:varchar(50)"`
	BirthDate     *time.Time `gorm:"column:birth_date;type:date"`
	Status        string     `gorm:"column:status;type:varchar(20);not null;default:'alive'"`
	Notes         *string    `gorm:"column:notes;type:text"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
