package models

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Sow represents a breeding sow tracked through its reproductive cycle.
type Sow struct {
	ID            int64           `gorm:"column:sow_id;primaryKey"`
	SowIdentifier string          `gorm:"column:sow_identifier;type:varchar(50);not null;uniqueIndex"`
	Status        enums.SowStatus `gorm:"column:status;type:sow_status;not null"`
	MatingDate    *time.Time      `gorm:"column:mating_date;type:date"`
	ExpectedBirth *time.Time      `gorm:"column:expected_birth;type:date"`
	LastBirthDate *time.Time      `gorm:"column:last_birth_date;type:date"`
	CaretakerID   *int64          `gorm:"column:caretaker_id"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
