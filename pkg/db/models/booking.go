package models

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Booking represents a client's request to reserve pigs or order lechon.
type Booking struct {
	ID          int64               `gorm:"column:id;primaryKey"`
	ClientID    int64               `gorm:"column:client_id;not null"`
	Type        enums.BookingType   `gorm:"column:type;type:booking_type;not null"`
	ItemDetails *string             `gorm:"column:item_details;type:text"`
	Status      enums.BookingStatus `gorm:"column:status;type:booking_status;not null;default:'pending'"`
	BookingDate time.Time           `gorm:"column:booking_date;type:date;not null"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
