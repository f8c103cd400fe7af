package models

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Inquiry represents a client question routed to farm staff.
type Inquiry struct {
	ID          int64               `gorm:"column:inquiry_id;primaryKey"`
	ClientID    int64               `gorm:"column:client_id;not null"`
	Subject     string              `gorm:"column:subject;type:varchar(200);not null"`
	Message     string              `gorm:"column:message;type:varchar(2000);not null"`
	Status      enums.InquiryStatus `gorm:"column:status;type:inquiry_status;not null;default:'unread'"`
	SubmittedAt time.Time           `gorm:"column:submitted_at;autoCreateTime"`
	RespondedBy *int64              `gorm:"column:responded_by"`
	RespondedAt *time.Time          `gorm:"column:responded_at"`
	Response    *string             `gorm:"column:response;type:varchar(1000)"`
}

// TableName keeps the historical singular table name.
func (Inquiry) TableName() string {
	return "inquiry"
}
