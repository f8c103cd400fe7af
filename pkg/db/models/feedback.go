package models

import "time"

// Feedback holds a comment left by a client.
type Feedback struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	ClientID    *int64    `gorm:"column:client_id"`
	Comment     string    `gorm:"column:comment;type:varchar(2000);not null"`
	SubmittedAt time.Time `gorm:"column:submitted_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the historical singular table name.
func (Feedback) TableName() string {
	return "feedback"
}
