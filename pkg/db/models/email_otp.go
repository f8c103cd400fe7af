package models

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// EmailOTP holds one issued verification code. Only the most recent
// non-superseded row per (email, purpose) is live; HashedCode is an HMAC of
// the code, never the code itself.
type EmailOTP struct {
	ID          int64            `gorm:"column:id;primaryKey"`
	Email       string           `gorm:"column:email;type:varchar(120);not null"`
	Purpose     enums.OTPPurpose `gorm:"column:purpose;type:otp_purpose;not null"`
	HashedCode  string           `gorm:"column:hashed_code;type:varchar(64);not null"`
	ExpiresAt   time.Time        `gorm:"column:expires_at;not null"`
	Attempts    int              `gorm:"column:attempts;not null;default:0"`
	ResendAfter time.Time        `gorm:"column:resend_after;not null"`
	Superseded  bool             `gorm:"column:superseded;not null;default:false"`
	LastSentAt  *time.Time       `gorm:"column:last_sent_at"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the historical singular table name.
func (EmailOTP) TableName() string {
	return "email_otp"
}
