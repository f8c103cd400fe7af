package models

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// EmailVerification backs a minted verification token. The row is consumed
// exactly once, keyed by the token's jti claim.
type EmailVerification struct {
	ID        int64            `gorm:"column:id;primaryKey"`
	Email     string           `gorm:"column:email;type:varchar(120);not null"`
	Purpose   enums.OTPPurpose `gorm:"column:purpose;type:otp_purpose;not null"`
	JTI       string           `gorm:"column:jti;type:varchar(64);not null;uniqueIndex"`
	IssuedAt  time.Time        `gorm:"column:issued_at;not null"`
	ExpiresAt time.Time        `gorm:"column:expires_at;not null"`
	Used      bool             `gorm:"column:used;not null;default:false"`
	UsedAt    *time.Time       `gorm:"column:used_at"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the historical singular table name.
func (EmailVerification) TableName() string {
	return "email_verification"
}
