package models

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// User represents a farm staff member or client account.
type User struct {
	ID                int64            `gorm:"column:user_id;primaryKey"`
	Name              string           `gorm:"column:name;type:varchar(100);not null"`
	Username          string           `gorm:"column:username;type:varchar(50);not null;uniqueIndex"`
	Email             *string          `gorm:"column:email;type:varchar(120);uniqueIndex"`
	HashedPassword    string           `gorm:"column:hashed_password;not null"`
	Role              enums.UserRole   `gorm:"column:role;type:user_role;not null"`
	Status            enums.UserStatus `gorm:"column:status;type:user_status;not null;default:'ACTIVE'"`
	ProfilePictureURL *string          `gorm:"column:profile_picture_url;type:varchar(500)"`
	UpdatedBy         *int64           `gorm:"column:updated_by"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
