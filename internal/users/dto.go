package users

import (
	"time"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID                int64            `json:"user_id"`
	Name              string           `json:"name"`
	Username          string           `json:"username"`
	Email             *string          `json:"email,omitempty"`
	Role              enums.UserRole   `json:"role"`
	Status            enums.UserStatus `json:"status"`
	ProfilePictureURL *string          `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new account.
type CreateUserDTO struct {
	Name           string
	Username       string
	Email          *string
	HashedPassword string
	Role           enums.UserRole
	Status         enums.UserStatus
	UpdatedBy      *int64
}

// ListFilter narrows the admin user listing.
type ListFilter struct {
	ActiveOnly bool
	Role       *enums.UserRole
	Q          *string
	Pagination pagination.Params
}

// CountSummary reports account totals for the admin dashboard.
type CountSummary struct {
	Total  int64            `json:"total"`
	ByRole map[string]int64 `json:"by_role"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                u.ID,
		Name:              u.Name,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		Status:            u.Status,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func FromModels(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, *FromModel(&users[i]))
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	status := c.Status
	if status == "" {
		status = enums.UserStatusActive
	}

	return &models.User{
		Name:           c.Name,
		Username:       c.Username,
		Email:          c.Email,
		HashedPassword: c.HashedPassword,
		Role:           c.Role,
		Status:         status,
		UpdatedBy:      c.UpdatedBy,
	}
}
