package auth

import (
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint. The
// username field also accepts an email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token produced by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateProfileRequest edits the caller's own account. Nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name              *string `json:"name" validate:"omitempty,max=100"`
	Email             *string `json:"email" validate:"omitempty,email,max=120"`
	Password          *string `json:"password" validate:"omitempty,min=8"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,max=500"`
}

// AdminUpdateUserRequest extends profile edits with role and status changes
// available to administrators. Usernames are immutable.
type AdminUpdateUserRequest struct {
	Name              *string           `json:"name" validate:"omitempty,max=100"`
	Email             *string           `json:"email" validate:"omitempty,email,max=120"`
	Password          *string           `json:"password" validate:"omitempty,min=8"`
	ProfilePictureURL *string           `json:"profile_picture_url" validate:"omitempty,max=500"`
	Role              *enums.UserRole   `json:"role"`
	Status            *enums.UserStatus `json:"status"`
}

// RegisterClientRequest self-registers a customer account. The verification
// token comes from the OTP flow and binds the registration to its email.
type RegisterClientRequest struct {
	Name                   *string `json:"name" validate:"omitempty,max=100"`
	Username               string  `json:"username" validate:"required,min=3,max=50"`
	Email                  string  `json:"email" validate:"required,email,max=120"`
	Password               string  `json:"password" validate:"required,min=8"`
	EmailVerificationToken string  `json:"email_verification_token" validate:"required"`
}

// RegisterAdminRequest bootstraps an administrator account, gated by the
// signup code from configuration.
type RegisterAdminRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email,max=120"`
	Password string  `json:"password" validate:"required,min=8"`
	Code     string  `json:"code" validate:"required"`
}

// AdminCreateUserRequest lets an administrator open a staff account.
type AdminCreateUserRequest struct {
	Name     *string        `json:"name" validate:"omitempty,max=100"`
	Username string         `json:"username" validate:"required,min=3,max=50"`
	Email    string         `json:"email" validate:"required,email,max=120"`
	Password string         `json:"password" validate:"required,min=8"`
	Role     enums.UserRole `json:"role" validate:"required"`
}

// RegisterResponse confirms the account that was created.
type RegisterResponse struct {
	UserID int64            `json:"user_id"`
	Role   enums.UserRole   `json:"role"`
	Status enums.UserStatus `json:"status"`
}
