package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID int64
	Role   enums.UserRole
}

// AccessTokenClaims represents the typed JWT issued on login. Subject
// duplicates UserID as a string for clients that only read sub.
type AccessTokenClaims struct {
	UserID int64          `json:"user_id"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// VerificationTokenClaims represents the short-lived token proving an email
// passed OTP verification. The jti (RegisteredClaims.ID) keys the single-use
// record in the database.
type VerificationTokenClaims struct {
	Email   string           `json:"email"`
	Purpose enums.OTPPurpose `json:"purpose"`
	jwt.RegisteredClaims
}
