package otp

import "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"

// StartRequest asks for a fresh verification code. Purpose defaults to
// register when omitted.
type StartRequest struct {
	Email   string           `json:"email" validate:"required,email,max=120"`
	Purpose enums.OTPPurpose `json:"purpose"`
}

// StartResponse reports how long the caller must wait before requesting
// another code. The code itself travels only by email.
type StartResponse struct {
	ResendIn int `json:"resend_in"`
}

// VerifyRequest submits a received code for checking.
type VerifyRequest struct {
	Email   string           `json:"email" validate:"required,email,max=120"`
	Purpose enums.OTPPurpose `json:"purpose"`
	Code    string           `json:"code" validate:"required"`
}

// VerifyResponse carries the signed token that authorizes registration for
// the verified email.
type VerifyResponse struct {
	EmailVerificationToken string `json:"email_verification_token"`
}
