package otp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgauth "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/auth"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/config"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/mailer"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/security"
)

// Service runs the email verification flow: issue a code, check it, and let
// registration consume the resulting token exactly once.
type Service interface {
	Start(ctx context.Context, req StartRequest) (*StartResponse, error)
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error)
	// ConsumeVerificationToken claims the single-use token inside the
	// caller's transaction and returns the verified email.
	ConsumeVerificationToken(ctx context.Context, tx *gorm.DB, token string) (string, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo   Repository
	tx     txRunner
	mail   mailer.Mailer
	otpCfg config.OTPConfig
	jwtCfg config.JWTConfig
}

// NewService constructs the OTP service.
func NewService(repo Repository, tx txRunner, mail mailer.Mailer, otpCfg config.OTPConfig, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("otp repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{repo: repo, tx: tx, mail: mail, otpCfg: otpCfg, jwtCfg: jwtCfg}, nil
}

func (s *service) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	email, purpose, err := normalizeTarget(req.Email, req.Purpose)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	latest, err := s.repo.LatestActive(ctx, email, purpose)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active code")
	}
	if latest != nil && latest.ResendAfter.After(now) {
		wait := int(latest.ResendAfter.Sub(now).Round(time.Second).Seconds())
		if wait < 1 {
			wait = 1
		}
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "Please wait before requesting a new code").
			WithDetails(map[string]any{"reason": "otp_cooldown", "resend_in": wait})
	}

	code, err := security.GenerateNumericCode(s.otpCfg.CodeLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate code")
	}

	row := &models.EmailOTP{
		Email:       email,
		Purpose:     purpose,
		HashedCode:  security.HashOTPCode(code, s.otpCfg.AppSecret),
		ExpiresAt:   now.Add(s.otpCfg.Expiry()),
		ResendAfter: now.Add(s.otpCfg.ResendCooldown()),
		LastSentAt:  &now,
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.SupersedeActive(ctx, email, purpose); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "supersede codes")
		}
		if err := repo.Insert(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store code")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := mailer.Message{
		To:      email,
		Subject: "Your SwineTech verification code",
		Text:    fmt.Sprintf("Your code is %s. It expires in %d minutes.", code, s.otpCfg.ExpiryMinutes),
	}
	if err := s.mail.Send(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send verification email")
	}

	return &StartResponse{ResendIn: s.otpCfg.ResendCooldownSeconds}, nil
}

func (s *service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	email, purpose, err := normalizeTarget(req.Email, req.Purpose)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.Code)
	if !isNumericCode(code, s.otpCfg.CodeLength) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid code").
			WithDetails(map[string]any{"field": "code"})
	}
	now := time.Now().UTC()

	row, err := s.repo.LatestActive(ctx, email, purpose)
	if err == gorm.ErrRecordNotFound {
		return nil, stateConflict("otp_not_found", "No active code. Please request a new one.")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active code")
	}
	if row.ExpiresAt.Before(now) {
		return nil, stateConflict("otp_expired", "Code expired. Please request a new one.")
	}
	// Exhausted rows reject even a correct code.
	if row.Attempts >= s.otpCfg.MaxAttempts {
		return nil, stateConflict("otp_attempts_exceeded", "Too many attempts. Please request a new code.")
	}
	if !security.VerifyOTPCode(code, s.otpCfg.AppSecret, row.HashedCode) {
		if err := s.repo.IncrementAttempts(ctx, row.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count attempt")
		}
		return nil, stateConflict("otp_mismatch", "Invalid code")
	}

	signed, jti, err := pkgauth.MintVerificationToken(s.jwtCfg, now, email, purpose)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint verification token")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		won, err := repo.MarkSuperseded(ctx, row.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retire code")
		}
		if !won {
			// A concurrent verify or resend claimed the row first.
			return stateConflict("otp_not_found", "No active code. Please request a new one.")
		}
		verification := &models.EmailVerification{
			Email:     email,
			Purpose:   purpose,
			JTI:       jti,
			IssuedAt:  now,
			ExpiresAt: now.Add(s.jwtCfg.VerificationTTL()),
		}
		if err := repo.InsertVerification(ctx, verification); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store verification")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &VerifyResponse{EmailVerificationToken: signed}, nil
}

func (s *service) ConsumeVerificationToken(ctx context.Context, tx *gorm.DB, token string) (string, error) {
	claims, err := pkgauth.ParseVerificationToken(s.jwtCfg, token)
	if err != nil {
		return "", stateConflict("verification_token_invalid", "Invalid or expired verification token")
	}
	now := time.Now().UTC()

	repo := s.repo.WithTx(tx)
	claimed, err := repo.ConsumeVerification(ctx, claims.ID, claims.Email, claims.Purpose, now)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume verification")
	}
	if claimed == 0 {
		existing, err := repo.FindVerificationByJTI(ctx, claims.ID)
		if err == nil && existing.Used {
			return "", stateConflict("verification_token_invalid", "token already used")
		}
		return "", stateConflict("verification_token_invalid", "Invalid or expired verification token")
	}
	return claims.Email, nil
}

func normalizeTarget(email string, purpose enums.OTPPurpose) (string, enums.OTPPurpose, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "email is required").
			WithDetails(map[string]any{"field": "email"})
	}
	if purpose == "" {
		purpose = enums.OTPPurposeRegister
	}
	if !purpose.IsValid() {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "invalid otp purpose").
			WithDetails(map[string]any{"field": "purpose"})
	}
	return email, purpose, nil
}

func isNumericCode(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stateConflict(reason, message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, message).
		WithDetails(map[string]any{"reason": reason})
}
