package otp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

// Repository persists OTP rows and their verification tokens.
type Repository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) Repository

	// LatestActive loads the newest non-superseded row for the pair.
	LatestActive(ctx context.Context, email string, purpose enums.OTPPurpose) (*models.EmailOTP, error)
	// SupersedeActive retires every non-superseded row for the pair.
	SupersedeActive(ctx context.Context, email string, purpose enums.OTPPurpose) (int64, error)
	Insert(ctx context.Context, row *models.EmailOTP) error
	IncrementAttempts(ctx context.Context, id int64) error
	// MarkSuperseded retires a single row only if it is still active,
	// reporting whether this call won the update.
	MarkSuperseded(ctx context.Context, id int64) (bool, error)

	InsertVerification(ctx context.Context, row *models.EmailVerification) error
	// ConsumeVerification flips used=false to used=true for a live token,
	// returning the number of rows claimed (0 or 1).
	ConsumeVerification(ctx context.Context, jti, email string, purpose enums.OTPPurpose, now time.Time) (int64, error)
	FindVerificationByJTI(ctx context.Context, jti string) (*models.EmailVerification, error)
}
