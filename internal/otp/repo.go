package otp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds the OTP repository backed by gorm.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) LatestActive(ctx context.Context, email string, purpose enums.OTPPurpose) (*models.EmailOTP, error) {
	var row models.EmailOTP
	err := r.db.WithContext(ctx).
		Where("email = ? AND purpose = ? AND superseded = ?", email, purpose, false).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) SupersedeActive(ctx context.Context, email string, purpose enums.OTPPurpose) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.EmailOTP{}).
		Where("email = ? AND purpose = ? AND superseded = ?", email, purpose, false).
		Update("superseded", true)
	return result.RowsAffected, result.Error
}

func (r *repository) Insert(ctx context.Context, row *models.EmailOTP) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) IncrementAttempts(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.EmailOTP{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *repository) MarkSuperseded(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.EmailOTP{}).
		Where("id = ? AND superseded = ?", id, false).
		Update("superseded", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) InsertVerification(ctx context.Context, row *models.EmailVerification) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) ConsumeVerification(ctx context.Context, jti, email string, purpose enums.OTPPurpose, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.EmailVerification{}).
		Where("jti = ? AND email = ? AND purpose = ? AND used = ? AND expires_at > ?",
			jti, email, purpose, false, now).
		Updates(map[string]any{"used": true, "used_at": now})
	return result.RowsAffected, result.Error
}

func (r *repository) FindVerificationByJTI(ctx context.Context, jti string) (*models.EmailVerification, error) {
	var row models.EmailVerification
	if err := r.db.WithContext(ctx).Where("jti = ?", jti).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
