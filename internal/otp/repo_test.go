package otp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

func setupOTPTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	emailOTP := `
CREATE TABLE IF NOT EXISTS email_otp (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL,
  purpose TEXT NOT NULL,
  hashed_code TEXT NOT NULL,
  expires_at DATETIME NOT NULL,
  attempts INTEGER NOT NULL DEFAULT 0,
  resend_after DATETIME NOT NULL,
  superseded INTEGER NOT NULL DEFAULT 0,
  last_sent_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	emailVerification := `
CREATE TABLE IF NOT EXISTS email_verification (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL,
  purpose TEXT NOT NULL,
  jti TEXT NOT NULL UNIQUE,
  issued_at DATETIME NOT NULL,
  expires_at DATETIME NOT NULL,
  used INTEGER NOT NULL DEFAULT 0,
  used_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(emailOTP).Error)
	require.NoError(t, db.Exec(emailVerification).Error)
	return db
}

func seedOTPRow(t *testing.T, repo Repository, email string, superseded bool, expiresAt time.Time) *models.EmailOTP {
	t.Helper()
	row := &models.EmailOTP{
		Email:       email,
		Purpose:     enums.OTPPurposeRegister,
		HashedCode:  "digest",
		ExpiresAt:   expiresAt,
		ResendAfter: time.Now().Add(-time.Minute),
		Superseded:  superseded,
	}
	require.NoError(t, repo.Insert(context.Background(), row))
	return row
}

func TestRepositoryLatestActiveSkipsSuperseded(t *testing.T) {
	db := setupOTPTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	future := time.Now().Add(5 * time.Minute)
	seedOTPRow(t, repo, "pen@example.com", true, future)
	active := seedOTPRow(t, repo, "pen@example.com", false, future)
	seedOTPRow(t, repo, "other@example.com", false, future)

	row, err := repo.LatestActive(ctx, "pen@example.com", enums.OTPPurposeRegister)
	require.NoError(t, err)
	assert.Equal(t, active.ID, row.ID)

	_, err = repo.LatestActive(ctx, "missing@example.com", enums.OTPPurposeRegister)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySupersedeActiveRetiresAllRows(t *testing.T) {
	db := setupOTPTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	future := time.Now().Add(5 * time.Minute)
	seedOTPRow(t, repo, "farm@example.com", false, future)
	seedOTPRow(t, repo, "farm@example.com", false, future)

	affected, err := repo.SupersedeActive(ctx, "farm@example.com", enums.OTPPurposeRegister)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	_, err = repo.LatestActive(ctx, "farm@example.com", enums.OTPPurposeRegister)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryMarkSupersededWinsOnce(t *testing.T) {
	db := setupOTPTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	row := seedOTPRow(t, repo, "race@example.com", false, time.Now().Add(5*time.Minute))

	won, err := repo.MarkSuperseded(ctx, row.ID)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.MarkSuperseded(ctx, row.ID)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestRepositoryIncrementAttempts(t *testing.T) {
	db := setupOTPTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	row := seedOTPRow(t, repo, "tries@example.com", false, time.Now().Add(5*time.Minute))

	require.NoError(t, repo.IncrementAttempts(ctx, row.ID))
	require.NoError(t, repo.IncrementAttempts(ctx, row.ID))

	reloaded, err := repo.LatestActive(ctx, "tries@example.com", enums.OTPPurposeRegister)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Attempts)
}

func TestRepositoryConsumeVerificationIsSingleUse(t *testing.T) {
	db := setupOTPTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	row := &models.EmailVerification{
		Email:     "done@example.com",
		Purpose:   enums.OTPPurposeRegister,
		JTI:       "jti-consume-once",
		IssuedAt:  now,
		ExpiresAt: now.Add(15 * time.Minute),
	}
	require.NoError(t, repo.InsertVerification(ctx, row))

	claimed, err := repo.ConsumeVerification(ctx, row.JTI, row.Email, row.Purpose, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claimed)

	claimed, err = repo.ConsumeVerification(ctx, row.JTI, row.Email, row.Purpose, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), claimed)

	reloaded, err := repo.FindVerificationByJTI(ctx, row.JTI)
	require.NoError(t, err)
	assert.True(t, reloaded.Used)
	assert.NotNil(t, reloaded.UsedAt)
}

func TestRepositoryConsumeVerificationRejectsExpired(t *testing.T) {
	db := setupOTPTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	row := &models.EmailVerification{
		Email:     "late@example.com",
		Purpose:   enums.OTPPurposeRegister,
		JTI:       "jti-expired",
		IssuedAt:  now.Add(-time.Hour),
		ExpiresAt: now.Add(-30 * time.Minute),
	}
	require.NoError(t, repo.InsertVerification(ctx, row))

	claimed, err := repo.ConsumeVerification(ctx, row.JTI, row.Email, row.Purpose, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), claimed)
}
