package sows

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

func setupSowsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS sows (
			sow_id          INTEGER PRIMARY KEY AUTOINCREMENT,
			sow_identifier  TEXT NOT NULL UNIQUE,
			status          TEXT NOT NULL,
			mating_date     DATE,
			expected_birth  DATE,
			last_birth_date DATE,
			caretaker_id    INTEGER,
			created_at      DATETIME,
			updated_at      DATETIME
		)
	`).Error)

	return db
}

func seedSow(t *testing.T, repo Repository, identifier string, status enums.SowStatus, expected *time.Time) *models.Sow {
	t.Helper()
	sow := &models.Sow{SowIdentifier: identifier, Status: status, ExpectedBirth: expected}
	require.NoError(t, repo.Create(context.Background(), sow))
	return sow
}

func timePtr(t time.Time) *time.Time { return &t }

func TestRepositoryIdentifierTaken(t *testing.T) {
	repo := NewRepository(setupSowsTestDB(t))
	ctx := context.Background()

	sow := seedSow(t, repo, "SOW-001", enums.SowStatusNonpregnant, nil)

	taken, err := repo.IdentifierTaken(ctx, "SOW-001", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// The sow itself does not count when renaming.
	taken, err = repo.IdentifierTaken(ctx, "SOW-001", sow.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.IdentifierTaken(ctx, "SOW-404", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepositoryListSearchAndStatus(t *testing.T) {
	repo := NewRepository(setupSowsTestDB(t))
	ctx := context.Background()

	seedSow(t, repo, "SOW-ALPHA", enums.SowStatusPregnant, nil)
	seedSow(t, repo, "SOW-BETA", enums.SowStatusNursing, nil)
	seedSow(t, repo, "GILT-01", enums.SowStatusPregnant, nil)

	q := "sow"
	rows, err := repo.List(ctx, ListFilter{Q: &q, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SOW-ALPHA", rows[0].SowIdentifier)
	assert.Equal(t, "SOW-BETA", rows[1].SowIdentifier)

	pregnant := enums.SowStatusPregnant
	rows, err = repo.List(ctx, ListFilter{Status: &pregnant, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SOW-ALPHA", rows[0].SowIdentifier)
	assert.Equal(t, "GILT-01", rows[1].SowIdentifier)
}

func TestRepositoryListDueWindow(t *testing.T) {
	repo := NewRepository(setupSowsTestDB(t))
	ctx := context.Background()

	now := time.Now()
	seedSow(t, repo, "DUE-SOON", enums.SowStatusPregnant, timePtr(now.AddDate(0, 0, 3)))
	seedSow(t, repo, "DUE-LATER", enums.SowStatusPregnant, timePtr(now.AddDate(0, 0, 30)))
	seedSow(t, repo, "OVERDUE", enums.SowStatusPregnant, timePtr(now.AddDate(0, 0, -2)))
	seedSow(t, repo, "NOT-PREGNANT", enums.SowStatusNursing, timePtr(now.AddDate(0, 0, 3)))

	window := 7
	rows, err := repo.List(ctx, ListFilter{DueWithinDays: &window, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "DUE-SOON", rows[0].SowIdentifier)
}

func TestRepositoryDelete(t *testing.T) {
	repo := NewRepository(setupSowsTestDB(t))
	ctx := context.Background()

	sow := seedSow(t, repo, "SOW-DEL", enums.SowStatusNonpregnant, nil)
	require.NoError(t, repo.Delete(ctx, sow.ID))
	assert.ErrorIs(t, repo.Delete(ctx, sow.ID), gorm.ErrRecordNotFound)
}
