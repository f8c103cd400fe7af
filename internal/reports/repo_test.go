package reports

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
)

func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS reports (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			report_type  TEXT NOT NULL,
			generated_by INTEGER,
			generated_at DATETIME,
			data         TEXT NOT NULL
		)
	`).Error)
	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS sales (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			booking_id       INTEGER,
			item_type        TEXT NOT NULL,
			item_description TEXT,
			total_amount     NUMERIC NOT NULL,
			payment_date     DATE NOT NULL,
			recorded_by      INTEGER,
			created_at       DATETIME
		)
	`).Error)
	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS expenses (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT NOT NULL,
			amount      NUMERIC NOT NULL,
			category    TEXT,
			date_spent  DATE NOT NULL,
			recorded_by INTEGER,
			created_at  DATETIME
		)
	`).Error)
	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS pig_health_records (
			health_record_id    INTEGER PRIMARY KEY AUTOINCREMENT,
			pigs_id             INTEGER NOT NULL,
			symptoms            TEXT,
			diagnosis           TEXT,
			treatment           TEXT,
			treatment_supply_id INTEGER,
			quantity_used       NUMERIC,
			mortality           BOOLEAN NOT NULL DEFAULT 0,
			recorded_at         DATETIME NOT NULL,
			recorded_by         INTEGER
		)
	`).Error)
	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS feeding_logs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			litter_id    INTEGER NOT NULL,
			feed_type    TEXT NOT NULL,
			quantity_kg  NUMERIC NOT NULL,
			feeding_time DATETIME NOT NULL,
			caretaker_id INTEGER
		)
	`).Error)
	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS supplies (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			item_name  TEXT NOT NULL,
			category   TEXT,
			quantity   NUMERIC NOT NULL DEFAULT 0,
			unit       TEXT NOT NULL,
			updated_by INTEGER,
			updated_at DATETIME
		)
	`).Error)

	return db
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	return mustDate(t, value).Time
}

func TestRepositorySnapshotHistory(t *testing.T) {
	repo := NewRepository(setupReportsTestDB(t))
	ctx := context.Background()

	first := &models.Report{ReportType: enums.ReportTypeSales, Data: `{"revenue":"0"}`}
	require.NoError(t, repo.Create(ctx, first))
	second := &models.Report{ReportType: enums.ReportTypeInventory, Data: `{"items":[]}`}
	require.NoError(t, repo.Create(ctx, second))

	rows, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)

	inventory := enums.ReportTypeInventory
	rows, err = repo.List(ctx, ListFilter{ReportType: &inventory})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.ReportTypeInventory, rows[0].ReportType)

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ReportTypeSales, found.ReportType)
	assert.JSONEq(t, `{"revenue":"0"}`, found.Data)

	_, err = repo.FindByID(ctx, 99)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestStatsSalesAggregates(t *testing.T) {
	db := setupReportsTestDB(t)
	stats := NewStatsSource(db)
	ctx := context.Background()

	seedSale := func(amount string, paid time.Time) {
		require.NoError(t, db.Create(&models.Sale{
			ItemType:    "pig",
			TotalAmount: decimal.RequireFromString(amount),
			PaymentDate: paid,
		}).Error)
	}
	seedSale("2000", day(t, "2025-06-15"))
	seedSale("1000", day(t, "2025-07-01"))
	seedSale("2000", day(t, "2025-07-01"))
	require.NoError(t, db.Create(&models.Expense{
		Description: "Feed restock",
		Amount:      decimal.NewFromInt(1200),
		DateSpent:   day(t, "2025-07-03"),
	}).Error)

	total, err := stats.SalesTotal(ctx, nil, nil)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(5000)), "total %s", total)

	july := mustDate(t, "2025-07-01")
	end := mustDate(t, "2025-07-31")
	total, err = stats.SalesTotal(ctx, &july, &end)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(3000)), "july total %s", total)

	days, err := stats.DailyRevenue(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-06-15", days[0].Day.String())
	assert.True(t, days[1].Amount.Equal(decimal.NewFromInt(3000)), "grouped %s", days[1].Amount)

	expenses, err := stats.ExpenseTotal(ctx, &july, &end)
	require.NoError(t, err)
	assert.True(t, expenses.Equal(decimal.NewFromInt(1200)), "expenses %s", expenses)

	expenseDays, err := stats.DailyExpenses(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, expenseDays, 1)
	assert.Equal(t, "2025-07-03", expenseDays[0].Day.String())
}

func TestStatsMortalityWindow(t *testing.T) {
	db := setupReportsTestDB(t)
	stats := NewStatsSource(db)
	ctx := context.Background()

	pneumonia := "Pneumonia"
	seedRecord := func(diagnosis *string, mortality bool, at time.Time) {
		require.NoError(t, db.Create(&models.PigHealthRecord{
			PigID:      1,
			Diagnosis:  diagnosis,
			Mortality:  mortality,
			RecordedAt: at,
		}).Error)
	}
	seedRecord(&pneumonia, true, time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC))
	seedRecord(&pneumonia, true, time.Date(2025, 7, 14, 16, 0, 0, 0, time.UTC))
	seedRecord(nil, true, time.Date(2025, 7, 14, 18, 0, 0, 0, time.UTC))
	seedRecord(&pneumonia, false, time.Date(2025, 7, 2, 8, 0, 0, 0, time.UTC))

	causes, err := stats.MortalityByDiagnosis(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, causes, 2)
	assert.Equal(t, int64(2), causes[0].Cases)
	require.NotNil(t, causes[0].Diagnosis)
	assert.Equal(t, "Pneumonia", *causes[0].Diagnosis)

	// The window covers the whole final day, so the 18:00 record counts.
	from := mustDate(t, "2025-07-14")
	to := mustDate(t, "2025-07-14")
	causes, err = stats.MortalityByDiagnosis(ctx, &from, &to)
	require.NoError(t, err)
	var total int64
	for _, c := range causes {
		total += c.Cases
	}
	assert.Equal(t, int64(2), total)
}

func TestStatsFeedUsageAndSupplies(t *testing.T) {
	db := setupReportsTestDB(t)
	stats := NewStatsSource(db)
	ctx := context.Background()

	seedLog := func(feedType, kg string, at time.Time) {
		require.NoError(t, db.Create(&models.FeedingLog{
			LitterID:    1,
			FeedType:    feedType,
			QuantityKg:  decimal.RequireFromString(kg),
			FeedingTime: at,
		}).Error)
	}
	seedLog("grower", "10.5", time.Date(2025, 7, 1, 7, 0, 0, 0, time.UTC))
	seedLog("grower", "20", time.Date(2025, 7, 2, 7, 0, 0, 0, time.UTC))
	seedLog("starter", "5", time.Date(2025, 7, 2, 7, 30, 0, 0, time.UTC))

	usage, err := stats.FeedUsageByType(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "grower", usage[0].FeedType)
	assert.True(t, usage[0].Kg.Equal(decimal.RequireFromString("30.5")), "grower kg %s", usage[0].Kg)

	from := mustDate(t, "2025-07-02")
	usage, err = stats.FeedUsageByType(ctx, &from, nil)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.True(t, usage[0].Kg.Equal(decimal.NewFromInt(20)), "windowed grower kg %s", usage[0].Kg)

	require.NoError(t, db.Create(&models.Supply{ItemName: "Starter feed", Quantity: decimal.NewFromInt(50), Unit: "kg"}).Error)
	require.NoError(t, db.Create(&models.Supply{ItemName: "Dewormer", Quantity: decimal.NewFromInt(3), Unit: "bottle"}).Error)

	supplies, err := stats.SupplyLevels(ctx)
	require.NoError(t, err)
	require.Len(t, supplies, 2)
	assert.Equal(t, "Dewormer", supplies[0].ItemName)
}
