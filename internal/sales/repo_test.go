package sales

import (
	"context"
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
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/types"
)

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

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

	return db
}

func seedSale(t *testing.T, repo Repository, bookingID *int64, itemType string, paid time.Time) *models.Sale {
	t.Helper()
	sale := &models.Sale{
		BookingID:   bookingID,
		ItemType:    itemType,
		TotalAmount: decimal.NewFromInt(5000),
		PaymentDate: paid,
	}
	require.NoError(t, repo.Create(context.Background(), sale))
	return sale
}

func TestRepositoryListWindowAndBooking(t *testing.T) {
	repo := NewRepository(setupSalesTestDB(t))
	ctx := context.Background()

	booking := int64(2)
	seedSale(t, repo, nil, "lechon", time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	july := seedSale(t, repo, &booking, "pig", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	august := seedSale(t, repo, nil, "pig", time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC))

	from := types.DateOf(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	to := types.DateOf(time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC))
	rows, err := repo.List(ctx, ListFilter{DateFrom: &from, DateTo: &to, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, july.ID, rows[0].ID)

	rows, err = repo.List(ctx, ListFilter{DateFrom: &from, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, august.ID, rows[0].ID, "newest payment first")

	rows, err = repo.List(ctx, ListFilter{BookingID: &booking, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, july.ID, rows[0].ID)

	ok, err := repo.ExistsForBooking(ctx, booking)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsForBooking(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}
