package receipts

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

func setupReceiptsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS bookings (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id    INTEGER NOT NULL,
			type         TEXT NOT NULL,
			item_details TEXT,
			status       TEXT NOT NULL DEFAULT 'pending',
			booking_date DATE NOT NULL,
			created_at   DATETIME,
			updated_at   DATETIME
		)
	`).Error)
	require.NoError(t, db.Exec(`
		CREATE TABLE IF NOT EXISTS reservation_receipts (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			booking_id   INTEGER NOT NULL UNIQUE,
			receipt_data TEXT NOT NULL,
			generated_at DATETIME
		)
	`).Error)

	return db
}

func seedBookingWithReceipt(t *testing.T, db *gorm.DB, clientID int64) (*models.Booking, *models.ReservationReceipt) {
	t.Helper()
	booking := &models.Booking{
		ClientID:    clientID,
		Type:        enums.BookingTypePig,
		Status:      enums.BookingStatusApproved,
		BookingDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(booking).Error)

	receipt := &models.ReservationReceipt{
		BookingID:   booking.ID,
		ReceiptData: fmt.Sprintf(`{"receipt_no":"RCPT-%06d"}`, booking.ID),
	}
	require.NoError(t, db.Create(receipt).Error)
	return booking, receipt
}

func TestRepositoryListScopes(t *testing.T) {
	db := setupReceiptsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	bookingA, receiptA := seedBookingWithReceipt(t, db, 10)
	_, receiptB := seedBookingWithReceipt(t, db, 20)

	rows, err := repo.List(ctx, ListFilter{Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, receiptB.ID, rows[0].ID)

	rows, err = repo.List(ctx, ListFilter{BookingID: &bookingA.ID, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, receiptA.ID, rows[0].ID)

	clientA := int64(10)
	rows, err = repo.List(ctx, ListFilter{ClientID: &clientA, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, receiptA.ID, rows[0].ID)

	stranger := int64(99)
	rows, err = repo.List(ctx, ListFilter{ClientID: &stranger, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryExistsForBooking(t *testing.T) {
	db := setupReceiptsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	booking, receipt := seedBookingWithReceipt(t, db, 10)

	ok, err := repo.ExistsForBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsForBooking(ctx, booking.ID+50)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.ID, got.ID)
}
