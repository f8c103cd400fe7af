package supplies

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

func setupSuppliesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

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

func seedSupply(t *testing.T, repo Repository, name, category string, qty int64) *models.Supply {
	t.Helper()
	supply := &models.Supply{
		ItemName: name,
		Category: &category,
		Quantity: decimal.NewFromInt(qty),
		Unit:     "kg",
	}
	require.NoError(t, repo.Create(context.Background(), supply))
	return supply
}

func TestRepositoryListSearchAndCategory(t *testing.T) {
	repo := NewRepository(setupSuppliesTestDB(t))
	ctx := context.Background()

	seedSupply(t, repo, "Starter Feed", "feed", 100)
	seedSupply(t, repo, "Grower Feed", "feed", 50)
	seedSupply(t, repo, "Amoxicillin", "medicine", 20)

	q := "feed"
	rows, err := repo.List(ctx, ListFilter{Q: &q, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Grower Feed", rows[0].ItemName)
	assert.Equal(t, "Starter Feed", rows[1].ItemName)

	medicine := "Medicine"
	rows, err = repo.List(ctx, ListFilter{Category: &medicine, Pagination: pagination.Params{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Amoxicillin", rows[0].ItemName)
}

func TestRepositoryAdjustQuantityGuardsZero(t *testing.T) {
	repo := NewRepository(setupSuppliesTestDB(t))
	ctx := context.Background()

	supply := seedSupply(t, repo, "Starter Feed", "feed", 10)

	applied, err := repo.AdjustQuantity(ctx, supply.ID, decimal.NewFromInt(-4), 42)
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := repo.FindByID(ctx, supply.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(6)), "got %s", got.Quantity)
	require.NotNil(t, got.UpdatedBy)
	assert.EqualValues(t, 42, *got.UpdatedBy)

	// Drawing more than the remaining stock must not apply.
	applied, err = repo.AdjustQuantity(ctx, supply.ID, decimal.NewFromInt(-7), 42)
	require.NoError(t, err)
	assert.False(t, applied)

	got, err = repo.FindByID(ctx, supply.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(6)), "got %s", got.Quantity)

	applied, err = repo.AdjustQuantity(ctx, supply.ID+99, decimal.NewFromInt(1), 42)
	require.NoError(t, err)
	assert.False(t, applied)
}
