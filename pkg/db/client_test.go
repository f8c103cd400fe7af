package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}

	var before int64
	if err := db.Model(&testModel{}).Count(&before).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected WithTx to repanic")
			}
		}()
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			if err := tx.Create(&testModel{Name: "panicked"}).Error; err != nil {
				return err
			}
			panic("boom")
		})
	}()

	var after int64
	if err := db.Model(&testModel{}).Count(&after).Error; err != nil {
		t.Fatalf("count failed after panic: %v", err)
	}
	if after != before {
		t.Fatalf("expected %d records after panic rollback, got %d", before, after)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	client := &Client{conn: db}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestViolationHelpers(t *testing.T) {
	unique := errors.New(`ERROR: duplicate key value violates unique constraint "users_username_key" (SQLSTATE 23505)`)
	if !IsUniqueViolation(unique, "") {
		t.Fatal("expected unique violation to be detected")
	}
	if !IsUniqueViolation(unique, "users_username_key") {
		t.Fatal("expected named constraint to be detected")
	}
	if IsUniqueViolation(unique, "sows_sow_identifier_key") {
		t.Fatal("did not expect a different constraint to match")
	}

	fk := errors.New(`ERROR: update or delete on table "supplies" violates foreign key constraint "pig_health_records_treatment_supply_id_fkey" (SQLSTATE 23503)`)
	if !IsForeignKeyViolation(fk) {
		t.Fatal("expected foreign key violation to be detected")
	}
	if IsForeignKeyViolation(unique) {
		t.Fatal("did not expect unique violation to read as foreign key")
	}
	if IsUniqueViolation(nil, "") || IsForeignKeyViolation(nil) {
		t.Fatal("nil error should never match")
	}
}
