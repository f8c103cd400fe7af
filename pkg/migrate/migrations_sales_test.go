package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSalesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_sales_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no sales migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS bookings",
		"FOREIGN KEY (client_id) REFERENCES users(user_id) ON DELETE CASCADE",
		"CREATE TABLE IF NOT EXISTS booking_pigs",
		"FOREIGN KEY (pigs_id) REFERENCES pigs(id) ON DELETE RESTRICT",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_booking_pigs_booking_pig ON booking_pigs (booking_id, pigs_id)",
		"CREATE TABLE IF NOT EXISTS available_pigs",
		"CHECK (weight_kg > 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_available_pigs_active ON available_pigs (pigs_id) WHERE status IN ('available', 'reserved')",
		"CREATE TABLE IF NOT EXISTS sales",
		"FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE SET NULL",
		"CREATE TABLE IF NOT EXISTS reservation_receipts",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_reservation_receipts_booking_id",
		"DROP TABLE IF EXISTS bookings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestVerificationMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_verification_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no verification migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS email_otp",
		"CREATE INDEX IF NOT EXISTS idx_email_otp_email_purpose_superseded ON email_otp (email, purpose, superseded)",
		"CREATE TABLE IF NOT EXISTS email_verification",
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_email_verification_jti ON email_verification (jti)",
		"DROP TABLE IF EXISTS email_verification",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
