package models

import "time"

// ReservationReceipt stores the receipt document issued when a booking is
// approved. ReceiptData holds the rendered JSON document.
type ReservationReceipt struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	BookingID   int64     `gorm:"column:booking_id;not null;uniqueIndex"`
	ReceiptData string    `gorm:"column:receipt_data;type:text;not null"`
	GeneratedAt time.Time `gorm:"column:generated_at;autoCreateTime"`
}
