package models

// BookingPig links a booking to one of the listed pigs it reserves.
type BookingPig struct {
	ID        int64 `gorm:"column:id;primaryKey"`
	BookingID int64 `gorm:"column:booking_id;not null;uniqueIndex:uq_booking_pigs_booking_pig"`
	PigID     int64 `gorm:"column:pigs_id;not null;uniqueIndex:uq_booking_pigs_booking_pig"`
}
