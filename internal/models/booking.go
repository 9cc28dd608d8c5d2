package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SlotID string `gorm:"type:uuid;uniqueIndex:idx_bookings_slot_user" json:"slot_id"`
	UserID uint   `gorm:"uniqueIndex:idx_bookings_slot_user" json:"user_id"`

	// Snapshot do nome no momento da reserva
	Username string `gorm:"size:100;not null" json:"username"`

	CreatedAt time.Time `json:"created_at"`
}
