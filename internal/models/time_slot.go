package models

import "time"

type TimeSlot struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	SetID string `gorm:"type:uuid;index" json:"set_id"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	// Capacity 0 = sem limite de vagas
	Capacity int `gorm:"not null;default:1" json:"capacity"`

	// Position preserva a ordem de inserção dentro do set
	Position int `gorm:"not null" json:"position"`

	Bookings []Booking `gorm:"foreignKey:SlotID;constraint:OnDelete:CASCADE;" json:"bookings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
