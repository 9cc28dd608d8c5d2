package models

import "time"

// Um conjunto de janelas por provider e por data
type AvailabilitySet struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ProviderID uint   `gorm:"uniqueIndex:idx_sets_provider_date" json:"provider_id"`
	Date       string `gorm:"size:10;uniqueIndex:idx_sets_provider_date" json:"date"`

	TimeSlots []TimeSlot `gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE;" json:"time_slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
