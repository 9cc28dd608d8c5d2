package dto

type BookerDTO struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type TimeSlotDTO struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	// Capacity 0 = sem limite
	Capacity    int `json:"capacity"`
	BookedCount int `json:"booked_count"`

	BookedBy []BookerDTO `json:"booked_by"`
}

type AvailabilitySetDTO struct {
	ID         string        `json:"id"`
	ProviderID uint          `json:"provider_id"`
	Date       string        `json:"date"`
	TimeSlots  []TimeSlotDTO `json:"time_slots"`
}
