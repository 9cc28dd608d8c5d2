package schedule

import (
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

func toBookerDTOs(bookings []models.Booking) []dto.BookerDTO {
	out := make([]dto.BookerDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookerDTO{
			UserID:   b.UserID,
			Username: b.Username,
		})
	}
	return out
}

func toSlotDTO(slot models.TimeSlot, bookings []models.Booking) dto.TimeSlotDTO {
	return dto.TimeSlotDTO{
		ID:          slot.ID,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Capacity:    slot.Capacity,
		BookedCount: len(bookings),
		BookedBy:    toBookerDTOs(bookings),
	}
}

func toSetDTO(set models.AvailabilitySet) dto.AvailabilitySetDTO {
	slots := make([]dto.TimeSlotDTO, 0, len(set.TimeSlots))
	for _, s := range set.TimeSlots {
		slots = append(slots, toSlotDTO(s, s.Bookings))
	}

	return dto.AvailabilitySetDTO{
		ID:         set.ID,
		ProviderID: set.ProviderID,
		Date:       set.Date,
		TimeSlots:  slots,
	}
}
