package schedule

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// BookSlot é a operação com corrida: muitos membros disputando o mesmo slot.
// Toda a decisão (duplicado? lotado?) acontece dentro de MutateSlotAtomic,
// sob o lock do slot — nunca via read-then-write fora dele.
type BookSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache AvailabilityCache
}

func NewBookSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AvailabilityCache,
) *BookSlot {
	return &BookSlot{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *BookSlot) Execute(
	ctx context.Context,
	slotID string,
	userID uint,
	username string,
) (*dto.TimeSlotDTO, error) {

	view, err := uc.repo.MutateSlotAtomic(ctx, slotID,
		func(v *domain.SlotView) (domain.SlotOutcome, error) {

			for _, b := range v.Bookings {
				if b.UserID == userID {
					return domain.SlotOutcome{}, httperr.ErrBusiness("already_booked")
				}
			}

			// capacity 0 = sem limite
			if v.Slot.Capacity > 0 && len(v.Bookings) >= v.Slot.Capacity {
				return domain.SlotOutcome{}, httperr.ErrBusiness("slot_full")
			}

			return domain.SlotOutcome{
				AddBooking: &models.Booking{
					SlotID:   slotID,
					UserID:   userID,
					Username: username,
				},
			}, nil
		})

	if err != nil {
		code := httperr.BusinessCode(err)
		if code == "already_booked" || code == "slot_full" {
			uc.audit.Dispatch(audit.Event{
				UserID:   &userID,
				Action:   "booking_conflict",
				Entity:   "time_slot",
				EntityID: slotID,
				Metadata: map[string]any{"reason": code},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "slot_booked",
		Entity:   "time_slot",
		EntityID: slotID,
	})

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, view.ProviderID, view.Date)
	}

	out := toSlotDTO(view.Slot, view.Bookings)
	return &out, nil
}
