package schedule

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// memRepo implementa domain.Repository em memória para os testes de use case.
// Um único mutex serializa as mutações, cumprindo o contrato de
// MutateSlotAtomic (uma ordem total por slot).
type memRepo struct {
	mu         sync.Mutex
	sets       map[string]*models.AvailabilitySet
	slots      map[string]*memSlot
	nextBookID uint
	nextSetID  int
}

type memSlot struct {
	slot       models.TimeSlot
	bookings   []models.Booking
	providerID uint
	date       string
}

func newMemRepo() *memRepo {
	return &memRepo{
		sets:  make(map[string]*models.AvailabilitySet),
		slots: make(map[string]*memSlot),
	}
}

func (r *memRepo) findSet(providerID uint, date string) *models.AvailabilitySet {
	for _, set := range r.sets {
		if set.ProviderID == providerID && set.Date == date {
			return set
		}
	}
	return nil
}

func (r *memRepo) CreateSet(
	_ context.Context,
	providerID uint,
	date string,
	slots []models.TimeSlot,
) (*models.AvailabilitySet, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.findSet(providerID, date)
	if set == nil {
		r.nextSetID++
		set = &models.AvailabilitySet{
			ID:         fmt.Sprintf("set-%d", r.nextSetID),
			ProviderID: providerID,
			Date:       date,
		}
		r.sets[set.ID] = set
	}

	base := len(set.TimeSlots)
	for i := range slots {
		slots[i].SetID = set.ID
		slots[i].Position = base + i
		set.TimeSlots = append(set.TimeSlots, slots[i])
		r.slots[slots[i].ID] = &memSlot{
			slot:       slots[i],
			providerID: providerID,
			date:       date,
		}
	}

	return r.snapshotSet(set), nil
}

func (r *memRepo) snapshotSet(set *models.AvailabilitySet) *models.AvailabilitySet {
	out := *set
	out.TimeSlots = make([]models.TimeSlot, 0, len(set.TimeSlots))
	for _, s := range set.TimeSlots {
		if ms, ok := r.slots[s.ID]; ok {
			slot := ms.slot
			slot.Bookings = append([]models.Booking(nil), ms.bookings...)
			out.TimeSlots = append(out.TimeSlots, slot)
		}
	}
	return &out
}

func (r *memRepo) ListSets(
	_ context.Context,
	filter domain.ListFilter,
) ([]models.AvailabilitySet, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.AvailabilitySet
	for _, set := range r.sets {
		if filter.ProviderID != 0 && set.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Date != "" && set.Date != filter.Date {
			continue
		}
		out = append(out, *r.snapshotSet(set))
	}

	// ordenação por data ascendente
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Date < out[i].Date {
				out[i], out[j] = out[j], out[i]
			}
		}
	}

	return out, nil
}

func (r *memRepo) GetSlot(
	_ context.Context,
	slotID string,
) (*models.TimeSlot, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	ms, ok := r.slots[slotID]
	if !ok {
		return nil, httperr.ErrBusiness("slot_not_found")
	}
	slot := ms.slot
	return &slot, nil
}

func (r *memRepo) ListBookings(
	_ context.Context,
	slotID string,
) ([]models.Booking, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	ms, ok := r.slots[slotID]
	if !ok {
		return nil, nil
	}
	return append([]models.Booking(nil), ms.bookings...), nil
}

func (r *memRepo) MutateSlotAtomic(
	_ context.Context,
	slotID string,
	fn domain.SlotMutator,
) (*domain.SlotView, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	ms, ok := r.slots[slotID]
	if !ok {
		return nil, httperr.ErrBusiness("slot_not_found")
	}

	view := domain.SlotView{
		Slot:       ms.slot,
		Bookings:   append([]models.Booking(nil), ms.bookings...),
		ProviderID: ms.providerID,
		Date:       ms.date,
	}

	outcome, err := fn(&view)
	if err != nil {
		return nil, err
	}

	if outcome.AddBooking != nil {
		for _, b := range ms.bookings {
			if b.UserID == outcome.AddBooking.UserID {
				return nil, httperr.ErrBusiness("already_booked")
			}
		}
		r.nextBookID++
		outcome.AddBooking.ID = r.nextBookID
		ms.bookings = append(ms.bookings, *outcome.AddBooking)
		view.Bookings = append(view.Bookings, *outcome.AddBooking)
	}

	if outcome.Delete {
		delete(r.slots, slotID)

		set := r.sets[ms.slot.SetID]
		if set != nil {
			kept := set.TimeSlots[:0]
			for _, s := range set.TimeSlots {
				if s.ID != slotID {
					kept = append(kept, s)
				}
			}
			set.TimeSlots = kept
			if len(set.TimeSlots) == 0 {
				delete(r.sets, set.ID)
			}
		}
	}

	return &view, nil
}

var _ domain.Repository = (*memRepo)(nil)
