package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAvailabilityInput struct {
	ProviderID uint
	Date       string
	Windows    []domain.Window
}

// ======================================================
// USE CASE
// ======================================================

type CreateAvailability struct {
	repo            domain.Repository
	audit           *audit.Dispatcher
	cache           AvailabilityCache
	defaultCapacity int
}

func NewCreateAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AvailabilityCache,
	defaultCapacity int,
) *CreateAvailability {
	return &CreateAvailability{
		repo:            repo,
		audit:           audit,
		cache:           cache,
		defaultCapacity: defaultCapacity,
	}
}

func (uc *CreateAvailability) Execute(
	ctx context.Context,
	in CreateAvailabilityInput,
) (*dto.AvailabilitySetDTO, error) {

	if err := domain.ValidateDate(in.Date); err != nil {
		return nil, err
	}
	if err := domain.ValidateWindows(in.Windows); err != nil {
		return nil, err
	}

	slots := make([]models.TimeSlot, 0, len(in.Windows))
	for _, w := range in.Windows {
		capacity := uc.defaultCapacity
		if w.Capacity != nil {
			capacity = *w.Capacity
		}

		slots = append(slots, models.TimeSlot{
			ID:        uuid.NewString(),
			StartTime: w.Start,
			EndTime:   w.End,
			Capacity:  capacity,
		})
	}

	set, err := uc.repo.CreateSet(ctx, in.ProviderID, in.Date, slots)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ProviderID,
		Action:   "availability_created",
		Entity:   "availability_set",
		EntityID: set.ID,
		Metadata: map[string]any{
			"date":  in.Date,
			"slots": len(slots),
		},
	})

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, in.ProviderID, in.Date)
	}

	out := toSetDTO(*set)
	return &out, nil
}
