package schedule

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
)

type DeleteSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache AvailabilityCache
}

func NewDeleteSlot(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache AvailabilityCache,
) *DeleteSlot {
	return &DeleteSlot{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute remove o slot e suas reservas atomicamente. Delete é idempotente:
// slot inexistente (ou já deletado por um retry) retorna sucesso.
func (uc *DeleteSlot) Execute(
	ctx context.Context,
	slotID string,
	providerID uint,
) error {

	view, err := uc.repo.MutateSlotAtomic(ctx, slotID,
		func(v *domain.SlotView) (domain.SlotOutcome, error) {

			if v.ProviderID != providerID {
				return domain.SlotOutcome{}, httperr.ErrBusiness("not_slot_owner")
			}

			return domain.SlotOutcome{Delete: true}, nil
		})

	if err != nil {
		if httperr.IsBusiness(err, "slot_not_found") {
			return nil
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &providerID,
		Action:   "slot_deleted",
		Entity:   "time_slot",
		EntityID: slotID,
	})

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, view.ProviderID, view.Date)
	}

	return nil
}
