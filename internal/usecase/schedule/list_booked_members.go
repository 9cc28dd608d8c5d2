package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
)

type ListBookedMembers struct {
	repo domain.Repository
}

func NewListBookedMembers(repo domain.Repository) *ListBookedMembers {
	return &ListBookedMembers{repo: repo}
}

// Execute projeta o roster do slot em ordem de reserva.
func (uc *ListBookedMembers) Execute(
	ctx context.Context,
	slotID string,
) ([]dto.BookerDTO, error) {

	if _, err := uc.repo.GetSlot(ctx, slotID); err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListBookings(ctx, slotID)
	if err != nil {
		return nil, err
	}

	return toBookerDTOs(bookings), nil
}
