package schedule

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type ListFilter struct {
	ProviderID uint   // 0 = todos os providers
	Date       string // "" = todas as datas
}

// SlotView é o estado corrente de um slot, lido sob o lock de
// MutateSlotAtomic. ProviderID e Date vêm do set pai.
type SlotView struct {
	Slot       models.TimeSlot
	Bookings   []models.Booking
	ProviderID uint
	Date       string
}

// SlotOutcome descreve a mutação decidida pelo mutator.
type SlotOutcome struct {
	AddBooking *models.Booking
	Delete     bool
}

// SlotMutator decide a mutação a partir do estado corrente do slot.
// Retornar erro rejeita a mutação sem gravar nada.
type SlotMutator func(view *SlotView) (SlotOutcome, error)

type Repository interface {
	// -------- Availability set --------

	// CreateSet persiste janelas novas para providerID+date.
	// Se já existe um set para o par, as janelas são anexadas a ele
	// (semântica "append windows"). Retorna o set completo.
	CreateSet(
		ctx context.Context,
		providerID uint,
		date string,
		slots []models.TimeSlot,
	) (*models.AvailabilitySet, error)

	// ListSets retorna sets ordenados por data ascendente, slots na
	// ordem de inserção, bookings na ordem de criação.
	ListSets(
		ctx context.Context,
		filter ListFilter,
	) ([]models.AvailabilitySet, error)

	// -------- Slot (leitura) --------

	GetSlot(
		ctx context.Context,
		slotID string,
	) (*models.TimeSlot, error)

	ListBookings(
		ctx context.Context,
		slotID string,
	) ([]models.Booking, error)

	// -------- Slot (mutação) --------

	// MutateSlotAtomic é o único caminho de escrita de um slot. Carrega o
	// estado corrente sob lock, aplica a decisão do mutator e comita tudo
	// ou nada. Mutações em slots diferentes não disputam entre si.
	// Retorna slot_not_found se o slot não existe (ou já foi deletado).
	MutateSlotAtomic(
		ctx context.Context,
		slotID string,
		fn SlotMutator,
	) (*SlotView, error)
}
