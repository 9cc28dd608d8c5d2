package schedule

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
)

// AvailabilityCache é o cache read-side de listagens totalmente filtradas
// (provider + data). Implementado por internal/cache; nil desliga o cache.
type AvailabilityCache interface {
	Get(ctx context.Context, providerID uint, date string) ([]dto.AvailabilitySetDTO, bool)
	Set(ctx context.Context, providerID uint, date string, sets []dto.AvailabilitySetDTO)
	Invalidate(ctx context.Context, providerID uint, date string)
}
