package schedule

import (
	"context"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
)

type ListAvailability struct {
	repo  domain.Repository
	cache AvailabilityCache
}

func NewListAvailability(
	repo domain.Repository,
	cache AvailabilityCache,
) *ListAvailability {
	return &ListAvailability{
		repo:  repo,
		cache: cache,
	}
}

// Execute lista sets por data ascendente, slots em ordem de inserção.
// Só a consulta totalmente filtrada (provider + data) passa pelo cache;
// staleness curta é aceitável nesse domínio e toda escrita invalida a chave.
func (uc *ListAvailability) Execute(
	ctx context.Context,
	providerID uint,
	date string,
) ([]dto.AvailabilitySetDTO, error) {

	cacheable := uc.cache != nil && providerID != 0 && date != ""

	if cacheable {
		if sets, ok := uc.cache.Get(ctx, providerID, date); ok {
			return sets, nil
		}
	}

	sets, err := uc.repo.ListSets(ctx, domain.ListFilter{
		ProviderID: providerID,
		Date:       date,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.AvailabilitySetDTO, 0, len(sets))
	for _, set := range sets {
		out = append(out, toSetDTO(set))
	}

	if cacheable {
		uc.cache.Set(ctx, providerID, date, out)
	}

	return out, nil
}
