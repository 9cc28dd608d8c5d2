package schedule

import (
	"context"
	"sync"
	"testing"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
)

func TestDeleteSlotRemovesFromReadPaths(t *testing.T) {
	repo := newMemRepo()
	slotID := seedSlot(t, repo, 1, 1)

	del := NewDeleteSlot(repo, nil, nil)
	list := NewListAvailability(repo, nil)

	if err := del.Execute(context.Background(), slotID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sets, err := list.Execute(context.Background(), 1, "2025-06-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, set := range sets {
		for _, slot := range set.TimeSlots {
			if slot.ID == slotID {
				t.Fatal("deleted slot still visible")
			}
		}
	}

	if _, err := repo.GetSlot(context.Background(), slotID); !httperr.IsBusiness(err, "slot_not_found") {
		t.Fatalf("GetSlot err = %v, want slot_not_found", err)
	}
}

func TestDeleteSlotIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	slotID := seedSlot(t, repo, 1, 1)

	del := NewDeleteSlot(repo, nil, nil)

	if err := del.Execute(context.Background(), slotID, 1); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := del.Execute(context.Background(), slotID, 1); err != nil {
		t.Fatalf("second delete must succeed, got: %v", err)
	}
}

func TestDeleteSlotRequiresOwnership(t *testing.T) {
	repo := newMemRepo()
	slotID := seedSlot(t, repo, 1, 1)

	del := NewDeleteSlot(repo, nil, nil)

	err := del.Execute(context.Background(), slotID, 99)
	if !httperr.IsBusiness(err, "not_slot_owner") {
		t.Fatalf("err = %v, want not_slot_owner", err)
	}

	// slot continua existindo
	if _, err := repo.GetSlot(context.Background(), slotID); err != nil {
		t.Fatalf("slot should survive foreign delete: %v", err)
	}
}

func TestDeleteSlotPrunesEmptySet(t *testing.T) {
	repo := newMemRepo()
	slotID := seedSlot(t, repo, 1, 1)

	del := NewDeleteSlot(repo, nil, nil)
	list := NewListAvailability(repo, nil)

	if err := del.Execute(context.Background(), slotID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sets, err := list.Execute(context.Background(), 1, "2025-06-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sets) != 0 {
		t.Fatalf("empty set should be pruned, got %d sets", len(sets))
	}
}

func TestDeleteLastSlotThenCreateSameDateRecreatesSet(t *testing.T) {
	repo := newMemRepo()
	slotID := seedSlot(t, repo, 1, 1)

	create := NewCreateAvailability(repo, nil, nil, 1)
	del := NewDeleteSlot(repo, nil, nil)
	list := NewListAvailability(repo, nil)

	if err := del.Execute(context.Background(), slotID, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	set, err := create.Execute(context.Background(), CreateAvailabilityInput{
		ProviderID: 1,
		Date:       "2025-06-01",
		Windows: []domain.Window{
			{Start: "10:00", End: "11:00"},
		},
	})
	if err != nil {
		t.Fatalf("create after prune: %v", err)
	}

	sets, err := list.Execute(context.Background(), 1, "2025-06-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sets) != 1 || sets[0].ID != set.ID {
		t.Fatalf("expected the recreated set only, got %+v", sets)
	}
	if len(sets[0].TimeSlots) != 1 || sets[0].TimeSlots[0].StartTime != "10:00" {
		t.Fatalf("unexpected slots after recreate: %+v", sets[0].TimeSlots)
	}
}

// A poda do set não pode engolir janelas anexadas concorrentemente por
// CreateSet para o mesmo par provider+date: a escrita confirmada do create
// tem que sobreviver à remoção do último slot antigo.
func TestDeleteLastSlotConcurrentWithCreateSameDate(t *testing.T) {
	const rounds = 50

	for i := 0; i < rounds; i++ {
		repo := newMemRepo()
		oldSlot := seedSlot(t, repo, 1, 1)

		create := NewCreateAvailability(repo, nil, nil, 1)
		del := NewDeleteSlot(repo, nil, nil)
		list := NewListAvailability(repo, nil)

		var wg sync.WaitGroup
		var createErr, delErr error

		wg.Add(2)
		go func() {
			defer wg.Done()
			_, createErr = create.Execute(context.Background(), CreateAvailabilityInput{
				ProviderID: 1,
				Date:       "2025-06-01",
				Windows: []domain.Window{
					{Start: "10:00", End: "11:00"},
				},
			})
		}()
		go func() {
			defer wg.Done()
			delErr = del.Execute(context.Background(), oldSlot, 1)
		}()
		wg.Wait()

		if createErr != nil {
			t.Fatalf("create: %v", createErr)
		}
		if delErr != nil {
			t.Fatalf("delete: %v", delErr)
		}

		sets, err := list.Execute(context.Background(), 1, "2025-06-01")
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		var found bool
		for _, set := range sets {
			for _, slot := range set.TimeSlots {
				if slot.ID == oldSlot {
					t.Fatal("deleted slot still visible")
				}
				if slot.StartTime == "10:00" {
					found = true
				}
			}
		}
		if !found {
			t.Fatal("concurrently created window was lost")
		}
	}
}
