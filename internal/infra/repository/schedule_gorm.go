package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// --------------------------------------------------
// Availability set
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateSet(
	ctx context.Context,
	providerID uint,
	date string,
	slots []models.TimeSlot,
) (*models.AvailabilitySet, error) {

	var full models.AvailabilitySet

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var set models.AvailabilitySet
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("provider_id = ? AND date = ?", providerID, date).
			First(&set).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			set = models.AvailabilitySet{
				ID:         uuid.NewString(),
				ProviderID: providerID,
				Date:       date,
			}
			if err := tx.Create(&set).Error; err != nil {
				// corrida com outro create do mesmo par provider+date:
				// o índice único decide, relemos o vencedor
				if !isUniqueViolation(err) {
					return err
				}
				if err := tx.
					Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("provider_id = ? AND date = ?", providerID, date).
					First(&set).Error; err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		// posição continua do fim do set existente (ordem de inserção)
		var count int64
		if err := tx.Model(&models.TimeSlot{}).
			Where("set_id = ?", set.ID).
			Count(&count).Error; err != nil {
			return err
		}

		for i := range slots {
			slots[i].SetID = set.ID
			slots[i].Position = int(count) + i
		}

		if err := tx.Create(&slots).Error; err != nil {
			return err
		}

		// releitura na mesma transação: o set ainda está sob o nosso lock
		return tx.
			Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			Preload("TimeSlots.Bookings", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			}).
			First(&full, "id = ?", set.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &full, nil
}

func (r *ScheduleGormRepository) ListSets(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.AvailabilitySet, error) {

	q := r.db.WithContext(ctx).
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("TimeSlots.Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Order("date ASC")

	if filter.ProviderID != 0 {
		q = q.Where("provider_id = ?", filter.ProviderID)
	}
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}

	var sets []models.AvailabilitySet
	if err := q.Find(&sets).Error; err != nil {
		return nil, err
	}

	return sets, nil
}

// --------------------------------------------------
// Slot (leitura)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSlot(
	ctx context.Context,
	slotID string,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		First(&slot, "id = ?", slotID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("slot_not_found")
		}
		return nil, err
	}

	return &slot, nil
}

func (r *ScheduleGormRepository) ListBookings(
	ctx context.Context,
	slotID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("slot_id = ?", slotID).
		Order("id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Slot (mutação)
// --------------------------------------------------

// MutateSlotAtomic serializa todas as escritas de um slot: row lock no slot,
// estado lido sob o lock, decisão do mutator aplicada na mesma transação.
// Qualquer erro desfaz tudo; o slot nunca fica em estado parcial.
func (r *ScheduleGormRepository) MutateSlotAtomic(
	ctx context.Context,
	slotID string,
	fn domain.SlotMutator,
) (*domain.SlotView, error) {

	var view domain.SlotView

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var slot models.TimeSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", slotID).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("slot_not_found")
			}
			return err
		}

		var set models.AvailabilitySet
		if err := tx.First(&set, "id = ?", slot.SetID).Error; err != nil {
			return err
		}

		var bookings []models.Booking
		if err := tx.
			Where("slot_id = ?", slotID).
			Order("id ASC").
			Find(&bookings).Error; err != nil {
			return err
		}

		view = domain.SlotView{
			Slot:       slot,
			Bookings:   bookings,
			ProviderID: set.ProviderID,
			Date:       set.Date,
		}

		outcome, err := fn(&view)
		if err != nil {
			return err
		}

		if outcome.AddBooking != nil {
			if err := tx.Create(outcome.AddBooking).Error; err != nil {
				// backstop: índice único (slot_id, user_id)
				if isUniqueViolation(err) {
					return httperr.ErrBusiness("already_booked")
				}
				return err
			}
			view.Bookings = append(view.Bookings, *outcome.AddBooking)
		}

		if outcome.Delete {
			if err := tx.
				Where("slot_id = ?", slotID).
				Delete(&models.Booking{}).Error; err != nil {
				return err
			}
			if err := tx.
				Delete(&models.TimeSlot{}, "id = ?", slotID).Error; err != nil {
				return err
			}

			// poda sob o lock do set: serializa com CreateSet do mesmo par
			// provider+date, senão o count pode não ver slots recém-anexados
			// e o cascade do delete os levaria junto
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&set, "id = ?", set.ID).Error; err != nil {
				return err
			}

			var remaining int64
			if err := tx.Model(&models.TimeSlot{}).
				Where("set_id = ?", set.ID).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				if err := tx.
					Delete(&models.AvailabilitySet{}, "id = ?", set.ID).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &view, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
