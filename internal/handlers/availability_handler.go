package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	ucSchedule "github.com/BruksfildServices01/slot-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	createUC      *ucSchedule.CreateAvailability
	bookUC        *ucSchedule.BookSlot
	deleteUC      *ucSchedule.DeleteSlot
	listUC        *ucSchedule.ListAvailability
	listBookersUC *ucSchedule.ListBookedMembers
}

func NewAvailabilityHandler(
	createUC *ucSchedule.CreateAvailability,
	bookUC *ucSchedule.BookSlot,
	deleteUC *ucSchedule.DeleteSlot,
	listUC *ucSchedule.ListAvailability,
	listBookersUC *ucSchedule.ListBookedMembers,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		createUC:      createUC,
		bookUC:        bookUC,
		deleteUC:      deleteUC,
		listUC:        listUC,
		listBookersUC: listBookersUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type createWindowRequest struct {
	Start    string `json:"start" binding:"required"`
	End      string `json:"end" binding:"required"`
	Capacity *int   `json:"capacity"`
}

type CreateAvailabilityRequest struct {
	Date      string                `json:"date" binding:"required"`
	TimeSlots []createWindowRequest `json:"time_slots" binding:"required"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// writeScheduleError traduz códigos de negócio do core em status HTTP
func writeScheduleError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "slot_not_found":
		httperr.NotFound(c, code, "Slot não encontrado.")
	case "already_booked":
		httperr.Conflict(c, code, "Você já reservou este slot.")
	case "slot_full":
		httperr.Conflict(c, code, "Slot sem vagas.")
	case "not_slot_owner":
		httperr.Forbidden(c, code, "Somente o provider dono pode remover o slot.")
	case "invalid_date", "invalid_time", "invalid_time_range",
		"invalid_capacity", "missing_time", "empty_time_slots":
		httperr.BadRequest(c, code, "Dados inválidos.")
	default:
		httperr.Internal(c, "storage_error", "Erro interno.")
	}
}

// ======================================================
// CREATE AVAILABILITY (provider)
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	windows := make([]domain.Window, 0, len(req.TimeSlots))
	for _, w := range req.TimeSlots {
		windows = append(windows, domain.Window{
			Start:    w.Start,
			End:      w.End,
			Capacity: w.Capacity,
		})
	}

	set, err := h.createUC.Execute(c.Request.Context(), ucSchedule.CreateAvailabilityInput{
		ProviderID: providerID,
		Date:       req.Date,
		Windows:    windows,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.Created(c, set)
}

// ======================================================
// LIST AVAILABILITY
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	var providerID uint
	if v := c.Query("providerId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_provider_id", "providerId inválido.")
			return
		}
		providerID = uint(id)
	}

	date := c.Query("date")
	if date != "" {
		if err := domain.ValidateDate(date); err != nil {
			writeScheduleError(c, err)
			return
		}
	}

	sets, err := h.listUC.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.List(c, sets)
}

// ======================================================
// BOOK SLOT (member)
// ======================================================

func (h *AvailabilityHandler) Book(c *gin.Context) {
	// identidade vem do token verificado, nunca do body
	userID := c.MustGet(middleware.ContextUserID).(uint)
	username := c.MustGet(middleware.ContextUsername).(string)

	slotID := c.Param("slotId")

	slot, err := h.bookUC.Execute(c.Request.Context(), slotID, userID, username)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, slot)
}

// ======================================================
// DELETE SLOT (provider)
// ======================================================

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextUserID).(uint)
	slotID := c.Param("slotId")

	if err := h.deleteUC.Execute(c.Request.Context(), slotID, providerID); err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// LIST BOOKERS
// ======================================================

func (h *AvailabilityHandler) ListBookers(c *gin.Context) {
	slotID := c.Param("slotId")

	bookers, err := h.listBookersUC.Execute(c.Request.Context(), slotID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.List(c, bookers)
}
