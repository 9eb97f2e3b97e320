package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/service/slots"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
	msgSlotNotFound   = "слот не найден"
	msgSlotBooked     = "забронированный слот нельзя удалить"
	msgSlotReferenced = "на слот ссылаются активные занятия"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availability-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotIDStr := vars["slotId"]

	slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /availability-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availability-slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteSlot(r.Context(), slotID, userID); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /availability-slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /availability-slots/{id} - Access denied: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrSlotBooked):
			h.logger.Warn("DELETE /availability-slots/{id} - Slot is booked: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotBooked)

		case errors.Is(err, slots.ErrSlotReferenced):
			h.logger.Warn("DELETE /availability-slots/{id} - Slot is referenced: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotReferenced)

		default:
			h.logger.Error("DELETE /availability-slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability-slots/{id} - Slot deleted: slot_id=%d, instructor_id=%d", slotID, userID)
	w.WriteHeader(http.StatusNoContent)
}
