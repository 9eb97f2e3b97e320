package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/service/slots"
	"github.com/m04kA/ADS-SchedulingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные запроса"
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

// Handle POST /api/v1/availability-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /availability-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Слот всегда создается от имени аутентифицированного инструктора
	req.InstructorID = userID

	slot, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /availability-slots - Invalid input: instructor_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability-slots - Failed to create slot: instructor_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability-slots - Slot created: slot_id=%d, instructor_id=%d", slot.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
