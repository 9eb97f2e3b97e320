package get_instructor_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/service/slots"
	"github.com/m04kA/ADS-SchedulingService/internal/service/slots/models"
)

const (
	msgInvalidInstructorID = "некорректный ID инструктора"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
	msgInvalidInput        = "некорректные данные запроса"
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

// Handle GET /api/v1/instructors/{instructorId}/availability-slots?dateFrom=...&dateTo=...&onlyUnbooked=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	instructorIDStr := vars["instructorId"]

	instructorID, err := strconv.ParseInt(instructorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /instructors/{id}/availability-slots - Invalid instructor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstructorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /instructors/{id}/availability-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	req := &models.GetInstructorSlotsRequest{
		InstructorID: instructorID,
		UserID:       userID,
		OnlyUnbooked: query.Get("onlyUnbooked") == "true",
	}
	if dateFrom := query.Get("dateFrom"); dateFrom != "" {
		req.DateFrom = &dateFrom
	}
	if dateTo := query.Get("dateTo"); dateTo != "" {
		req.DateTo = &dateTo
	}

	result, err := h.service.GetInstructorSlots(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("GET /instructors/{id}/availability-slots - Access denied: instructor_id=%d, user_id=%d",
				instructorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /instructors/{id}/availability-slots - Invalid input: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /instructors/{id}/availability-slots - Failed to get slots: instructor_id=%d, error=%v",
				instructorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/{id}/availability-slots - Slots retrieved: instructor_id=%d, total=%d",
		instructorID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
