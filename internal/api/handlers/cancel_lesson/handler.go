package cancel_lesson

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons"
	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons/models"
)

const (
	msgInvalidLessonID    = "некорректный ID занятия"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "занятие не найдено"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgAlreadyCancelled   = "занятие уже отменено"
	msgAlreadyCompleted   = "занятие уже завершено"
	msgInvalidInput       = "некорректные данные запроса"

	msgLateCancellation = "занятие отменено позже установленного срока, оплаченный час не возвращается"
)

type Handler struct {
	service LessonService
	logger  Logger
}

func NewHandler(service LessonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/lessons/{lessonId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lessonIDStr := vars["lessonId"]

	lessonID, err := strconv.ParseInt(lessonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /lessons/{id}/cancel - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /lessons/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело запроса опционально
	var req CancelLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /lessons/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), lessonID, &models.CancelLessonRequest{
		UserID:        userID,
		Reason:        req.Reason,
		IsUrgent:      req.IsUrgent,
		IsPreApproved: req.IsPreApproved,
	})
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrLessonNotFound):
			h.logger.Warn("PATCH /lessons/{id}/cancel - Lesson not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("PATCH /lessons/{id}/cancel - Access denied: lesson_id=%d, user_id=%d", lessonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lessons.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /lessons/{id}/cancel - Already cancelled: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, lessons.ErrAlreadyCompleted):
			h.logger.Warn("PATCH /lessons/{id}/cancel - Already completed: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCompleted)

		case errors.Is(err, lessons.ErrInvalidInput):
			h.logger.Warn("PATCH /lessons/{id}/cancel - Invalid input: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /lessons/{id}/cancel - Failed to cancel lesson: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := CancelLessonResponse{
		Lesson:       result.Lesson,
		HourDeducted: result.HourDeducted,
	}
	if result.HourDeducted {
		warning := msgLateCancellation
		response.Warning = &warning
	}

	h.logger.Info("PATCH /lessons/{id}/cancel - Lesson cancelled successfully: lesson_id=%d, user_id=%d, hour_deducted=%v",
		lessonID, userID, result.HourDeducted)
	handlers.RespondJSON(w, http.StatusOK, response)
}
