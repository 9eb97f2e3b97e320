package confirm_lesson

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons"
)

const (
	msgInvalidLessonID  = "некорректный ID занятия"
	msgNotFound         = "занятие не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgAlreadyConfirmed = "занятие уже подтверждено"
	msgAlreadyCancelled = "занятие уже отменено"
	msgAlreadyCompleted = "занятие уже завершено"
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

// Handle PATCH /api/v1/lessons/{lessonId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lessonIDStr := vars["lessonId"]

	lessonID, err := strconv.ParseInt(lessonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /lessons/{id}/confirm - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /lessons/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	lesson, err := h.service.Confirm(r.Context(), lessonID, userID)
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrLessonNotFound):
			h.logger.Warn("PATCH /lessons/{id}/confirm - Lesson not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("PATCH /lessons/{id}/confirm - Access denied: lesson_id=%d, user_id=%d", lessonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lessons.ErrAlreadyConfirmed):
			h.logger.Warn("PATCH /lessons/{id}/confirm - Already confirmed: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyConfirmed)

		case errors.Is(err, lessons.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /lessons/{id}/confirm - Already cancelled: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, lessons.ErrAlreadyCompleted):
			h.logger.Warn("PATCH /lessons/{id}/confirm - Already completed: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCompleted)

		default:
			h.logger.Error("PATCH /lessons/{id}/confirm - Failed to confirm lesson: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /lessons/{id}/confirm - Lesson confirmed: lesson_id=%d, instructor_id=%d, status=%s",
		lessonID, userID, lesson.Status)
	handlers.RespondJSON(w, http.StatusOK, lesson)
}
