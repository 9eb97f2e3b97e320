package get_lesson

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
	msgInvalidLessonID = "некорректный ID занятия"
	msgNotFound        = "занятие не найдено"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/lessons/{lessonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lessonIDStr := vars["lessonId"]

	lessonID, err := strconv.ParseInt(lessonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /lessons/{id} - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /lessons/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Занятие видят только его студент и инструктор (сервис проверяет права)
	lesson, err := h.service.GetByID(r.Context(), lessonID, userID)
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrLessonNotFound):
			h.logger.Warn("GET /lessons/{id} - Lesson not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("GET /lessons/{id} - Access denied: lesson_id=%d, user_id=%d", lessonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /lessons/{id} - Failed to get lesson: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /lessons/{id} - Lesson retrieved successfully: lesson_id=%d, user_id=%d", lessonID, userID)
	handlers.RespondJSON(w, http.StatusOK, lesson)
}
