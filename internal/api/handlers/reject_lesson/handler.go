package reject_lesson

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
	msgNotPending         = "отклонить можно только ожидающее занятие"
	msgAlreadyCancelled   = "занятие уже отменено"
	msgAlreadyCompleted   = "занятие уже завершено"
)

// RejectLessonRequest HTTP request model
type RejectLessonRequest struct {
	Reason *string `json:"reason,omitempty"`
}

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

// Handle PATCH /api/v1/lessons/{lessonId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lessonIDStr := vars["lessonId"]

	lessonID, err := strconv.ParseInt(lessonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /lessons/{id}/reject - Invalid lesson ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLessonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /lessons/{id}/reject - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело запроса опционально
	var req RejectLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /lessons/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lesson, err := h.service.Reject(r.Context(), lessonID, &models.RejectLessonRequest{
		InstructorID: userID,
		Reason:       req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrLessonNotFound):
			h.logger.Warn("PATCH /lessons/{id}/reject - Lesson not found: lesson_id=%d", lessonID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("PATCH /lessons/{id}/reject - Access denied: lesson_id=%d, user_id=%d", lessonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lessons.ErrNotPending):
			h.logger.Warn("PATCH /lessons/{id}/reject - Not pending: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, lessons.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /lessons/{id}/reject - Already cancelled: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, lessons.ErrAlreadyCompleted):
			h.logger.Warn("PATCH /lessons/{id}/reject - Already completed: lesson_id=%d", lessonID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCompleted)

		default:
			h.logger.Error("PATCH /lessons/{id}/reject - Failed to reject lesson: lesson_id=%d, error=%v", lessonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /lessons/{id}/reject - Lesson rejected: lesson_id=%d, instructor_id=%d", lessonID, userID)
	handlers.RespondJSON(w, http.StatusOK, lesson)
}
