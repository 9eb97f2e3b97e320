package get_student_lessons

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons"
	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons/models"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgInvalidStatus    = "некорректный статус занятия"
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

// Handle GET /api/v1/students/{studentId}/lessons?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studentIDStr := vars["studentId"]

	studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{id}/lessons - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{id}/lessons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var status *string
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status = &statusStr
	}

	result, err := h.service.GetStudentLessons(r.Context(), &models.GetStudentLessonsRequest{
		StudentID: studentID,
		UserID:    userID,
		Status:    status,
	})
	if err != nil {
		switch {
		case errors.Is(err, lessons.ErrAccessDenied):
			h.logger.Warn("GET /students/{id}/lessons - Access denied: student_id=%d, user_id=%d", studentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lessons.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/lessons - Invalid status: student_id=%d, status=%v", studentID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/{id}/lessons - Failed to get lessons: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/lessons - Lessons retrieved: student_id=%d, total=%d", studentID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
